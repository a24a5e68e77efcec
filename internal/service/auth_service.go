package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "trtlmarket/internal/errors"
	"trtlmarket/internal/metrics"
	"trtlmarket/internal/model"
	"trtlmarket/internal/repository"
)

const bcryptCost = 10

// dummyHash is compared against when the username is unknown, so both
// failure paths spend the same bcrypt time.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("trtlmarket-dummy-password"), bcryptCost)

// SignupInput carries the already validated signup fields.
type SignupInput struct {
	Username string
	Password string
	Recovery string
	Address  string
}

// AuthService implements the signup and login strategies.
type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*model.User, error)
	Login(ctx context.Context, username, password, ip string) (*model.User, error)
	SetAddress(ctx context.Context, userID uint, address string) error
}

type authService struct {
	users repository.UserRepository
	log   logrus.FieldLogger
	now   func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, log logrus.FieldLogger) AuthService {
	return &authService{
		users: users,
		log:   log,
		now:   time.Now,
	}
}

// Signup creates a user with role "user". Uniqueness is enforced by the
// username index; the lookup only avoids hashing for obvious duplicates.
func (s *authService) Signup(ctx context.Context, in SignupInput) (*model.User, error) {
	existing, err := s.users.FindByUsername(ctx, in.Username)
	if err == nil && existing != nil {
		metrics.RecordSignup("taken")
		return nil, apperrors.ErrUsernameTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		metrics.RecordSignup("error")
		return nil, fmt.Errorf("check username: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		metrics.RecordSignup("error")
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username: in.Username,
		Password: string(hashed),
		Address:  in.Address,
		Role:     model.RoleUser,
		Recovery: in.Recovery,
	}

	err = s.users.WithTransaction(ctx, func(ctx context.Context, users repository.UserRepository, activities repository.ActivityRepository) error {
		if err := users.Create(ctx, user); err != nil {
			return err
		}
		return activities.Create(ctx, &model.Activity{
			UserID:   user.ID,
			Method:   model.ActivitySignup,
			Status:   model.ActivityStatusCompleted,
			Progress: 100,
		})
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			metrics.RecordSignup("taken")
			return nil, apperrors.ErrUsernameTaken
		}
		metrics.RecordSignup("error")
		return nil, fmt.Errorf("create user: %w", err)
	}

	metrics.RecordSignup("success")
	s.log.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("user signed up")
	return user, nil
}

// Login verifies credentials. Unknown users and wrong passwords return the same error.
func (s *authService) Login(ctx context.Context, username, password, ip string) (*model.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			metrics.RecordLogin("failure")
			return nil, apperrors.ErrInvalidCredentials
		}
		metrics.RecordLogin("error")
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		metrics.RecordLogin("failure")
		return nil, apperrors.ErrInvalidCredentials
	}

	seen := s.now().Truncate(time.Minute)
	err = s.users.WithTransaction(ctx, func(ctx context.Context, users repository.UserRepository, activities repository.ActivityRepository) error {
		if err := users.UpdateSeen(ctx, user.ID, seen); err != nil {
			return err
		}
		return activities.Create(ctx, &model.Activity{
			UserID:   user.ID,
			Method:   model.ActivityLogin,
			Status:   model.ActivityStatusCompleted,
			Progress: 100,
			Message:  "Logged in from " + ip,
			Notify:   true,
		})
	})
	if err != nil {
		metrics.RecordLogin("error")
		return nil, fmt.Errorf("record login: %w", err)
	}

	user.Seen = &seen
	metrics.RecordLogin("success")
	s.log.WithFields(logrus.Fields{"user_id": user.ID, "ip": ip}).Info("user logged in")
	return user, nil
}

// SetAddress stores the base wallet address used to derive integrated addresses.
func (s *authService) SetAddress(ctx context.Context, userID uint, address string) error {
	if err := s.users.UpdateAddress(ctx, userID, address); err != nil {
		return fmt.Errorf("update address: %w", err)
	}
	return nil
}
