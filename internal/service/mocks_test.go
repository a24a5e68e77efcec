package service

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"trtlmarket/internal/model"
	"trtlmarket/internal/repository"
	"trtlmarket/internal/storage"
)

// MockUserRepository is a mock implementation of UserRepository.
// WithTransaction runs fn against the mock itself and Activities.
type MockUserRepository struct {
	mock.Mock
	Activities *MockActivityRepository
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateSeen(ctx context.Context, id uint, seen time.Time) error {
	args := m.Called(ctx, id, seen)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateAddress(ctx context.Context, id uint, address string) error {
	args := m.Called(ctx, id, address)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id uint, role model.Role) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

func (m *MockUserRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, users repository.UserRepository, activities repository.ActivityRepository) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx, m, m.Activities)
}

// MockItemRepository is a mock implementation of ItemRepository.
// WithTransaction runs fn against the mock itself and Activities.
type MockItemRepository struct {
	mock.Mock
	Activities *MockActivityRepository
}

func (m *MockItemRepository) Create(ctx context.Context, item *model.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) FindByID(ctx context.Context, id uint) (*model.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Item), args.Error(1)
}

func (m *MockItemRepository) ListByUser(ctx context.Context, userID uint) ([]model.Item, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Item), args.Error(1)
}

func (m *MockItemRepository) ListPendingReview(ctx context.Context) ([]model.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Item), args.Error(1)
}

func (m *MockItemRepository) CountPendingReview(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemRepository) MarkReviewed(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockItemRepository) SoftDelete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockItemRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, items repository.ItemRepository, activities repository.ActivityRepository) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx, m, m.Activities)
}

// MockActivityRepository is a mock implementation of ActivityRepository.
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Create(ctx context.Context, activity *model.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockActivityRepository) ListByUser(ctx context.Context, userID uint, limit int) ([]model.Activity, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Activity), args.Error(1)
}

// MockIntegrator is a mock implementation of payment.Integrator.
type MockIntegrator struct {
	mock.Mock
}

func (m *MockIntegrator) IntegrateAddress(ctx context.Context, address, paymentID string) (string, error) {
	args := m.Called(ctx, address, paymentID)
	return args.String(0), args.Error(1)
}

// MockStore is a mock implementation of storage.Store.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Save(ctx context.Context, loc storage.Location, r io.ReadSeeker, size int64, contentType string) error {
	args := m.Called(ctx, loc, r, size, contentType)
	return args.Error(0)
}

func (m *MockStore) Remove(ctx context.Context, loc storage.Location) error {
	args := m.Called(ctx, loc)
	return args.Error(0)
}
