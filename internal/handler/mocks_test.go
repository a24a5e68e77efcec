package handler

import (
	"context"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"

	"trtlmarket/internal/auth"
	"trtlmarket/internal/licenses"
	"trtlmarket/internal/model"
	"trtlmarket/internal/service"
)

// MockAuthService is a mock implementation of AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, in service.SignupInput) (*model.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, username, password, ip string) (*model.User, error) {
	args := m.Called(ctx, username, password, ip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) SetAddress(ctx context.Context, userID uint, address string) error {
	args := m.Called(ctx, userID, address)
	return args.Error(0)
}

// MockItemService is a mock implementation of ItemService.
type MockItemService struct {
	mock.Mock
}

func (m *MockItemService) ListItems(ctx context.Context, userID uint) ([]service.ItemView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.ItemView), args.Error(1)
}

func (m *MockItemService) Licenses() []licenses.License {
	args := m.Called()
	return args.Get(0).([]licenses.License)
}

func (m *MockItemService) Publish(ctx context.Context, user *model.User, in service.PublishInput) (*model.Item, error) {
	args := m.Called(ctx, user, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Item), args.Error(1)
}

// MockActivityService is a mock implementation of ActivityService.
type MockActivityService struct {
	mock.Mock
}

func (m *MockActivityService) Recent(ctx context.Context, userID uint) ([]model.Activity, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Activity), args.Error(1)
}

// MockModerationService is a mock implementation of ModerationService.
type MockModerationService struct {
	mock.Mock
}

func (m *MockModerationService) PendingReview(ctx context.Context) ([]service.ItemView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.ItemView), args.Error(1)
}

func (m *MockModerationService) CountPendingReview(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockModerationService) Review(ctx context.Context, moderator *model.User, itemID uint) error {
	args := m.Called(ctx, moderator, itemID)
	return args.Error(0)
}

func (m *MockModerationService) Remove(ctx context.Context, moderator *model.User, itemID uint) error {
	args := m.Called(ctx, moderator, itemID)
	return args.Error(0)
}

// recordingFlasher keeps notices in memory.
type recordingFlasher struct {
	mu      sync.Mutex
	success []string
	errors  []string
}

func (f *recordingFlasher) Add(c echo.Context, kind auth.FlashKind, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if kind == auth.FlashSuccess {
		f.success = append(f.success, message)
		return
	}
	f.errors = append(f.errors, message)
}

func (f *recordingFlasher) Pop(c echo.Context) auth.Flashes {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := auth.Flashes{Success: f.success, Error: f.errors}
	f.success, f.errors = nil, nil
	return out
}

type memoryRevocations struct {
	mu  sync.Mutex
	ids map[string]bool
}

func (s *memoryRevocations) Revoke(ctx context.Context, sessionID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ids == nil {
		s.ids = map[string]bool{}
	}
	s.ids[sessionID] = true
	return nil
}

func (s *memoryRevocations) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ids[sessionID], nil
}
