package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "trtlmarket/internal/errors"
	"trtlmarket/internal/model"
	"trtlmarket/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
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
	args := m.Called(ctx, fn)
	return args.Error(0)
}

type memoryRevocations struct {
	mu  sync.Mutex
	ids map[string]time.Duration
}

func (s *memoryRevocations) Revoke(ctx context.Context, sessionID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ids == nil {
		s.ids = map[string]time.Duration{}
	}
	s.ids[sessionID] = ttl
	return nil
}

func (s *memoryRevocations) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[sessionID]
	return ok, nil
}

func TestSessionManager_IssueAndParse(t *testing.T) {
	m := NewSessionManager("test-secret", time.Hour, new(MockUserRepository), &memoryRevocations{})
	user := &model.User{ID: 42}

	token, claims, err := m.Issue(user, true)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.True(t, claims.Verified)
	assert.NotEmpty(t, claims.ID)

	parsed, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), parsed.UserID)
	assert.Equal(t, claims.ID, parsed.ID)

	other := NewSessionManager("other-secret", time.Hour, nil, nil)
	_, err = other.Parse(token)
	assert.Error(t, err, "token signed with another secret")
}

func TestSessionManager_ParseExpired(t *testing.T) {
	m := NewSessionManager("test-secret", time.Minute, nil, nil)
	issued := time.Now().Add(-2 * time.Hour)
	m.now = func() time.Time { return issued }

	token, _, err := m.Issue(&model.User{ID: 1}, false)
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Parse(token)
	assert.Error(t, err)
}

func TestSessionManager_Serialize(t *testing.T) {
	m := NewSessionManager("s", time.Hour, nil, nil)
	assert.Equal(t, uint(9), m.Serialize(&model.User{ID: 9, Username: "bob"}))
}

func TestSessionManager_Deserialize(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(*MockUserRepository)
		wantUser  bool
		wantErrIs error
		wantErr   bool
	}{
		{
			name: "found",
			setup: func(r *MockUserRepository) {
				r.On("FindByID", mock.Anything, uint(3)).Return(&model.User{ID: 3, Username: "carol"}, nil)
			},
			wantUser: true,
		},
		{
			name: "user removed",
			setup: func(r *MockUserRepository) {
				r.On("FindByID", mock.Anything, uint(3)).Return(nil, gorm.ErrRecordNotFound)
			},
			wantErr:   true,
			wantErrIs: apperrors.ErrSessionUserGone,
		},
		{
			name: "store failure is propagated",
			setup: func(r *MockUserRepository) {
				r.On("FindByID", mock.Anything, uint(3)).Return(nil, assert.AnError)
			},
			wantErr:   true,
			wantErrIs: assert.AnError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			tt.setup(repo)
			m := NewSessionManager("s", time.Hour, repo, &memoryRevocations{})

			user, err := m.Deserialize(context.Background(), 3)
			if tt.wantErr {
				assert.ErrorIs(t, err, tt.wantErrIs)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "carol", user.Username)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestSessionManager_Revoke(t *testing.T) {
	revocations := &memoryRevocations{}
	m := NewSessionManager("s", time.Hour, nil, revocations)

	_, claims, err := m.Issue(&model.User{ID: 1}, false)
	require.NoError(t, err)
	assert.False(t, m.IsRevoked(context.Background(), claims))

	require.NoError(t, m.Revoke(context.Background(), claims))
	assert.True(t, m.IsRevoked(context.Background(), claims))
	assert.InDelta(t, time.Hour.Seconds(), revocations.ids[claims.ID].Seconds(), 5)

	assert.NoError(t, m.Revoke(context.Background(), nil))
}

func serveWithSession(t *testing.T, m *SessionManager, req *http.Request) (*httptest.ResponseRecorder, *model.User) {
	t.Helper()
	e := echo.New()
	var seen *model.User
	e.GET("/items", func(c echo.Context) error {
		seen = CurrentUser(c)
		return c.String(http.StatusOK, "ok")
	}, RequireSession(m, RedirectToLogin))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec, seen
}

func TestRequireSession(t *testing.T) {
	t.Run("valid cookie loads the user", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByID", mock.Anything, uint(5)).Return(&model.User{ID: 5, Username: "dave"}, nil)
		m := NewSessionManager("s", time.Hour, repo, &memoryRevocations{})
		token, _, err := m.Issue(&model.User{ID: 5}, false)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/items", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
		rec, user := serveWithSession(t, m, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, user)
		assert.Equal(t, "dave", user.Username)
	})

	t.Run("bearer header is accepted", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByID", mock.Anything, uint(5)).Return(&model.User{ID: 5}, nil)
		m := NewSessionManager("s", time.Hour, repo, &memoryRevocations{})
		token, _, err := m.Issue(&model.User{ID: 5}, false)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/items", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		rec, _ := serveWithSession(t, m, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing session redirects to login", func(t *testing.T) {
		m := NewSessionManager("s", time.Hour, new(MockUserRepository), &memoryRevocations{})
		rec, user := serveWithSession(t, m, httptest.NewRequest(http.MethodGet, "/items", nil))

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
		assert.Nil(t, user)
	})

	t.Run("revoked session redirects to login", func(t *testing.T) {
		m := NewSessionManager("s", time.Hour, new(MockUserRepository), &memoryRevocations{})
		token, claims, err := m.Issue(&model.User{ID: 5}, false)
		require.NoError(t, err)
		require.NoError(t, m.Revoke(context.Background(), claims))

		req := httptest.NewRequest(http.MethodGet, "/items", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
		rec, _ := serveWithSession(t, m, req)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
	})

	t.Run("deleted user ends the session", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByID", mock.Anything, uint(5)).Return(nil, gorm.ErrRecordNotFound)
		m := NewSessionManager("s", time.Hour, repo, &memoryRevocations{})
		token, _, err := m.Issue(&model.User{ID: 5}, false)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/items", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
		rec, _ := serveWithSession(t, m, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Contains(t, rec.Header().Get("Set-Cookie"), SessionCookie+"=;")
	})

	t.Run("store failure is not treated as anonymous", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByID", mock.Anything, uint(5)).Return(nil, assert.AnError)
		m := NewSessionManager("s", time.Hour, repo, &memoryRevocations{})
		token, _, err := m.Issue(&model.User{ID: 5}, false)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/items", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
		rec, _ := serveWithSession(t, m, req)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestRequireModerator(t *testing.T) {
	tests := []struct {
		name string
		user *model.User
		want int
	}{
		{"anonymous", nil, http.StatusForbidden},
		{"plain user", &model.User{Role: model.RoleUser}, http.StatusForbidden},
		{"moderator", &model.User{Role: model.RoleModerator}, http.StatusOK},
		{"admin", &model.User{Role: model.RoleAdmin}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/admin/items", nil), rec)
			if tt.user != nil {
				c.Set(UserContextKey, tt.user)
			}

			err := RequireModerator(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			})(c)

			if tt.want == http.StatusOK {
				require.NoError(t, err)
				assert.Equal(t, http.StatusOK, rec.Code)
				return
			}
			var he *echo.HTTPError
			require.ErrorAs(t, err, &he)
			assert.Equal(t, tt.want, he.Code)
		})
	}
}

func TestFlashStore_NilCacheIsSilent(t *testing.T) {
	e := echo.New()
	store := NewFlashStore(nil, false)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	store.Add(c, FlashError, "boom")
	assert.Contains(t, rec.Header().Get("Set-Cookie"), flashCookie+"=")

	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Equal(t, Flashes{}, store.Pop(c))
}
