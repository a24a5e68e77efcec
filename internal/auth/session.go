package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	apperrors "trtlmarket/internal/errors"
	"trtlmarket/internal/model"
	"trtlmarket/internal/repository"
)

const (
	// SessionCookie is the cookie carrying the signed session token.
	SessionCookie = "trtl_session"
	// SessionContextKey is where echo-jwt stores the parsed *jwt.Token.
	SessionContextKey = "session"
	// UserContextKey is where the deserialized *model.User is stored.
	UserContextKey = "user"
)

// SessionClaims is the session payload. It carries only the user id and flags, never profile data.
type SessionClaims struct {
	UserID   uint `json:"uid"`
	Verified bool `json:"verified,omitempty"`
	jwt.RegisteredClaims
}

// SessionManager issues session tokens and resolves them back to users.
type SessionManager struct {
	secret  []byte
	ttl     time.Duration
	users   repository.UserRepository
	revoked RevocationStoreInterface
	now     func() time.Time
}

// NewSessionManager creates a session manager signing tokens with secret.
func NewSessionManager(secret string, ttl time.Duration, users repository.UserRepository, revoked RevocationStoreInterface) *SessionManager {
	return &SessionManager{
		secret:  []byte(secret),
		ttl:     ttl,
		users:   users,
		revoked: revoked,
		now:     time.Now,
	}
}

// Secret returns the signing key for token validation middleware.
func (m *SessionManager) Secret() []byte {
	return m.secret
}

// TTL returns the session lifetime.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Serialize reduces an authenticated user to the id stored in the session.
func (m *SessionManager) Serialize(user *model.User) uint {
	return user.ID
}

// Deserialize resolves a session id back to the full user with a single lookup.
// Store failures are propagated; a missing user yields ErrSessionUserGone.
func (m *SessionManager) Deserialize(ctx context.Context, id uint) (*model.User, error) {
	user, err := m.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSessionUserGone
		}
		return nil, fmt.Errorf("deserialize user %d: %w", id, err)
	}
	return user, nil
}

// Issue signs a new session token for user.
func (m *SessionManager) Issue(user *model.User, verified bool) (string, *SessionClaims, error) {
	now := m.now()
	claims := &SessionClaims{
		UserID:   m.Serialize(user),
		Verified: verified,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign session: %w", err)
	}
	return token, claims, nil
}

// Parse validates a session token and returns its claims.
func (m *SessionManager) Parse(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid session")
	}
	return claims, nil
}

// Revoke invalidates the session until its natural expiry.
func (m *SessionManager) Revoke(ctx context.Context, claims *SessionClaims) error {
	if claims == nil || claims.ID == "" {
		return nil
	}
	ttl := m.ttl
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Sub(m.now())
	}
	if ttl <= 0 {
		return nil
	}
	return m.revoked.Revoke(ctx, claims.ID, ttl)
}

// IsRevoked reports whether the session id was revoked.
func (m *SessionManager) IsRevoked(ctx context.Context, claims *SessionClaims) bool {
	revoked, _ := m.revoked.IsRevoked(ctx, claims.ID)
	return revoked
}

// SetCookie writes the session cookie.
func (m *SessionManager) SetCookie(c echo.Context, token string, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie.
func (m *SessionManager) ClearCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
