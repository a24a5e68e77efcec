package auth

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"trtlmarket/internal/cache"
)

// FlashKind is the severity of a one-time notice.
type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"

	flashCookie    = "trtl_flash"
	flashKeyPrefix = "flash:"
	flashTTL       = 10 * time.Minute
)

// Flashes holds the notices read for one request.
type Flashes struct {
	Success []string
	Error   []string
}

// Flasher queues and consumes one-time notices for the current browser.
type Flasher interface {
	Add(c echo.Context, kind FlashKind, message string)
	Pop(c echo.Context) Flashes
}

// FlashStore keeps notices in Redis lists keyed by a random id held in a cookie.
type FlashStore struct {
	cache  *cache.Client
	secure bool
}

var _ Flasher = (*FlashStore)(nil)

// NewFlashStore creates a Redis-backed flash store.
func NewFlashStore(cache *cache.Client, secure bool) *FlashStore {
	return &FlashStore{cache: cache, secure: secure}
}

// Add queues a notice of the given kind.
func (s *FlashStore) Add(c echo.Context, kind FlashKind, message string) {
	id := s.id(c, true)
	_ = s.cache.Push(c.Request().Context(), flashKey(id, kind), message, flashTTL)
}

// Pop returns and forgets all queued notices.
func (s *FlashStore) Pop(c echo.Context) Flashes {
	id := s.id(c, false)
	if id == "" {
		return Flashes{}
	}
	ctx := c.Request().Context()
	success, _ := s.cache.Drain(ctx, flashKey(id, FlashSuccess))
	errs, _ := s.cache.Drain(ctx, flashKey(id, FlashError))
	return Flashes{Success: success, Error: errs}
}

func (s *FlashStore) id(c echo.Context, create bool) string {
	if cookie, err := c.Cookie(flashCookie); err == nil {
		if _, err := uuid.Parse(cookie.Value); err == nil {
			return cookie.Value
		}
	}
	if !create {
		return ""
	}
	id := uuid.New().String()
	c.SetCookie(&http.Cookie{
		Name:     flashCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func flashKey(id string, kind FlashKind) string {
	return flashKeyPrefix + id + ":" + string(kind)
}
