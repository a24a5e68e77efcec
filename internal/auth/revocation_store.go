package auth

import (
	"context"
	"time"

	"trtlmarket/internal/cache"
)

const revokedSessionKeyPrefix = "revoked_session:"

// RevocationStoreInterface defines storage for revoked session ids.
type RevocationStoreInterface interface {
	Revoke(ctx context.Context, sessionID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}

// RevocationStore keeps revoked session ids in Redis until they would have expired.
type RevocationStore struct {
	cache *cache.Client
}

// Ensure RevocationStore implements RevocationStoreInterface
var _ RevocationStoreInterface = (*RevocationStore)(nil)

// NewRevocationStore creates a new revocation store.
func NewRevocationStore(cache *cache.Client) *RevocationStore {
	return &RevocationStore{cache: cache}
}

// Revoke marks a session id as revoked for ttl.
func (s *RevocationStore) Revoke(ctx context.Context, sessionID string, ttl time.Duration) error {
	return s.cache.Set(ctx, revokedSessionKeyPrefix+sessionID, []byte("1"), ttl)
}

// IsRevoked checks whether a session id was revoked.
func (s *RevocationStore) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	data, err := s.cache.Get(ctx, revokedSessionKeyPrefix+sessionID)
	if err != nil {
		return false, nil // fail safe
	}
	return data != nil, nil
}
