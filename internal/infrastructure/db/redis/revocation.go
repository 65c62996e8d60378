package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RevocationStore keeps revoked token ids in Redis.
// Key format: revoked:<jti>, expiring together with the token.
type RevocationStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewRevocationStore(client *redis.Client) *RevocationStore {
	return &RevocationStore{client: client, now: time.Now}
}

// Revoke marks tokenID as revoked until expiresAt. A zero expiresAt keeps the
// key without a TTL; an expiry already in the past is a no-op.
func (s *RevocationStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	var ttl time.Duration
	if !expiresAt.IsZero() {
		ttl = expiresAt.Sub(s.now())
		if ttl <= 0 {
			return nil
		}
	}
	if err := s.client.Set(ctx, s.key(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

func (s *RevocationStore) key(tokenID string) string {
	return "revoked:" + tokenID
}
