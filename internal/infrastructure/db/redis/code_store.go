package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CodeStore keeps one-time codes (phone sign-in, password reset) in Redis.
// Key format: code:<purpose>:<identifier>
type CodeStore struct {
	client *redis.Client
}

// NewCodeStore creates a CodeStore wrapping the given Redis client.
func NewCodeStore(client *redis.Client) *CodeStore {
	return &CodeStore{client: client}
}

// Issue stores the code under the purpose+identifier key; a newer code
// replaces any outstanding one.
func (s *CodeStore) Issue(ctx context.Context, purpose, identifier, code string, ttl time.Duration) error {
	return s.client.Set(ctx, s.key(purpose, identifier), code, ttl).Err()
}

// Verify reports whether the code matches and consumes it on success, so a
// code signs in exactly once.
func (s *CodeStore) Verify(ctx context.Context, purpose, identifier, code string) (bool, error) {
	key := s.key(purpose, identifier)
	stored, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("code check: %w", err)
	}
	if stored != code || code == "" {
		return false, nil
	}
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return false, fmt.Errorf("code consume: %w", err)
	}
	return true, nil
}

func (s *CodeStore) key(purpose, identifier string) string {
	return fmt.Sprintf("code:%s:%s", purpose, identifier)
}
