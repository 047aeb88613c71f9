package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// StateStore keeps OAuth2 state values between the consent redirect and
// the callback. Consume is single use.
type StateStore interface {
	Save(ctx context.Context, state string, ttl time.Duration) error
	Consume(ctx context.Context, state string) (bool, error)
}

const stateKeyPrefix = "authkit:oauth_state:"

// RedisStateStore is a StateStore backed by Redis keys with a TTL.
type RedisStateStore struct {
	client redis.UniversalClient
}

// NewRedisStateStore returns a StateStore using client.
func NewRedisStateStore(client redis.UniversalClient) *RedisStateStore {
	return &RedisStateStore{client: client}
}

// Save stores state until ttl elapses.
func (s *RedisStateStore) Save(ctx context.Context, state string, ttl time.Duration) error {
	if err := s.client.Set(ctx, stateKeyPrefix+state, "1", ttl).Err(); err != nil {
		return fmt.Errorf("save oauth state: %w", err)
	}
	return nil
}

// Consume deletes state and reports whether it was still stored. GETDEL
// makes a replayed callback lose the race.
func (s *RedisStateStore) Consume(ctx context.Context, state string) (bool, error) {
	err := s.client.GetDel(ctx, stateKeyPrefix+state).Err()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, redis.Nil):
		return false, nil
	default:
		return false, fmt.Errorf("consume oauth state: %w", err)
	}
}

func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
