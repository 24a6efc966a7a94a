// Package csrf keeps per-caller CSRF tokens in redis with a TTL, replacing
// the process-local token map the API started with. Keys expire on their
// own, so the store never grows unbounded and survives multi-instance
// deployments.
package csrf

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "csrf:"

var ErrTokenMismatch = errors.New("invalid or missing CSRF token")

type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// Issue creates a fresh token for the caller key and stores it with the
// configured TTL, replacing any previous token for that key.
func (s *Store) Issue(ctx context.Context, key string) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	token := hex.EncodeToString(buf)

	if err := s.client.Set(ctx, keyPrefix+key, token, s.ttl).Err(); err != nil {
		return "", err
	}

	return token, nil
}

// Verify checks the presented token against the stored one. A missing or
// expired stored token fails the same way a mismatch does.
func (s *Store) Verify(ctx context.Context, key, token string) error {
	if token == "" {
		return ErrTokenMismatch
	}

	stored, err := s.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return ErrTokenMismatch
	}
	if err != nil {
		return err
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(token)) != 1 {
		return ErrTokenMismatch
	}

	return nil
}
