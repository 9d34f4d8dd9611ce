package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrSessionUnverifiable means the revocation state of a token could not be determined.
var ErrSessionUnverifiable = errors.New("session revocation state unavailable")

// TokenRevoker records logged-out token IDs until they would have expired anyway.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

const revokedKeyPrefix = "docsite:revoked:"

// RedisRevoker keeps revoked token IDs in Redis with a TTL.
type RedisRevoker struct {
	client  redis.UniversalClient
	timeout time.Duration
}

func NewRedisRevoker(client redis.UniversalClient) *RedisRevoker {
	return &RedisRevoker{client: client, timeout: 2 * time.Second}
}

func (r *RedisRevoker) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	if err := r.client.Set(ctx, revokedKeyPrefix+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked returns ErrSessionUnverifiable when Redis cannot be reached.
func (r *RedisRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	n, err := r.client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrSessionUnverifiable, err)
	}
	return n > 0, nil
}

// NoopRevoker is used when no revocation store is configured. Logout then only clears
// the cookie and the token stays valid until it expires.
type NoopRevoker struct{}

func (NoopRevoker) Revoke(context.Context, string, time.Time) error { return nil }

func (NoopRevoker) IsRevoked(context.Context, string) (bool, error) { return false, nil }
