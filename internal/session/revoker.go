package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Revoker remembers ended sessions until they would have expired anyway.
type Revoker interface {
	Revoke(ctx context.Context, sessionID string, until time.Time) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}

// NewRevoker returns a Redis-backed Revoker, or a NopRevoker when client
// is nil.
func NewRevoker(client *redis.Client) Revoker {
	if client == nil {
		return NopRevoker{}
	}
	return &RedisRevoker{client: client}
}

// RedisRevoker stores revoked session ids.
// Key format: session:revoked:<jti>
type RedisRevoker struct {
	client *redis.Client
}

// Revoke marks sessionID revoked until the given time.  Already expired
// sessions need no entry.
func (r *RedisRevoker) Revoke(ctx context.Context, sessionID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, revokedKey(sessionID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("session revoke: %w", err)
	}
	return nil
}

// IsRevoked reports whether sessionID was revoked.
func (r *RedisRevoker) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	n, err := r.client.Exists(ctx, revokedKey(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("session revoked check: %w", err)
	}
	return n > 0, nil
}

func revokedKey(sessionID string) string {
	return "session:revoked:" + sessionID
}

// NopRevoker never revokes anything.
type NopRevoker struct{}

func (NopRevoker) Revoke(context.Context, string, time.Time) error { return nil }

func (NopRevoker) IsRevoked(context.Context, string) (bool, error) { return false, nil }
