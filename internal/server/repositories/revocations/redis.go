package revocations

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "revoked:"

// RedisRegistry keeps revoked JTIs as Redis keys whose TTL equals the time
// remaining until the token's natural expiry, so pruning is automatic.
type RedisRegistry struct {
	client *redis.Client
}

// NewRedisRegistry constructs a registry on top of the given client.
func NewRedisRegistry(client *redis.Client) *RedisRegistry {
	return &RedisRegistry{client: client}
}

// Revoke stores the JTI until its natural expiry. Tokens already past
// expiry are skipped, the expiry check rejects them regardless. SET is
// idempotent, so concurrent logouts of the same token are harmless.
func (r *RedisRegistry) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}

	value := strconv.FormatInt(expiresAt.UTC().Unix(), 10)
	if err := r.client.Set(ctx, keyPrefix+jti, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to add token to revocation registry: %w", err)
	}
	return nil
}

// IsRevoked reports whether the JTI is present. Expired entries have been
// evicted by Redis TTL and read as absent.
func (r *RedisRegistry) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, keyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check revocation registry: %w", err)
	}
	return n > 0, nil
}
