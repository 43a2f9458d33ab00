package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist stores revoked refresh-token hashes in Redis.
// Key format: blacklist:<sha256 hex>. Each entry expires when the token
// it shadows would have expired naturally, so the set cleans itself up.
type TokenBlacklist struct {
	client *redis.Client
}

// NewTokenBlacklist creates a TokenBlacklist wrapping the given Redis client.
func NewTokenBlacklist(client *redis.Client) *TokenBlacklist {
	return &TokenBlacklist{client: client}
}

// Add marks the token hash as revoked for ttl. Re-adding an existing hash
// just refreshes its expiry; the insert is idempotent.
func (b *TokenBlacklist) Add(ctx context.Context, tokenHash string, ttl time.Duration) error {
	return b.client.Set(ctx, b.key(tokenHash), "1", ttl).Err()
}

// Contains reports whether the token hash has been revoked.
func (b *TokenBlacklist) Contains(ctx context.Context, tokenHash string) (bool, error) {
	n, err := b.client.Exists(ctx, b.key(tokenHash)).Result()
	if err != nil {
		return false, fmt.Errorf("blacklist check: %w", err)
	}
	return n > 0, nil
}

func (b *TokenBlacklist) key(tokenHash string) string {
	return "blacklist:" + tokenHash
}
