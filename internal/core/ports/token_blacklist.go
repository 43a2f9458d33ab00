package ports

import (
	"context"
	"time"
)

// TokenBlacklist is the set of refresh tokens revoked before natural
// expiry. Entries are keyed by token hash and may be garbage-collected
// once ttl elapses, since the token would have expired anyway.
type TokenBlacklist interface {
	// Add inserts the hash; inserting an existing hash is a no-op.
	Add(ctx context.Context, tokenHash string, ttl time.Duration) error
	Contains(ctx context.Context, tokenHash string) (bool, error)
}
