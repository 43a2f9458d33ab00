package ports

import (
	"context"

	"github.com/casewise/case-management-api/internal/core/domain"
)

// TokenService issues, validates, refreshes, and revokes signed session
// tokens. Access tokens are stateless; only revoked refresh tokens are
// tracked, via the blacklist.
type TokenService interface {
	// Issue mints an access/refresh pair for the user.
	Issue(user *domain.User) (domain.TokenPair, error)

	// ValidateAccess verifies signature, type, and expiry, then resolves
	// the embedded identity to a live user record.
	ValidateAccess(ctx context.Context, token string) (*domain.User, error)

	// Refresh mints a new access token from an unexpired, non-blacklisted
	// refresh token.
	Refresh(ctx context.Context, refreshToken string) (string, error)

	// Revoke blacklists a refresh token. It is idempotent and never
	// returns an error: the caller discards its copy regardless.
	Revoke(ctx context.Context, refreshToken string) error
}
