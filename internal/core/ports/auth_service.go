package ports

import (
	"context"

	"github.com/casewise/case-management-api/internal/core/domain"
)

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	Tokens domain.TokenPair
	User   *domain.User
}

// AuthService composes credential verification with token issuance.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)

	// Logout revokes the refresh token when one is supplied. It always
	// succeeds from the caller's perspective.
	Logout(ctx context.Context, refreshToken string)

	Refresh(ctx context.Context, refreshToken string) (string, error)
}
