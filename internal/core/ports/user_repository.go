package ports

import (
	"context"

	"github.com/casewise/case-management-api/internal/core/domain"
)

// UserRepository defines persistence for caseworker accounts.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
