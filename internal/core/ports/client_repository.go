package ports

import (
	"context"

	"github.com/casewise/case-management-api/internal/core/domain"
)

// ClientQuery restricts and pages a client search. When CaseworkerID is
// non-empty the result set is limited to clients assigned to that
// caseworker before Text is applied; an empty CaseworkerID means no
// ownership restriction (superuser/admin surface only).
type ClientQuery struct {
	CaseworkerID string
	Text         string // case-insensitive substring over first/last name and client_id
	Offset       int64
	Limit        int64
}

// ClientRepository defines persistence for clients.
type ClientRepository interface {
	// Search returns the matching page plus the total match count.
	Search(ctx context.Context, q ClientQuery) ([]domain.Client, int64, error)

	// FindAssigned resolves a client by id, additionally requiring
	// assignment to caseworkerID when it is non-empty. A missing row and
	// a row owned by someone else are both domain.ErrClientNotFound.
	FindAssigned(ctx context.Context, id, caseworkerID string) (*domain.Client, error)

	Create(ctx context.Context, client *domain.Client) error
}
