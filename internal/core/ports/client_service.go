package ports

import (
	"context"

	"github.com/casewise/case-management-api/internal/core/domain"
)

// ClientSummary is the search-facing projection of a client.
type ClientSummary struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	ClientID  string `json:"client_id"`
}

// ClientPage is one page of search results.
type ClientPage struct {
	Clients    []ClientSummary `json:"clients"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}

// ClientService exposes client search scoped to the caller's assignments.
type ClientService interface {
	// Search returns clients assigned to user matching query. A nil user
	// yields an empty page rather than an error.
	Search(ctx context.Context, user *domain.User, query string, page, pageSize int) (*ClientPage, error)

	// ListAll returns clients across all caseworkers. Superusers only.
	ListAll(ctx context.Context, user *domain.User, query string, page, pageSize int) (*ClientPage, error)
}
