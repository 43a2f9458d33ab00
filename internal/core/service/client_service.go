package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/casewise/case-management-api/internal/core/domain"
	"github.com/casewise/case-management-api/internal/core/ports"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

// ClientService implements client search scoped to the caller's
// assignments, plus the superuser-only unscoped listing.
type ClientService struct {
	clients ports.ClientRepository
	log     zerolog.Logger
}

func NewClientService(clients ports.ClientRepository, log zerolog.Logger) *ClientService {
	return &ClientService{clients: clients, log: log}
}

// Search returns the caller's assigned clients matching query. An
// unauthenticated caller (nil user) gets an empty page, not an error.
func (s *ClientService) Search(ctx context.Context, user *domain.User, query string, page, pageSize int) (*ports.ClientPage, error) {
	page, pageSize = normalizePage(page, pageSize)

	if user == nil {
		return &ports.ClientPage{
			Clients:  []ports.ClientSummary{},
			Page:     page,
			PageSize: pageSize,
		}, nil
	}

	return s.search(ctx, user.ID, query, page, pageSize)
}

// ListAll returns clients across all caseworkers. Callers that are not
// superusers are rejected; the route is additionally middleware-guarded.
func (s *ClientService) ListAll(ctx context.Context, user *domain.User, query string, page, pageSize int) (*ports.ClientPage, error) {
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	if !user.IsSuperuser {
		return nil, domain.ErrForbidden
	}
	page, pageSize = normalizePage(page, pageSize)
	return s.search(ctx, "", query, page, pageSize)
}

func (s *ClientService) search(ctx context.Context, caseworkerID, query string, page, pageSize int) (*ports.ClientPage, error) {
	clients, total, err := s.clients.Search(ctx, ports.ClientQuery{
		CaseworkerID: caseworkerID,
		Text:         query,
		Offset:       int64(page-1) * int64(pageSize),
		Limit:        int64(pageSize),
	})
	if err != nil {
		s.log.Error().Err(err).Msg("client search failed")
		return nil, err
	}

	summaries := make([]ports.ClientSummary, 0, len(clients))
	for _, c := range clients {
		summaries = append(summaries, ports.ClientSummary{
			ID:        c.ID,
			FirstName: c.FirstName,
			LastName:  c.LastName,
			ClientID:  c.ClientID,
		})
	}

	return &ports.ClientPage{
		Clients:    summaries,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	return page, pageSize
}

// totalPages is ceil(total / pageSize).
func totalPages(total int64, pageSize int) int {
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
