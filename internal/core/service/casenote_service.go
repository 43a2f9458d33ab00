package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/casewise/case-management-api/internal/core/domain"
	"github.com/casewise/case-management-api/internal/core/ports"
)

// CaseNoteService implements note creation and listing. Both operations
// require the caller to be the client's assigned caseworker; the
// ownership check and the existence check share one query, so the two
// failure modes are indistinguishable.
type CaseNoteService struct {
	clients ports.ClientRepository
	notes   ports.CaseNoteRepository
	audit   ports.AuditSink
	log     zerolog.Logger
}

func NewCaseNoteService(clients ports.ClientRepository, notes ports.CaseNoteRepository, audit ports.AuditSink, log zerolog.Logger) *CaseNoteService {
	return &CaseNoteService{clients: clients, notes: notes, audit: audit, log: log}
}

// Create records a note for a client assigned to user. The interaction
// type is validated before ownership, so a bad enum value fails with
// domain.ErrInvalidInteractionType no matter who owns the client.
func (s *CaseNoteService) Create(ctx context.Context, user *domain.User, in ports.CreateCaseNoteInput) (*ports.CaseNoteCreated, error) {
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	if !in.InteractionType.Valid() {
		return nil, domain.ErrInvalidInteractionType
	}

	client, err := s.clients.FindAssigned(ctx, in.ClientID, user.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	note := &domain.CaseNote{
		ID:              uuid.NewString(),
		ClientID:        client.ID,
		Content:         in.Content,
		InteractionType: in.InteractionType,
		CreatedBy:       user.ID,
		CreatedByName:   user.FullName(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.notes.Insert(ctx, note); err != nil {
		s.log.Error().Err(err).Str("client_id", client.ClientID).Msg("failed to insert case note")
		return nil, err
	}

	s.log.Info().
		Str("client_id", client.ClientID).
		Str("interaction_type", string(in.InteractionType)).
		Msg("case note created")

	if s.audit != nil {
		s.audit.Enqueue(domain.AuditEvent{
			Actor:     user.Username,
			Action:    domain.AuditNoteCreated,
			Subject:   client.ClientID,
			CreatedAt: now,
		})
	}

	return &ports.CaseNoteCreated{ID: note.ID, CreatedAt: note.CreatedAt}, nil
}

// ListForClient returns all notes for a client assigned to user, newest
// first.
func (s *CaseNoteService) ListForClient(ctx context.Context, user *domain.User, clientID string) ([]ports.CaseNoteItem, error) {
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}

	client, err := s.clients.FindAssigned(ctx, clientID, user.ID)
	if err != nil {
		return nil, err
	}

	notes, err := s.notes.ListByClient(ctx, client.ID)
	if err != nil {
		return nil, err
	}

	items := make([]ports.CaseNoteItem, 0, len(notes))
	for _, n := range notes {
		items = append(items, ports.CaseNoteItem{
			ID:              n.ID,
			Content:         n.Content,
			InteractionType: string(n.InteractionType),
			CreatedAt:       n.CreatedAt,
			CreatedBy: ports.CaseNoteAuthor{
				ID:   n.CreatedBy,
				Name: n.CreatedByName,
			},
		})
	}
	return items, nil
}
