package ports

import (
	"context"
	"time"

	"github.com/casewise/case-management-api/internal/core/domain"
)

// CreateCaseNoteInput carries a note-creation request.
type CreateCaseNoteInput struct {
	ClientID        string
	Content         string
	InteractionType domain.InteractionType
}

// CaseNoteCreated is the outcome of a successful note creation.
type CaseNoteCreated struct {
	ID        string
	CreatedAt time.Time
}

// CaseNoteAuthor identifies the caseworker who wrote a note.
type CaseNoteAuthor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CaseNoteItem is the list-facing projection of a note.
type CaseNoteItem struct {
	ID              string         `json:"id"`
	Content         string         `json:"content"`
	InteractionType string         `json:"interaction_type"`
	CreatedAt       time.Time      `json:"created_at"`
	CreatedBy       CaseNoteAuthor `json:"created_by"`
}

// CaseNoteService exposes note creation and listing, both restricted to
// the client's assigned caseworker.
type CaseNoteService interface {
	Create(ctx context.Context, user *domain.User, in CreateCaseNoteInput) (*CaseNoteCreated, error)
	ListForClient(ctx context.Context, user *domain.User, clientID string) ([]CaseNoteItem, error)
}
