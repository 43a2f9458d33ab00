package ports

import (
	"context"

	"github.com/casewise/case-management-api/internal/core/domain"
)

// CaseNoteRepository defines persistence for case notes.
type CaseNoteRepository interface {
	Insert(ctx context.Context, note *domain.CaseNote) error
	// ListByClient returns all notes for a client, newest first.
	ListByClient(ctx context.Context, clientID string) ([]domain.CaseNote, error)
}
