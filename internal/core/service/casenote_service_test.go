package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/casewise/case-management-api/internal/core/domain"
	"github.com/casewise/case-management-api/internal/core/ports"
)

type stubCaseNoteRepo struct {
	notes []domain.CaseNote
}

func (r *stubCaseNoteRepo) Insert(_ context.Context, note *domain.CaseNote) error {
	r.notes = append(r.notes, *note)
	return nil
}

func (r *stubCaseNoteRepo) ListByClient(_ context.Context, clientID string) ([]domain.CaseNote, error) {
	out := make([]domain.CaseNote, 0)
	for _, n := range r.notes {
		if n.ClientID == clientID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func newTestCaseNoteService(audit ports.AuditSink) (*CaseNoteService, *stubCaseNoteRepo) {
	clients := &stubClientRepo{clients: []domain.Client{
		clientFixture("c1", "CL-2024-001", "Jane", "Wilson", "sarah", time.Hour),
		clientFixture("c3", "CL-2024-003", "Maria", "Garcia", "john", time.Hour),
	}}
	notes := &stubCaseNoteRepo{}
	return NewCaseNoteService(clients, notes, audit, zerolog.Nop()), notes
}

func TestCaseNoteService_Create(t *testing.T) {
	audit := &stubAuditSink{}
	svc, notes := newTestCaseNoteService(audit)
	sarah := caseworker("sarah", false)
	sarah.FirstName = "Sarah"
	sarah.LastName = "Smith"

	created, err := svc.Create(context.Background(), sarah, ports.CreateCaseNoteInput{
		ClientID:        "c1",
		Content:         "Initial assessment completed.",
		InteractionType: domain.InteractionPhone,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID == "" || created.CreatedAt.IsZero() {
		t.Fatalf("incomplete creation result: %+v", created)
	}

	if len(notes.notes) != 1 {
		t.Fatalf("expected 1 stored note, got %d", len(notes.notes))
	}
	stored := notes.notes[0]
	if stored.CreatedBy != sarah.ID || stored.CreatedByName != "Sarah Smith" {
		t.Fatalf("author not recorded: %+v", stored)
	}

	if len(audit.events) != 1 || audit.events[0].Action != domain.AuditNoteCreated {
		t.Fatalf("expected a note-created audit event, got %v", audit.actions())
	}
	if audit.events[0].Subject != "CL-2024-001" {
		t.Fatalf("audit subject = %q", audit.events[0].Subject)
	}
}

func TestCaseNoteService_Create_NotAssigned(t *testing.T) {
	svc, _ := newTestCaseNoteService(&stubAuditSink{})

	// Another caseworker's client and a nonexistent client look the same.
	for _, clientID := range []string{"c3", "missing"} {
		_, err := svc.Create(context.Background(), caseworker("sarah", false), ports.CreateCaseNoteInput{
			ClientID:        clientID,
			Content:         "note",
			InteractionType: domain.InteractionPhone,
		})
		if !errors.Is(err, domain.ErrClientNotFound) {
			t.Fatalf("client %s: expected ErrClientNotFound, got %v", clientID, err)
		}
	}
}

func TestCaseNoteService_Create_InvalidInteractionType(t *testing.T) {
	svc, notes := newTestCaseNoteService(&stubAuditSink{})

	// The enum is checked before ownership, so the error is the same for
	// an owned client and for someone else's.
	for _, clientID := range []string{"c1", "c3"} {
		_, err := svc.Create(context.Background(), caseworker("sarah", false), ports.CreateCaseNoteInput{
			ClientID:        clientID,
			Content:         "note",
			InteractionType: "carrier-pigeon",
		})
		if !errors.Is(err, domain.ErrInvalidInteractionType) {
			t.Fatalf("client %s: expected ErrInvalidInteractionType, got %v", clientID, err)
		}
	}
	if len(notes.notes) != 0 {
		t.Fatalf("no notes should be stored, got %d", len(notes.notes))
	}
}

func TestCaseNoteService_Create_Unauthenticated(t *testing.T) {
	svc, _ := newTestCaseNoteService(&stubAuditSink{})

	_, err := svc.Create(context.Background(), nil, ports.CreateCaseNoteInput{
		ClientID:        "c1",
		Content:         "note",
		InteractionType: domain.InteractionPhone,
	})
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestCaseNoteService_ListForClient(t *testing.T) {
	svc, _ := newTestCaseNoteService(&stubAuditSink{})
	sarah := caseworker("sarah", false)

	first, err := svc.Create(context.Background(), sarah, ports.CreateCaseNoteInput{
		ClientID:        "c1",
		Content:         "first note",
		InteractionType: domain.InteractionPhone,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	// A later note must come back ahead of the earlier one.
	time.Sleep(2 * time.Millisecond)
	second, err := svc.Create(context.Background(), sarah, ports.CreateCaseNoteInput{
		ClientID:        "c1",
		Content:         "second note",
		InteractionType: domain.InteractionEmail,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	items, err := svc.ListForClient(context.Background(), sarah, "c1")
	if err != nil {
		t.Fatalf("ListForClient returned error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 notes, got %d", len(items))
	}
	if items[0].ID != second.ID || items[1].ID != first.ID {
		t.Fatalf("notes not newest first: %+v", items)
	}
	if items[0].CreatedBy.ID != sarah.ID {
		t.Fatalf("author missing from listing: %+v", items[0])
	}
}

func TestCaseNoteService_ListForClient_NotAssigned(t *testing.T) {
	svc, _ := newTestCaseNoteService(&stubAuditSink{})

	for _, clientID := range []string{"c3", "missing"} {
		if _, err := svc.ListForClient(context.Background(), caseworker("sarah", false), clientID); !errors.Is(err, domain.ErrClientNotFound) {
			t.Fatalf("client %s: expected ErrClientNotFound, got %v", clientID, err)
		}
	}
}
