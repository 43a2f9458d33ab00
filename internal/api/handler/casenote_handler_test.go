package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	apimiddleware "github.com/casewise/case-management-api/internal/api/middleware"
	"github.com/casewise/case-management-api/internal/core/domain"
	"github.com/casewise/case-management-api/internal/core/ports"
)

type stubCaseNoteService struct {
	create func(user *domain.User, in ports.CreateCaseNoteInput) (*ports.CaseNoteCreated, error)
	list   func(user *domain.User, clientID string) ([]ports.CaseNoteItem, error)
}

func (s *stubCaseNoteService) Create(_ context.Context, user *domain.User, in ports.CreateCaseNoteInput) (*ports.CaseNoteCreated, error) {
	return s.create(user, in)
}

func (s *stubCaseNoteService) ListForClient(_ context.Context, user *domain.User, clientID string) ([]ports.CaseNoteItem, error) {
	return s.list(user, clientID)
}

func sarah() *domain.User {
	return &domain.User{ID: "user-1", Username: "sarah.smith", IsActive: true}
}

func authedPost(e *echo.Echo, target, body string, user *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	c, rec := postJSON(e, target, body)
	if user != nil {
		c.Set(apimiddleware.IdentityKey, user)
	}
	return c, rec
}

func TestCaseNoteHandler_Create(t *testing.T) {
	createdAt := time.Date(2024, 5, 14, 10, 30, 0, 0, time.UTC)
	var gotInput ports.CreateCaseNoteInput
	h := NewCaseNoteHandler(&stubCaseNoteService{
		create: func(_ *domain.User, in ports.CreateCaseNoteInput) (*ports.CaseNoteCreated, error) {
			gotInput = in
			return &ports.CaseNoteCreated{ID: "note-1", CreatedAt: createdAt}, nil
		},
	})

	c, rec := authedPost(newTestEcho(), "/api/case-notes",
		`{"client_id":"c1","content":"Initial assessment.","interaction_type":"phone"}`, sarah())
	if err := h.Create(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["success"] != true || body["id"] != "note-1" {
		t.Fatalf("body = %v", body)
	}
	if body["created_at"] != "2024-05-14T10:30:00Z" {
		t.Fatalf("created_at = %v", body["created_at"])
	}
	if gotInput.InteractionType != domain.InteractionPhone {
		t.Fatalf("interaction type passed to service: %q", gotInput.InteractionType)
	}
}

func TestCaseNoteHandler_Create_DefaultsInteractionType(t *testing.T) {
	var gotInput ports.CreateCaseNoteInput
	h := NewCaseNoteHandler(&stubCaseNoteService{
		create: func(_ *domain.User, in ports.CreateCaseNoteInput) (*ports.CaseNoteCreated, error) {
			gotInput = in
			return &ports.CaseNoteCreated{ID: "note-1", CreatedAt: time.Now()}, nil
		},
	})

	c, rec := authedPost(newTestEcho(), "/api/case-notes",
		`{"client_id":"c1","content":"No type given."}`, sarah())
	if err := h.Create(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if gotInput.InteractionType != domain.InteractionOther {
		t.Fatalf("omitted type should default to %q, got %q", domain.InteractionOther, gotInput.InteractionType)
	}
}

func TestCaseNoteHandler_Create_InvalidInteractionType(t *testing.T) {
	h := NewCaseNoteHandler(&stubCaseNoteService{
		create: func(*domain.User, ports.CreateCaseNoteInput) (*ports.CaseNoteCreated, error) {
			return nil, domain.ErrInvalidInteractionType
		},
	})

	c, rec := authedPost(newTestEcho(), "/api/case-notes",
		`{"client_id":"c1","content":"note","interaction_type":"fax"}`, sarah())
	if err := h.Create(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decodeBody(t, rec)
	msg, _ := body["error"].(string)
	if !strings.HasPrefix(msg, "Invalid interaction type. Must be one of: ") {
		t.Fatalf("error = %q", msg)
	}
	for _, want := range []string{"phone", "in-person", "email", "video", "other"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("error %q missing %q", msg, want)
		}
	}
}

func TestCaseNoteHandler_Create_ClientNotFound(t *testing.T) {
	h := NewCaseNoteHandler(&stubCaseNoteService{
		create: func(*domain.User, ports.CreateCaseNoteInput) (*ports.CaseNoteCreated, error) {
			return nil, domain.ErrClientNotFound
		},
	})

	c, rec := authedPost(newTestEcho(), "/api/case-notes",
		`{"client_id":"someone-elses","content":"note","interaction_type":"phone"}`, sarah())
	if err := h.Create(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "client not found or not assigned to you" {
		t.Fatalf("body = %v", body)
	}
}

func TestCaseNoteHandler_Create_MissingFields(t *testing.T) {
	h := NewCaseNoteHandler(&stubCaseNoteService{
		create: func(*domain.User, ports.CreateCaseNoteInput) (*ports.CaseNoteCreated, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	})
	e := newTestEcho()

	for _, payload := range []string{`{"content":"note"}`, `{"client_id":"c1"}`, `{}`} {
		c, rec := authedPost(e, "/api/case-notes", payload, sarah())
		if err := h.Create(c); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("payload %s: status = %d", payload, rec.Code)
		}
	}
}

func TestCaseNoteHandler_Create_NoIdentity(t *testing.T) {
	h := NewCaseNoteHandler(&stubCaseNoteService{
		create: func(*domain.User, ports.CreateCaseNoteInput) (*ports.CaseNoteCreated, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	})

	c, _ := authedPost(newTestEcho(), "/api/case-notes",
		`{"client_id":"c1","content":"note","interaction_type":"phone"}`, nil)
	err := h.Create(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestCaseNoteHandler_ListByClient(t *testing.T) {
	items := []ports.CaseNoteItem{
		{
			ID:              "note-2",
			Content:         "second",
			InteractionType: "email",
			CreatedAt:       time.Date(2024, 5, 15, 9, 0, 0, 0, time.UTC),
			CreatedBy:       ports.CaseNoteAuthor{ID: "user-1", Name: "Sarah Smith"},
		},
		{
			ID:              "note-1",
			Content:         "first",
			InteractionType: "phone",
			CreatedAt:       time.Date(2024, 5, 14, 9, 0, 0, 0, time.UTC),
			CreatedBy:       ports.CaseNoteAuthor{ID: "user-1", Name: "Sarah Smith"},
		},
	}
	h := NewCaseNoteHandler(&stubCaseNoteService{
		list: func(_ *domain.User, clientID string) ([]ports.CaseNoteItem, error) {
			if clientID != "c1" {
				return nil, domain.ErrClientNotFound
			}
			return items, nil
		},
	})
	e := newTestEcho()

	req := httptest.NewRequest(http.MethodGet, "/api/case-notes/client/c1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("client_id")
	c.SetParamValues("c1")
	c.Set(apimiddleware.IdentityKey, sarah())

	if err := h.ListByClient(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decodeBody(t, rec)
	notes, ok := body["case_notes"].([]any)
	if !ok || len(notes) != 2 {
		t.Fatalf("body = %v", body)
	}
	first, _ := notes[0].(map[string]any)
	if first["id"] != "note-2" {
		t.Fatalf("notes not newest first: %v", notes)
	}
	author, _ := first["created_by"].(map[string]any)
	if author["name"] != "Sarah Smith" {
		t.Fatalf("author payload = %v", author)
	}

	// Unassigned client: 404 with the shared message.
	req = httptest.NewRequest(http.MethodGet, "/api/case-notes/client/c9", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("client_id")
	c.SetParamValues("c9")
	c.Set(apimiddleware.IdentityKey, sarah())

	if err := h.ListByClient(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
}
