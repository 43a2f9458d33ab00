package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	apimiddleware "github.com/casewise/case-management-api/internal/api/middleware"
	"github.com/casewise/case-management-api/internal/core/domain"
	"github.com/casewise/case-management-api/internal/core/ports"
)

type stubClientService struct {
	search  func(user *domain.User, query string, page, pageSize int) (*ports.ClientPage, error)
	listAll func(user *domain.User, query string, page, pageSize int) (*ports.ClientPage, error)
}

func (s *stubClientService) Search(_ context.Context, user *domain.User, query string, page, pageSize int) (*ports.ClientPage, error) {
	return s.search(user, query, page, pageSize)
}

func (s *stubClientService) ListAll(_ context.Context, user *domain.User, query string, page, pageSize int) (*ports.ClientPage, error) {
	return s.listAll(user, query, page, pageSize)
}

func getRequest(e *echo.Echo, target string, user *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(apimiddleware.IdentityKey, user)
	}
	return c, rec
}

func TestClientHandler_Search(t *testing.T) {
	var gotUser *domain.User
	var gotQuery string
	var gotPage, gotPageSize int
	h := NewClientHandler(&stubClientService{
		search: func(user *domain.User, query string, page, pageSize int) (*ports.ClientPage, error) {
			gotUser, gotQuery, gotPage, gotPageSize = user, query, page, pageSize
			return &ports.ClientPage{
				Clients: []ports.ClientSummary{
					{ID: "c1", FirstName: "Jane", LastName: "Wilson", ClientID: "CL-2024-001"},
				},
				Total:      11,
				Page:       page,
				PageSize:   pageSize,
				TotalPages: 3,
			}, nil
		},
	})

	c, rec := getRequest(newTestEcho(), "/api/clients/search?q=jane&page=2&page_size=5", sarah())
	if err := h.Search(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	if gotUser == nil || gotUser.ID != "user-1" {
		t.Fatalf("user passed to service: %+v", gotUser)
	}
	if gotQuery != "jane" || gotPage != 2 || gotPageSize != 5 {
		t.Fatalf("query/page/page_size = %q/%d/%d", gotQuery, gotPage, gotPageSize)
	}

	body := decodeBody(t, rec)
	if body["total"] != float64(11) || body["total_pages"] != float64(3) {
		t.Fatalf("pagination fields = %v", body)
	}
	clients, ok := body["clients"].([]any)
	if !ok || len(clients) != 1 {
		t.Fatalf("clients = %v", body["clients"])
	}
	first, _ := clients[0].(map[string]any)
	if first["client_id"] != "CL-2024-001" || first["first_name"] != "Jane" {
		t.Fatalf("client payload = %v", first)
	}
}

func TestClientHandler_Search_Anonymous(t *testing.T) {
	h := NewClientHandler(&stubClientService{
		search: func(user *domain.User, _ string, page, pageSize int) (*ports.ClientPage, error) {
			if user != nil {
				t.Fatalf("anonymous request should pass a nil user, got %+v", user)
			}
			return &ports.ClientPage{Clients: []ports.ClientSummary{}, Page: page, PageSize: pageSize}, nil
		},
	})

	c, rec := getRequest(newTestEcho(), "/api/clients/search?q=jane", nil)
	if err := h.Search(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decodeBody(t, rec)
	clients, ok := body["clients"].([]any)
	if !ok || len(clients) != 0 {
		t.Fatalf("anonymous search must return an empty list, got %v", body)
	}
}

func TestClientHandler_Search_BadPagingParams(t *testing.T) {
	h := NewClientHandler(&stubClientService{
		search: func(_ *domain.User, _ string, page, pageSize int) (*ports.ClientPage, error) {
			if page != 1 || pageSize != 10 {
				t.Fatalf("non-numeric params should fall back to 1/10, got %d/%d", page, pageSize)
			}
			return &ports.ClientPage{Clients: []ports.ClientSummary{}, Page: page, PageSize: pageSize}, nil
		},
	})

	c, rec := getRequest(newTestEcho(), "/api/clients/search?page=abc&page_size=", sarah())
	if err := h.Search(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestClientHandler_ListAll(t *testing.T) {
	h := NewClientHandler(&stubClientService{
		listAll: func(user *domain.User, _ string, page, pageSize int) (*ports.ClientPage, error) {
			if !user.IsSuperuser {
				return nil, domain.ErrForbidden
			}
			return &ports.ClientPage{
				Clients:    []ports.ClientSummary{{ID: "c1"}, {ID: "c2"}, {ID: "c3"}},
				Total:      3,
				Page:       page,
				PageSize:   pageSize,
				TotalPages: 1,
			}, nil
		},
	})
	e := newTestEcho()

	admin := &domain.User{ID: "admin", Username: "admin", IsSuperuser: true}
	c, rec := getRequest(e, "/api/clients", admin)
	if err := h.ListAll(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if clients, ok := body["clients"].([]any); !ok || len(clients) != 3 {
		t.Fatalf("clients = %v", body["clients"])
	}

	// The service-level check backs up the route middleware.
	c, rec = getRequest(e, "/api/clients", sarah())
	if err := h.ListAll(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d", rec.Code)
	}

	// No identity at all: the context guard fails closed.
	c, _ = getRequest(e, "/api/clients", nil)
	err := h.ListAll(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
