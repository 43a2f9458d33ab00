package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/casewise/case-management-api/internal/core/domain"
)

func handleError(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body %q: %v", rec.Body.String(), err)
	}
	return rec.Code, body.Error
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{"invalid token", domain.ErrInvalidToken, http.StatusUnauthorized, "authentication required"},
		{"expired token", domain.ErrExpiredToken, http.StatusUnauthorized, "authentication required"},
		{"revoked token", domain.ErrTokenRevoked, http.StatusUnauthorized, "authentication required"},
		{"unknown identity", domain.ErrUnknownIdentity, http.StatusUnauthorized, "authentication required"},
		{"unauthenticated", domain.ErrUnauthenticated, http.StatusUnauthorized, "authentication required"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"client not found", domain.ErrClientNotFound, http.StatusNotFound, "client not found or not assigned to you"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, msg := handleError(t, tc.err)
			if code != tc.wantCode || msg != tc.wantMsg {
				t.Fatalf("got %d %q, want %d %q", code, msg, tc.wantCode, tc.wantMsg)
			}
		})
	}
}

func TestHTTPErrorHandler_InvalidInteractionType(t *testing.T) {
	code, msg := handleError(t, domain.ErrInvalidInteractionType)
	if code != http.StatusBadRequest {
		t.Fatalf("status = %d", code)
	}
	if !strings.HasPrefix(msg, "Invalid interaction type. Must be one of: ") {
		t.Fatalf("message = %q", msg)
	}
}

func TestHTTPErrorHandler_EchoError(t *testing.T) {
	code, msg := handleError(t, echo.NewHTTPError(http.StatusNotFound, "Not Found"))
	if code != http.StatusNotFound || msg != "Not Found" {
		t.Fatalf("got %d %q", code, msg)
	}
}

func TestHTTPErrorHandler_UnexpectedError(t *testing.T) {
	code, msg := handleError(t, errors.New("mongo: socket closed"))
	if code != http.StatusInternalServerError {
		t.Fatalf("status = %d", code)
	}
	if msg != "internal server error" {
		t.Fatalf("internal details leaked: %q", msg)
	}
}

func TestHTTPErrorHandler_WrappedDomainError(t *testing.T) {
	wrapped := errors.Join(errors.New("lookup failed"), domain.ErrClientNotFound)
	code, _ := handleError(t, wrapped)
	if code != http.StatusNotFound {
		t.Fatalf("wrapped sentinel not unwrapped: status = %d", code)
	}
}
