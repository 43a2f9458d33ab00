package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apimiddleware "github.com/casewise/case-management-api/internal/api/middleware"
	"github.com/casewise/case-management-api/internal/core/domain"
)

// currentUser extracts the identity injected by the Auth middleware. Its
// absence on a protected route means the middleware did not run; fail
// closed with a 401 rather than guessing.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(apimiddleware.IdentityKey).(*domain.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}

// optionalUser returns the resolved identity or nil. Only the lenient
// search route uses this.
func optionalUser(c echo.Context) *domain.User {
	user, _ := c.Get(apimiddleware.IdentityKey).(*domain.User)
	return user
}
