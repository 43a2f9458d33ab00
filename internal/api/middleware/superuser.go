package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/casewise/case-management-api/internal/core/domain"
)

// RequireSuperuser gates the admin-only routes. Must run after Auth.
func RequireSuperuser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get(IdentityKey).(*domain.User)
			if !ok || !user.IsSuperuser {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
