package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/casewise/case-management-api/internal/api/metrics"
	"github.com/casewise/case-management-api/internal/core/domain"
	"github.com/casewise/case-management-api/internal/core/ports"
)

// IdentityKey is the echo context key under which the authenticated
// *domain.User is stored.
const IdentityKey = "current_user"

// Auth validates the bearer access token and injects the resolved user
// into the request context. Missing, malformed, expired, and
// unknown-identity tokens all fail with the same 401.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c)
			if !ok {
				metrics.AuthFailuresTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}

			user, err := tokens.ValidateAccess(c.Request().Context(), raw)
			if err != nil {
				reason := "invalid"
				if errors.Is(err, domain.ErrExpiredToken) {
					reason = "expired"
				}
				metrics.AuthFailuresTotal.WithLabelValues(reason).Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set(IdentityKey, user)
			return next(c)
		}
	}
}

// OptionalAuth resolves the bearer token when one is present and valid,
// and otherwise lets the request through anonymously. Used only by the
// client search route, which answers unauthenticated callers with an
// empty result set instead of a 401.
func OptionalAuth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if raw, ok := bearerToken(c); ok {
				if user, err := tokens.ValidateAccess(c.Request().Context(), raw); err == nil {
					c.Set(IdentityKey, user)
				}
			}
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
