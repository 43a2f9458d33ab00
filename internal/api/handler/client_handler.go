package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/casewise/case-management-api/internal/api/metrics"
	"github.com/casewise/case-management-api/internal/core/domain"
	"github.com/casewise/case-management-api/internal/core/ports"
)

// ClientHandler exposes client search.
type ClientHandler struct {
	clientService ports.ClientService
}

func NewClientHandler(clientService ports.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// Search handles GET /clients/search. Results are restricted to clients
// assigned to the caller; an unauthenticated caller gets an empty page.
//
// @Summary      Search assigned clients
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        q          query     string  false  "Substring matched against first name, last name, and client id"
// @Param        page       query     int     false  "Page number (1-based)"
// @Param        page_size  query     int     false  "Page size"
// @Success      200        {object}  ports.ClientPage
// @Router       /clients/search [get]
func (h *ClientHandler) Search(c echo.Context) error {
	user := optionalUser(c)
	if user != nil {
		metrics.ClientSearchesTotal.Inc()
	}

	page, err := h.clientService.Search(
		c.Request().Context(),
		user,
		c.QueryParam("q"),
		intParam(c, "page", 1),
		intParam(c, "page_size", 10),
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
	return c.JSON(http.StatusOK, page)
}

// ListAll handles GET /clients — the admin surface. Superusers see every
// client regardless of assignment.
//
// @Summary      List all clients (superuser only)
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        q          query     string  false  "Substring filter"
// @Param        page       query     int     false  "Page number (1-based)"
// @Param        page_size  query     int     false  "Page size"
// @Success      200        {object}  ports.ClientPage
// @Failure      403        {object}  errorResponse
// @Router       /clients [get]
func (h *ClientHandler) ListAll(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	page, err := h.clientService.ListAll(
		c.Request().Context(),
		user,
		c.QueryParam("q"),
		intParam(c, "page", 1),
		intParam(c, "page_size", 10),
	)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return c.JSON(http.StatusForbidden, errorResponse{Error: "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
	return c.JSON(http.StatusOK, page)
}

func intParam(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
