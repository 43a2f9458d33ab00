package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/casewise/case-management-api/internal/api/metrics"
	"github.com/casewise/case-management-api/internal/core/domain"
	"github.com/casewise/case-management-api/internal/core/ports"
)

// CaseNoteHandler exposes note creation and per-client listing.
type CaseNoteHandler struct {
	noteService ports.CaseNoteService
}

func NewCaseNoteHandler(noteService ports.CaseNoteService) *CaseNoteHandler {
	return &CaseNoteHandler{noteService: noteService}
}

type createCaseNoteRequest struct {
	ClientID        string `json:"client_id" validate:"required"`
	Content         string `json:"content"   validate:"required"`
	InteractionType string `json:"interaction_type"`
}

type createCaseNoteResponse struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
	Success   bool   `json:"success"`
}

type caseNotesListResponse struct {
	CaseNotes []ports.CaseNoteItem `json:"case_notes"`
}

// Create handles POST /case-notes. Only the assigned caseworker may
// create a note; a missing client and someone else's client produce the
// same 404.
//
// @Summary      Create a case note
// @Tags         case-notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCaseNoteRequest  true  "Note details"
// @Success      200   {object}  createCaseNoteResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /case-notes [post]
func (h *CaseNoteHandler) Create(c echo.Context) error {
	var req createCaseNoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	if req.InteractionType == "" {
		req.InteractionType = string(domain.InteractionOther)
	}

	user, err := currentUser(c)
	if err != nil {
		return err
	}

	created, err := h.noteService.Create(c.Request().Context(), user, ports.CreateCaseNoteInput{
		ClientID:        req.ClientID,
		Content:         req.Content,
		InteractionType: domain.InteractionType(req.InteractionType),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInteractionType):
			return c.JSON(http.StatusBadRequest, errorResponse{
				Error: "Invalid interaction type. Must be one of: " + domain.InteractionTypeList(),
			})
		case errors.Is(err, domain.ErrClientNotFound):
			return c.JSON(http.StatusNotFound, errorResponse{Error: domain.ErrClientNotFound.Error()})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}

	metrics.NotesCreatedTotal.WithLabelValues(req.InteractionType).Inc()
	return c.JSON(http.StatusOK, createCaseNoteResponse{
		ID:        created.ID,
		CreatedAt: created.CreatedAt.Format(time.RFC3339),
		Success:   true,
	})
}

// ListByClient handles GET /case-notes/client/:client_id, newest first.
//
// @Summary      List case notes for a client
// @Tags         case-notes
// @Produce      json
// @Security     BearerAuth
// @Param        client_id  path      string  true  "Client record id"
// @Success      200        {object}  caseNotesListResponse
// @Failure      404        {object}  errorResponse
// @Router       /case-notes/client/{client_id} [get]
func (h *CaseNoteHandler) ListByClient(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	notes, err := h.noteService.ListForClient(c.Request().Context(), user, c.Param("client_id"))
	if err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: domain.ErrClientNotFound.Error()})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}

	return c.JSON(http.StatusOK, caseNotesListResponse{CaseNotes: notes})
}
