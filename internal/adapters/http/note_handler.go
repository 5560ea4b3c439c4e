package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/shiftdesk/core/internal/application/services"
	"github.com/shiftdesk/core/internal/domain/entities"
	"github.com/shiftdesk/core/internal/infrastructure/logger"
	"github.com/shiftdesk/core/internal/ports"
)

// NoteHandler handles handover note requests
type NoteHandler struct {
	noteService *services.NoteService
	logger      *logger.Logger
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(noteService *services.NoteService, logger *logger.Logger) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
		logger:      logger,
	}
}

// SetCompletedRequest toggles a note's completion state.
type SetCompletedRequest struct {
	Completed bool `json:"completed"`
}

// ListNotes returns the handover notes for a shift date; defaults to today.
func (h *NoteHandler) ListNotes(c echo.Context) error {
	date := c.QueryParam("date")
	if date == "" {
		date = entities.ISODate(time.Now())
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid date parameter, expected YYYY-MM-DD")
	}

	notes, err := h.noteService.ListNotesByDate(c.Request().Context(), date)
	if err != nil {
		h.logger.Errorw("List notes failed", "error", err, "date", date)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve notes")
	}

	return c.JSON(http.StatusOK, notes)
}

// GetNote returns a single handover note
func (h *NoteHandler) GetNote(c echo.Context) error {
	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid note ID")
	}

	note, err := h.noteService.GetNote(c.Request().Context(), noteID)
	if err != nil {
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, note)
}

// CreateNote posts a handover note
func (h *NoteHandler) CreateNote(c echo.Context) error {
	var req ports.CreateNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actor := actorFromContext(c)

	note, err := h.noteService.CreateNote(c.Request().Context(), req, actor.ID)
	if err != nil {
		h.logger.Errorw("Create note failed", "error", err)
		return mapDomainError(err)
	}

	return c.JSON(http.StatusCreated, note)
}

// UpdateNote edits a note's content or priority
func (h *NoteHandler) UpdateNote(c echo.Context) error {
	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid note ID")
	}

	var req ports.UpdateNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	note, err := h.noteService.UpdateNote(c.Request().Context(), noteID, req)
	if err != nil {
		h.logger.Errorw("Update note failed", "error", err, "note_id", noteID)
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, note)
}

// DeleteNote removes a handover note
func (h *NoteHandler) DeleteNote(c echo.Context) error {
	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid note ID")
	}

	if err := h.noteService.DeleteNote(c.Request().Context(), noteID); err != nil {
		h.logger.Errorw("Delete note failed", "error", err, "note_id", noteID)
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Note deleted"})
}

// SetCompleted toggles a note's completion state
func (h *NoteHandler) SetCompleted(c echo.Context) error {
	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid note ID")
	}

	var req SetCompletedRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	note, err := h.noteService.SetCompleted(c.Request().Context(), noteID, req.Completed)
	if err != nil {
		h.logger.Errorw("Set note completion failed", "error", err, "note_id", noteID)
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, note)
}
