package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"notely/internal/errors"
	"notely/internal/middleware"
	"notely/internal/model"
	"notely/internal/service"
)

// NoteHandler handles note CRUD endpoints.
type NoteHandler struct {
	noteService service.NoteService
}

// NewNoteHandler creates a new note handler.
func NewNoteHandler(noteService service.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

// CreateNoteRequest represents a note creation request.
type CreateNoteRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// UpdateNoteRequest represents a partial note update. Omitted or empty fields
// keep their stored values.
type UpdateNoteRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func currentUser(c echo.Context) (*model.User, error) {
	user, ok := c.Get(middleware.CurrentUserKey).(*model.User)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: errors.ErrInvalidToken.Error(),
			Code:  "INVALID_TOKEN",
		})
	}
	return user, nil
}

func noteID(c echo.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid note id")
	}
	return uint(id), nil
}

func noteError(err error) *echo.HTTPError {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// List godoc
// @Summary List notes visible to the caller
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Note
// @Failure 401 {object} errors.ErrorResponse
// @Router /notes [get]
func (h *NoteHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	notes, err := h.noteService.List(c.Request().Context(), user)
	if err != nil {
		return noteError(err)
	}
	if notes == nil {
		notes = []model.Note{}
	}
	return c.JSON(http.StatusOK, notes)
}

// Create godoc
// @Summary Create a note owned by the caller
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateNoteRequest true "Note data"
// @Success 201 {object} model.Note
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /notes [post]
func (h *NoteHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req CreateNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	note, err := h.noteService.Create(c.Request().Context(), user, req.Title, req.Description)
	if err != nil {
		return noteError(err)
	}
	return c.JSON(http.StatusCreated, note)
}

// Get godoc
// @Summary Fetch a single note
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Note ID"
// @Success 200 {object} model.Note
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /notes/{id} [get]
func (h *NoteHandler) Get(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := noteID(c)
	if err != nil {
		return err
	}

	note, err := h.noteService.Get(c.Request().Context(), user, id)
	if err != nil {
		return noteError(err)
	}
	return c.JSON(http.StatusOK, note)
}

// Update godoc
// @Summary Update a note's title and/or description
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Note ID"
// @Param request body UpdateNoteRequest true "Fields to update"
// @Success 200 {object} model.Note
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /notes/{id} [put]
func (h *NoteHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := noteID(c)
	if err != nil {
		return err
	}

	var req UpdateNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	note, err := h.noteService.Update(c.Request().Context(), user, id, service.NoteUpdate{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return noteError(err)
	}
	return c.JSON(http.StatusOK, note)
}

// Delete godoc
// @Summary Delete a note
// @Tags notes
// @Security BearerAuth
// @Param id path int true "Note ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /notes/{id} [delete]
func (h *NoteHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := noteID(c)
	if err != nil {
		return err
	}

	if err := h.noteService.Delete(c.Request().Context(), user, id); err != nil {
		return noteError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
