package entries

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell-journal/inkwell/internal/apperror"
	"github.com/inkwell-journal/inkwell/internal/plugins/auth"
)

// Handler handles HTTP requests for entries. Handlers are thin: they bind
// the request, call the service, and render the response.
type Handler struct {
	service EntryService
}

// NewHandler creates a new entries handler with the given service.
func NewHandler(service EntryService) *Handler {
	return &Handler{service: service}
}

// List returns the caller's entries (GET /api/entries).
// Supports ?q= (search), ?tag=, and ?favorite=1 filters.
func (h *Handler) List(c echo.Context) error {
	filter := ListFilter{
		Search:        c.QueryParam("q"),
		Tag:           c.QueryParam("tag"),
		FavoritesOnly: c.QueryParam("favorite") == "1" || c.QueryParam("favorite") == "true",
	}

	entries, err := h.service.List(c.Request().Context(), auth.GetUserID(c), filter)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []Entry{}
	}

	return c.JSON(http.StatusOK, entries)
}

// Create creates a new entry (POST /api/entries).
func (h *Handler) Create(c echo.Context) error {
	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	entry, err := h.service.Create(c.Request().Context(), auth.GetUserID(c), CreateInput{
		Title:    req.Title,
		Body:     req.Body,
		Mood:     req.Mood,
		Tags:     req.Tags,
		FolderID: req.FolderID,
		Favorite: req.Favorite,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, entry)
}

// Get returns a single entry (GET /api/entries/:id).
func (h *Handler) Get(c echo.Context) error {
	entry, err := h.service.Get(c.Request().Context(), c.Param("id"), auth.GetUserID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, entry)
}

// Update applies a partial update (PUT /api/entries/:id).
func (h *Handler) Update(c echo.Context) error {
	var req UpdateRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	entry, err := h.service.Update(c.Request().Context(), c.Param("id"), auth.GetUserID(c), UpdateInput{
		Title:    req.Title,
		Body:     req.Body,
		Mood:     req.Mood,
		Tags:     req.Tags,
		FolderID: req.FolderID,
		Favorite: req.Favorite,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, entry)
}

// Delete removes an entry (DELETE /api/entries/:id).
func (h *Handler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id"), auth.GetUserID(c)); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// ToggleFavorite inverts the favorite flag (POST /api/entries/:id/favorite).
func (h *Handler) ToggleFavorite(c echo.Context) error {
	entry, err := h.service.ToggleFavorite(c.Request().Context(), c.Param("id"), auth.GetUserID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, entry)
}
