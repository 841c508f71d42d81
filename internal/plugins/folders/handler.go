package folders

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell-journal/inkwell/internal/apperror"
	"github.com/inkwell-journal/inkwell/internal/plugins/auth"
	"github.com/inkwell-journal/inkwell/internal/plugins/entries"
)

// Handler handles HTTP requests for folders.
type Handler struct {
	service FolderService
}

// NewHandler creates a new folders handler with the given service.
func NewHandler(service FolderService) *Handler {
	return &Handler{service: service}
}

// List returns the caller's folders with entry counts (GET /api/folders).
func (h *Handler) List(c echo.Context) error {
	folders, err := h.service.List(c.Request().Context(), auth.GetUserID(c))
	if err != nil {
		return err
	}
	if folders == nil {
		folders = []Folder{}
	}

	return c.JSON(http.StatusOK, folders)
}

// Create creates a new folder (POST /api/folders).
func (h *Handler) Create(c echo.Context) error {
	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	folder, err := h.service.Create(c.Request().Context(), auth.GetUserID(c), CreateInput{
		Name:        req.Name,
		Description: req.Description,
		Protected:   req.Protected,
		Passphrase:  req.Passphrase,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, folder)
}

// Update renames or re-describes a folder (PUT /api/folders/:id).
func (h *Handler) Update(c echo.Context) error {
	var req UpdateRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	folder, err := h.service.Update(c.Request().Context(), c.Param("id"), auth.GetUserID(c), UpdateInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, folder)
}

// Delete removes a folder, keeping its entries (DELETE /api/folders/:id).
func (h *Handler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id"), auth.GetUserID(c)); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// Unlock verifies a passphrase and opens the folder for this session
// (POST /api/folders/:id/unlock).
func (h *Handler) Unlock(c echo.Context) error {
	var req UnlockRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request")
	}

	err := h.service.Unlock(c.Request().Context(),
		c.Param("id"), auth.GetUserID(c), auth.GetSessionToken(c), req.Passphrase)
	if err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// ListEntries returns a folder's entries, requiring a prior unlock for
// protected folders (GET /api/folders/:id/entries).
func (h *Handler) ListEntries(c echo.Context) error {
	list, err := h.service.ListEntries(c.Request().Context(),
		c.Param("id"), auth.GetUserID(c), auth.GetSessionToken(c))
	if err != nil {
		return err
	}
	if list == nil {
		list = []entries.Entry{}
	}

	return c.JSON(http.StatusOK, list)
}
