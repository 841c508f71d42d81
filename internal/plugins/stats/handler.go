package stats

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/inkwell-journal/inkwell/internal/plugins/auth"
	"github.com/inkwell-journal/inkwell/internal/plugins/entries"
)

// Handler serves derived statistics. Stats are computed on the fly from the
// caller's full entry list; there is no cached or persisted aggregate.
type Handler struct {
	entries entries.EntryService
}

// NewHandler creates a new stats handler reading entries from the given service.
func NewHandler(entrySvc entries.EntryService) *Handler {
	return &Handler{entries: entrySvc}
}

// Get returns the caller's writing statistics (GET /api/stats).
func (h *Handler) Get(c echo.Context) error {
	list, err := h.entries.List(c.Request().Context(), auth.GetUserID(c), entries.ListFilter{})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, Compute(list, time.Now()))
}
