package feedback

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell-journal/inkwell/internal/plugins/auth"
)

// Handler handles feedback generation requests.
type Handler struct {
	service FeedbackService
}

// NewHandler creates a new feedback handler with the given service.
func NewHandler(service FeedbackService) *Handler {
	return &Handler{service: service}
}

// Generate produces and persists both feedback variants for an entry
// (POST /api/entries/:id/feedback).
func (h *Handler) Generate(c echo.Context) error {
	pair, err := h.service.Generate(c.Request().Context(), c.Param("id"), auth.GetUserID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, pair)
}
