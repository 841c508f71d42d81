package feedback

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/inkwell-journal/inkwell/internal/middleware"
)

// RegisterRoutes sets up the feedback route on the given group. The group
// is expected to carry the auth middleware already. Generation is rate
// limited since each request costs two upstream AI calls.
func RegisterRoutes(g *echo.Group, h *Handler) {
	g.POST("/entries/:id/feedback", h.Generate, middleware.RateLimit(5, time.Minute))
}
