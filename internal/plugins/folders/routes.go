package folders

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/inkwell-journal/inkwell/internal/middleware"
)

// RegisterRoutes sets up folder routes on the given group. The group is
// expected to carry the auth middleware already. Unlock attempts are rate
// limited since there is no lockout on wrong passphrases.
func RegisterRoutes(g *echo.Group, h *Handler) {
	g.GET("/folders", h.List)
	g.POST("/folders", h.Create)
	g.PUT("/folders/:id", h.Update)
	g.DELETE("/folders/:id", h.Delete)
	g.POST("/folders/:id/unlock", h.Unlock, middleware.RateLimit(10, time.Minute))
	g.GET("/folders/:id/entries", h.ListEntries)
}
