package stats

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up the stats route on the given group. The group is
// expected to carry the auth middleware already.
func RegisterRoutes(g *echo.Group, h *Handler) {
	g.GET("/stats", h.Get)
}
