package entries

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up entry routes on the given group. The group is
// expected to carry the auth middleware already.
func RegisterRoutes(g *echo.Group, h *Handler) {
	g.GET("/entries", h.List)
	g.POST("/entries", h.Create)
	g.GET("/entries/:id", h.Get)
	g.PUT("/entries/:id", h.Update)
	g.DELETE("/entries/:id", h.Delete)
	g.POST("/entries/:id/favorite", h.ToggleFavorite)
}
