package app

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell-journal/inkwell/internal/plugins/auth"
	"github.com/inkwell-journal/inkwell/internal/plugins/entries"
	"github.com/inkwell-journal/inkwell/internal/plugins/feedback"
	"github.com/inkwell-journal/inkwell/internal/plugins/folders"
	"github.com/inkwell-journal/inkwell/internal/plugins/stats"
)

// RegisterRoutes sets up all application routes. It registers public routes
// directly and delegates to each plugin's route registration function.
//
// This is the single place where all routes are aggregated. When a new
// plugin is added, its routes are registered here.
func (a *App) RegisterRoutes() {
	e := a.Echo

	// --- Public Routes (no auth required) ---

	// Health check endpoint for container health monitoring.
	e.GET("/healthz", a.healthz)

	// Auth plugin: register, login, logout.
	auth.RegisterRoutes(e, auth.NewHandler(a.authService))

	// --- API Routes (session required) ---

	api := e.Group("/api", auth.RequireAuth(a.authService))

	entries.RegisterRoutes(api, entries.NewHandler(a.entryService))
	folders.RegisterRoutes(api, folders.NewHandler(a.folderService))
	stats.RegisterRoutes(api, stats.NewHandler(a.entryService))

	feedbackSvc := feedback.NewFeedbackService(a.entryService, a.feedbackGenerator())
	feedback.RegisterRoutes(api, feedback.NewHandler(feedbackSvc))
}

// healthz reports liveness including DB and Redis connectivity.
func (a *App) healthz(c echo.Context) error {
	ctx := c.Request().Context()

	if err := a.DB.PingContext(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "degraded", "database": "down",
		})
	}
	if err := a.Redis.Ping(ctx).Err(); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "degraded", "redis": "down",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
