// Package app is the application bootstrap and dependency injection root.
// It creates and holds all shared infrastructure (DB pool, Redis client,
// Echo instance) and wires together all plugins.
package app

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/inkwell-journal/inkwell/internal/aiclient"
	"github.com/inkwell-journal/inkwell/internal/apperror"
	"github.com/inkwell-journal/inkwell/internal/config"
	"github.com/inkwell-journal/inkwell/internal/middleware"
	"github.com/inkwell-journal/inkwell/internal/plugins/auth"
	"github.com/inkwell-journal/inkwell/internal/plugins/entries"
	"github.com/inkwell-journal/inkwell/internal/plugins/feedback"
	"github.com/inkwell-journal/inkwell/internal/plugins/folders"
)

// App holds all shared dependencies and the Echo HTTP server instance.
// Created once at startup in main.go and used to register all routes.
type App struct {
	// Config holds the loaded application configuration.
	Config *config.Config

	// DB is the MariaDB connection pool shared by all plugins.
	DB *sql.DB

	// Redis is the Redis client shared for sessions and folder unlocks.
	Redis *redis.Client

	// Echo is the HTTP server instance.
	Echo *echo.Echo

	// Services wired at construction, shared across route registration.
	authService   auth.AuthService
	entryService  entries.EntryService
	folderService folders.FolderService
}

// New creates a new App instance with the given dependencies, configures
// the Echo server with global middleware and error handling, and wires the
// plugin services together.
func New(cfg *config.Config, db *sql.DB, rdb *redis.Client) *App {
	e := echo.New()

	// Disable Echo's default banner and startup message -- we log our own.
	e.HideBanner = true
	e.HidePort = true

	// Configure trusted reverse proxy IPs so c.RealIP() returns the actual
	// client IP instead of the proxy's IP. Needed for rate limiting and
	// request logging behind Docker networks.
	middleware.TrustedProxies(e, []string{
		"127.0.0.0/8",    // Localhost
		"10.0.0.0/8",     // Docker default bridge
		"172.16.0.0/12",  // Docker bridge (alternate range)
		"192.168.0.0/16", // Common LAN
		"fd00::/8",       // IPv6 private
	})

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		Echo:   e,
	}

	app.setupMiddleware()
	app.setupServices()

	// Register the custom error handler that maps AppErrors to HTTP responses.
	e.HTTPErrorHandler = app.errorHandler

	return app
}

// setupMiddleware registers global middleware on the Echo instance.
// Order matters: outermost (recovery) runs first.
func (a *App) setupMiddleware() {
	// Panic recovery -- must be outermost to catch panics from all other middleware.
	a.Echo.Use(middleware.Recovery())

	// Request logging -- log every request with method, path, status, latency.
	a.Echo.Use(middleware.RequestLogger())

	// Security headers -- CSP, X-Frame-Options, X-Content-Type-Options, etc.
	a.Echo.Use(middleware.SecurityHeaders())

	// CORS -- allow the configured front-end origin with credentials.
	a.Echo.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:   []string{a.Config.BaseURL},
		AllowCredentials: true,
	}))
}

// setupServices builds the repository and service graph shared by all
// route registrations.
func (a *App) setupServices() {
	userRepo := auth.NewUserRepository(a.DB)
	a.authService = auth.NewAuthService(userRepo, a.Redis, a.Config.Auth.SessionTTL)

	folderRepo := folders.NewFolderRepository(a.DB)
	entryRepo := entries.NewEntryRepository(a.DB)
	a.entryService = entries.NewEntryService(entryRepo, folderRepo)

	// Folder unlocks share the session TTL so they never outlive the session.
	a.folderService = folders.NewFolderService(folderRepo, a.entryService, a.Redis, a.Config.Auth.SessionTTL)
}

// feedbackGenerator builds the AI client, or nil when no API key is
// configured (feedback requests then fail with a clean upstream error).
func (a *App) feedbackGenerator() feedback.Generator {
	if !a.Config.FeedbackEnabled() {
		slog.Warn("AI feedback disabled: no API key configured")
		return nil
	}
	return aiclient.New(
		a.Config.AI.BaseURL,
		a.Config.AI.APIKey,
		a.Config.AI.Model,
		a.Config.AI.MaxTokens,
		a.Config.AI.Timeout,
	)
}

// errorHandler is the custom Echo error handler. It maps domain errors
// (AppError) to JSON responses, logs internal causes, and never leaks
// infrastructure errors to the client.
func (a *App) errorHandler(err error, c echo.Context) {
	// Don't double-write if response is already committed.
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	errType := "internal_error"
	message := "An unexpected error occurred"

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		code = appErr.Code
		errType = appErr.Type
		message = appErr.Message

		// Log internal errors with the underlying cause.
		if appErr.Internal != nil {
			slog.Error("internal error",
				slog.String("type", appErr.Type),
				slog.String("message", appErr.Message),
				slog.Any("internal", appErr.Internal),
				slog.String("path", c.Request().URL.Path),
			)
		}
	} else {
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			// Echo's built-in errors (e.g., 404 from the router).
			code = echoErr.Code
			errType = "http_error"
			if msg, ok := echoErr.Message.(string); ok {
				message = msg
			} else {
				message = http.StatusText(code)
			}
		} else {
			// Truly unexpected error -- log it, respond generically.
			slog.Error("unhandled error",
				slog.Any("error", err),
				slog.String("path", c.Request().URL.Path),
			)
		}
	}

	c.JSON(code, map[string]string{
		"type":    errType,
		"message": message,
	})
}

// Start runs the HTTP server on the configured port. Blocks until the
// server stops.
func (a *App) Start() error {
	addr := fmt.Sprintf(":%d", a.Config.Port)
	slog.Info("starting Inkwell server",
		slog.String("addr", addr),
		slog.String("env", a.Config.Env),
	)
	return a.Echo.Start(addr)
}
