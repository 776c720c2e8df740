// Copyright 2025 M'Cube Collections
// Licensed under the EUPL-1.2

// Package server assembles the application and runs the HTTP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/urfave/cli/v3"

	"github.com/mcubecollections/selfie-verification/internal/assets"
	"github.com/mcubecollections/selfie-verification/internal/config"
	"github.com/mcubecollections/selfie-verification/internal/database"
	"github.com/mcubecollections/selfie-verification/internal/handlers"
	"github.com/mcubecollections/selfie-verification/internal/report"
	"github.com/mcubecollections/selfie-verification/internal/repository"
	"github.com/mcubecollections/selfie-verification/internal/services/auth"
	"github.com/mcubecollections/selfie-verification/internal/services/email"
	"github.com/mcubecollections/selfie-verification/internal/services/session"
	"github.com/mcubecollections/selfie-verification/internal/verifier"
	"github.com/mcubecollections/selfie-verification/internal/views"
)

// Run starts the server with the given CLI command.
func Run(ctx context.Context, cmd *cli.Command) error {
	cfg := config.NewFromCLI(cmd)
	setupLogger(cfg.Log.Level, cfg.Log.Format, cfg.IsProduction())

	slog.Info("starting server",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"base_url", cfg.Server.BaseURL,
		"environment", cfg.Environment,
	)

	// Database
	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("failed to close database", "error", closeErr)
		}
	}()

	repo := repository.New(db)

	// Services
	authSvc := auth.NewService(repo, cfg.Admin)
	if err := authSvc.EnsureAdmin(ctx); err != nil {
		return fmt.Errorf("failed to ensure admin account: %w", err)
	}

	sessions, err := session.NewManager(cfg.Session, cfg.IsProduction())
	if err != nil {
		return fmt.Errorf("failed to create session manager: %w", err)
	}

	client := verifier.New(cfg.Provider, cfg.IsProduction())
	if !cfg.Provider.Configured() && !cfg.IsProduction() {
		slog.Warn("verification provider is not configured; running in mock mode")
	}

	var uploader handlers.Uploader
	if cfg.Cloudinary.Configured() {
		cld, cldErr := assets.NewCloudinary(cfg.Cloudinary)
		if cldErr != nil {
			return fmt.Errorf("failed to create asset uploader: %w", cldErr)
		}
		uploader = cld
	} else {
		slog.Warn("asset host is not configured; selfies will not be stored")
	}

	notifier := email.NewService(cfg.SMTP, cfg.Notify.Recipients)
	reports := report.NewGenerator(assets.NewHTTPFetcher())

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler

	setupMiddleware(e, cfg)
	setupRoutes(e, repo, client, uploader, notifier, reports, authSvc, sessions, cfg)

	return startWithGracefulShutdown(e, cfg)
}

func setupRoutes(
	e *echo.Echo,
	repo *repository.Repository,
	client *verifier.Client,
	uploader handlers.Uploader,
	notifier handlers.Notifier,
	reports *report.Generator,
	authSvc *auth.Service,
	sessions *session.Manager,
	cfg *config.Config,
) {
	v := handlers.NewVerification(repo, client, uploader, notifier, cfg)
	a := handlers.NewAdmin(repo, authSvc, sessions, reports)

	e.GET("/health", v.Health)
	e.GET("/", v.Landing)
	e.GET("/verify", v.StartPage)
	e.POST("/verify/begin", v.Begin)
	e.GET("/verify/progress", v.ProgressPage)
	e.GET("/verify/result", v.ResultPage)
	e.GET("/status/:sessionId", v.Status)
	e.POST("/webhooks/selfie", v.Webhook)

	e.GET("/admin/login", a.LoginPage)
	e.POST("/admin/login", a.Login)
	e.GET("/admin/logout", a.Logout)

	admin := e.Group("/admin", requireAdmin(sessions))
	admin.GET("/dashboard", a.Dashboard)
	admin.GET("/search", a.Search)
	admin.GET("/verification/:sessionId", a.Detail)
	admin.GET("/verification/:sessionId/download", a.Download)
}

// errorHandler renders HTML error pages for browser routes and keeps the
// JSON shape for API routes.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
	}

	if code >= http.StatusInternalServerError {
		slog.Error("request failed", "uri", c.Request().RequestURI, "error", err)
	}

	if wantsJSON(c) {
		_ = c.JSON(code, map[string]string{"error": http.StatusText(code)})
		return
	}

	if code == http.StatusNotFound {
		_ = handlers.Render(c, code, views.NotFoundPage())
		return
	}
	_ = handlers.Render(c, code, views.ErrorPage("An unexpected error occurred. Please try again."))
}

func wantsJSON(c echo.Context) bool {
	path := c.Request().URL.Path
	return path == "/health" ||
		strings.HasPrefix(path, "/status/") ||
		strings.HasPrefix(path, "/webhooks/")
}

func startWithGracefulShutdown(e *echo.Echo, cfg *config.Config) error {
	errChan := make(chan error, 1)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		slog.Info("Server running", "url", cfg.Server.BaseURL)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		slog.Info("shutting down server")
	case err := <-errChan:
		slog.Error("server error", "error", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shutdown server", "error", err)
	}

	slog.Info("server stopped")
	return nil
}
