// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/ensofolio/enso/internal/config"
	"github.com/ensofolio/enso/internal/handler"
	"github.com/ensofolio/enso/internal/handler/api"
	"github.com/ensofolio/enso/internal/logging"
	"github.com/ensofolio/enso/internal/middleware"
	"github.com/ensofolio/enso/internal/store"
	"github.com/ensofolio/enso/internal/token"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

// eventRetentionDays bounds how long audit events are kept.
const eventRetentionDays = 90

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "enso - personal blog and resume site\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ENSO_TOKEN_SECRET      Session token signing key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ENSO_DB_PATH           SQLite database path (default: ./data/enso.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ENSO_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ENSO_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ENSO_ADMIN_EMAIL       Admin account email (provisioned at boot)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  ENSO_ADMIN_PASSWORD    Admin account password (provisioned at boot)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Printf("enso %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR records to the audit log
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)

	ctx := context.Background()
	if err := store.Seed(ctx, db, cfg); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}
	if err := store.SeedDemo(ctx, db); err != nil {
		return fmt.Errorf("seeding demo content: %w", err)
	}

	// Audit events older than the retention window are dropped at startup.
	cutoff := time.Now().AddDate(0, 0, -eventRetentionDays)
	if purged, err := store.New(db).PurgeEventsBefore(ctx, cutoff); err != nil {
		slog.Error("purging old audit events", "error", err)
	} else if purged > 0 {
		slog.Info("purged old audit events", "count", purged)
	}

	tokens := token.NewService([]byte(cfg.TokenSecret), cfg.IsDevelopment())

	apiHandler := api.NewHandler(db, tokens)
	frontend, err := handler.NewFrontend(db)
	if err != nil {
		return fmt.Errorf("initializing frontend: %w", err)
	}
	healthHandler := handler.NewHealthHandler(db)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestPath)

	r.Get("/health", healthHandler.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", apiHandler.Login)
		r.Get("/auth/logout", apiHandler.Logout)
		r.Get("/auth/me", apiHandler.Me)

		// Public resume reads
		r.Get("/work-histories", apiHandler.ListWorkHistories)
		r.Get("/contact-links", apiHandler.ListContactLinks)

		// Authenticated admin surface
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(tokens))

			r.Get("/blogs", apiHandler.ListBlogs)
			r.Post("/blogs", apiHandler.CreateBlog)
			r.Get("/blogs/{id}", apiHandler.GetBlog)
			r.Put("/blogs/{id}", apiHandler.UpdateBlog)

			r.Get("/work-histories/{id}", apiHandler.GetWorkHistory)
			r.Post("/work-histories", apiHandler.CreateWorkHistory)
			r.Put("/work-histories/{id}", apiHandler.UpdateWorkHistory)
			r.Delete("/work-histories/{id}", apiHandler.DeleteWorkHistory)

			r.Get("/contact-links/{id}", apiHandler.GetContactLink)
			r.Post("/contact-links", apiHandler.CreateContactLink)
			r.Put("/contact-links/{id}", apiHandler.UpdateContactLink)
			r.Delete("/contact-links/{id}", apiHandler.DeleteContactLink)
		})
	})

	r.Get("/", frontend.Home)
	r.Get("/blog", frontend.BlogList)
	r.Get("/blog/{slug}", frontend.BlogPost)
	r.NotFound(frontend.NotFound)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
