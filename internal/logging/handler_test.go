// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/ensofolio/enso/internal/model"
	"github.com/ensofolio/enso/internal/store"
)

// testDB creates a temporary test database with migrations applied.
func testDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	f, err := os.CreateTemp("", "enso-logging-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	_ = f.Close()

	db, err := store.NewDB(dbPath)
	if err != nil {
		_ = os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}

	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		_ = os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	cleanup := func() {
		_ = db.Close()
		_ = os.Remove(dbPath)
	}

	return db, cleanup
}

// discardHandler is a slog.Handler that discards all logs.
type discardHandler struct{}

func (h discardHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (h discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return h }
func (h discardHandler) WithGroup(string) slog.Handler             { return h }

func recentEvents(t *testing.T, db *sql.DB) []model.Event {
	t.Helper()
	events, err := store.New(db).ListRecentEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	return events
}

func TestEventLogHandlerErrorLevel(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	logger := slog.New(NewEventLogHandler(discardHandler{}, db))
	logger.Error("database connection failed", "host", "localhost")

	events := recentEvents(t, db)
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	e := events[0]
	if e.Level != model.EventLevelError {
		t.Errorf("Level = %q, want error", e.Level)
	}
	if e.Message != "database connection failed" {
		t.Errorf("Message = %q", e.Message)
	}
	if !strings.Contains(e.Metadata, `"host":"localhost"`) {
		t.Errorf("Metadata = %q, want host attr", e.Metadata)
	}
}

func TestEventLogHandlerInfoNotForwarded(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	logger := slog.New(NewEventLogHandler(discardHandler{}, db))
	logger.Info("server started")

	if events := recentEvents(t, db); len(events) != 0 {
		t.Errorf("info record reached the event log: %+v", events)
	}
}

func TestEventLogHandlerCategory(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	logger := slog.New(NewEventLogHandler(discardHandler{}, db))

	// Explicit category wins
	logger.Warn("something odd", "category", model.EventCategoryBlog)
	// Inferred from message
	logger.Warn("login failed for unknown account")

	events := recentEvents(t, db)
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	// Newest first
	if events[1].Category != model.EventCategoryBlog {
		t.Errorf("explicit category = %q, want blog", events[1].Category)
	}
	if events[0].Category != model.EventCategoryAuth {
		t.Errorf("inferred category = %q, want auth", events[0].Category)
	}
}

func TestEventLogHandlerRequestPath(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	logger := slog.New(NewEventLogHandler(discardHandler{}, db))
	ctx := WithRequestPath(context.Background(), "/api/auth/login")
	logger.WarnContext(ctx, "login failed")

	events := recentEvents(t, db)
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	if events[0].Path != "/api/auth/login" {
		t.Errorf("Path = %q, want /api/auth/login", events[0].Path)
	}
}

func TestEventLogHandlerAdminID(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	logger := slog.New(NewEventLogHandler(discardHandler{}, db))
	logger.Warn("blog updated", "admin_id", int64(7))

	events := recentEvents(t, db)
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	if !events[0].AdminID.Valid || events[0].AdminID.Int64 != 7 {
		t.Errorf("AdminID = %+v, want 7", events[0].AdminID)
	}
}
