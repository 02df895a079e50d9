// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	_ "modernc.org/sqlite"

	"github.com/ensofolio/enso/internal/store"
	"github.com/ensofolio/enso/internal/token"
)

// testDB creates an in-memory SQLite database with the content tables.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	schema := `
		PRAGMA foreign_keys = ON;

		CREATE TABLE admin (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE blogs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE,
			excerpt TEXT,
			content TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'draft',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE work_histories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			period TEXT NOT NULL,
			company TEXT NOT NULL,
			role TEXT NOT NULL,
			skills TEXT NOT NULL DEFAULT '[]',
			description TEXT NOT NULL,
			achievements TEXT NOT NULL DEFAULT '[]',
			display_order INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE contact_links (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			label TEXT NOT NULL,
			href TEXT NOT NULL,
			display_order INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

// testSetup creates a test database, token service and API handler.
func testSetup(t *testing.T) (*sql.DB, *Handler, *token.Service) {
	t.Helper()
	db := testDB(t)
	tokens := token.NewService([]byte(strings.Repeat("s", 32)), true)
	return db, NewHandler(db, tokens), tokens
}

// createTestBlog inserts a blog row directly.
func createTestBlog(t *testing.T, db *sql.DB, slug, status string) int64 {
	t.Helper()
	now := time.Now()

	result, err := db.Exec(
		`INSERT INTO blogs (title, slug, content, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		"Post "+slug, slug, "# Content", status, now, now,
	)
	if err != nil {
		t.Fatalf("failed to create test blog: %v", err)
	}
	id, _ := result.LastInsertId()
	return id
}

// createTestWorkHistory inserts a work history row through the store so
// skills/achievements are encoded consistently.
func createTestWorkHistory(t *testing.T, db *sql.DB, company string, displayOrder int64) int64 {
	t.Helper()
	now := time.Now()

	entry, err := store.New(db).CreateWorkHistory(context.Background(), store.CreateWorkHistoryParams{
		Period:       "2020 - 2024",
		Company:      company,
		Role:         "Engineer",
		Skills:       []string{"Go"},
		Description:  "Work.",
		DisplayOrder: displayOrder,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("failed to create test work history: %v", err)
	}
	return entry.ID
}

// createTestContactLink inserts a contact link row directly.
func createTestContactLink(t *testing.T, db *sql.DB, label, href string) int64 {
	t.Helper()
	now := time.Now()

	result, err := db.Exec(
		`INSERT INTO contact_links (label, href, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		label, href, now, now,
	)
	if err != nil {
		t.Fatalf("failed to create test contact link: %v", err)
	}
	id, _ := result.LastInsertId()
	return id
}

// requestWithURLParams adds chi URL parameters to a request.
func requestWithURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// newJSONRequest creates an HTTP request with JSON body and optional URL params.
func newJSONRequest(t *testing.T, method, path string, body string, params map[string]string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if len(params) > 0 {
		req = requestWithURLParams(req, params)
	}
	return req
}

// newGetRequest creates an HTTP GET request with optional URL params.
func newGetRequest(t *testing.T, path string, params map[string]string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if len(params) > 0 {
		req = requestWithURLParams(req, params)
	}
	return req
}

// newDeleteRequest creates an HTTP DELETE request with optional URL params.
func newDeleteRequest(t *testing.T, path string, params map[string]string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodDelete, path, nil)
	if len(params) > 0 {
		req = requestWithURLParams(req, params)
	}
	return req
}

// decodeBody decodes a JSON response body into a generic map.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}
	return body
}

// fieldErrors extracts the fields map from a 422 response body.
func fieldErrors(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	fields, ok := body["fields"].(map[string]any)
	if !ok {
		t.Fatalf("response has no fields map: %v", body)
	}
	return fields
}
