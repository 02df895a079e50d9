// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ensofolio/enso/internal/logging"
	"github.com/ensofolio/enso/internal/token"
)

func testTokenService(t *testing.T) *token.Service {
	t.Helper()
	return token.NewService([]byte(strings.Repeat("k", 32)), true)
}

func TestAuthMissingCookie(t *testing.T) {
	tokens := testTokenService(t)

	handler := Auth(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/blogs", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}

	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
	if body["error"] == "" {
		t.Error("error message missing")
	}
}

func TestAuthInvalidTokenClearsCookie(t *testing.T) {
	tokens := testTokenService(t)

	handler := Auth(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/blogs", nil)
	req.AddCookie(&http.Cookie{Name: token.CookieName, Value: "garbage"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}

	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == token.CookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("expected an expired cookie clearing the stale token")
	}
}

func TestAuthValidToken(t *testing.T) {
	tokens := testTokenService(t)

	raw, err := tokens.Issue(token.Subject{ID: 1, Email: "admin@example.com"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	var got token.Subject
	handler := Auth(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, ok := GetSubject(r.Context())
		if !ok {
			t.Error("subject missing from context")
		}
		got = subject
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/blogs", nil)
	req.AddCookie(&http.Cookie{Name: token.CookieName, Value: raw})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if got.ID != 1 || got.Email != "admin@example.com" {
		t.Errorf("subject = %+v", got)
	}
}

func TestGetSubjectOutsideAuth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := GetSubject(req.Context()); ok {
		t.Error("GetSubject should report false without Auth middleware")
	}
}

func TestRequestPath(t *testing.T) {
	var got string
	handler := RequestPath(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = logging.RequestPath(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/login", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got != "/api/auth/login" {
		t.Errorf("path = %q, want /api/auth/login", got)
	}
}
