// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication and
// request context handling.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ensofolio/enso/internal/logging"
	"github.com/ensofolio/enso/internal/token"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeySubject is the context key for the authenticated admin.
const ContextKeySubject ContextKey = "subject"

// Auth creates middleware that requires a valid auth cookie. Requests
// without one get a 401 JSON envelope and the stale cookie is cleared.
// On success the token subject is stored in the request context.
func Auth(tokens *token.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := token.FromRequest(r)
			if raw == "" {
				writeUnauthorized(w)
				return
			}

			subject, err := tokens.Verify(raw)
			if err != nil {
				tokens.ClearCookie(w)
				writeUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeySubject, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSubject returns the authenticated admin from the request context.
// The second return value is false outside of Auth-protected routes.
func GetSubject(ctx context.Context) (token.Subject, bool) {
	subject, ok := ctx.Value(ContextKeySubject).(token.Subject)
	return subject, ok
}

// RequestPath stores the request path in the context so audit events
// written further down the stack can record their origin.
func RequestPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logging.WithRequestPath(r.Context(), r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   "Unauthorized",
	})
}
