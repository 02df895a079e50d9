// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ensofolio/enso/internal/auth"
	"github.com/ensofolio/enso/internal/middleware"
	"github.com/ensofolio/enso/internal/model"
	"github.com/ensofolio/enso/internal/store"
	"github.com/ensofolio/enso/internal/token"
)

// invalidCredentialsMsg is returned for both unknown email and wrong
// password. The two cases must be indistinguishable to the caller.
const invalidCredentialsMsg = "Invalid email or password"

// LoginRequest is the request body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		WriteError(w, http.StatusUnauthorized, invalidCredentialsMsg)
		return
	}

	admin, err := h.verifyCredentials(r, req.Email, req.Password)
	if err != nil {
		slog.WarnContext(r.Context(), "login failed",
			"category", model.EventCategoryAuth, "email", req.Email)
		WriteError(w, http.StatusUnauthorized, invalidCredentialsMsg)
		return
	}

	tokenString, err := h.tokens.Issue(token.Subject{ID: admin.ID, Email: admin.Email})
	if err != nil {
		slog.ErrorContext(r.Context(), "issuing token", "error", err)
		WriteInternalError(w)
		return
	}

	h.tokens.SetCookie(w, tokenString)
	slog.InfoContext(r.Context(), "login succeeded", "admin_id", admin.ID)
	WriteSuccess(w, http.StatusOK, nil)
}

// verifyCredentials looks up the admin and checks the password. Unknown
// email and wrong password both return a single generic error.
func (h *Handler) verifyCredentials(r *http.Request, email, password string) (model.Admin, error) {
	admin, err := h.queries.GetAdminByEmail(r.Context(), email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return model.Admin{}, err
		}
		// Burn comparable time on unknown email so timing does not
		// reveal whether the account exists.
		_, _ = auth.CheckPassword(password, auth.DummyHash)
		return model.Admin{}, errors.New("unknown email")
	}

	ok, err := auth.CheckPassword(password, admin.PasswordHash)
	if err != nil || !ok {
		return model.Admin{}, errors.New("wrong password")
	}
	return admin, nil
}

// Logout handles GET /api/auth/logout. Clears the session cookie and sends
// the browser back to the public site.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if subject, ok := verifySubject(h.tokens, r); ok {
		slog.InfoContext(r.Context(), "logout", "admin_id", subject.ID)
	}
	h.tokens.ClearCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Me handles GET /api/auth/me. Reports the current session state without
// requiring the auth middleware: an invalid or absent token yields a 401
// and clears any stale cookie.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	subject, ok := verifySubject(h.tokens, r)
	if !ok {
		h.tokens.ClearCookie(w)
		WriteJSON(w, http.StatusUnauthorized, map[string]any{
			"authenticated": false,
		})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user": map[string]any{
			"id":    subject.ID,
			"email": subject.Email,
		},
	})
}

// verifySubject resolves the request's subject either from the auth
// middleware context or directly from the cookie.
func verifySubject(tokens *token.Service, r *http.Request) (token.Subject, bool) {
	if subject, ok := middleware.GetSubject(r.Context()); ok {
		return subject, true
	}
	raw := token.FromRequest(r)
	if raw == "" {
		return token.Subject{}, false
	}
	subject, err := tokens.Verify(raw)
	if err != nil {
		return token.Subject{}, false
	}
	return subject, true
}
