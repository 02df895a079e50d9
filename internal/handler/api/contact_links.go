// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ensofolio/enso/internal/store"
)

// validHref reports whether href parses as an absolute URL.
func validHref(href string) bool {
	u, err := url.ParseRequestURI(href)
	return err == nil && u.Scheme != ""
}

// CreateContactLinkRequest is the request body for POST /api/contact-links.
type CreateContactLinkRequest struct {
	Label        string `json:"label"`
	Href         string `json:"href"`
	DisplayOrder *int64 `json:"displayOrder,omitempty"`
}

func (req *CreateContactLinkRequest) validate() map[string]string {
	fields := make(map[string]string)
	if strings.TrimSpace(req.Label) == "" {
		fields["label"] = "Label is required"
	}
	if req.Href == "" {
		fields["href"] = "Href is required"
	} else if !validHref(req.Href) {
		fields["href"] = "Href must be a valid URL"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// UpdateContactLinkRequest is the request body for PUT /api/contact-links/{id}.
type UpdateContactLinkRequest struct {
	Label        *string `json:"label,omitempty"`
	Href         *string `json:"href,omitempty"`
	DisplayOrder *int64  `json:"displayOrder,omitempty"`
}

func (req *UpdateContactLinkRequest) validate() map[string]string {
	fields := make(map[string]string)
	if req.Label != nil && strings.TrimSpace(*req.Label) == "" {
		fields["label"] = "Label is required"
	}
	if req.Href != nil && !validHref(*req.Href) {
		fields["href"] = "Href must be a valid URL"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// ListContactLinks handles GET /api/contact-links. Public résumé data,
// ordered by display order.
func (h *Handler) ListContactLinks(w http.ResponseWriter, r *http.Request) {
	links, err := h.queries.ListContactLinks(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "listing contact links", "error", err)
		WriteInternalError(w)
		return
	}
	WriteSuccess(w, http.StatusOK, map[string]any{"contactLinks": links})
}

// GetContactLink handles GET /api/contact-links/{id}.
func (h *Handler) GetContactLink(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid contact link ID")
		return
	}

	link, err := h.queries.GetContactLinkByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			WriteNotFound(w, "Contact link not found")
			return
		}
		slog.ErrorContext(r.Context(), "getting contact link", "error", err, "id", id)
		WriteInternalError(w)
		return
	}
	WriteSuccess(w, http.StatusOK, map[string]any{"contactLink": link})
}

// CreateContactLink handles POST /api/contact-links.
func (h *Handler) CreateContactLink(w http.ResponseWriter, r *http.Request) {
	var req CreateContactLinkRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fields := req.validate(); fields != nil {
		WriteValidationError(w, fields)
		return
	}

	var displayOrder int64
	if req.DisplayOrder != nil {
		displayOrder = *req.DisplayOrder
	}

	now := time.Now()
	link, err := h.queries.CreateContactLink(r.Context(), store.CreateContactLinkParams{
		Label:        req.Label,
		Href:         req.Href,
		DisplayOrder: displayOrder,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		slog.ErrorContext(r.Context(), "creating contact link", "error", err)
		WriteInternalError(w)
		return
	}
	WriteSuccess(w, http.StatusCreated, map[string]any{"contactLink": link})
}

// UpdateContactLink handles PUT /api/contact-links/{id}.
func (h *Handler) UpdateContactLink(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid contact link ID")
		return
	}

	var req UpdateContactLinkRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fields := req.validate(); fields != nil {
		WriteValidationError(w, fields)
		return
	}

	current, err := h.queries.GetContactLinkByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			WriteNotFound(w, "Contact link not found")
			return
		}
		slog.ErrorContext(r.Context(), "getting contact link", "error", err, "id", id)
		WriteInternalError(w)
		return
	}

	params := store.UpdateContactLinkParams{
		ID:           id,
		Label:        current.Label,
		Href:         current.Href,
		DisplayOrder: current.DisplayOrder,
		UpdatedAt:    time.Now(),
	}
	if req.Label != nil {
		params.Label = *req.Label
	}
	if req.Href != nil {
		params.Href = *req.Href
	}
	if req.DisplayOrder != nil {
		params.DisplayOrder = *req.DisplayOrder
	}

	link, err := h.queries.UpdateContactLink(r.Context(), params)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			WriteNotFound(w, "Contact link not found")
			return
		}
		slog.ErrorContext(r.Context(), "updating contact link", "error", err, "id", id)
		WriteInternalError(w)
		return
	}
	WriteSuccess(w, http.StatusOK, map[string]any{"contactLink": link})
}

// DeleteContactLink handles DELETE /api/contact-links/{id}.
func (h *Handler) DeleteContactLink(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid contact link ID")
		return
	}

	if err := h.queries.DeleteContactLink(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			WriteNotFound(w, "Contact link not found")
			return
		}
		slog.ErrorContext(r.Context(), "deleting contact link", "error", err, "id", id)
		WriteInternalError(w)
		return
	}
	WriteSuccess(w, http.StatusOK, nil)
}
