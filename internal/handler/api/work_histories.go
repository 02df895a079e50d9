// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ensofolio/enso/internal/store"
)

// CreateWorkHistoryRequest is the request body for POST /api/work-histories.
type CreateWorkHistoryRequest struct {
	Period       string   `json:"period"`
	Company      string   `json:"company"`
	Role         string   `json:"role"`
	Skills       []string `json:"skills"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements,omitempty"`
	DisplayOrder *int64   `json:"displayOrder,omitempty"`
}

func (req *CreateWorkHistoryRequest) validate() map[string]string {
	fields := make(map[string]string)
	if strings.TrimSpace(req.Period) == "" {
		fields["period"] = "Period is required"
	}
	if strings.TrimSpace(req.Company) == "" {
		fields["company"] = "Company is required"
	}
	if strings.TrimSpace(req.Role) == "" {
		fields["role"] = "Role is required"
	}
	if len(req.Skills) == 0 {
		fields["skills"] = "At least one skill is required"
	}
	if strings.TrimSpace(req.Description) == "" {
		fields["description"] = "Description is required"
	}
	if req.DisplayOrder != nil && *req.DisplayOrder < 0 {
		fields["displayOrder"] = "Display order must be zero or greater"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// UpdateWorkHistoryRequest is the request body for PUT /api/work-histories/{id}.
// Omitted fields keep their current values.
type UpdateWorkHistoryRequest struct {
	Period       *string   `json:"period,omitempty"`
	Company      *string   `json:"company,omitempty"`
	Role         *string   `json:"role,omitempty"`
	Skills       *[]string `json:"skills,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Achievements *[]string `json:"achievements,omitempty"`
	DisplayOrder *int64    `json:"displayOrder,omitempty"`
}

func (req *UpdateWorkHistoryRequest) validate() map[string]string {
	fields := make(map[string]string)
	if req.Period != nil && strings.TrimSpace(*req.Period) == "" {
		fields["period"] = "Period is required"
	}
	if req.Company != nil && strings.TrimSpace(*req.Company) == "" {
		fields["company"] = "Company is required"
	}
	if req.Role != nil && strings.TrimSpace(*req.Role) == "" {
		fields["role"] = "Role is required"
	}
	if req.Skills != nil && len(*req.Skills) == 0 {
		fields["skills"] = "At least one skill is required"
	}
	if req.Description != nil && strings.TrimSpace(*req.Description) == "" {
		fields["description"] = "Description is required"
	}
	if req.DisplayOrder != nil && *req.DisplayOrder < 0 {
		fields["displayOrder"] = "Display order must be zero or greater"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// ListWorkHistories handles GET /api/work-histories. Public résumé data,
// ordered by display order.
func (h *Handler) ListWorkHistories(w http.ResponseWriter, r *http.Request) {
	entries, err := h.queries.ListWorkHistories(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "listing work histories", "error", err)
		WriteInternalError(w)
		return
	}
	WriteSuccess(w, http.StatusOK, map[string]any{"workHistories": entries})
}

// GetWorkHistory handles GET /api/work-histories/{id}.
func (h *Handler) GetWorkHistory(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid work history ID")
		return
	}

	entry, err := h.queries.GetWorkHistoryByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			WriteNotFound(w, "Work history not found")
			return
		}
		slog.ErrorContext(r.Context(), "getting work history", "error", err, "id", id)
		WriteInternalError(w)
		return
	}
	WriteSuccess(w, http.StatusOK, map[string]any{"workHistory": entry})
}

// CreateWorkHistory handles POST /api/work-histories.
func (h *Handler) CreateWorkHistory(w http.ResponseWriter, r *http.Request) {
	var req CreateWorkHistoryRequest
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
	entry, err := h.queries.CreateWorkHistory(r.Context(), store.CreateWorkHistoryParams{
		Period:       req.Period,
		Company:      req.Company,
		Role:         req.Role,
		Skills:       req.Skills,
		Description:  req.Description,
		Achievements: req.Achievements,
		DisplayOrder: displayOrder,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		slog.ErrorContext(r.Context(), "creating work history", "error", err)
		WriteInternalError(w)
		return
	}
	WriteSuccess(w, http.StatusCreated, map[string]any{"workHistory": entry})
}

// UpdateWorkHistory handles PUT /api/work-histories/{id}.
func (h *Handler) UpdateWorkHistory(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid work history ID")
		return
	}

	var req UpdateWorkHistoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fields := req.validate(); fields != nil {
		WriteValidationError(w, fields)
		return
	}

	current, err := h.queries.GetWorkHistoryByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			WriteNotFound(w, "Work history not found")
			return
		}
		slog.ErrorContext(r.Context(), "getting work history", "error", err, "id", id)
		WriteInternalError(w)
		return
	}

	params := store.UpdateWorkHistoryParams{
		ID:           id,
		Period:       current.Period,
		Company:      current.Company,
		Role:         current.Role,
		Skills:       current.Skills,
		Description:  current.Description,
		Achievements: current.Achievements,
		DisplayOrder: current.DisplayOrder,
		UpdatedAt:    time.Now(),
	}
	if req.Period != nil {
		params.Period = *req.Period
	}
	if req.Company != nil {
		params.Company = *req.Company
	}
	if req.Role != nil {
		params.Role = *req.Role
	}
	if req.Skills != nil {
		params.Skills = *req.Skills
	}
	if req.Description != nil {
		params.Description = *req.Description
	}
	if req.Achievements != nil {
		params.Achievements = *req.Achievements
	}
	if req.DisplayOrder != nil {
		params.DisplayOrder = *req.DisplayOrder
	}

	entry, err := h.queries.UpdateWorkHistory(r.Context(), params)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			WriteNotFound(w, "Work history not found")
			return
		}
		slog.ErrorContext(r.Context(), "updating work history", "error", err, "id", id)
		WriteInternalError(w)
		return
	}
	WriteSuccess(w, http.StatusOK, map[string]any{"workHistory": entry})
}

// DeleteWorkHistory handles DELETE /api/work-histories/{id}.
func (h *Handler) DeleteWorkHistory(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid work history ID")
		return
	}

	if err := h.queries.DeleteWorkHistory(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			WriteNotFound(w, "Work history not found")
			return
		}
		slog.ErrorContext(r.Context(), "deleting work history", "error", err, "id", id)
		WriteInternalError(w)
		return
	}
	WriteSuccess(w, http.StatusOK, nil)
}
