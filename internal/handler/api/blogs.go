// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ensofolio/enso/internal/markdown"
	"github.com/ensofolio/enso/internal/middleware"
	"github.com/ensofolio/enso/internal/model"
	"github.com/ensofolio/enso/internal/store"
	"github.com/ensofolio/enso/internal/util"
)

// BlogResponse represents a blog post in API responses.
type BlogResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Excerpt   *string   `json:"excerpt"`
	Content   string    `json:"content"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func blogResponse(b model.Blog) BlogResponse {
	return BlogResponse{
		ID:        b.ID,
		Title:     b.Title,
		Slug:      b.Slug,
		Excerpt:   util.StringPtrFromNull(b.Excerpt),
		Content:   b.Content,
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// CreateBlogRequest is the request body for POST /api/blogs.
type CreateBlogRequest struct {
	Title   string  `json:"title"`
	Slug    string  `json:"slug"`
	Excerpt *string `json:"excerpt,omitempty"`
	Content string  `json:"content"`
	Status  string  `json:"status,omitempty"`
}

func (req *CreateBlogRequest) validate() map[string]string {
	fields := make(map[string]string)
	if strings.TrimSpace(req.Title) == "" {
		fields["title"] = "Title is required"
	}
	if req.Slug == "" {
		fields["slug"] = "Slug is required"
	} else if !util.IsValidSlug(req.Slug) {
		fields["slug"] = "Slug may only contain lowercase letters, digits and hyphens"
	}
	if strings.TrimSpace(req.Content) == "" {
		fields["content"] = "Content is required"
	}
	if req.Status != "" && !model.ValidBlogStatus(req.Status) {
		fields["status"] = "Status must be draft or published"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// UpdateBlogRequest is the request body for PUT /api/blogs/{id}.
// Omitted fields keep their current values.
type UpdateBlogRequest struct {
	Title   *string `json:"title,omitempty"`
	Slug    *string `json:"slug,omitempty"`
	Excerpt *string `json:"excerpt,omitempty"`
	Content *string `json:"content,omitempty"`
	Status  *string `json:"status,omitempty"`
}

func (req *UpdateBlogRequest) validate() map[string]string {
	fields := make(map[string]string)
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		fields["title"] = "Title is required"
	}
	if req.Slug != nil && !util.IsValidSlug(*req.Slug) {
		fields["slug"] = "Slug may only contain lowercase letters, digits and hyphens"
	}
	if req.Content != nil && strings.TrimSpace(*req.Content) == "" {
		fields["content"] = "Content is required"
	}
	if req.Status != nil && !model.ValidBlogStatus(*req.Status) {
		fields["status"] = "Status must be draft or published"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// ListBlogs handles GET /api/blogs. Returns all posts including drafts,
// newest first, for the admin dashboard.
func (h *Handler) ListBlogs(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.queries.ListBlogs(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "listing blogs", "error", err)
		WriteInternalError(w)
		return
	}

	responses := make([]BlogResponse, 0, len(blogs))
	for _, b := range blogs {
		responses = append(responses, blogResponse(b))
	}
	WriteSuccess(w, http.StatusOK, map[string]any{"blogs": responses})
}

// GetBlog handles GET /api/blogs/{id}.
func (h *Handler) GetBlog(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid blog ID")
		return
	}

	blog, err := h.queries.GetBlogByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			WriteNotFound(w, "Blog not found")
			return
		}
		slog.ErrorContext(r.Context(), "getting blog", "error", err, "id", id)
		WriteInternalError(w)
		return
	}
	WriteSuccess(w, http.StatusOK, map[string]any{"blog": blogResponse(blog)})
}

// CreateBlog handles POST /api/blogs. When no excerpt is supplied one is
// derived from the content; derivation can never fail the request.
func (h *Handler) CreateBlog(w http.ResponseWriter, r *http.Request) {
	var req CreateBlogRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fields := req.validate(); fields != nil {
		WriteValidationError(w, fields)
		return
	}

	if req.Status == "" {
		req.Status = model.BlogStatusDraft
	}
	excerpt := req.Excerpt
	if excerpt == nil || strings.TrimSpace(*excerpt) == "" {
		excerpt = markdown.Summarize(req.Content)
	}

	now := time.Now()
	blog, err := h.queries.CreateBlog(r.Context(), store.CreateBlogParams{
		Title:     req.Title,
		Slug:      req.Slug,
		Excerpt:   util.NullStringFromPtr(excerpt),
		Content:   req.Content,
		Status:    req.Status,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			WriteConflict(w, "A blog with this slug already exists")
			return
		}
		slog.ErrorContext(r.Context(), "creating blog", "error", err)
		WriteInternalError(w)
		return
	}

	if subject, ok := middleware.GetSubject(r.Context()); ok {
		slog.InfoContext(r.Context(), "blog created",
			"admin_id", subject.ID, "id", blog.ID, "slug", blog.Slug)
	}
	WriteSuccess(w, http.StatusCreated, map[string]any{"blog": blogResponse(blog)})
}

// UpdateBlog handles PUT /api/blogs/{id}. Supplied fields are merged into
// the current row; omitted fields are never nulled out.
func (h *Handler) UpdateBlog(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid blog ID")
		return
	}

	var req UpdateBlogRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if fields := req.validate(); fields != nil {
		WriteValidationError(w, fields)
		return
	}

	current, err := h.queries.GetBlogByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			WriteNotFound(w, "Blog not found")
			return
		}
		slog.ErrorContext(r.Context(), "getting blog", "error", err, "id", id)
		WriteInternalError(w)
		return
	}

	params := store.UpdateBlogParams{
		ID:        id,
		Title:     current.Title,
		Slug:      current.Slug,
		Excerpt:   current.Excerpt,
		Content:   current.Content,
		Status:    current.Status,
		UpdatedAt: time.Now(),
	}
	if req.Title != nil {
		params.Title = *req.Title
	}
	if req.Slug != nil {
		params.Slug = *req.Slug
	}
	if req.Excerpt != nil {
		params.Excerpt = util.NullStringFromValue(*req.Excerpt)
	}
	if req.Content != nil {
		params.Content = *req.Content
	}
	if req.Status != nil {
		params.Status = *req.Status
	}

	blog, err := h.queries.UpdateBlog(r.Context(), params)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			WriteNotFound(w, "Blog not found")
		case errors.Is(err, store.ErrConflict):
			WriteConflict(w, "A blog with this slug already exists")
		default:
			slog.ErrorContext(r.Context(), "updating blog", "error", err, "id", id)
			WriteInternalError(w)
		}
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]any{"blog": blogResponse(blog)})
}
