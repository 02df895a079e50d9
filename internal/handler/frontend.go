// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the server-rendered public pages.
package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ensofolio/enso/internal/markdown"
	"github.com/ensofolio/enso/internal/model"
	"github.com/ensofolio/enso/internal/store"
	"github.com/ensofolio/enso/internal/util"
	"github.com/ensofolio/enso/web"
)

// SiteTitle is the public site name shown in page titles.
const SiteTitle = "ensofolio"

// PostView represents a blog post prepared for template rendering.
type PostView struct {
	Title     string
	Slug      string
	Excerpt   string
	Body      template.HTML
	CreatedAt time.Time
}

// pageData is the payload every frontend template receives.
type pageData struct {
	Title         string
	Description   string
	Year          int
	ContactLinks  []model.ContactLink
	Posts         []PostView
	WorkHistories []model.WorkHistory
	Post          *PostView
}

// Frontend serves the public HTML pages.
type Frontend struct {
	queries  *store.Queries
	home     *template.Template
	blogList *template.Template
	blogPost *template.Template
	notFound *template.Template
}

// NewFrontend creates the frontend handler, parsing the embedded templates.
func NewFrontend(db *sql.DB) (*Frontend, error) {
	parse := func(page string) (*template.Template, error) {
		t, err := template.ParseFS(web.Templates, "templates/base.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}
		return t, nil
	}

	home, err := parse("home.html")
	if err != nil {
		return nil, err
	}
	blogList, err := parse("blog_list.html")
	if err != nil {
		return nil, err
	}
	blogPost, err := parse("blog_post.html")
	if err != nil {
		return nil, err
	}
	notFound, err := parse("404.html")
	if err != nil {
		return nil, err
	}

	return &Frontend{
		queries:  store.New(db),
		home:     home,
		blogList: blogList,
		blogPost: blogPost,
		notFound: notFound,
	}, nil
}

func postView(b model.Blog) PostView {
	var excerpt string
	if p := util.StringPtrFromNull(b.Excerpt); p != nil {
		excerpt = *p
	}
	return PostView{
		Title:     b.Title,
		Slug:      b.Slug,
		Excerpt:   excerpt,
		CreatedAt: b.CreatedAt,
	}
}

// Home handles GET /. Shows published posts, the work history timeline and
// contact links.
func (f *Frontend) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	blogs, err := f.queries.ListPublishedBlogs(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "listing published blogs", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	histories, err := f.queries.ListWorkHistories(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "listing work histories", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	posts := make([]PostView, 0, len(blogs))
	for _, b := range blogs {
		posts = append(posts, postView(b))
	}

	f.render(w, r, f.home, http.StatusOK, pageData{
		Title:         SiteTitle,
		Description:   "Personal site and blog",
		Posts:         posts,
		WorkHistories: histories,
	})
}

// BlogList handles GET /blog. Published posts only, newest first.
func (f *Frontend) BlogList(w http.ResponseWriter, r *http.Request) {
	blogs, err := f.queries.ListPublishedBlogs(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "listing published blogs", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	posts := make([]PostView, 0, len(blogs))
	for _, b := range blogs {
		posts = append(posts, postView(b))
	}

	f.render(w, r, f.blogList, http.StatusOK, pageData{
		Title: "Blog - " + SiteTitle,
		Posts: posts,
	})
}

// BlogPost handles GET /blog/{slug}. Renders the post's Markdown; drafts
// and unknown slugs get the 404 page.
func (f *Frontend) BlogPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	blog, err := f.queries.GetPublishedBlogBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			f.NotFound(w, r)
			return
		}
		slog.ErrorContext(r.Context(), "getting blog by slug", "error", err, "slug", slug)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	post := postView(blog)
	post.Body = markdown.Render(blog.Content)

	f.render(w, r, f.blogPost, http.StatusOK, pageData{
		Title: blog.Title + " - " + SiteTitle,
		Post:  &post,
	})
}

// NotFound renders the 404 page.
func (f *Frontend) NotFound(w http.ResponseWriter, r *http.Request) {
	f.render(w, r, f.notFound, http.StatusNotFound, pageData{
		Title: "Not Found - " + SiteTitle,
	})
}

// render executes a template set with footer data filled in.
func (f *Frontend) render(w http.ResponseWriter, r *http.Request, t *template.Template, status int, data pageData) {
	data.Year = time.Now().Year()
	if data.ContactLinks == nil {
		links, err := f.queries.ListContactLinks(r.Context())
		if err != nil {
			slog.ErrorContext(r.Context(), "listing contact links", "error", err)
		} else {
			data.ContactLinks = links
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.ExecuteTemplate(w, "base", data); err != nil {
		slog.ErrorContext(r.Context(), "rendering template", "error", err)
	}
}
