// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Blog statuses
const (
	BlogStatusDraft     = "draft"
	BlogStatusPublished = "published"
)

// Blog represents a blog post. Content holds the Markdown source; Excerpt is
// either author-supplied or derived from Content at creation time.
type Blog struct {
	ID        int64          `json:"id"`
	Title     string         `json:"title"`
	Slug      string         `json:"slug"`
	Excerpt   sql.NullString `json:"excerpt"`
	Content   string         `json:"content"`
	Status    string         `json:"status"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// IsPublished returns true if the blog post is published.
func (b *Blog) IsPublished() bool {
	return b.Status == BlogStatusPublished
}

// IsDraft returns true if the blog post is a draft.
func (b *Blog) IsDraft() bool {
	return b.Status == BlogStatusDraft
}

// ValidBlogStatus reports whether s is a recognized blog status.
func ValidBlogStatus(s string) bool {
	return s == BlogStatusDraft || s == BlogStatusPublished
}

// Tag represents a content tag. Tags are associated to blog posts through
// the blog_tags join table; deleting either parent removes the association.
type Tag struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BlogTag represents a blog-to-tag association row.
type BlogTag struct {
	ID     int64 `json:"id"`
	BlogID int64 `json:"blogId"`
	TagID  int64 `json:"tagId"`
}
