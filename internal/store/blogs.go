// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ensofolio/enso/internal/model"
)

const blogColumns = "id, title, slug, excerpt, content, status, created_at, updated_at"

func scanBlogRow(row *sql.Row) (model.Blog, error) {
	var b model.Blog
	err := row.Scan(&b.ID, &b.Title, &b.Slug, &b.Excerpt, &b.Content, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Blog{}, ErrNotFound
	}
	return b, err
}

func scanBlogRows(rows *sql.Rows) ([]model.Blog, error) {
	defer rows.Close()

	var blogs []model.Blog
	for rows.Next() {
		var b model.Blog
		if err := rows.Scan(&b.ID, &b.Title, &b.Slug, &b.Excerpt, &b.Content, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		blogs = append(blogs, b)
	}
	return blogs, rows.Err()
}

// GetBlogByID returns a blog post by id, ErrNotFound when absent.
func (q *Queries) GetBlogByID(ctx context.Context, id int64) (model.Blog, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+blogColumns+" FROM blogs WHERE id = ?", id)
	return scanBlogRow(row)
}

// GetBlogBySlug returns a blog post by slug regardless of status.
func (q *Queries) GetBlogBySlug(ctx context.Context, slug string) (model.Blog, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+blogColumns+" FROM blogs WHERE slug = ?", slug)
	return scanBlogRow(row)
}

// GetPublishedBlogBySlug returns a published blog post by slug. Drafts are
// not visible through this path.
func (q *Queries) GetPublishedBlogBySlug(ctx context.Context, slug string) (model.Blog, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+blogColumns+" FROM blogs WHERE slug = ? AND status = ?",
		slug, model.BlogStatusPublished)
	return scanBlogRow(row)
}

// ListBlogs returns all blog posts, newest first.
func (q *Queries) ListBlogs(ctx context.Context) ([]model.Blog, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+blogColumns+" FROM blogs ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	return scanBlogRows(rows)
}

// ListPublishedBlogs returns published posts only, newest first. Drafts are
// excluded unconditionally.
func (q *Queries) ListPublishedBlogs(ctx context.Context) ([]model.Blog, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+blogColumns+" FROM blogs WHERE status = ? ORDER BY created_at DESC, id DESC",
		model.BlogStatusPublished)
	if err != nil {
		return nil, err
	}
	return scanBlogRows(rows)
}

// CreateBlogParams holds the fields for creating a blog post.
type CreateBlogParams struct {
	Title     string
	Slug      string
	Excerpt   sql.NullString
	Content   string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateBlog inserts a blog post. Returns ErrConflict when the slug is
// already taken.
func (q *Queries) CreateBlog(ctx context.Context, arg CreateBlogParams) (model.Blog, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO blogs (title, slug, excerpt, content, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		arg.Title, arg.Slug, arg.Excerpt, arg.Content, arg.Status,
		arg.CreatedAt.UTC(), arg.UpdatedAt.UTC())
	if err != nil {
		return model.Blog{}, mapWriteErr(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.Blog{}, err
	}
	return q.GetBlogByID(ctx, id)
}

// UpdateBlogParams holds the full row state for a blog update. Handlers
// merge partial payloads into the existing row before calling UpdateBlog,
// so omitted fields are never nulled out.
type UpdateBlogParams struct {
	ID        int64
	Title     string
	Slug      string
	Excerpt   sql.NullString
	Content   string
	Status    string
	UpdatedAt time.Time
}

// UpdateBlog replaces the row fields and refreshes updated_at. Returns
// ErrNotFound when no row matches, ErrConflict on a duplicate slug.
func (q *Queries) UpdateBlog(ctx context.Context, arg UpdateBlogParams) (model.Blog, error) {
	res, err := q.db.ExecContext(ctx,
		`UPDATE blogs SET title = ?, slug = ?, excerpt = ?, content = ?, status = ?, updated_at = ?
		 WHERE id = ?`,
		arg.Title, arg.Slug, arg.Excerpt, arg.Content, arg.Status,
		arg.UpdatedAt.UTC(), arg.ID)
	if err != nil {
		return model.Blog{}, mapWriteErr(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return model.Blog{}, err
	}
	if affected == 0 {
		return model.Blog{}, ErrNotFound
	}
	return q.GetBlogByID(ctx, arg.ID)
}

// DeleteBlog removes a blog post. No HTTP endpoint exposes this; it exists
// as a direct repository action. Associated blog_tags rows cascade.
func (q *Queries) DeleteBlog(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, "DELETE FROM blogs WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// BlogSlugExists returns 1 when a blog with the slug exists.
func (q *Queries) BlogSlugExists(ctx context.Context, slug string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM blogs WHERE slug = ?", slug).Scan(&n)
	return n, err
}

// BlogSlugExistsExcludingParams holds the arguments for BlogSlugExistsExcluding.
type BlogSlugExistsExcludingParams struct {
	Slug string
	ID   int64
}

// BlogSlugExistsExcluding returns 1 when another blog already uses the slug.
func (q *Queries) BlogSlugExistsExcluding(ctx context.Context, arg BlogSlugExistsExcludingParams) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM blogs WHERE slug = ? AND id != ?", arg.Slug, arg.ID).Scan(&n)
	return n, err
}
