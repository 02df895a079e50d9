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

const tagColumns = "id, name, created_at, updated_at"

func scanTag(row *sql.Row) (model.Tag, error) {
	var t model.Tag
	err := row.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Tag{}, ErrNotFound
	}
	return t, err
}

// GetTagByID returns a tag by id, ErrNotFound when absent.
func (q *Queries) GetTagByID(ctx context.Context, id int64) (model.Tag, error) {
	row := q.db.QueryRowContext(ctx, "SELECT "+tagColumns+" FROM tags WHERE id = ?", id)
	return scanTag(row)
}

// GetTagByName returns a tag by its unique name.
func (q *Queries) GetTagByName(ctx context.Context, name string) (model.Tag, error) {
	row := q.db.QueryRowContext(ctx, "SELECT "+tagColumns+" FROM tags WHERE name = ?", name)
	return scanTag(row)
}

// ListTags returns all tags ordered by name.
func (q *Queries) ListTags(ctx context.Context) ([]model.Tag, error) {
	rows, err := q.db.QueryContext(ctx, "SELECT "+tagColumns+" FROM tags ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []model.Tag
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// CreateTagParams holds the fields for creating a tag.
type CreateTagParams struct {
	Name      string
	CreatedAt time.Time
}

// CreateTag inserts a tag. Returns ErrConflict when the name is taken.
func (q *Queries) CreateTag(ctx context.Context, arg CreateTagParams) (model.Tag, error) {
	res, err := q.db.ExecContext(ctx,
		"INSERT INTO tags (name, created_at, updated_at) VALUES (?, ?, ?)",
		arg.Name, arg.CreatedAt.UTC(), arg.CreatedAt.UTC())
	if err != nil {
		return model.Tag{}, mapWriteErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Tag{}, err
	}
	return q.GetTagByID(ctx, id)
}

// DeleteTag removes a tag. Associated blog_tags rows cascade.
func (q *Queries) DeleteTag(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, "DELETE FROM tags WHERE id = ?", id)
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

// AddTagToBlogParams holds the blog/tag pair to associate.
type AddTagToBlogParams struct {
	BlogID int64
	TagID  int64
}

// AddTagToBlog associates a tag with a blog post. Duplicate associations
// return ErrConflict.
func (q *Queries) AddTagToBlog(ctx context.Context, arg AddTagToBlogParams) error {
	_, err := q.db.ExecContext(ctx,
		"INSERT INTO blog_tags (blog_id, tag_id) VALUES (?, ?)",
		arg.BlogID, arg.TagID)
	return mapWriteErr(err)
}

// RemoveTagFromBlog removes a blog/tag association.
func (q *Queries) RemoveTagFromBlog(ctx context.Context, arg AddTagToBlogParams) error {
	_, err := q.db.ExecContext(ctx,
		"DELETE FROM blog_tags WHERE blog_id = ? AND tag_id = ?",
		arg.BlogID, arg.TagID)
	return err
}

// ListTagsForBlog returns the tags attached to a blog post, ordered by name.
func (q *Queries) ListTagsForBlog(ctx context.Context, blogID int64) ([]model.Tag, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT t.id, t.name, t.created_at, t.updated_at FROM tags t
		 JOIN blog_tags bt ON bt.tag_id = t.id
		 WHERE bt.blog_id = ? ORDER BY t.name`, blogID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []model.Tag
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}
