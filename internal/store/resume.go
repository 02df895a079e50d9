// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ensofolio/enso/internal/model"
)

const workHistoryColumns = "id, period, company, role, skills, description, achievements, display_order, created_at, updated_at"

// encodeStringList serializes a string slice for TEXT-column storage. A nil
// slice is stored as an empty list, never as JSON null.
func encodeStringList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	buf, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode string list: %w", err)
	}
	return string(buf), nil
}

func decodeStringList(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode string list: %w", err)
	}
	if items == nil {
		items = []string{}
	}
	return items, nil
}

func scanWorkHistory(scan func(dest ...any) error) (model.WorkHistory, error) {
	var (
		w                   model.WorkHistory
		skills, achievement string
	)
	err := scan(&w.ID, &w.Period, &w.Company, &w.Role, &skills,
		&w.Description, &achievement, &w.DisplayOrder, &w.CreatedAt, &w.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.WorkHistory{}, ErrNotFound
	}
	if err != nil {
		return model.WorkHistory{}, err
	}
	if w.Skills, err = decodeStringList(skills); err != nil {
		return model.WorkHistory{}, err
	}
	if w.Achievements, err = decodeStringList(achievement); err != nil {
		return model.WorkHistory{}, err
	}
	return w, nil
}

// GetWorkHistoryByID returns a work history entry, ErrNotFound when absent.
func (q *Queries) GetWorkHistoryByID(ctx context.Context, id int64) (model.WorkHistory, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+workHistoryColumns+" FROM work_histories WHERE id = ?", id)
	return scanWorkHistory(row.Scan)
}

// ListWorkHistories returns all entries ordered by display_order ascending.
// Ties break on id so the order is stable.
func (q *Queries) ListWorkHistories(ctx context.Context) ([]model.WorkHistory, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+workHistoryColumns+" FROM work_histories ORDER BY display_order, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.WorkHistory
	for rows.Next() {
		w, err := scanWorkHistory(rows.Scan)
		if err != nil {
			return nil, err
		}
		entries = append(entries, w)
	}
	return entries, rows.Err()
}

// CreateWorkHistoryParams holds the fields for creating a work history entry.
type CreateWorkHistoryParams struct {
	Period       string
	Company      string
	Role         string
	Skills       []string
	Description  string
	Achievements []string
	DisplayOrder int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateWorkHistory inserts a work history entry.
func (q *Queries) CreateWorkHistory(ctx context.Context, arg CreateWorkHistoryParams) (model.WorkHistory, error) {
	skills, err := encodeStringList(arg.Skills)
	if err != nil {
		return model.WorkHistory{}, err
	}
	achievements, err := encodeStringList(arg.Achievements)
	if err != nil {
		return model.WorkHistory{}, err
	}

	res, err := q.db.ExecContext(ctx,
		`INSERT INTO work_histories (period, company, role, skills, description, achievements, display_order, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.Period, arg.Company, arg.Role, skills, arg.Description, achievements,
		arg.DisplayOrder, arg.CreatedAt.UTC(), arg.UpdatedAt.UTC())
	if err != nil {
		return model.WorkHistory{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.WorkHistory{}, err
	}
	return q.GetWorkHistoryByID(ctx, id)
}

// UpdateWorkHistoryParams holds the full row state for a work history update.
type UpdateWorkHistoryParams struct {
	ID           int64
	Period       string
	Company      string
	Role         string
	Skills       []string
	Description  string
	Achievements []string
	DisplayOrder int64
	UpdatedAt    time.Time
}

// UpdateWorkHistory replaces the row fields and refreshes updated_at.
func (q *Queries) UpdateWorkHistory(ctx context.Context, arg UpdateWorkHistoryParams) (model.WorkHistory, error) {
	skills, err := encodeStringList(arg.Skills)
	if err != nil {
		return model.WorkHistory{}, err
	}
	achievements, err := encodeStringList(arg.Achievements)
	if err != nil {
		return model.WorkHistory{}, err
	}

	res, err := q.db.ExecContext(ctx,
		`UPDATE work_histories SET period = ?, company = ?, role = ?, skills = ?,
		 description = ?, achievements = ?, display_order = ?, updated_at = ?
		 WHERE id = ?`,
		arg.Period, arg.Company, arg.Role, skills, arg.Description, achievements,
		arg.DisplayOrder, arg.UpdatedAt.UTC(), arg.ID)
	if err != nil {
		return model.WorkHistory{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return model.WorkHistory{}, err
	}
	if affected == 0 {
		return model.WorkHistory{}, ErrNotFound
	}
	return q.GetWorkHistoryByID(ctx, arg.ID)
}

// DeleteWorkHistory removes a work history entry.
func (q *Queries) DeleteWorkHistory(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, "DELETE FROM work_histories WHERE id = ?", id)
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

const contactLinkColumns = "id, label, href, display_order, created_at, updated_at"

func scanContactLink(scan func(dest ...any) error) (model.ContactLink, error) {
	var c model.ContactLink
	err := scan(&c.ID, &c.Label, &c.Href, &c.DisplayOrder, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ContactLink{}, ErrNotFound
	}
	return c, err
}

// GetContactLinkByID returns a contact link, ErrNotFound when absent.
func (q *Queries) GetContactLinkByID(ctx context.Context, id int64) (model.ContactLink, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+contactLinkColumns+" FROM contact_links WHERE id = ?", id)
	return scanContactLink(row.Scan)
}

// ListContactLinks returns all links ordered by display_order ascending.
func (q *Queries) ListContactLinks(ctx context.Context) ([]model.ContactLink, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+contactLinkColumns+" FROM contact_links ORDER BY display_order, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []model.ContactLink
	for rows.Next() {
		c, err := scanContactLink(rows.Scan)
		if err != nil {
			return nil, err
		}
		links = append(links, c)
	}
	return links, rows.Err()
}

// CreateContactLinkParams holds the fields for creating a contact link.
type CreateContactLinkParams struct {
	Label        string
	Href         string
	DisplayOrder int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateContactLink inserts a contact link.
func (q *Queries) CreateContactLink(ctx context.Context, arg CreateContactLinkParams) (model.ContactLink, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO contact_links (label, href, display_order, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		arg.Label, arg.Href, arg.DisplayOrder, arg.CreatedAt.UTC(), arg.UpdatedAt.UTC())
	if err != nil {
		return model.ContactLink{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.ContactLink{}, err
	}
	return q.GetContactLinkByID(ctx, id)
}

// UpdateContactLinkParams holds the full row state for a contact link update.
type UpdateContactLinkParams struct {
	ID           int64
	Label        string
	Href         string
	DisplayOrder int64
	UpdatedAt    time.Time
}

// UpdateContactLink replaces the row fields and refreshes updated_at.
func (q *Queries) UpdateContactLink(ctx context.Context, arg UpdateContactLinkParams) (model.ContactLink, error) {
	res, err := q.db.ExecContext(ctx,
		`UPDATE contact_links SET label = ?, href = ?, display_order = ?, updated_at = ?
		 WHERE id = ?`,
		arg.Label, arg.Href, arg.DisplayOrder, arg.UpdatedAt.UTC(), arg.ID)
	if err != nil {
		return model.ContactLink{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return model.ContactLink{}, err
	}
	if affected == 0 {
		return model.ContactLink{}, ErrNotFound
	}
	return q.GetContactLinkByID(ctx, arg.ID)
}

// DeleteContactLink removes a contact link.
func (q *Queries) DeleteContactLink(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, "DELETE FROM contact_links WHERE id = ?", id)
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
