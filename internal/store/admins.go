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

const adminColumns = "id, email, password_hash, created_at"

func scanAdmin(row *sql.Row) (model.Admin, error) {
	var a model.Admin
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Admin{}, ErrNotFound
	}
	return a, err
}

// GetAdminByEmail returns the administrator row with the exact email match.
func (q *Queries) GetAdminByEmail(ctx context.Context, email string) (model.Admin, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+adminColumns+" FROM admin WHERE email = ?", email)
	return scanAdmin(row)
}

// GetAdminByID returns the administrator row by id.
func (q *Queries) GetAdminByID(ctx context.Context, id int64) (model.Admin, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+adminColumns+" FROM admin WHERE id = ?", id)
	return scanAdmin(row)
}

// CreateAdminParams holds the fields for creating an administrator.
type CreateAdminParams struct {
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// CreateAdmin inserts an administrator row. Returns ErrConflict when the
// email is already taken.
func (q *Queries) CreateAdmin(ctx context.Context, arg CreateAdminParams) (model.Admin, error) {
	res, err := q.db.ExecContext(ctx,
		"INSERT INTO admin (email, password_hash, created_at) VALUES (?, ?, ?)",
		arg.Email, arg.PasswordHash, arg.CreatedAt.UTC())
	if err != nil {
		return model.Admin{}, mapWriteErr(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.Admin{}, err
	}
	return q.GetAdminByID(ctx, id)
}

// CountAdmins returns the number of administrator rows.
func (q *Queries) CountAdmins(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM admin").Scan(&n)
	return n, err
}
