// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// Typed repository outcomes. Controllers map these to user-facing errors;
// repository methods never report failures as silent zero values.
var (
	// ErrNotFound is returned when no row matches the given id.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a uniqueness constraint (slug, email,
	// tag name) is violated at write time.
	ErrConflict = errors.New("conflict")
)

// DBTX is the subset of database/sql used by Queries. Satisfied by both
// *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// Queries provides access to all persistence operations.
type Queries struct {
	db DBTX
}

// New creates a Queries instance bound to the given database handle.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// isUniqueViolation reports whether err is a SQLite unique-constraint
// failure. Matches on the error text so it works with both the modernc
// and mattn drivers.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// mapWriteErr converts driver-level write errors into typed outcomes.
func mapWriteErr(err error) error {
	if isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}
