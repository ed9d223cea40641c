// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// the storage-neutral errors the catalog services reason about.
//
// Both backends (pgx and modernc SQLite) report missing rows and unique
// constraint violations differently; [Wrap] folds them into [ErrNotFound] and
// [ErrUniqueViolation] so services never import a driver.
package dberr

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// pgUniqueViolation is the Postgres SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

var (
	// ErrNotFound is returned when a queried or targeted row doesn't exist.
	ErrNotFound = errors.New("dberr: row not found")

	// ErrUniqueViolation is returned when a write collides with a UNIQUE or PRIMARY KEY constraint.
	ErrUniqueViolation = errors.New("dberr: unique violation")
)

// Wrap inspects a database error and classifies it.
//
// Missing rows become [ErrNotFound], uniqueness collisions become [ErrUniqueViolation];
// everything else is annotated with the action and returned as-is. The original
// driver error stays in the chain for logging.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w: %w", action, ErrNotFound, err)
	}

	// 2. Unique constraint mapping
	if IsUniqueViolation(err) {
		return fmt.Errorf("%s: %w: %w", action, ErrUniqueViolation, err)
	}

	// 3. Unknown query errors
	return fmt.Errorf("%s: %w", action, err)
}

// IsUniqueViolation reports whether err is a driver-level unique constraint failure.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrUniqueViolation) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}
	return false
}

// IsNotFound reports whether err signals a missing row.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// RequireAffected turns a write that touched zero rows into [ErrNotFound].
func RequireAffected(affected int64, action string) error {
	if affected == 0 {
		return fmt.Errorf("%s: %w", action, ErrNotFound)
	}
	return nil
}
