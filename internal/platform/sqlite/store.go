// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sqlite implements the catalog Entity Store on an embedded SQLite
// database (modernc.org/sqlite, no cgo).
//
// It is the default backend for local development and the backend the test
// suites run against. Schema creation is handled by the migration package.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	// Registers the "sqlite" database/sql driver.
	_ "modernc.org/sqlite"

	"github.com/arjuju98/the-baking-atlas/internal/core/catalog"
	"github.com/arjuju98/the-baking-atlas/internal/platform/dberr"
)

const (
	// maxOpenConns bounds concurrent connections; WAL lets readers proceed during a write.
	maxOpenConns = 4
	// busyTimeoutMillis is how long a writer waits for the database lock.
	busyTimeoutMillis = 5000
	// pingTimeout is the maximum duration for a health check ping.
	pingTimeout = 2 * time.Second
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(context context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(context context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(context context.Context, query string, args ...any) *sql.Row
}

// queries implements [catalog.Reader] and [catalog.Writer] over any querier.
type queries struct {
	db querier
}

// Store is the SQLite [catalog.Store].
type Store struct {
	*queries
	db     *sql.DB
	logger *slog.Logger
}

var (
	_ catalog.Store = (*Store)(nil)
	_ catalog.Tx    = (*queries)(nil)
)

// DSN builds the modernc connection string for a database file: foreign keys
// on, WAL journaling, a busy timeout, and BEGIN IMMEDIATE for transactions so
// two writers never deadlock on a lock upgrade.
func DSN(path string) string {
	return fmt.Sprintf(
		"file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)&_txlock=immediate",
		path, busyTimeoutMillis,
	)
}

// Open creates the parent directory if needed, opens the database file and
// verifies the connection.
func Open(context context.Context, path string, logger *slog.Logger) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: create data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", DSN(path))
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(maxOpenConns)

	store := &Store{queries: &queries{db: db}, db: db, logger: logger}
	if err := store.Ping(context); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info("sqlite_store_opened", slog.String("path", path))
	return store, nil
}

/*
InTx runs fn inside one transaction.

The transaction commits when fn returns nil; otherwise, or if fn panics, the
deferred rollback discards every write fn made.
*/
func (store *Store) InTx(context context.Context, fn func(tx catalog.Tx) error) error {
	transaction, err := store.db.BeginTx(context, nil)
	if err != nil {
		return dberr.Wrap(err, "begin transaction")
	}

	// Rollback after a successful Commit is a no-op (sql.ErrTxDone).
	defer func() { _ = transaction.Rollback() }()

	if err := fn(&queries{db: transaction}); err != nil {
		return err
	}

	if err := transaction.Commit(); err != nil {
		return dberr.Wrap(err, "commit transaction")
	}
	return nil
}

// Ping verifies that the database file is reachable.
func (store *Store) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := store.db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("sqlite: ping failed: %w", err)
	}
	return nil
}

// Close releases the underlying connections.
func (store *Store) Close() error {
	return store.db.Close()
}

// # Statement helpers

// exec runs a write and returns the number of affected rows.
func (q *queries) exec(context context.Context, action, query string, args ...any) (int64, error) {
	result, err := q.db.ExecContext(context, query, args...)
	if err != nil {
		return 0, dberr.Wrap(err, action)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, dberr.Wrap(err, action)
	}
	return affected, nil
}

// execOne runs a write that must touch at least one row.
func (q *queries) execOne(context context.Context, action, query string, args ...any) error {
	affected, err := q.exec(context, action, query, args...)
	if err != nil {
		return err
	}
	return dberr.RequireAffected(affected, action)
}

// insertReturningID runs an INSERT ... RETURNING id statement.
func (q *queries) insertReturningID(context context.Context, action, query string, args ...any) (int64, error) {
	var id int64
	if err := q.db.QueryRowContext(context, query, args...).Scan(&id); err != nil {
		return 0, dberr.Wrap(err, action)
	}
	return id, nil
}
