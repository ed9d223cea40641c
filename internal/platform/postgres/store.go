// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arjuju98/the-baking-atlas/internal/core/catalog"
	"github.com/arjuju98/the-baking-atlas/internal/platform/dberr"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(context context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(context context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(context context.Context, sql string, args ...any) pgx.Row
	SendBatch(context context.Context, batch *pgx.Batch) pgx.BatchResults
}

// queries implements [catalog.Reader] and [catalog.Writer] over any querier.
type queries struct {
	db querier
}

// Store is the PostgreSQL [catalog.Store].
type Store struct {
	*queries
	pool   *pgxpool.Pool
	logger *slog.Logger
}

var (
	_ catalog.Store = (*Store)(nil)
	_ catalog.Tx    = (*queries)(nil)
)

// NewStore wraps an open pool. The store owns the pool and closes it on Close.
func NewStore(pool *pgxpool.Pool, logger *slog.Logger) *Store {
	return &Store{queries: &queries{db: pool}, pool: pool, logger: logger}
}

// Open connects a tuned pool (see [NewPool]) and wraps it in a Store.
func Open(ctx context.Context, dsn string, logger *slog.Logger) (*Store, error) {
	pool, err := NewPool(ctx, dsn, logger)
	if err != nil {
		return nil, err
	}
	return NewStore(pool, logger), nil
}

/*
InTx runs fn inside one READ COMMITTED transaction.

The deferred rollback undoes fn's writes on error or panic and is a no-op
after a successful commit.
*/
func (store *Store) InTx(context context.Context, fn func(tx catalog.Tx) error) error {
	transaction, err := store.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin transaction")
	}
	defer transaction.Rollback(context)

	if err := fn(&queries{db: transaction}); err != nil {
		return err
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "commit transaction")
	}
	return nil
}

// Ping verifies that the pool can reach the database.
func (store *Store) Ping(ctx context.Context) error {
	return Ping(ctx, store.pool)
}

// Close releases every pooled connection.
func (store *Store) Close() error {
	store.pool.Close()
	return nil
}

// # Statement helpers

func (q *queries) exec(context context.Context, action, sql string, args ...any) (int64, error) {
	tag, err := q.db.Exec(context, sql, args...)
	if err != nil {
		return 0, dberr.Wrap(err, action)
	}
	return tag.RowsAffected(), nil
}

func (q *queries) execOne(context context.Context, action, sql string, args ...any) error {
	affected, err := q.exec(context, action, sql, args...)
	if err != nil {
		return err
	}
	return dberr.RequireAffected(affected, action)
}

func (q *queries) insertReturningID(context context.Context, action, sql string, args ...any) (int64, error) {
	var id int64
	if err := q.db.QueryRow(context, sql, args...).Scan(&id); err != nil {
		return 0, dberr.Wrap(err, action)
	}
	return id, nil
}

// collect drains rows through scan, returning an empty (non-nil) slice for zero rows.
func collect[T any](rows pgx.Rows, action string, scan func(pgx.Row) (T, error)) ([]T, error) {
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, dberr.Wrap(err, action)
		}
		items = append(items, item)
	}
	return items, dberr.Wrap(rows.Err(), action)
}
