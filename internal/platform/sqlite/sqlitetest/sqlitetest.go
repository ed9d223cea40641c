// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sqlitetest opens migrated, throwaway SQLite stores for tests.
package sqlitetest

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arjuju98/the-baking-atlas/internal/platform/config"
	"github.com/arjuju98/the-baking-atlas/internal/platform/migration"
	"github.com/arjuju98/the-baking-atlas/internal/platform/sqlite"
)

// Open returns a Store backed by a fresh database under t.TempDir(), with the
// production migrations applied. The store is closed when the test ends.
func Open(t testing.TB) *sqlite.Store {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	path := filepath.Join(t.TempDir(), "atlas.db")

	store, err := sqlite.Open(context.Background(), path, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, migration.RunUp(config.DriverSQLite, path, logger))
	return store
}
