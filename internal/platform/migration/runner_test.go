// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/arjuju98/the-baking-atlas/internal/platform/config"
)

/*
TestConvertToPgx5DSN verifies postgres URLs are rewritten to the pgx5 scheme.
*/
func TestConvertToPgx5DSN(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"postgres://atlas@localhost/atlas", "pgx5://atlas@localhost/atlas"},
		{"postgresql://atlas@localhost/atlas", "pgx5://atlas@localhost/atlas"},
		{"pgx5://atlas@localhost/atlas", "pgx5://atlas@localhost/atlas"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, convertToPgx5DSN(tt.input))
		})
	}
}

/*
TestResolve_UnknownDriver verifies unsupported drivers are rejected before connecting.
*/
func TestResolve_UnknownDriver(t *testing.T) {
	_, _, err := resolve("mysql", "root@/atlas")
	assert.Error(t, err)
}

/*
TestRunUp_SQLite applies the embedded schema twice and checks the tables exist.
*/
func TestRunUp_SQLite(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	path := filepath.Join(t.TempDir(), "atlas.db")

	require.NoError(t, RunUp(config.DriverSQLite, path, logger))
	require.NoError(t, RunUp(config.DriverSQLite, path, logger), "second run must be a no-op")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"countries", "baked_goods", "ingredients", "stories", "tags", "story_regions", "story_tags"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		assert.NoError(t, err, table)
	}
}
