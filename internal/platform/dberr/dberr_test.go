// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/arjuju98/the-baking-atlas/internal/platform/dberr"
)

/*
TestWrap verifies that driver errors are classified into the storage-neutral sentinels.
*/
func TestWrap(t *testing.T) {
	boom := errors.New("connection reset")

	tests := []struct {
		name       string
		err        error
		notFound   bool
		uniqueness bool
	}{
		{"nil stays nil", nil, false, false},
		{"pgx no rows", pgx.ErrNoRows, true, false},
		{"sql no rows", sql.ErrNoRows, true, false},
		{"postgres unique violation", &pgconn.PgError{Code: "23505"}, false, true},
		{"postgres fk violation", &pgconn.PgError{Code: "23503"}, false, false},
		{"unknown error", boom, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := dberr.Wrap(tt.err, "load country")
			if tt.err == nil {
				assert.NoError(t, wrapped)
				return
			}
			assert.Equal(t, tt.notFound, dberr.IsNotFound(wrapped))
			assert.Equal(t, tt.uniqueness, dberr.IsUniqueViolation(wrapped))
			assert.ErrorIs(t, wrapped, tt.err)
			assert.Contains(t, wrapped.Error(), "load country")
		})
	}
}

/*
TestRequireAffected verifies zero-row writes are reported as missing.
*/
func TestRequireAffected(t *testing.T) {
	assert.NoError(t, dberr.RequireAffected(1, "delete tag"))
	assert.ErrorIs(t, dberr.RequireAffected(0, "delete tag"), dberr.ErrNotFound)
}
