// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package column_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjuju98/the-baking-atlas/internal/platform/database/column"
)

/*
TestJSON verifies empty objects are stored as NULL and decoded back to nil.
*/
func TestJSON(t *testing.T) {
	raw, err := column.EncodeJSON(nil)
	require.NoError(t, err)
	assert.Nil(t, raw)

	raw, err = column.EncodeJSON(map[string]any{"flour": "rice"})
	require.NoError(t, err)

	decoded, err := column.DecodeJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, "rice", decoded["flour"])

	decoded, err = column.DecodeJSON([]byte("null"))
	require.NoError(t, err)
	assert.Nil(t, decoded)

	_, err = column.DecodeJSON([]byte("{broken"))
	assert.Error(t, err)
}

/*
TestMicros verifies timestamps survive the INTEGER encoding at microsecond precision.
*/
func TestMicros(t *testing.T) {
	original := time.Date(2026, 3, 14, 9, 26, 53, 589793000, time.FixedZone("JST", 9*3600))

	restored := column.FromMicros(column.Micros(original))

	assert.True(t, original.Equal(restored))
	assert.Equal(t, time.UTC, restored.Location())
}
