// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arjuju98/the-baking-atlas/pkg/pointer"
)

/*
TestApply verifies a nil patch leaves the destination untouched.
*/
func TestApply(t *testing.T) {
	title := "Old title"

	assert.False(t, pointer.Apply(&title, nil))
	assert.Equal(t, "Old title", title)

	assert.True(t, pointer.Apply(&title, pointer.To("New title")))
	assert.Equal(t, "New title", title)
}

/*
TestTrimmedOrNil verifies blank optional text collapses to nil.
*/
func TestTrimmedOrNil(t *testing.T) {
	assert.Nil(t, pointer.TrimmedOrNil(nil))
	assert.Nil(t, pointer.TrimmedOrNil(pointer.To("   ")))
	assert.Equal(t, "East Asia", *pointer.TrimmedOrNil(pointer.To(" East Asia ")))
}

/*
TestVal verifies nil pointers dereference to the zero value.
*/
func TestVal(t *testing.T) {
	var missing *int64
	assert.Equal(t, int64(0), pointer.Val(missing))
	assert.Equal(t, "JP", pointer.Val(pointer.To("JP")))
}
