// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arjuju98/the-baking-atlas/internal/core/catalog"
	"github.com/arjuju98/the-baking-atlas/pkg/pointer"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "JP", catalog.NormalizeCode("  jp "))
	assert.Equal(t, "KOR", catalog.NormalizeCode("kOr"))
	assert.Equal(t, "citrus", catalog.NormalizeTagName(" CiTrus\t"))
	assert.Equal(t, "street food", catalog.NormalizeTagName("Street Food"))
}

/*
TestStoryFilterNormalized verifies keys are canonicalized and blanks become absent.
*/
func TestStoryFilterNormalized(t *testing.T) {
	tests := []struct {
		name  string
		input catalog.StoryFilter
		want  catalog.StoryFilter
	}{
		{"empty", catalog.StoryFilter{}, catalog.StoryFilter{}},
		{
			"all keys",
			catalog.StoryFilter{Region: pointer.To(" jp"), Tag: pointer.To("MATCHA "), TimeContext: pointer.To("modern")},
			catalog.StoryFilter{Region: pointer.To("JP"), Tag: pointer.To("matcha"), TimeContext: pointer.To("modern")},
		},
		{
			"blank values",
			catalog.StoryFilter{Region: pointer.To("  "), Tag: pointer.To(""), TimeContext: pointer.To("")},
			catalog.StoryFilter{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.input.Normalized()
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.IsEmpty(), got.IsEmpty())
		})
	}

	assert.True(t, catalog.StoryFilter{Region: pointer.To(" ")}.Normalized().IsEmpty())
}
