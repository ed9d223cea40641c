// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package builder_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arjuju98/the-baking-atlas/internal/platform/database/builder"
)

func ptr(s string) *string { return &s }

/*
TestStoryList_NoFilters verifies the unconstrained query has no joins or predicates.
*/
func TestStoryList_NoFilters(t *testing.T) {
	query, args := builder.StoryList(builder.Dollar, builder.StoryFilter{})

	assert.Empty(t, args)
	assert.NotContains(t, query, "JOIN")
	assert.NotContains(t, query, "WHERE")
	assert.True(t, strings.HasSuffix(query, "ORDER BY s.published_at DESC, s.id ASC"))
}

/*
TestStoryList_Composition verifies each filter adds exactly its own clause and argument.
*/
func TestStoryList_Composition(t *testing.T) {
	tests := []struct {
		name     string
		filter   builder.StoryFilter
		contains []string
		args     []any
	}{
		{
			name:     "region only",
			filter:   builder.StoryFilter{RegionCode: ptr("JP")},
			contains: []string{"JOIN story_regions sr", "c.code = $1"},
			args:     []any{"JP"},
		},
		{
			name:     "tag only",
			filter:   builder.StoryFilter{TagName: ptr("matcha")},
			contains: []string{"JOIN story_tags st", "t.name = $1"},
			args:     []any{"matcha"},
		},
		{
			name:     "all filters",
			filter:   builder.StoryFilter{RegionCode: ptr("JP"), TagName: ptr("matcha"), TimeContext: ptr("modern")},
			contains: []string{"c.code = $1", "t.name = $2", "WHERE s.time_context = $3"},
			args:     []any{"JP", "matcha", "modern"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := builder.StoryList(builder.Dollar, tt.filter)
			for _, fragment := range tt.contains {
				assert.Contains(t, query, fragment)
			}
			assert.Equal(t, tt.args, args)
		})
	}
}

/*
TestList verifies placeholder lists for both dialects.
*/
func TestList(t *testing.T) {
	assert.Equal(t, "$3, $4, $5", builder.List(builder.Dollar, 3, 3))
	assert.Equal(t, "?, ?", builder.List(builder.Question, 1, 2))
	assert.Equal(t, "", builder.List(builder.Question, 1, 0))
}
