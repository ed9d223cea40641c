// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package builder composes the catalog's dynamic SQL once for every backend.
//
// Statements differ between PostgreSQL and SQLite only in their bind
// placeholder syntax, which callers select with a [Placeholder].
package builder

import (
	"fmt"
	"strings"

	"github.com/arjuju98/the-baking-atlas/internal/platform/database/schema"
)

// Placeholder renders the n-th (1-based) bind parameter.
type Placeholder func(n int) string

// Dollar renders PostgreSQL placeholders ($1, $2, ...).
func Dollar(n int) string { return fmt.Sprintf("$%d", n) }

// Question renders SQLite positional placeholders (?).
func Question(int) string { return "?" }

// List renders count placeholders starting at position start, comma separated.
//
// Example: List(Dollar, 3, 2) == "$3, $4"
func List(placeholder Placeholder, start, count int) string {
	parts := make([]string, count)
	for i := range parts {
		parts[i] = placeholder(start + i)
	}
	return strings.Join(parts, ", ")
}

// StoryFilter holds already-normalized listing constraints. Nil means "no constraint".
type StoryFilter struct {
	RegionCode  *string
	TagName     *string
	TimeContext *string
}

/*
StoryList builds the story listing query.

Every filter starts from the same unconstrained "all stories" statement. A region
adds an inner join through story_regions to countries on the unique code, a tag
adds an inner join through story_tags to tags on the unique name, and a time
context adds an equality predicate. Because both joins land on unique keys a
story matches each at most once, so no DISTINCT is needed.

Returns the SQL and its arguments in bind order. Selected columns follow
[schema.StoryTable.SummaryColumns].
*/
func StoryList(placeholder Placeholder, filter StoryFilter) (string, []any) {
	story := schema.Story
	region := schema.StoryRegion
	country := schema.Country
	link := schema.StoryTag
	tag := schema.Tag

	columns := make([]string, 0, len(story.SummaryColumns()))
	for _, column := range story.SummaryColumns() {
		columns = append(columns, "s."+column)
	}

	var query strings.Builder
	var args []any
	argID := 1

	fmt.Fprintf(&query, "SELECT %s FROM %s s", strings.Join(columns, ", "), story.Table)

	// 1. Region join
	if filter.RegionCode != nil {
		fmt.Fprintf(&query,
			" JOIN %s sr ON sr.%s = s.%s JOIN %s c ON c.%s = sr.%s AND c.%s = %s",
			region.Table, region.StoryID, story.ID,
			country.Table, country.ID, region.CountryID, country.Code, placeholder(argID),
		)
		args = append(args, *filter.RegionCode)
		argID++
	}

	// 2. Tag join
	if filter.TagName != nil {
		fmt.Fprintf(&query,
			" JOIN %s st ON st.%s = s.%s JOIN %s t ON t.%s = st.%s AND t.%s = %s",
			link.Table, link.StoryID, story.ID,
			tag.Table, tag.ID, link.TagID, tag.Name, placeholder(argID),
		)
		args = append(args, *filter.TagName)
		argID++
	}

	// 3. Scalar predicate
	if filter.TimeContext != nil {
		fmt.Fprintf(&query, " WHERE s.%s = %s", story.TimeContext, placeholder(argID))
		args = append(args, *filter.TimeContext)
	}

	fmt.Fprintf(&query, " ORDER BY s.%s DESC, s.%s ASC", story.PublishedAt, story.ID)

	return query.String(), args
}

// Int64Args converts ids into bind arguments.
func Int64Args(ids []int64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
