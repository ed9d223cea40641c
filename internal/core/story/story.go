// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package story manages editorial stories and their associations.

A story is addressed by its slug and linked to countries (its regions) and to
tags. Association lists on writes have replace semantics: the stored links
become exactly the given set. Listing composes the region, tag and time
context filters.
*/
package story

// Field names reported in validation errors.
const (
	FieldTitle       = "title"
	FieldSlug        = "slug"
	FieldSummary     = "summary"
	FieldBody        = "body"
	FieldTimeContext = "time_context"
	FieldAuthorName  = "author_name"
	FieldSources     = "sources"
	FieldRegionCodes = "region_codes"
	FieldTagNames    = "tag_names"
)

// CreateRequest is the body of POST /stories. Slug is derived from Title when omitted.
type CreateRequest struct {
	Title       string         `json:"title"`
	Slug        *string        `json:"slug"`
	Summary     *string        `json:"summary"`
	Body        string         `json:"body"`
	TimeContext *string        `json:"time_context"`
	AuthorName  *string        `json:"author_name"`
	Sources     *string        `json:"sources"`
	ExtraData   map[string]any `json:"extra_data"`
	RegionCodes []string       `json:"region_codes"`
	TagNames    []string       `json:"tag_names"`
}

/*
UpdateRequest is the body of PATCH /stories/{slug}.

A nil field is left as stored; JSON null counts as omitted. For the optional
text fields an empty string clears the value. A non-nil empty list clears the
relation.
*/
type UpdateRequest struct {
	Title       *string         `json:"title"`
	Slug        *string         `json:"slug"`
	Summary     *string         `json:"summary"`
	Body        *string         `json:"body"`
	TimeContext *string         `json:"time_context"`
	AuthorName  *string         `json:"author_name"`
	Sources     *string         `json:"sources"`
	ExtraData   *map[string]any `json:"extra_data"`
	RegionCodes *[]string       `json:"region_codes"`
	TagNames    *[]string       `json:"tag_names"`
}
