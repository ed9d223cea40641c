// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package tag owns the shared tag vocabulary: listing, explicit creation and
deletion, and the get-or-create resolver stories use when they are tagged.

Tag names are stored trimmed and lower-cased, so "Citrus" and "citrus" are one tag.
*/
package tag

// Field names reported in validation errors.
const (
	FieldName    = "name"
	FieldTagType = "tag_type"
)

// CreateRequest is the body of POST /tags.
type CreateRequest struct {
	Name    string  `json:"name"`
	TagType *string `json:"tag_type"`
}
