// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// TagTable represents the 'tags' table
type TagTable struct {
	Table   string
	ID      string
	Name    string
	TagType string
}

// Tag is the schema definition for tags
var Tag = TagTable{
	Table:   "tags",
	ID:      "id",
	Name:    "name",
	TagType: "tag_type",
}

func (t TagTable) Columns() []string {
	return []string{t.ID, t.Name, t.TagType}
}
