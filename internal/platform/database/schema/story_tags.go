// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// StoryTagTable represents the 'story_tags' junction (story ↔ tag)
type StoryTagTable struct {
	Table   string
	StoryID string
	TagID   string
}

// StoryTag is the schema definition for story_tags
var StoryTag = StoryTagTable{
	Table:   "story_tags",
	StoryID: "story_id",
	TagID:   "tag_id",
}
