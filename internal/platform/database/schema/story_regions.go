// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// StoryRegionTable represents the 'story_regions' junction (story ↔ country)
type StoryRegionTable struct {
	Table     string
	StoryID   string
	CountryID string
}

// StoryRegion is the schema definition for story_regions
var StoryRegion = StoryRegionTable{
	Table:     "story_regions",
	StoryID:   "story_id",
	CountryID: "country_id",
}
