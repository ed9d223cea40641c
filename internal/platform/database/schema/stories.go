// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// StoryTable represents the 'stories' table
type StoryTable struct {
	Table       string
	ID          string
	Title       string
	Slug        string
	Summary     string
	Body        string
	TimeContext string
	AuthorName  string
	Sources     string
	PublishedAt string
	UpdatedAt   string
	ExtraData   string
}

// Story is the schema definition for stories
var Story = StoryTable{
	Table:       "stories",
	ID:          "id",
	Title:       "title",
	Slug:        "slug",
	Summary:     "summary",
	Body:        "body",
	TimeContext: "time_context",
	AuthorName:  "author_name",
	Sources:     "sources",
	PublishedAt: "published_at",
	UpdatedAt:   "updated_at",
	ExtraData:   "extra_data",
}

// Columns lists every column of a full story in scan order.
func (t StoryTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Slug, t.Summary, t.Body, t.TimeContext,
		t.AuthorName, t.Sources, t.PublishedAt, t.UpdatedAt, t.ExtraData,
	}
}

// SummaryColumns lists the columns returned by story listings (no body, sources or extra data).
func (t StoryTable) SummaryColumns() []string {
	return []string{t.ID, t.Title, t.Slug, t.Summary, t.TimeContext, t.AuthorName, t.PublishedAt}
}
