// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/arjuju98/the-baking-atlas/internal/core/catalog"
	"github.com/arjuju98/the-baking-atlas/internal/platform/database/builder"
	"github.com/arjuju98/the-baking-atlas/internal/platform/database/schema"
	"github.com/arjuju98/the-baking-atlas/internal/platform/dberr"
)

// # Story Reads

// ListStories runs the shared filter query with SQLite placeholders.
func (q *queries) ListStories(context context.Context, filter catalog.StoryFilter) ([]catalog.StorySummary, error) {
	query, args := builder.StoryList(builder.Question, builder.StoryFilter{
		RegionCode:  filter.Region,
		TagName:     filter.Tag,
		TimeContext: filter.TimeContext,
	})

	rows, err := q.db.QueryContext(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list stories")
	}
	defer rows.Close()

	stories := []catalog.StorySummary{}
	for rows.Next() {
		summary, err := scanStorySummary(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan story summary")
		}
		stories = append(stories, summary)
	}
	return stories, dberr.Wrap(rows.Err(), "list stories")
}

// StoryBySlug loads the scalar fields of a story.
func (q *queries) StoryBySlug(context context.Context, slug string) (*catalog.Story, error) {
	s := schema.Story
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ?`, strings.Join(s.Columns(), ", "), s.Table, s.Slug)

	story, err := scanStory(q.db.QueryRowContext(context, query, slug))
	if err != nil {
		return nil, dberr.Wrap(err, "find story by slug")
	}
	return story, nil
}

// RegionsByStory loads the linked countries of many stories in one query.
func (q *queries) RegionsByStory(context context.Context, storyIDs []int64) (map[int64][]catalog.CountryRef, error) {
	regions := make(map[int64][]catalog.CountryRef, len(storyIDs))
	if len(storyIDs) == 0 {
		return regions, nil
	}

	sr, c := schema.StoryRegion, schema.Country
	query := fmt.Sprintf(`
		SELECT sr.%s, c.%s, c.%s, c.%s
		FROM %s sr
		JOIN %s c ON c.%s = sr.%s
		WHERE sr.%s IN (%s)
		ORDER BY sr.%s, c.%s`,
		sr.StoryID, c.ID, c.Name, c.Code,
		sr.Table,
		c.Table, c.ID, sr.CountryID,
		sr.StoryID, builder.List(builder.Question, 1, len(storyIDs)),
		sr.StoryID, c.Code,
	)

	rows, err := q.db.QueryContext(context, query, builder.Int64Args(storyIDs)...)
	if err != nil {
		return nil, dberr.Wrap(err, "load story regions")
	}
	defer rows.Close()

	for rows.Next() {
		var storyID int64
		var ref catalog.CountryRef
		if err := rows.Scan(&storyID, &ref.ID, &ref.Name, &ref.Code); err != nil {
			return nil, dberr.Wrap(err, "scan story region")
		}
		regions[storyID] = append(regions[storyID], ref)
	}
	return regions, dberr.Wrap(rows.Err(), "load story regions")
}

// TagsByStory loads the linked tags of many stories in one query.
func (q *queries) TagsByStory(context context.Context, storyIDs []int64) (map[int64][]catalog.Tag, error) {
	tags := make(map[int64][]catalog.Tag, len(storyIDs))
	if len(storyIDs) == 0 {
		return tags, nil
	}

	st, t := schema.StoryTag, schema.Tag
	query := fmt.Sprintf(`
		SELECT st.%s, t.%s, t.%s, t.%s
		FROM %s st
		JOIN %s t ON t.%s = st.%s
		WHERE st.%s IN (%s)
		ORDER BY st.%s, t.%s`,
		st.StoryID, t.ID, t.Name, t.TagType,
		st.Table,
		t.Table, t.ID, st.TagID,
		st.StoryID, builder.List(builder.Question, 1, len(storyIDs)),
		st.StoryID, t.Name,
	)

	rows, err := q.db.QueryContext(context, query, builder.Int64Args(storyIDs)...)
	if err != nil {
		return nil, dberr.Wrap(err, "load story tags")
	}
	defer rows.Close()

	for rows.Next() {
		var storyID int64
		var tag catalog.Tag
		if err := rows.Scan(&storyID, &tag.ID, &tag.Name, &tag.TagType); err != nil {
			return nil, dberr.Wrap(err, "scan story tag")
		}
		tags[storyID] = append(tags[storyID], tag)
	}
	return tags, dberr.Wrap(rows.Err(), "load story tags")
}

// # Story Writes

func (q *queries) InsertStory(context context.Context, story *catalog.Story) error {
	s := schema.Story
	extra, err := jsonArg(story.ExtraData)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING %s`,
		s.Table, s.Title, s.Slug, s.Summary, s.Body, s.TimeContext,
		s.AuthorName, s.Sources, s.PublishedAt, s.UpdatedAt, s.ExtraData,
		s.ID,
	)

	id, err := q.insertReturningID(context, "insert story", query,
		story.Title, story.Slug, story.Summary, story.Body, story.TimeContext,
		story.AuthorName, story.Sources, micros(story.PublishedAt), micros(story.UpdatedAt), extra,
	)
	if err != nil {
		return err
	}
	story.ID = id
	return nil
}

// UpdateStory rewrites every scalar column except published_at.
func (q *queries) UpdateStory(context context.Context, story *catalog.Story) error {
	s := schema.Story
	extra, err := jsonArg(story.ExtraData)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE %s SET %s = ?, %s = ?, %s = ?, %s = ?, %s = ?, %s = ?, %s = ?, %s = ?, %s = ?
		WHERE %s = ?`,
		s.Table, s.Title, s.Slug, s.Summary, s.Body, s.TimeContext,
		s.AuthorName, s.Sources, s.UpdatedAt, s.ExtraData,
		s.ID,
	)

	return q.execOne(context, "update story", query,
		story.Title, story.Slug, story.Summary, story.Body, story.TimeContext,
		story.AuthorName, story.Sources, micros(story.UpdatedAt), extra,
		story.ID,
	)
}

func (q *queries) DeleteStory(context context.Context, id int64) error {
	s := schema.Story
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, s.Table, s.ID)
	return q.execOne(context, "delete story", query, id)
}

// # Association Writes

func (q *queries) LinkRegions(context context.Context, storyID int64, countryIDs []int64) error {
	sr := schema.StoryRegion
	return q.linkPairs(context, "link story regions", sr.Table, sr.StoryID, sr.CountryID, storyID, countryIDs)
}

func (q *queries) UnlinkRegions(context context.Context, storyID int64, countryIDs []int64) error {
	sr := schema.StoryRegion
	return q.unlinkPairs(context, "unlink story regions", sr.Table, sr.StoryID, sr.CountryID, storyID, countryIDs)
}

func (q *queries) DeleteRegionLinksByStory(context context.Context, storyID int64) (int64, error) {
	sr := schema.StoryRegion
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, sr.Table, sr.StoryID)
	return q.exec(context, "delete story region links", query, storyID)
}

func (q *queries) LinkTags(context context.Context, storyID int64, tagIDs []int64) error {
	st := schema.StoryTag
	return q.linkPairs(context, "link story tags", st.Table, st.StoryID, st.TagID, storyID, tagIDs)
}

func (q *queries) UnlinkTags(context context.Context, storyID int64, tagIDs []int64) error {
	st := schema.StoryTag
	return q.unlinkPairs(context, "unlink story tags", st.Table, st.StoryID, st.TagID, storyID, tagIDs)
}

func (q *queries) DeleteTagLinksByStory(context context.Context, storyID int64) (int64, error) {
	st := schema.StoryTag
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, st.Table, st.StoryID)
	return q.exec(context, "delete story tag links", query, storyID)
}

func (q *queries) DeleteTagLinksByTag(context context.Context, tagID int64) (int64, error) {
	st := schema.StoryTag
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, st.Table, st.TagID)
	return q.exec(context, "delete tag story links", query, tagID)
}

// linkPairs inserts (parent, related) junction rows; pairs that already exist are skipped.
func (q *queries) linkPairs(context context.Context, action, table, parentColumn, relatedColumn string, parentID int64, relatedIDs []int64) error {
	if len(relatedIDs) == 0 {
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES (?, ?) ON CONFLICT DO NOTHING`,
		table, parentColumn, relatedColumn)

	for _, relatedID := range relatedIDs {
		if _, err := q.db.ExecContext(context, query, parentID, relatedID); err != nil {
			return dberr.Wrap(err, action)
		}
	}
	return nil
}

// unlinkPairs removes the given (parent, related) junction rows.
func (q *queries) unlinkPairs(context context.Context, action, table, parentColumn, relatedColumn string, parentID int64, relatedIDs []int64) error {
	if len(relatedIDs) == 0 {
		return nil
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = ? AND %s IN (%s)`,
		table, parentColumn, relatedColumn, builder.List(builder.Question, 2, len(relatedIDs)))

	args := append([]any{parentID}, builder.Int64Args(relatedIDs)...)
	_, err := q.exec(context, action, query, args...)
	return err
}
