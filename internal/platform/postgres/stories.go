// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/arjuju98/the-baking-atlas/internal/core/catalog"
	"github.com/arjuju98/the-baking-atlas/internal/platform/database/builder"
	"github.com/arjuju98/the-baking-atlas/internal/platform/database/schema"
	"github.com/arjuju98/the-baking-atlas/internal/platform/dberr"
)

// # Story Reads

// ListStories runs the shared filter query with PostgreSQL placeholders.
func (q *queries) ListStories(context context.Context, filter catalog.StoryFilter) ([]catalog.StorySummary, error) {
	query, args := builder.StoryList(builder.Dollar, builder.StoryFilter{
		RegionCode:  filter.Region,
		TagName:     filter.Tag,
		TimeContext: filter.TimeContext,
	})

	rows, err := q.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list stories")
	}
	return collect(rows, "list stories", scanStorySummary)
}

func (q *queries) StoryBySlug(context context.Context, slug string) (*catalog.Story, error) {
	s := schema.Story
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, strings.Join(s.Columns(), ", "), s.Table, s.Slug)

	story, err := scanStory(q.db.QueryRow(context, query, slug))
	if err != nil {
		return nil, dberr.Wrap(err, "find story by slug")
	}
	return story, nil
}

// RegionsByStory loads the linked countries of many stories with one array parameter.
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
		WHERE sr.%s = ANY($1)
		ORDER BY sr.%s, c.%s`,
		sr.StoryID, c.ID, c.Name, c.Code,
		sr.Table,
		c.Table, c.ID, sr.CountryID,
		sr.StoryID,
		sr.StoryID, c.Code,
	)

	rows, err := q.db.Query(context, query, storyIDs)
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

// TagsByStory loads the linked tags of many stories with one array parameter.
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
		WHERE st.%s = ANY($1)
		ORDER BY st.%s, t.%s`,
		st.StoryID, t.ID, t.Name, t.TagType,
		st.Table,
		t.Table, t.ID, st.TagID,
		st.StoryID,
		st.StoryID, t.Name,
	)

	rows, err := q.db.Query(context, query, storyIDs)
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
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING %s`,
		s.Table, s.Title, s.Slug, s.Summary, s.Body, s.TimeContext,
		s.AuthorName, s.Sources, s.PublishedAt, s.UpdatedAt, s.ExtraData,
		s.ID,
	)

	story.ID, err = q.insertReturningID(context, "insert story", query,
		story.Title, story.Slug, story.Summary, story.Body, story.TimeContext,
		story.AuthorName, story.Sources, story.PublishedAt, story.UpdatedAt, extra,
	)
	return err
}

// UpdateStory rewrites every scalar column except published_at.
func (q *queries) UpdateStory(context context.Context, story *catalog.Story) error {
	s := schema.Story
	extra, err := jsonArg(story.ExtraData)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE %s SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9
		WHERE %s = $10`,
		s.Table, s.Title, s.Slug, s.Summary, s.Body, s.TimeContext,
		s.AuthorName, s.Sources, s.UpdatedAt, s.ExtraData,
		s.ID,
	)

	return q.execOne(context, "update story", query,
		story.Title, story.Slug, story.Summary, story.Body, story.TimeContext,
		story.AuthorName, story.Sources, story.UpdatedAt, extra,
		story.ID,
	)
}

func (q *queries) DeleteStory(context context.Context, id int64) error {
	s := schema.Story
	return q.execOne(context, "delete story",
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, s.Table, s.ID), id)
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
	return q.exec(context, "delete story region links",
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, sr.Table, sr.StoryID), storyID)
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
	return q.exec(context, "delete story tag links",
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, st.Table, st.StoryID), storyID)
}

func (q *queries) DeleteTagLinksByTag(context context.Context, tagID int64) (int64, error) {
	st := schema.StoryTag
	return q.exec(context, "delete tag story links",
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, st.Table, st.TagID), tagID)
}

/*
linkPairs inserts (parent, related) junction rows in one round trip.

Pairs that already exist are skipped by ON CONFLICT DO NOTHING, so linking is
idempotent.
*/
func (q *queries) linkPairs(context context.Context, action, table, parentColumn, relatedColumn string, parentID int64, relatedIDs []int64) error {
	if len(relatedIDs) == 0 {
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		table, parentColumn, relatedColumn)

	batch := &pgx.Batch{}
	for _, relatedID := range relatedIDs {
		batch.Queue(query, parentID, relatedID)
	}

	results := q.db.SendBatch(context, batch)
	defer results.Close()

	for range relatedIDs {
		if _, err := results.Exec(); err != nil {
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

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = ANY($2)`, table, parentColumn, relatedColumn)
	_, err := q.exec(context, action, query, parentID, relatedIDs)
	return err
}
