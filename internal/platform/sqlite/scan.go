// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sqlite

import (
	"database/sql"
	"time"

	"github.com/arjuju98/the-baking-atlas/internal/core/catalog"
	"github.com/arjuju98/the-baking-atlas/internal/platform/database/column"
)

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// jsonArg encodes extra_data as TEXT (or NULL).
func jsonArg(value map[string]any) (any, error) {
	raw, err := column.EncodeJSON(value)
	if err != nil || raw == nil {
		return nil, err
	}
	return string(raw), nil
}

func decodeJSON(raw sql.NullString) (map[string]any, error) {
	if !raw.Valid {
		return nil, nil
	}
	return column.DecodeJSON([]byte(raw.String))
}

func scanCountry(row scanner) (*catalog.Country, error) {
	var country catalog.Country
	var extra sql.NullString

	if err := row.Scan(&country.ID, &country.Name, &country.Code, &country.Region, &country.Overview, &extra); err != nil {
		return nil, err
	}

	var err error
	country.ExtraData, err = decodeJSON(extra)
	return &country, err
}

func scanBakedGood(row scanner) (*catalog.BakedGood, error) {
	var good catalog.BakedGood
	var extra sql.NullString

	if err := row.Scan(&good.ID, &good.CountryID, &good.Name, &good.Description, &good.Category, &extra); err != nil {
		return nil, err
	}

	var err error
	good.ExtraData, err = decodeJSON(extra)
	return &good, err
}

func scanIngredient(row scanner) (*catalog.Ingredient, error) {
	var ingredient catalog.Ingredient
	var extra sql.NullString

	if err := row.Scan(&ingredient.ID, &ingredient.CountryID, &ingredient.Name, &ingredient.Description, &extra); err != nil {
		return nil, err
	}

	var err error
	ingredient.ExtraData, err = decodeJSON(extra)
	return &ingredient, err
}

func scanStory(row scanner) (*catalog.Story, error) {
	var story catalog.Story
	var publishedAt, updatedAt int64
	var extra sql.NullString

	err := row.Scan(
		&story.ID, &story.Title, &story.Slug, &story.Summary, &story.Body, &story.TimeContext,
		&story.AuthorName, &story.Sources, &publishedAt, &updatedAt, &extra,
	)
	if err != nil {
		return nil, err
	}

	story.PublishedAt = column.FromMicros(publishedAt)
	story.UpdatedAt = column.FromMicros(updatedAt)
	story.ExtraData, err = decodeJSON(extra)
	return &story, err
}

func scanStorySummary(row scanner) (catalog.StorySummary, error) {
	var summary catalog.StorySummary
	var publishedAt int64

	err := row.Scan(
		&summary.ID, &summary.Title, &summary.Slug, &summary.Summary,
		&summary.TimeContext, &summary.AuthorName, &publishedAt,
	)
	summary.PublishedAt = column.FromMicros(publishedAt)
	return summary, err
}

func scanTag(row scanner) (catalog.Tag, error) {
	var tag catalog.Tag
	err := row.Scan(&tag.ID, &tag.Name, &tag.TagType)
	return tag, err
}

// micros converts a timestamp for an INTEGER column.
func micros(t time.Time) int64 {
	return column.Micros(t)
}
