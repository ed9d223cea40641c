// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import (
	"github.com/jackc/pgx/v5"

	"github.com/arjuju98/the-baking-atlas/internal/core/catalog"
	"github.com/arjuju98/the-baking-atlas/internal/platform/database/column"
)

// jsonArg encodes extra_data for a JSONB parameter; nil bytes bind as NULL.
func jsonArg(value map[string]any) ([]byte, error) {
	return column.EncodeJSON(value)
}

func scanCountry(row pgx.Row) (*catalog.Country, error) {
	var country catalog.Country
	var extra []byte

	if err := row.Scan(&country.ID, &country.Name, &country.Code, &country.Region, &country.Overview, &extra); err != nil {
		return nil, err
	}

	var err error
	country.ExtraData, err = column.DecodeJSON(extra)
	return &country, err
}

func scanBakedGood(row pgx.Row) (catalog.BakedGood, error) {
	var good catalog.BakedGood
	var extra []byte

	if err := row.Scan(&good.ID, &good.CountryID, &good.Name, &good.Description, &good.Category, &extra); err != nil {
		return good, err
	}

	var err error
	good.ExtraData, err = column.DecodeJSON(extra)
	return good, err
}

func scanIngredient(row pgx.Row) (catalog.Ingredient, error) {
	var ingredient catalog.Ingredient
	var extra []byte

	if err := row.Scan(&ingredient.ID, &ingredient.CountryID, &ingredient.Name, &ingredient.Description, &extra); err != nil {
		return ingredient, err
	}

	var err error
	ingredient.ExtraData, err = column.DecodeJSON(extra)
	return ingredient, err
}

func scanStory(row pgx.Row) (*catalog.Story, error) {
	var story catalog.Story
	var extra []byte

	err := row.Scan(
		&story.ID, &story.Title, &story.Slug, &story.Summary, &story.Body, &story.TimeContext,
		&story.AuthorName, &story.Sources, &story.PublishedAt, &story.UpdatedAt, &extra,
	)
	if err != nil {
		return nil, err
	}

	story.PublishedAt = story.PublishedAt.UTC()
	story.UpdatedAt = story.UpdatedAt.UTC()
	story.ExtraData, err = column.DecodeJSON(extra)
	return &story, err
}

func scanStorySummary(rows pgx.Row) (catalog.StorySummary, error) {
	var summary catalog.StorySummary
	err := rows.Scan(
		&summary.ID, &summary.Title, &summary.Slug, &summary.Summary,
		&summary.TimeContext, &summary.AuthorName, &summary.PublishedAt,
	)
	summary.PublishedAt = summary.PublishedAt.UTC()
	return summary, err
}

func scanTag(row pgx.Row) (catalog.Tag, error) {
	var tag catalog.Tag
	err := row.Scan(&tag.ID, &tag.Name, &tag.TagType)
	return tag, err
}

func scanStoryRef(rows pgx.Row) (catalog.StoryRef, error) {
	var ref catalog.StoryRef
	err := rows.Scan(&ref.ID, &ref.Title, &ref.Slug)
	return ref, err
}

func scanCountrySummary(rows pgx.Row) (catalog.CountrySummary, error) {
	var summary catalog.CountrySummary
	err := rows.Scan(&summary.ID, &summary.Name, &summary.Code, &summary.Region)
	return summary, err
}
