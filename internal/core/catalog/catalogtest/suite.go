// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package catalogtest is a conformance suite every [catalog.Store] backend runs.
package catalogtest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjuju98/the-baking-atlas/internal/core/catalog"
	"github.com/arjuju98/the-baking-atlas/internal/platform/dberr"
)

// Opener returns an empty, migrated store for one subtest.
type Opener func(t *testing.T) catalog.Store

var base = time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)

func str(s string) *string { return &s }

// Run executes the suite against stores produced by open.
func Run(t *testing.T, open Opener) {
	tests := []struct {
		name string
		fn   func(t *testing.T, store catalog.Store)
	}{
		{"CountryRoundTrip", testCountryRoundTrip},
		{"CountryCodeUnique", testCountryCodeUnique},
		{"MissingRowsAreNotFound", testMissingRowsAreNotFound},
		{"LinkIsIdempotent", testLinkIsIdempotent},
		{"UnlinkRemovesOnlyGivenPairs", testUnlinkRemovesOnlyGivenPairs},
		{"ListStoriesFilters", testListStoriesFilters},
		{"ForeignKeysGuardDeletes", testForeignKeysGuardDeletes},
		{"RollbackDiscardsWrites", testRollbackDiscardsWrites},
		{"TxSeesOwnWrites", testTxSeesOwnWrites},
		{"ListTagsByType", testListTagsByType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, open(t))
		})
	}
}

// # Fixtures

// seedCountry inserts a country (code must already be normalized).
func seedCountry(t *testing.T, store catalog.Store, name, code string) *catalog.Country {
	t.Helper()
	country := &catalog.Country{Name: name, Code: code}
	require.NoError(t, store.InTx(context.Background(), func(tx catalog.Tx) error {
		return tx.InsertCountry(context.Background(), country)
	}))
	require.NotZero(t, country.ID)
	return country
}

func seedTag(t *testing.T, store catalog.Store, name string, tagType *string) *catalog.Tag {
	t.Helper()
	tag := &catalog.Tag{Name: name, TagType: tagType}
	require.NoError(t, store.InTx(context.Background(), func(tx catalog.Tx) error {
		return tx.InsertTag(context.Background(), tag)
	}))
	return tag
}

// seedStory inserts a story published offset after base and links the given ids.
func seedStory(t *testing.T, store catalog.Store, slug string, offset time.Duration, timeContext *string, countryIDs, tagIDs []int64) *catalog.Story {
	t.Helper()
	story := &catalog.Story{
		Title:       slug,
		Slug:        slug,
		Body:        "body of " + slug,
		TimeContext: timeContext,
		PublishedAt: base.Add(offset),
		UpdatedAt:   base.Add(offset),
	}
	require.NoError(t, store.InTx(context.Background(), func(tx catalog.Tx) error {
		if err := tx.InsertStory(context.Background(), story); err != nil {
			return err
		}
		if err := tx.LinkRegions(context.Background(), story.ID, countryIDs); err != nil {
			return err
		}
		return tx.LinkTags(context.Background(), story.ID, tagIDs)
	}))
	return story
}

func slugs(stories []catalog.StorySummary) []string {
	out := make([]string, len(stories))
	for i, story := range stories {
		out[i] = story.Slug
	}
	return out
}

// # Cases

func testCountryRoundTrip(t *testing.T, store catalog.Store) {
	ctx := context.Background()
	country := &catalog.Country{
		Name:      "Japan",
		Code:      "JP",
		Region:    str("East Asia"),
		ExtraData: map[string]any{"capital": "Tokyo"},
	}
	require.NoError(t, store.InTx(ctx, func(tx catalog.Tx) error {
		return tx.InsertCountry(ctx, country)
	}))

	loaded, err := store.CountryByCode(ctx, "jp")
	require.NoError(t, err)
	assert.Equal(t, country.ID, loaded.ID)
	assert.Equal(t, "East Asia", *loaded.Region)
	assert.Nil(t, loaded.Overview)
	assert.Equal(t, "Tokyo", loaded.ExtraData["capital"])

	list, err := store.ListCountries(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "JP", list[0].Code)
}

func testCountryCodeUnique(t *testing.T, store catalog.Store) {
	seedCountry(t, store, "Japan", "JP")

	err := store.InTx(context.Background(), func(tx catalog.Tx) error {
		return tx.InsertCountry(context.Background(), &catalog.Country{Name: "Nippon", Code: "JP"})
	})
	assert.ErrorIs(t, err, dberr.ErrUniqueViolation)
}

func testMissingRowsAreNotFound(t *testing.T, store catalog.Store) {
	ctx := context.Background()

	_, err := store.CountryByCode(ctx, "ZZ")
	assert.ErrorIs(t, err, dberr.ErrNotFound)

	_, err = store.StoryBySlug(ctx, "nothing-here")
	assert.ErrorIs(t, err, dberr.ErrNotFound)

	_, err = store.TagByName(ctx, "nothing")
	assert.ErrorIs(t, err, dberr.ErrNotFound)

	err = store.InTx(ctx, func(tx catalog.Tx) error { return tx.DeleteTag(ctx, 999) })
	assert.ErrorIs(t, err, dberr.ErrNotFound)

	lists, err := store.RegionsByStory(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, lists)
}

func testLinkIsIdempotent(t *testing.T, store catalog.Store) {
	ctx := context.Background()
	japan := seedCountry(t, store, "Japan", "JP")
	story := seedStory(t, store, "mochi", 0, nil, []int64{japan.ID}, nil)

	require.NoError(t, store.InTx(ctx, func(tx catalog.Tx) error {
		return tx.LinkRegions(ctx, story.ID, []int64{japan.ID, japan.ID})
	}))

	regions, err := store.RegionsByStory(ctx, []int64{story.ID})
	require.NoError(t, err)
	assert.Len(t, regions[story.ID], 1)
}

func testUnlinkRemovesOnlyGivenPairs(t *testing.T, store catalog.Store) {
	ctx := context.Background()
	japan := seedCountry(t, store, "Japan", "JP")
	korea := seedCountry(t, store, "Korea", "KR")
	story := seedStory(t, store, "rice-cakes", 0, nil, []int64{japan.ID, korea.ID}, nil)

	require.NoError(t, store.InTx(ctx, func(tx catalog.Tx) error {
		return tx.UnlinkRegions(ctx, story.ID, []int64{japan.ID})
	}))

	regions, err := store.RegionsByStory(ctx, []int64{story.ID})
	require.NoError(t, err)
	require.Len(t, regions[story.ID], 1)
	assert.Equal(t, "KR", regions[story.ID][0].Code)
}

func testListStoriesFilters(t *testing.T, store catalog.Store) {
	ctx := context.Background()
	japan := seedCountry(t, store, "Japan", "JP")
	korea := seedCountry(t, store, "Korea", "KR")
	matcha := seedTag(t, store, "matcha", nil)
	rice := seedTag(t, store, "rice", nil)

	seedStory(t, store, "old-matcha", 0, str("historical"), []int64{japan.ID}, []int64{matcha.ID})
	seedStory(t, store, "new-matcha", 2*time.Hour, str("modern"), []int64{japan.ID, korea.ID}, []int64{matcha.ID, rice.ID})
	seedStory(t, store, "korean-rice", time.Hour, str("modern"), []int64{korea.ID}, []int64{rice.ID})
	seedStory(t, store, "tie-a", 3*time.Hour, nil, nil, nil)
	seedStory(t, store, "tie-b", 3*time.Hour, nil, nil, nil)

	tests := []struct {
		name   string
		filter catalog.StoryFilter
		want   []string
	}{
		{"no filters, newest first, ties by id", catalog.StoryFilter{}, []string{"tie-a", "tie-b", "new-matcha", "korean-rice", "old-matcha"}},
		{"region", catalog.StoryFilter{Region: str("JP")}, []string{"new-matcha", "old-matcha"}},
		{"tag", catalog.StoryFilter{Tag: str("rice")}, []string{"new-matcha", "korean-rice"}},
		{"region and tag", catalog.StoryFilter{Region: str("JP"), Tag: str("matcha")}, []string{"new-matcha", "old-matcha"}},
		{"region, tag and time", catalog.StoryFilter{Region: str("KR"), Tag: str("rice"), TimeContext: str("modern")}, []string{"new-matcha", "korean-rice"}},
		{"time only", catalog.StoryFilter{TimeContext: str("historical")}, []string{"old-matcha"}},
		{"no match", catalog.StoryFilter{Region: str("KR"), Tag: str("matcha"), TimeContext: str("historical")}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stories, err := store.ListStories(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, slugs(stories))
		})
	}
}

func testForeignKeysGuardDeletes(t *testing.T, store catalog.Store) {
	ctx := context.Background()
	japan := seedCountry(t, store, "Japan", "JP")
	require.NoError(t, store.InTx(ctx, func(tx catalog.Tx) error {
		return tx.InsertBakedGood(ctx, &catalog.BakedGood{CountryID: japan.ID, Name: "Melonpan"})
	}))

	// Dependents first is the only order the schema accepts.
	err := store.InTx(ctx, func(tx catalog.Tx) error { return tx.DeleteCountry(ctx, japan.ID) })
	assert.Error(t, err)

	require.NoError(t, store.InTx(ctx, func(tx catalog.Tx) error {
		removed, err := tx.DeleteBakedGoodsByCountry(ctx, japan.ID)
		if err != nil {
			return err
		}
		assert.Equal(t, int64(1), removed)
		return tx.DeleteCountry(ctx, japan.ID)
	}))
}

func testRollbackDiscardsWrites(t *testing.T, store catalog.Store) {
	ctx := context.Background()
	abort := errors.New("abort")

	err := store.InTx(ctx, func(tx catalog.Tx) error {
		if err := tx.InsertCountry(ctx, &catalog.Country{Name: "France", Code: "FR"}); err != nil {
			return err
		}
		return abort
	})
	assert.ErrorIs(t, err, abort)

	_, err = store.CountryByCode(ctx, "FR")
	assert.ErrorIs(t, err, dberr.ErrNotFound)
}

func testTxSeesOwnWrites(t *testing.T, store catalog.Store) {
	ctx := context.Background()
	require.NoError(t, store.InTx(ctx, func(tx catalog.Tx) error {
		tag := &catalog.Tag{Name: "citrus"}
		if err := tx.InsertTag(ctx, tag); err != nil {
			return err
		}
		found, err := tx.TagByName(ctx, "CITRUS")
		if err != nil {
			return err
		}
		assert.Equal(t, tag.ID, found.ID)
		return nil
	}))
}

func testListTagsByType(t *testing.T, store catalog.Store) {
	ctx := context.Background()
	seedTag(t, store, "yuzu", str("ingredient"))
	seedTag(t, store, "festival", str("occasion"))
	seedTag(t, store, "citrus", str("ingredient"))
	seedTag(t, store, "untyped", nil)

	all, err := store.ListTags(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "citrus", all[0].Name)

	ingredients, err := store.ListTags(ctx, str("ingredient"))
	require.NoError(t, err)
	require.Len(t, ingredients, 2)
	assert.Equal(t, "citrus", ingredients[0].Name)
	assert.Equal(t, "yuzu", ingredients[1].Name)
}
