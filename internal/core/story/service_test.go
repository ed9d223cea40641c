// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package story_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjuju98/the-baking-atlas/internal/core/catalog"
	"github.com/arjuju98/the-baking-atlas/internal/core/story"
	"github.com/arjuju98/the-baking-atlas/internal/core/tag"
	"github.com/arjuju98/the-baking-atlas/internal/platform/apperr"
	"github.com/arjuju98/the-baking-atlas/internal/platform/sqlite/sqlitetest"
	"github.com/arjuju98/the-baking-atlas/pkg/pointer"
)

// stepClock advances one minute per call so publication order is deterministic.
func stepClock() func() time.Time {
	current := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		current = current.Add(time.Minute)
		return current
	}
}

func newService(t *testing.T, countryCodes ...string) (*story.Service, catalog.Store) {
	t.Helper()
	store := sqlitetest.Open(t)
	for _, code := range countryCodes {
		require.NoError(t, store.InTx(context.Background(), func(tx catalog.Tx) error {
			return tx.InsertCountry(context.Background(), &catalog.Country{Name: "Country " + code, Code: code})
		}))
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return story.NewService(store, logger).WithClock(stepClock()), store
}

func regionCodes(s *catalog.Story) []string {
	codes := make([]string, len(s.Regions))
	for i, region := range s.Regions {
		codes[i] = region.Code
	}
	return codes
}

func tagNames(tags []catalog.Tag) []string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	return names
}

/*
TestCreateStory verifies associations are normalized, deduplicated and read back.
*/
func TestCreateStory(t *testing.T) {
	ctx := context.Background()
	service, _ := newService(t, "JP", "KR")

	created, err := service.CreateStory(ctx, story.CreateRequest{
		Title:       "Rice Cakes of the Korean Peninsula",
		Body:        "Steamed, pounded and shared.",
		TimeContext: pointer.To("historical"),
		RegionCodes: []string{"jp", "jp", " KR "},
		TagNames:    []string{"Rice", "rice", "festival"},
		ExtraData:   map[string]any{"reading_minutes": float64(6)},
	})
	require.NoError(t, err)

	assert.Equal(t, "rice-cakes-of-the-korean-peninsula", created.Slug)
	assert.ElementsMatch(t, []string{"JP", "KR"}, regionCodes(created))
	assert.ElementsMatch(t, []string{"rice", "festival"}, tagNames(created.Tags))
	assert.Equal(t, created.PublishedAt, created.UpdatedAt)

	loaded, err := service.GetStory(ctx, created.Slug)
	require.NoError(t, err)
	assert.Equal(t, created, loaded)
}

/*
TestCreateStoryFailures covers the errors that must leave nothing behind.
*/
func TestCreateStoryFailures(t *testing.T) {
	ctx := context.Background()
	service, store := newService(t, "JP")

	_, err := service.CreateStory(ctx, story.CreateRequest{Title: "Mochi", Body: "b"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		input story.CreateRequest
		code  string
	}{
		{"slug taken", story.CreateRequest{Title: "Other", Slug: pointer.To("mochi"), Body: "b"}, apperr.CodeConflict},
		{"derived slug taken", story.CreateRequest{Title: "MOCHI", Body: "b"}, apperr.CodeConflict},
		{"unknown region", story.CreateRequest{Title: "Far", Body: "b", RegionCodes: []string{"JP", "ZZ"}, TagNames: []string{"orphan"}}, apperr.CodeInvalidReference},
		{"missing title", story.CreateRequest{Body: "b"}, apperr.CodeValidation},
		{"missing body", story.CreateRequest{Title: "Empty"}, apperr.CodeValidation},
		{"bad time context", story.CreateRequest{Title: "When", Body: "b", TimeContext: pointer.To("someday")}, apperr.CodeValidation},
		{"blank tag name", story.CreateRequest{Title: "Blank", Body: "b", TagNames: []string{" "}}, apperr.CodeValidation},
		{"title without slug characters", story.CreateRequest{Title: "抹茶", Body: "b"}, apperr.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateStory(ctx, tt.input)
			assert.True(t, apperr.HasCode(err, tt.code), "got %v", err)
		})
	}

	// The failed creations stored neither stories nor tags.
	all, err := service.ListStories(ctx, catalog.StoryFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)

	tags, err := store.ListTags(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, tags)
}

/*
TestInvalidReferenceTarget verifies the error names the offending code.
*/
func TestInvalidReferenceTarget(t *testing.T) {
	service, _ := newService(t, "JP")

	_, err := service.CreateStory(context.Background(), story.CreateRequest{
		Title: "Lost", Body: "b", RegionCodes: []string{"zz"},
	})
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "ZZ", appError.Target.Value)
	assert.Equal(t, "Country", appError.Target.Resource)
}

/*
TestUpdateStoryAssociations covers the tri-state association lists.
*/
func TestUpdateStoryAssociations(t *testing.T) {
	ctx := context.Background()
	service, _ := newService(t, "JP", "KR", "CN")

	created, err := service.CreateStory(ctx, story.CreateRequest{
		Title: "Mooncakes", Body: "b",
		RegionCodes: []string{"CN", "JP"},
		TagNames:    []string{"festival"},
	})
	require.NoError(t, err)

	// 1. Omitted lists keep the links
	updated, err := service.UpdateStory(ctx, created.Slug, story.UpdateRequest{Title: pointer.To("Mooncakes Revisited")})
	require.NoError(t, err)
	assert.Equal(t, "Mooncakes Revisited", updated.Title)
	assert.ElementsMatch(t, []string{"CN", "JP"}, regionCodes(updated))
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	assert.Equal(t, created.PublishedAt, updated.PublishedAt)

	// 2. A provided list replaces
	updated, err = service.UpdateStory(ctx, created.Slug, story.UpdateRequest{RegionCodes: &[]string{"kr", "cn"}})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"CN", "KR"}, regionCodes(updated))
	assert.Equal(t, []string{"festival"}, tagNames(updated.Tags))

	// 3. An unknown code changes nothing
	_, err = service.UpdateStory(ctx, created.Slug, story.UpdateRequest{
		Title:       pointer.To("Should Not Stick"),
		RegionCodes: &[]string{"JP", "ZZ"},
	})
	assert.True(t, apperr.HasCode(err, apperr.CodeInvalidReference))

	loaded, err := service.GetStory(ctx, created.Slug)
	require.NoError(t, err)
	assert.Equal(t, "Mooncakes Revisited", loaded.Title)
	assert.ElementsMatch(t, []string{"CN", "KR"}, regionCodes(loaded))

	// 4. Empty lists clear
	updated, err = service.UpdateStory(ctx, created.Slug, story.UpdateRequest{
		RegionCodes: &[]string{},
		TagNames:    &[]string{},
	})
	require.NoError(t, err)
	assert.Empty(t, updated.Regions)
	assert.Empty(t, updated.Tags)
	assert.NotNil(t, updated.Regions)
}

/*
TestUpdateStoryScalars covers renames and clearing optional fields.
*/
func TestUpdateStoryScalars(t *testing.T) {
	ctx := context.Background()
	service, _ := newService(t)

	first, err := service.CreateStory(ctx, story.CreateRequest{Title: "Baklava", Body: "b", Summary: pointer.To("Layers")})
	require.NoError(t, err)
	_, err = service.CreateStory(ctx, story.CreateRequest{Title: "Kunafa", Body: "b"})
	require.NoError(t, err)

	// Same slug is a no-op rename.
	updated, err := service.UpdateStory(ctx, "baklava", story.UpdateRequest{Slug: pointer.To("baklava")})
	require.NoError(t, err)
	assert.Equal(t, first.ID, updated.ID)

	// Taken by another story.
	_, err = service.UpdateStory(ctx, "baklava", story.UpdateRequest{Slug: pointer.To("kunafa")})
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))

	// Rename and clear the summary.
	updated, err = service.UpdateStory(ctx, "baklava", story.UpdateRequest{
		Slug:    pointer.To("baklava-of-anatolia"),
		Summary: pointer.To(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "baklava-of-anatolia", updated.Slug)
	assert.Nil(t, updated.Summary)

	_, err = service.GetStory(ctx, "baklava")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	_, err = service.UpdateStory(ctx, "nowhere", story.UpdateRequest{Title: pointer.To("x")})
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	_, err = service.UpdateStory(ctx, "kunafa", story.UpdateRequest{Title: pointer.To("  ")})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

/*
TestSharedTagResolution verifies an explicitly created tag is reused by stories.
*/
func TestSharedTagResolution(t *testing.T) {
	ctx := context.Background()
	service, store := newService(t)
	tags := tag.NewService(store, slog.New(slog.NewTextHandler(io.Discard, nil)))

	citrus, err := tags.CreateTag(ctx, tag.CreateRequest{Name: "Citrus", TagType: pointer.To("flavor")})
	require.NoError(t, err)

	created, err := service.CreateStory(ctx, story.CreateRequest{Title: "Yuzu Tart", Body: "b", TagNames: []string{"citrus"}})
	require.NoError(t, err)
	require.Len(t, created.Tags, 1)
	assert.Equal(t, citrus.ID, created.Tags[0].ID)
	assert.Equal(t, "flavor", *created.Tags[0].TagType)

	all, err := tags.ListTags(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"citrus"}, tagNames(all))
}

/*
TestListStories verifies filters are normalized, ANDed and ordered newest first.
*/
func TestListStories(t *testing.T) {
	ctx := context.Background()
	service, _ := newService(t, "JP", "KR")

	create := func(title string, regions, tags []string) {
		_, err := service.CreateStory(ctx, story.CreateRequest{Title: title, Body: "b", RegionCodes: regions, TagNames: tags})
		require.NoError(t, err)
	}
	create("Matcha Roll", []string{"JP"}, []string{"matcha"})
	create("Hotteok", []string{"KR"}, []string{"street food"})
	create("Matcha Bingsu", []string{"KR", "JP"}, []string{"matcha", "summer"})

	tests := []struct {
		name   string
		filter catalog.StoryFilter
		want   []string
	}{
		{"all", catalog.StoryFilter{}, []string{"matcha-bingsu", "hotteok", "matcha-roll"}},
		{"region and tag", catalog.StoryFilter{Region: pointer.To("jp"), Tag: pointer.To(" MATCHA ")}, []string{"matcha-bingsu", "matcha-roll"}},
		{"region only", catalog.StoryFilter{Region: pointer.To("KR")}, []string{"matcha-bingsu", "hotteok"}},
		{"unknown tag", catalog.StoryFilter{Tag: pointer.To("nothing")}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stories, err := service.ListStories(ctx, tt.filter)
			require.NoError(t, err)

			got := make([]string, len(stories))
			for i, s := range stories {
				got[i] = s.Slug
			}
			assert.Equal(t, tt.want, got)
		})
	}

	stories, err := service.ListStories(ctx, catalog.StoryFilter{Tag: pointer.To("summer")})
	require.NoError(t, err)
	require.Len(t, stories, 1)
	assert.Len(t, stories[0].Regions, 2)
	assert.ElementsMatch(t, []string{"matcha", "summer"}, tagNames(stories[0].Tags))
}

/*
TestDeleteStory verifies links go with the story while countries and tags stay.
*/
func TestDeleteStory(t *testing.T) {
	ctx := context.Background()
	service, store := newService(t, "JP")

	_, err := service.CreateStory(ctx, story.CreateRequest{Title: "Dorayaki", Body: "b", RegionCodes: []string{"JP"}, TagNames: []string{"bean"}})
	require.NoError(t, err)

	require.NoError(t, service.DeleteStory(ctx, "dorayaki"))
	assert.True(t, apperr.HasCode(service.DeleteStory(ctx, "dorayaki"), apperr.CodeNotFound))

	_, err = store.CountryByCode(ctx, "JP")
	assert.NoError(t, err)
	_, err = store.TagByName(ctx, "bean")
	assert.NoError(t, err)
}
