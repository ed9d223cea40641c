// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package country_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjuju98/the-baking-atlas/internal/core/catalog"
	"github.com/arjuju98/the-baking-atlas/internal/core/country"
	"github.com/arjuju98/the-baking-atlas/internal/core/story"
	"github.com/arjuju98/the-baking-atlas/internal/platform/apperr"
	"github.com/arjuju98/the-baking-atlas/internal/platform/sqlite/sqlitetest"
	"github.com/arjuju98/the-baking-atlas/pkg/pointer"
)

type fixture struct {
	countries *country.Service
	stories   *story.Service
	store     catalog.Store
}

func newFixture(t *testing.T) fixture {
	store := sqlitetest.Open(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return fixture{
		countries: country.NewService(store, logger),
		stories:   story.NewService(store, logger),
		store:     store,
	}
}

/*
TestCreateCountry covers code normalization and case-insensitive conflicts.
*/
func TestCreateCountry(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.countries.CreateCountry(ctx, country.CreateRequest{
		Name: "Japan", Code: " jp ", Region: pointer.To("East Asia"),
	})
	require.NoError(t, err)
	assert.Equal(t, "JP", created.Code)
	assert.NotNil(t, created.BakedGoods)

	tests := []struct {
		name  string
		input country.CreateRequest
		code  string
	}{
		{"same code upper case", country.CreateRequest{Name: "Nippon", Code: "JP"}, apperr.CodeConflict},
		{"same code lower case", country.CreateRequest{Name: "Nippon", Code: "jp"}, apperr.CodeConflict},
		{"missing name", country.CreateRequest{Code: "KR"}, apperr.CodeValidation},
		{"code with digits", country.CreateRequest{Name: "Nowhere", Code: "K1"}, apperr.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.countries.CreateCountry(ctx, tt.input)
			assert.True(t, apperr.HasCode(err, tt.code), "got %v", err)
		})
	}

	list, err := f.countries.ListCountries(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

/*
TestUpdateCountry covers partial updates and code renames.
*/
func TestUpdateCountry(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.countries.CreateCountry(ctx, country.CreateRequest{Name: "Japan", Code: "JP", Overview: pointer.To("Islands")})
	require.NoError(t, err)
	_, err = f.countries.CreateCountry(ctx, country.CreateRequest{Name: "Korea", Code: "KR"})
	require.NoError(t, err)

	updated, err := f.countries.UpdateCountry(ctx, "jp", country.UpdateRequest{Region: pointer.To("East Asia")})
	require.NoError(t, err)
	assert.Equal(t, "Japan", updated.Name)
	assert.Equal(t, "Islands", *updated.Overview)
	assert.Equal(t, "East Asia", *updated.Region)

	_, err = f.countries.UpdateCountry(ctx, "JP", country.UpdateRequest{Code: pointer.To("kr")})
	assert.True(t, apperr.HasCode(err, apperr.CodeConflict))

	updated, err = f.countries.UpdateCountry(ctx, "JP", country.UpdateRequest{Code: pointer.To("jpn"), Overview: pointer.To("")})
	require.NoError(t, err)
	assert.Equal(t, "JPN", updated.Code)
	assert.Nil(t, updated.Overview)

	_, err = f.countries.GetCountry(ctx, "JP")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

/*
TestDeleteCountryCascade verifies owned rows and region links are removed
while the referencing story survives.
*/
func TestDeleteCountryCascade(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for _, input := range []country.CreateRequest{{Name: "Japan", Code: "JP"}, {Name: "Korea", Code: "KR"}} {
		_, err := f.countries.CreateCountry(ctx, input)
		require.NoError(t, err)
	}
	_, err := f.countries.AddBakedGood(ctx, "JP", country.BakedGoodRequest{Name: "Castella", Category: pointer.To("cake")})
	require.NoError(t, err)
	_, err = f.countries.AddIngredient(ctx, "JP", country.IngredientRequest{Name: "Mochiko"})
	require.NoError(t, err)
	_, err = f.stories.CreateStory(ctx, story.CreateRequest{Title: "Rice Flour", Body: "b", RegionCodes: []string{"JP", "KR"}})
	require.NoError(t, err)

	detail, err := f.countries.GetCountry(ctx, "jp")
	require.NoError(t, err)
	assert.Len(t, detail.BakedGoods, 1)
	assert.Len(t, detail.Ingredients, 1)
	require.Len(t, detail.Stories, 1)
	assert.Equal(t, "rice-flour", detail.Stories[0].Slug)

	require.NoError(t, f.countries.DeleteCountry(ctx, "jp"))

	_, err = f.countries.GetCountry(ctx, "JP")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	assert.True(t, apperr.HasCode(f.countries.DeleteCountry(ctx, "JP"), apperr.CodeNotFound))

	survivor, err := f.stories.GetStory(ctx, "rice-flour")
	require.NoError(t, err)
	require.Len(t, survivor.Regions, 1)
	assert.Equal(t, "KR", survivor.Regions[0].Code)

	goods, err := f.store.BakedGoodsByCountry(ctx, detail.ID)
	require.NoError(t, err)
	assert.Empty(t, goods)
}

/*
TestItemOwnership verifies items are only reachable through their own country.
*/
func TestItemOwnership(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for _, input := range []country.CreateRequest{{Name: "France", Code: "FR"}, {Name: "Italy", Code: "IT"}} {
		_, err := f.countries.CreateCountry(ctx, input)
		require.NoError(t, err)
	}

	good, err := f.countries.AddBakedGood(ctx, "FR", country.BakedGoodRequest{Name: "Canele", Description: pointer.To("Rum and vanilla")})
	require.NoError(t, err)
	ingredient, err := f.countries.AddIngredient(ctx, "IT", country.IngredientRequest{Name: "Ricotta"})
	require.NoError(t, err)

	// 1. Wrong owner
	_, err = f.countries.UpdateBakedGood(ctx, "IT", good.ID, country.BakedGoodUpdate{Name: pointer.To("Stolen")})
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
	assert.True(t, apperr.HasCode(f.countries.DeleteIngredient(ctx, "FR", ingredient.ID), apperr.CodeNotFound))

	// 2. Right owner
	updated, err := f.countries.UpdateBakedGood(ctx, "fr", good.ID, country.BakedGoodUpdate{
		Category:    pointer.To("pastry"),
		Description: pointer.To(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "Canele", updated.Name)
	assert.Equal(t, "pastry", *updated.Category)
	assert.Nil(t, updated.Description)

	renamed, err := f.countries.UpdateIngredient(ctx, "IT", ingredient.ID, country.IngredientUpdate{Name: pointer.To("Ricotta di bufala")})
	require.NoError(t, err)
	assert.Equal(t, "Ricotta di bufala", renamed.Name)

	require.NoError(t, f.countries.DeleteBakedGood(ctx, "FR", good.ID))
	assert.True(t, apperr.HasCode(f.countries.DeleteBakedGood(ctx, "FR", good.ID), apperr.CodeNotFound))

	// 3. Unknown country
	_, err = f.countries.AddBakedGood(ctx, "ZZ", country.BakedGoodRequest{Name: "Ghost"})
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}
