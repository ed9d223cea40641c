// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tag_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjuju98/the-baking-atlas/internal/core/catalog"
	"github.com/arjuju98/the-baking-atlas/internal/core/tag"
	"github.com/arjuju98/the-baking-atlas/internal/platform/apperr"
	"github.com/arjuju98/the-baking-atlas/internal/platform/sqlite/sqlitetest"
	"github.com/arjuju98/the-baking-atlas/pkg/pointer"
)

func newService(t *testing.T) (*tag.Service, catalog.Store) {
	store := sqlitetest.Open(t)
	return tag.NewService(store, slog.New(slog.NewTextHandler(io.Discard, nil))), store
}

/*
TestResolveOrCreate verifies get-or-create across case variants and that the
stored classification wins over a differing proposal.
*/
func TestResolveOrCreate(t *testing.T) {
	ctx := context.Background()
	_, store := newService(t)

	var first, second *catalog.Tag
	require.NoError(t, store.InTx(ctx, func(tx catalog.Tx) error {
		var err error
		if first, err = tag.ResolveOrCreate(ctx, tx, "  Citrus ", pointer.To("flavor")); err != nil {
			return err
		}
		second, err = tag.ResolveOrCreate(ctx, tx, "CITRUS", pointer.To("ingredient"))
		return err
	}))

	assert.NotZero(t, first.ID)
	assert.Equal(t, "citrus", first.Name)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "flavor", *second.TagType)

	tags, err := store.ListTags(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}

/*
TestCreateTag covers validation, normalization and name conflicts.
*/
func TestCreateTag(t *testing.T) {
	ctx := context.Background()
	service, _ := newService(t)

	created, err := service.CreateTag(ctx, tag.CreateRequest{Name: "Matcha", TagType: pointer.To(" ingredient ")})
	require.NoError(t, err)
	assert.Equal(t, "matcha", created.Name)
	assert.Equal(t, "ingredient", *created.TagType)

	tests := []struct {
		name  string
		input tag.CreateRequest
		code  string
	}{
		{"duplicate in another case", tag.CreateRequest{Name: "MATCHA"}, apperr.CodeConflict},
		{"blank name", tag.CreateRequest{Name: "   "}, apperr.CodeValidation},
		{"name too long", tag.CreateRequest{Name: strings.Repeat("a", 65)}, apperr.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreateTag(ctx, tt.input)
			assert.True(t, apperr.HasCode(err, tt.code), "got %v", err)
		})
	}
}

/*
TestDeleteTag verifies the tag's story links are removed and the story survives.
*/
func TestDeleteTag(t *testing.T) {
	ctx := context.Background()
	service, store := newService(t)

	story := &catalog.Story{Title: "Yuzu", Slug: "yuzu", Body: "b"}
	require.NoError(t, store.InTx(ctx, func(tx catalog.Tx) error {
		if err := tx.InsertStory(ctx, story); err != nil {
			return err
		}
		yuzu, err := tag.ResolveOrCreate(ctx, tx, "yuzu", nil)
		if err != nil {
			return err
		}
		return tx.LinkTags(ctx, story.ID, []int64{yuzu.ID})
	}))

	require.NoError(t, service.DeleteTag(ctx, "YUZU"))

	loaded, err := store.StoryBySlug(ctx, "yuzu")
	require.NoError(t, err)
	links, err := store.TagsByStory(ctx, []int64{loaded.ID})
	require.NoError(t, err)
	assert.Empty(t, links[loaded.ID])

	err = service.DeleteTag(ctx, "yuzu")
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, apperr.CodeNotFound, appError.Code)
	assert.Equal(t, "yuzu", appError.Target.Value)
}

/*
TestHandler exercises the tag routes end to end.
*/
func TestHandler(t *testing.T) {
	service, _ := newService(t)
	router := chi.NewRouter()
	router.Route("/tags", tag.NewHandler(service).RegisterRoutes)

	send := func(method, target, body string) *httptest.ResponseRecorder {
		request := httptest.NewRequest(method, target, strings.NewReader(body))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)
		return recorder
	}

	assert.Equal(t, http.StatusCreated, send(http.MethodPost, "/tags", `{"name":"Rice","tag_type":"ingredient"}`).Code)
	assert.Equal(t, http.StatusCreated, send(http.MethodPost, "/tags", `{"name":"festival","tag_type":"occasion"}`).Code)
	assert.Equal(t, http.StatusConflict, send(http.MethodPost, "/tags", `{"name":"rice"}`).Code)
	assert.Equal(t, http.StatusBadRequest, send(http.MethodPost, "/tags", `{"name":"x","colour":"red"}`).Code)

	recorder := send(http.MethodGet, "/tags?tag_type=ingredient", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data []catalog.Tag `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "rice", envelope.Data[0].Name)

	assert.Equal(t, http.StatusNoContent, send(http.MethodDelete, "/tags/rice", "").Code)
	assert.Equal(t, http.StatusNotFound, send(http.MethodDelete, "/tags/rice", "").Code)
}
