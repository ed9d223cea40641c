// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjuju98/the-baking-atlas/internal/api"
	"github.com/arjuju98/the-baking-atlas/internal/core/country"
	"github.com/arjuju98/the-baking-atlas/internal/core/story"
	"github.com/arjuju98/the-baking-atlas/internal/core/tag"
	"github.com/arjuju98/the-baking-atlas/internal/platform/config"
	"github.com/arjuju98/the-baking-atlas/internal/platform/metrics"
	"github.com/arjuju98/the-baking-atlas/internal/platform/sqlite/sqlitetest"
)

func newServer(t *testing.T, checkStore func(context.Context) error) http.Handler {
	t.Helper()
	store := sqlitetest.Open(t)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	cfg, err := config.LoadFromMap(map[string]string{})
	require.NoError(t, err)

	if checkStore == nil {
		checkStore = store.Ping
	}
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{StoreName: "sqlite", CheckStore: checkStore}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	server := api.NewServer(ctx, cfg, logger, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Metrics:   metrics.New(),
		Country:   country.NewHandler(country.NewService(store, logger)),
		Story:     story.NewHandler(story.NewService(store, logger)),
		Tag:       tag.NewHandler(tag.NewService(store, logger)),
	})
	return server.Handler()
}

func send(handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestProbes covers liveness, readiness in both states and the metrics endpoint.
*/
func TestProbes(t *testing.T) {
	handler := newServer(t, nil)

	assert.Equal(t, http.StatusOK, send(handler, http.MethodGet, "/health", "").Code)

	recorder := send(handler, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"ready"`)

	recorder = send(handler, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "baking_atlas_http_requests_total")

	degraded := newServer(t, func(context.Context) error { return errors.New("disk gone") })
	recorder = send(degraded, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"degraded"`)
}

/*
TestCatalogFlow walks the main scenario through the full middleware chain.
*/
func TestCatalogFlow(t *testing.T) {
	handler := newServer(t, nil)

	steps := []struct {
		method string
		target string
		body   string
		status int
	}{
		{http.MethodPost, "/api/v1/countries", `{"name":"Japan","code":"jp"}`, http.StatusCreated},
		{http.MethodPost, "/api/v1/countries", `{"name":"Japan","code":"JP"}`, http.StatusConflict},
		{http.MethodPost, "/api/v1/tags", `{"name":"Matcha","tag_type":"ingredient"}`, http.StatusCreated},
		{http.MethodPost, "/api/v1/stories", `{"title":"Matcha Swiss Roll","body":"b","region_codes":["JP"],"tag_names":["matcha"]}`, http.StatusCreated},
		{http.MethodPost, "/api/v1/stories", `{"title":"Elsewhere","body":"b","region_codes":["ZZ"]}`, http.StatusUnprocessableEntity},
		{http.MethodGet, "/api/v1/stories?region=jp&tag=MATCHA", "", http.StatusOK},
		{http.MethodDelete, "/api/v1/countries/JP", "", http.StatusNoContent},
		{http.MethodGet, "/api/v1/stories/matcha-swiss-roll", "", http.StatusOK},
		{http.MethodGet, "/api/v1/nothing", "", http.StatusNotFound},
	}

	for _, step := range steps {
		recorder := send(handler, step.method, step.target, step.body)
		assert.Equal(t, step.status, recorder.Code, "%s %s: %s", step.method, step.target, recorder.Body.String())
		assert.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
	}

	recorder := send(handler, http.MethodGet, "/api/v1/tags", "")
	assert.Equal(t, 1, strings.Count(recorder.Body.String(), `"matcha"`))
}
