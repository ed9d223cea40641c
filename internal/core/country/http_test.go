// Copyright (c) 2026 The Baking Atlas. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package country_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjuju98/the-baking-atlas/internal/core/catalog"
	"github.com/arjuju98/the-baking-atlas/internal/core/country"
)

/*
TestHandler drives the country routes and the nested item routes.
*/
func TestHandler(t *testing.T) {
	f := newFixture(t)
	router := chi.NewRouter()
	router.Route("/countries", country.NewHandler(f.countries).RegisterRoutes)

	send := func(method, target, body string) *httptest.ResponseRecorder {
		request := httptest.NewRequest(method, target, strings.NewReader(body))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)
		return recorder
	}

	require.Equal(t, http.StatusCreated, send(http.MethodPost, "/countries", `{"name":"Mexico","code":"mx","extra_data":{"capital":"CDMX"}}`).Code)
	assert.Equal(t, http.StatusConflict, send(http.MethodPost, "/countries", `{"name":"Mexico","code":"MX"}`).Code)

	recorder := send(http.MethodPost, "/countries/mx/baked-goods", `{"name":"Concha","category":"sweet bread"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)
	var created struct {
		Data catalog.BakedGood `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))

	target := fmt.Sprintf("/countries/MX/baked-goods/%d", created.Data.ID)
	assert.Equal(t, http.StatusOK, send(http.MethodPatch, target, `{"description":"Shell-patterned"}`).Code)
	assert.Equal(t, http.StatusBadRequest, send(http.MethodPatch, "/countries/MX/baked-goods/abc", `{}`).Code)

	recorder = send(http.MethodGet, "/countries/mx", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	var detail struct {
		Data catalog.Country `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &detail))
	assert.Equal(t, "CDMX", detail.Data.ExtraData["capital"])
	require.Len(t, detail.Data.BakedGoods, 1)
	assert.Equal(t, "Shell-patterned", *detail.Data.BakedGoods[0].Description)

	assert.Equal(t, http.StatusNoContent, send(http.MethodDelete, "/countries/MX", "").Code)
	assert.Equal(t, http.StatusNotFound, send(http.MethodGet, "/countries/MX", "").Code)
	assert.JSONEq(t, `{"data": []}`, send(http.MethodGet, "/countries", "").Body.String())
}
