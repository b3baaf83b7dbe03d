// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ludex/internal/view"
	"github.com/taibuivan/ludex/pkg/pagination"
)

func serve(t *testing.T, handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	request := httptest.NewRequest(method, target, strings.NewReader(body))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

type pageEnvelope struct {
	Data struct {
		Profile  string              `json:"profile"`
		Mode     view.Mode           `json:"mode"`
		Grouping view.GroupableField `json:"grouping"`
		Items    []view.Item         `json:"items"`
	} `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

func newViewRouter(t *testing.T) (http.Handler, *catalog, *memoryProfileStore) {
	t.Helper()

	source := newCatalog(t)
	store := newMemoryProfileStore()
	registry := newRegistry(t, source)
	return view.NewHandler(registry, store).Routes(), source, store
}

/*
TestHandler_ListProfiles verifies the running profile names.
*/
func TestHandler_ListProfiles(t *testing.T) {
	router, _, _ := newViewRouter(t)

	recorder := serve(t, router, http.MethodGet, "/", "")

	require.Equal(t, http.StatusOK, recorder.Code)
	var envelope struct {
		Data []string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, []string{view.ProfileDesktop, view.ProfileFullscreen}, envelope.Data)
}

/*
TestHandler_GetView verifies pagination of the visible entries.
*/
func TestHandler_GetView(t *testing.T) {
	router, source, _ := newViewRouter(t)
	source.add(game("Alpha"), game("Bravo"), game("Charlie"))

	recorder := serve(t, router, http.MethodGet, "/desktop?page=2&limit=2", "")

	require.Equal(t, http.StatusOK, recorder.Code)
	var envelope pageEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))

	assert.Equal(t, view.ProfileDesktop, envelope.Data.Profile)
	assert.Equal(t, view.ModeStandard, envelope.Data.Mode)
	require.Len(t, envelope.Data.Items, 1)
	assert.Equal(t, "Alpha", envelope.Data.Items[0].Name)
	assert.Equal(t, 3, envelope.Meta.Total)
	assert.Equal(t, 2, envelope.Meta.TotalPages)

	// Past the last page
	recorder = serve(t, router, http.MethodGet, "/desktop?page=9&limit=2", "")
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Empty(t, envelope.Data.Items)
}

/*
TestHandler_UnknownProfile verifies the 404 on every profile route.
*/
func TestHandler_UnknownProfile(t *testing.T) {
	router, _, _ := newViewRouter(t)

	for _, target := range []string{"/tablet", "/tablet/settings", "/tablet/filter"} {
		recorder := serve(t, router, http.MethodGet, target, "")
		assert.Equal(t, http.StatusNotFound, recorder.Code, target)
	}
}

/*
TestHandler_UpdateSettings verifies that new settings are applied and stored.
*/
func TestHandler_UpdateSettings(t *testing.T) {
	router, source, store := newViewRouter(t)
	source.add(game("Alpha"), game("Bravo"))

	body := `{"sorting_order":"name","sorting_order_direction":"desc","grouping_order":"none"}`
	recorder := serve(t, router, http.MethodPut, "/desktop/settings", body)
	require.Equal(t, http.StatusOK, recorder.Code)

	// 1. Persisted
	stored, ok := store.records[view.ProfileDesktop]
	require.True(t, ok)
	assert.Equal(t, view.Descending, stored.View.SortingOrderDirection)

	// 2. Applied before the next read
	recorder = serve(t, router, http.MethodGet, "/desktop", "")
	var envelope pageEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data.Items, 2)
	assert.Equal(t, "Alpha", envelope.Data.Items[0].Name)
}

/*
TestHandler_UpdateSettings_Invalid verifies that unknown values are rejected
and nothing is stored.
*/
func TestHandler_UpdateSettings_Invalid(t *testing.T) {
	router, _, store := newViewRouter(t)

	body := `{"sorting_order":"name","sorting_order_direction":"asc","grouping_order":"mood"}`
	recorder := serve(t, router, http.MethodPut, "/desktop/settings", body)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Empty(t, store.records)
}

/*
TestHandler_UpdateFilter verifies that the filter is applied and stored.
*/
func TestHandler_UpdateFilter(t *testing.T) {
	router, source, store := newViewRouter(t)
	source.add(game("Alpha"), game("Bravo"))

	recorder := serve(t, router, http.MethodPut, "/fullscreen/filter", `{"name":"brav"}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "brav", store.records[view.ProfileFullscreen].Filter.Name)

	recorder = serve(t, router, http.MethodGet, "/fullscreen", "")
	var envelope pageEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data.Items, 1)
	assert.Equal(t, "Bravo", envelope.Data.Items[0].Name)

	recorder = serve(t, router, http.MethodGet, "/fullscreen/filter", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
}

/*
TestHandler_UpdateFilter_StoreFailure verifies that a failed save is
reported and the live view keeps its previous filter.
*/
func TestHandler_UpdateFilter_StoreFailure(t *testing.T) {
	router, source, store := newViewRouter(t)
	source.add(game("Alpha"), game("Bravo"))
	store.err = errors.New("connection refused")

	recorder := serve(t, router, http.MethodPut, "/fullscreen/filter", `{"name":"brav"}`)
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)

	// 1. The view is unfiltered
	recorder = serve(t, router, http.MethodGet, "/fullscreen", "")
	var envelope pageEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data.Items, 2)

	// 2. The profile still reports the old criteria
	recorder = serve(t, router, http.MethodGet, "/fullscreen/filter", "")
	var filter struct {
		Data view.FilterSettings `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &filter))
	assert.Empty(t, filter.Data.Name)
}
