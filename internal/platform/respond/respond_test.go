// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ludex/internal/platform/apperr"
	"github.com/taibuivan/ludex/internal/platform/respond"
	"github.com/taibuivan/ludex/pkg/pagination"
)

/* TestOK verifies the success envelope. */
func TestOK(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.OK(recorder, map[string]string{"name": "Celeste"})

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json; charset=utf-8", recorder.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"name":"Celeste"}}`, recorder.Body.String())
}

/* TestPaginated verifies that the meta block accompanies the page. */
func TestPaginated(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.Paginated(recorder, []int{1, 2}, pagination.Meta{Page: 1, Limit: 2, Total: 3, TotalPages: 2})

	assert.JSONEq(t, `{"data":[1,2],"meta":{"page":1,"limit":2,"total":3,"total_pages":2}}`, recorder.Body.String())
}

/* TestError verifies the rendering of application and unexpected errors. */
func TestError(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/api/v1/games", nil)

	// 1. Application error keeps its status and code
	recorder := httptest.NewRecorder()
	respond.Error(recorder, request, apperr.NotFound("Game"))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	var envelope respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, "Game not found", envelope.Error)
	assert.Equal(t, apperr.CodeNotFound, envelope.Code)

	// 2. Unknown error is hidden behind a 500
	recorder = httptest.NewRecorder()
	respond.Error(recorder, request, errors.New("connection reset by peer"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "connection reset")
}
