// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ludex/internal/api"
)

type readyBody struct {
	Data struct {
		Status string `json:"status"`
		Checks []struct {
			Name  string `json:"name"`
			OK    bool   `json:"ok"`
			Error string `json:"error"`
		} `json:"checks"`
	} `json:"data"`
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func healthy(context.Context) error { return nil }

/* TestLiveness verifies that liveness never depends on the checkers. */
func TestLiveness(t *testing.T) {
	liveness, _ := api.NewHealthHandlers(map[string]api.Checker{
		"postgres": func(context.Context) error { return errors.New("down") },
	}, discardLogger())

	recorder := httptest.NewRecorder()
	liveness(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
}

/* TestReadiness verifies the ready and degraded reports. */
func TestReadiness(t *testing.T) {
	// 1. All dependencies healthy
	_, readiness := api.NewHealthHandlers(map[string]api.Checker{
		"redis":    healthy,
		"postgres": healthy,
	}, discardLogger())

	recorder := httptest.NewRecorder()
	readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	var body readyBody
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "ready", body.Data.Status)
	require.Len(t, body.Data.Checks, 2)
	assert.Equal(t, "postgres", body.Data.Checks[0].Name)
	assert.Equal(t, "redis", body.Data.Checks[1].Name)

	// 2. One dependency down
	_, readiness = api.NewHealthHandlers(map[string]api.Checker{
		"postgres": healthy,
		"redis":    func(context.Context) error { return errors.New("connection refused") },
	}, discardLogger())

	recorder = httptest.NewRecorder()
	readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	body = readyBody{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Data.Status)
	assert.True(t, body.Data.Checks[0].OK)
	assert.False(t, body.Data.Checks[1].OK)
	assert.Equal(t, "connection refused", body.Data.Checks[1].Error)
}
