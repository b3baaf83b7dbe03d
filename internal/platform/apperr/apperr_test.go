// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ludex/internal/platform/apperr"
)

/* TestConstructors verifies the status and code of every constructor. */
func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *apperr.AppError
		status int
		code   string
	}{
		{"NotFound", apperr.NotFound("Game"), http.StatusNotFound, apperr.CodeNotFound},
		{"Conflict", apperr.Conflict("Game already exists"), http.StatusConflict, apperr.CodeConflict},
		{"Validation", apperr.ValidationError("Validation failed"), http.StatusBadRequest, apperr.CodeValidation},
		{"Unprocessable", apperr.Unprocessable("Unknown genre"), http.StatusUnprocessableEntity, apperr.CodeUnprocessable},
		{"RateLimited", apperr.RateLimited(2), http.StatusTooManyRequests, apperr.CodeRateLimited},
		{"Internal", apperr.Internal(nil), http.StatusInternalServerError, apperr.CodeInternal},
		{"Upstream", apperr.Upstream(nil), http.StatusBadGateway, apperr.CodeUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}

	assert.Equal(t, "Game not found", apperr.NotFound("Game").Error())
}

/* TestInspection verifies lookups through wrapped chains. */
func TestInspection(t *testing.T) {
	cause := errors.New("connection reset")
	wrapped := fmt.Errorf("load catalogue: %w", apperr.Internal(cause))

	// 1. Found through fmt wrapping
	appError := apperr.As(wrapped)
	require.NotNil(t, appError)
	assert.True(t, apperr.IsCode(wrapped, apperr.CodeInternal))
	assert.ErrorIs(t, wrapped, cause)

	// 2. Plain errors carry no code
	assert.Nil(t, apperr.As(cause))
	assert.False(t, apperr.IsCode(cause, apperr.CodeInternal))
}
