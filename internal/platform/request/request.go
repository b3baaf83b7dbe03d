// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package requestutil decodes request bodies and typed chi path parameters
// into values or VALIDATION_ERROR responses.
package requestutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/taibuivan/ludex/internal/platform/apperr"
	"github.com/taibuivan/ludex/internal/platform/constants"
	"github.com/taibuivan/ludex/internal/platform/validate"
)

// ErrInvalidJSON is returned when the body is not valid JSON for the target.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

/*
DecodeJSON decodes the request body into target.

Description: Bodies are capped at constants.MaxRequestBody. An empty body is
reported separately from a malformed one.

Returns:
  - error: VALIDATION_ERROR on an empty, oversized or malformed body
*/
func DecodeJSON(request *http.Request, target any) error {
	body := http.MaxBytesReader(nil, request.Body, constants.MaxRequestBody)

	err := json.NewDecoder(body).Decode(target)
	if err == nil {
		return nil
	}

	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, io.EOF):
		return validate.Invalid("body", "Request body is required")
	case errors.As(err, &tooLarge):
		return validate.Invalid("body", "Request body is too large")
	default:
		return ErrInvalidJSON
	}
}

// Param returns the raw path parameter.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// UUID parses a path parameter as a UUID.
func UUID(request *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(request, name))
	if err != nil {
		return uuid.Nil, validate.Invalid(name, "Must be a valid UUID")
	}
	return id, nil
}

// Uint64 parses a path parameter as a positive integer id.
func Uint64(request *http.Request, name string) (uint64, error) {
	id, err := strconv.ParseUint(chi.URLParam(request, name), 10, 64)
	if err != nil || id == 0 {
		return 0, validate.Invalid(name, "Must be a positive integer")
	}
	return id, nil
}
