// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the error type shared by the catalogue, view and
metadata layers and rendered by the respond package.

An [AppError] pairs an HTTP status with a stable machine-readable code and
a message that is safe to show to a client. The underlying cause stays on
the server:

	return apperr.Internal(fmt.Errorf("library: insert games: %w", err))
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Machine-readable error codes.
const (
	CodeNotFound      = "NOT_FOUND"
	CodeConflict      = "CONFLICT"
	CodeValidation    = "VALIDATION_ERROR"
	CodeRateLimited   = "RATE_LIMITED"
	CodeUnprocessable = "UNPROCESSABLE"
	CodeInternal      = "INTERNAL_ERROR"
	CodeUpstream      = "UPSTREAM_ERROR"
)

// AppError is an error with an HTTP rendering.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int

	// Details lists per-field failures of a VALIDATION_ERROR.
	Details []FieldError

	// Cause is logged but never serialized.
	Cause error
}

// FieldError is one failed field of a VALIDATION_ERROR.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap exposes the cause to [errors.Is] and [errors.As].
func (e *AppError) Unwrap() error { return e.Cause }

func newError(status int, code, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

// # Client Errors (4xx)

// NotFound reports a missing resource: NotFound("Game") reads "Game not found".
func NotFound(resource string) *AppError {
	return newError(http.StatusNotFound, CodeNotFound, resource+" not found")
}

// Conflict reports a duplicate or otherwise conflicting write.
func Conflict(message string) *AppError {
	return newError(http.StatusConflict, CodeConflict, message)
}

// ValidationError reports invalid input, optionally per field.
func ValidationError(message string, details ...FieldError) *AppError {
	err := newError(http.StatusBadRequest, CodeValidation, message)
	err.Details = details
	return err
}

// Unprocessable reports well-formed input that references missing state.
func Unprocessable(message string) *AppError {
	return newError(http.StatusUnprocessableEntity, CodeUnprocessable, message)
}

// RateLimited reports an exhausted rate limit bucket.
func RateLimited(retryAfterSeconds int) *AppError {
	return newError(http.StatusTooManyRequests, CodeRateLimited,
		fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds))
}

// # Server Errors (5xx)

// Internal wraps an unexpected failure behind a generic message.
func Internal(cause error) *AppError {
	err := newError(http.StatusInternalServerError, CodeInternal, "An unexpected error occurred")
	err.Cause = cause
	return err
}

// Upstream reports a failure of the remote metadata service.
func Upstream(cause error) *AppError {
	err := newError(http.StatusBadGateway, CodeUpstream, "The metadata service is unavailable")
	err.Cause = cause
	return err
}

// # Inspection

// As returns the [AppError] in err's chain, or nil.
func As(err error) *AppError {
	var appError *AppError
	if errors.As(err, &appError) {
		return appError
	}
	return nil
}

// IsCode reports whether err's chain carries an [AppError] with code.
func IsCode(err error, code string) bool {
	appError := As(err)
	return appError != nil && appError.Code == code
}
