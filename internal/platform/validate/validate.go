// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate collects field-level failures into a single
// VALIDATION_ERROR [apperr.AppError].
//
// A [Validator] is used by services and settings types, never by storage.
// Bulk payloads are validated element by element with [Validator.At], which
// prefixes field names with the element path ("games[3].name").
package validate

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/taibuivan/ludex/internal/platform/apperr"
)

// Validator accumulates failures through a chainable API. The zero value
// is ready to use. It is not safe for concurrent use.
type Validator struct {
	root   *Validator
	prefix string
	errs   []apperr.FieldError
}

// At returns a validator for element index of collection. Its failures
// are recorded on v with the element path prepended.
func (v *Validator) At(collection string, index int) *Validator {
	return &Validator{
		root:   v.owner(),
		prefix: fmt.Sprintf("%s%s[%d].", v.prefix, collection, index),
	}
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	return v.Custom(field, strings.TrimSpace(value) == "", "This field is required")
}

// MaxLen fails if value has more than max characters.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	return v.Custom(field, utf8.RuneCountInString(value) > max, fmt.Sprintf("Maximum %d characters", max))
}

// Custom records message for field when failed is true.
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		owner := v.owner()
		owner.errs = append(owner.errs, apperr.FieldError{Field: v.prefix + field, Message: message})
	}
	return v
}

// HasErrors reports whether any rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.owner().errs) > 0
}

// Err returns the accumulated failures as one VALIDATION_ERROR, or nil.
func (v *Validator) Err() error {
	owner := v.owner()
	if len(owner.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", owner.errs...)
}

func (v *Validator) owner() *Validator {
	if v.root != nil {
		return v.root
	}
	return v
}

// OneOf fails if value is not among allowed.
func OneOf[T ~string](v *Validator, field string, value T, allowed ...T) *Validator {
	if slices.Contains(allowed, value) {
		return v
	}

	names := make([]string, len(allowed))
	for i, item := range allowed {
		names[i] = string(item)
	}
	return v.Custom(field, true, "Must be one of: "+strings.Join(names, ", "))
}

// Invalid builds a single-field validation error.
func Invalid(field, message string) *apperr.AppError {
	return apperr.ValidationError("Validation failed", apperr.FieldError{Field: field, Message: message})
}
