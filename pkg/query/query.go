// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses list-valued URL query parameters.
package query

import (
	"strings"

	"github.com/google/uuid"
)

// StringSlice parses a single comma-separated query string
// into a trimmed slice of strings.
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}
	var res []string
	for _, v := range strings.Split(val, ",") {
		clean := strings.TrimSpace(v)
		if clean != "" {
			res = append(res, clean)
		}
	}
	return res
}

// UUIDSlice parses a comma-separated query string into UUIDs.
// Invalid entries are ignored safely.
func UUIDSlice(val string) []uuid.UUID {
	var res []uuid.UUID
	for _, v := range StringSlice(val) {
		if id, err := uuid.Parse(v); err == nil {
			res = append(res, id)
		}
	}
	return res
}
