// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/ludex/pkg/pagination"
)

/* TestFromRequest verifies parsing and clamping of page parameters. */
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  pagination.Params
	}{
		{"Defaults", "", pagination.Params{Page: 1, Limit: pagination.DefaultLimit}},
		{"Explicit", "?page=3&limit=10", pagination.Params{Page: 3, Limit: 10}},
		{"Garbage", "?page=x&limit=y", pagination.Params{Page: 1, Limit: pagination.DefaultLimit}},
		{"NegativePage", "?page=-2", pagination.Params{Page: 1, Limit: pagination.DefaultLimit}},
		{"ZeroLimit", "?limit=0", pagination.Params{Page: 1, Limit: pagination.DefaultLimit}},
		{"HugeLimit", "?limit=100000", pagination.Params{Page: 1, Limit: pagination.MaxLimit}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/views/desktop"+tc.query, nil)
			assert.Equal(t, tc.want, pagination.FromRequest(request))
		})
	}
}

/* TestWindow verifies slicing of pages over an in-memory sequence. */
func TestWindow(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}

	// 1. Full page
	page, meta := pagination.Window(items, pagination.Params{Page: 1, Limit: 2})
	assert.Equal(t, []string{"a", "b"}, page)
	assert.Equal(t, pagination.Meta{Page: 1, Limit: 2, Total: 5, TotalPages: 3}, meta)

	// 2. Short last page
	page, _ = pagination.Window(items, pagination.Params{Page: 3, Limit: 2})
	assert.Equal(t, []string{"e"}, page)

	// 3. Past the end
	page, meta = pagination.Window(items, pagination.Params{Page: 9, Limit: 2})
	assert.Empty(t, page)
	assert.Equal(t, 5, meta.Total)
}
