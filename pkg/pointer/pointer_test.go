// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/ludex/pkg/pointer"
)

func TestFallback(t *testing.T) {
	assert.Equal(t, "stored", pointer.Fallback(nil, "stored"))
	assert.Equal(t, "patched", pointer.Fallback(pointer.To("patched"), "stored"))
	assert.False(t, pointer.Fallback(pointer.To(false), true))
}
