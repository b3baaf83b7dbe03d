// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ludex/internal/view"
)

/*
TestLoop_Order verifies that tasks run one at a time in submission order.
*/
func TestLoop_Order(t *testing.T) {
	loop := view.NewLoop(discardLogger())
	defer loop.Close()

	var order []int
	for i := range 100 {
		require.True(t, loop.Post(func() { order = append(order, i) }))
	}
	require.NoError(t, loop.Do(context.Background(), func() {}))

	require.Len(t, order, 100)
	for i, value := range order {
		assert.Equal(t, i, value)
	}
}

/*
TestLoop_Panic verifies that a panicking task does not stop the loop.
*/
func TestLoop_Panic(t *testing.T) {
	loop := view.NewLoop(discardLogger())
	defer loop.Close()

	loop.Post(func() { panic("boom") })

	ran := false
	require.NoError(t, loop.Do(context.Background(), func() { ran = true }))
	assert.True(t, ran)
}

/*
TestLoop_Close verifies that queued work drains and later work is refused.
*/
func TestLoop_Close(t *testing.T) {
	loop := view.NewLoop(discardLogger())

	done := 0
	for range 10 {
		loop.Post(func() { done++ })
	}
	loop.Close()
	loop.Close()

	assert.Equal(t, 10, done)
	assert.False(t, loop.Post(func() {}))
	assert.ErrorIs(t, loop.Do(context.Background(), func() {}), view.ErrLoopClosed)
}

/*
TestLoop_DoContext verifies that Do gives up when its context expires.
*/
func TestLoop_DoContext(t *testing.T) {
	loop := view.NewLoop(discardLogger())
	defer loop.Close()

	release := make(chan struct{})
	loop.Post(func() { <-release })
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := loop.Do(ctx, func() {})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
