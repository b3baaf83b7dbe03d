// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ludex/internal/view"
)

// settingsGate holds the first view settings notification until released.
type settingsGate struct {
	once     sync.Once
	entered  chan struct{}
	released chan struct{}

	mu   sync.Mutex
	seen []view.SortOrder
}

func (g *settingsGate) ViewSettingsChanged(settings view.ViewSettings) {
	g.once.Do(func() {
		close(g.entered)
		<-g.released
	})

	g.mu.Lock()
	defer g.mu.Unlock()
	g.seen = append(g.seen, settings.SortingOrder)
}

func (g *settingsGate) FilterSettingsChanged(view.FilterSettings) {}

/*
TestProfile_SetView verifies that unchanged settings are not re-announced
and that invalid ones are rejected.
*/
func TestProfile_SetView(t *testing.T) {
	profile, err := view.NewProfile(view.ProfileDesktop, view.DefaultViewSettings(), view.FilterSettings{})
	require.NoError(t, err)

	events := &settingsGate{entered: make(chan struct{}), released: make(chan struct{})}
	close(events.released)
	profile.Subscribe(events)

	// 1. Same value
	require.NoError(t, profile.SetView(view.DefaultViewSettings()))
	assert.Empty(t, events.seen)

	// 2. New value
	require.NoError(t, profile.SetView(settings(view.SortPlatform, view.Ascending, view.GroupNone)))
	assert.Equal(t, []view.SortOrder{view.SortPlatform}, events.seen)

	// 3. Invalid value
	require.Error(t, profile.SetView(settings("bogus", view.Ascending, view.GroupNone)))
	assert.Equal(t, view.SortPlatform, profile.View().SortingOrder)
}

/*
TestProfile_ConcurrentWriters verifies that listeners observe settings in
the order they were stored, even when a listener is slow.
*/
func TestProfile_ConcurrentWriters(t *testing.T) {
	profile, err := view.NewProfile(view.ProfileDesktop, view.DefaultViewSettings(), view.FilterSettings{})
	require.NoError(t, err)

	events := &settingsGate{entered: make(chan struct{}), released: make(chan struct{})}
	profile.Subscribe(events)

	// 1. The first writer is stuck inside its listener
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, profile.SetView(settings(view.SortPlatform, view.Ascending, view.GroupNone)))
	}()
	<-events.entered

	// 2. The second writer waits for the first to finish notifying
	secondDone := make(chan struct{})
	go func() {
		defer close(secondDone)
		assert.NoError(t, profile.SetView(settings(view.SortSeries, view.Ascending, view.GroupNone)))
	}()
	assert.Never(t, func() bool {
		select {
		case <-secondDone:
			return true
		default:
			return false
		}
	}, 50*time.Millisecond, 5*time.Millisecond)

	close(events.released)
	wg.Wait()
	<-secondDone

	// 3. Stored value and last notification agree
	assert.Equal(t, view.SortSeries, profile.View().SortingOrder)
	assert.Equal(t, []view.SortOrder{view.SortPlatform, view.SortSeries}, events.seen)
}
