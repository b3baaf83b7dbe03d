// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ludex/internal/platform/apperr"
	"github.com/taibuivan/ludex/internal/view"
)

// memoryProfileStore is an in-memory [view.ProfileStore].
type memoryProfileStore struct {
	records map[string]view.ProfileRecord
	err     error
}

func newMemoryProfileStore() *memoryProfileStore {
	return &memoryProfileStore{records: make(map[string]view.ProfileRecord)}
}

func (store *memoryProfileStore) Load(_ context.Context, name string) (*view.ProfileRecord, error) {
	if store.err != nil {
		return nil, store.err
	}
	record, ok := store.records[name]
	if !ok {
		return nil, apperr.NotFound("View profile")
	}
	return &record, nil
}

func (store *memoryProfileStore) Save(_ context.Context, name string, record view.ProfileRecord) error {
	if store.err != nil {
		return store.err
	}
	store.records[name] = record
	return nil
}

/*
TestLoadProfile_Missing verifies that a fresh profile uses the defaults.
*/
func TestLoadProfile_Missing(t *testing.T) {
	profile, err := view.LoadProfile(context.Background(), newMemoryProfileStore(), view.ProfileDesktop, discardLogger())

	require.NoError(t, err)
	assert.Equal(t, view.ProfileDesktop, profile.Name())
	assert.Equal(t, view.DefaultViewSettings(), profile.View())
	assert.False(t, profile.Filter().IsActive())
}

/*
TestLoadProfile_RoundTrip verifies that saved settings load back.
*/
func TestLoadProfile_RoundTrip(t *testing.T) {
	store := newMemoryProfileStore()
	ctx := context.Background()

	config := settings(view.SortPlaytime, view.Descending, view.GroupTag)
	profile, err := view.NewProfile(view.ProfileFullscreen, view.DefaultViewSettings(), view.FilterSettings{})
	require.NoError(t, err)
	require.NoError(t, profile.SaveView(ctx, store, config))
	require.NoError(t, profile.SaveFilter(ctx, store, view.FilterSettings{Favorite: true}))

	loaded, err := view.LoadProfile(ctx, store, view.ProfileFullscreen, discardLogger())

	require.NoError(t, err)
	assert.True(t, loaded.IsFullscreen())
	assert.Equal(t, config, loaded.View())
	assert.True(t, loaded.Filter().Favorite)
}

/*
TestLoadProfile_Invalid verifies that stale view settings are reset while the
filter survives.
*/
func TestLoadProfile_Invalid(t *testing.T) {
	store := newMemoryProfileStore()
	store.records[view.ProfileDesktop] = view.ProfileRecord{
		View:   settings("community_score", view.Ascending, view.GroupNone),
		Filter: view.FilterSettings{Name: "zelda"},
	}

	profile, err := view.LoadProfile(context.Background(), store, view.ProfileDesktop, discardLogger())

	require.NoError(t, err)
	assert.Equal(t, view.DefaultViewSettings(), profile.View())
	assert.Equal(t, "zelda", profile.Filter().Name)
}

/*
TestLoadProfile_StorageFailure verifies that other errors are returned.
*/
func TestLoadProfile_StorageFailure(t *testing.T) {
	store := newMemoryProfileStore()
	store.err = errors.New("connection refused")

	_, err := view.LoadProfile(context.Background(), store, view.ProfileDesktop, discardLogger())

	assert.Error(t, err)
}

/*
TestProfile_SaveFailure verifies that a rejected save leaves the live
profile untouched and notifies nobody.
*/
func TestProfile_SaveFailure(t *testing.T) {
	store := newMemoryProfileStore()
	store.err = errors.New("connection refused")
	ctx := context.Background()

	profile, err := view.NewProfile(view.ProfileDesktop, view.DefaultViewSettings(), view.FilterSettings{})
	require.NoError(t, err)
	events := &settingsGate{entered: make(chan struct{}), released: make(chan struct{})}
	close(events.released)
	profile.Subscribe(events)

	// 1. View settings
	require.Error(t, profile.SaveView(ctx, store, settings(view.SortPlaytime, view.Descending, view.GroupNone)))
	assert.Equal(t, view.DefaultViewSettings(), profile.View())

	// 2. Filter settings
	require.Error(t, profile.SaveFilter(ctx, store, view.FilterSettings{Name: "zelda"}))
	assert.Empty(t, profile.Filter().Name)

	assert.Empty(t, events.seen)
}
