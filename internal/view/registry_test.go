// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ludex/internal/platform/apperr"
	"github.com/taibuivan/ludex/internal/view"
)

func newRegistry(t *testing.T, source view.Source) *view.Registry {
	t.Helper()

	registry := view.NewRegistry(discardLogger())
	require.NoError(t, registry.Start(source,
		newProfile(t, view.ProfileFullscreen, view.DefaultViewSettings()),
		newProfile(t, view.ProfileDesktop, view.DefaultViewSettings()),
	))
	t.Cleanup(registry.Close)
	return registry
}

/*
TestRegistry_Start verifies registration and lookup by profile name.
*/
func TestRegistry_Start(t *testing.T) {
	registry := newRegistry(t, newCatalog(t))

	assert.Equal(t, []string{view.ProfileDesktop, view.ProfileFullscreen}, registry.Names())

	engine, err := registry.Get(view.ProfileDesktop)
	require.NoError(t, err)
	assert.Equal(t, view.ProfileDesktop, engine.Name())

	_, err = registry.Get("tablet")
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

/*
TestRegistry_Start_Duplicate verifies that a failed start leaves nothing running.
*/
func TestRegistry_Start_Duplicate(t *testing.T) {
	registry := view.NewRegistry(discardLogger())
	defer registry.Close()

	err := registry.Start(newCatalog(t),
		newProfile(t, view.ProfileDesktop, view.DefaultViewSettings()),
		newProfile(t, view.ProfileDesktop, view.DefaultViewSettings()),
	)

	assert.True(t, apperr.IsCode(err, apperr.CodeConflict))
	assert.Empty(t, registry.Names())
}

/*
TestRegistry_DeferRefresh verifies that one batch spans every view.
*/
func TestRegistry_DeferRefresh(t *testing.T) {
	source := newCatalog(t)
	registry := newRegistry(t, source)

	end, err := registry.DeferRefresh(context.Background())
	require.NoError(t, err)

	source.add(game("One"), game("Two"))
	end()

	for _, name := range registry.Names() {
		engine, err := registry.Get(name)
		require.NoError(t, err)
		assert.Len(t, snapshotNames(t, engine), 2, name)
	}
}

/*
TestRegistry_Close verifies that closing empties the registry.
*/
func TestRegistry_Close(t *testing.T) {
	registry := newRegistry(t, newCatalog(t))

	registry.Close()

	assert.Empty(t, registry.Names())
}
