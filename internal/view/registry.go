// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/taibuivan/ludex/internal/platform/apperr"
)

// # Engine Registry

// Registry owns one [Engine] per profile name.
type Registry struct {
	mu      sync.RWMutex
	engines map[string]*Engine
	logger  *slog.Logger
}

// NewRegistry constructs an empty [Registry].
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{engines: make(map[string]*Engine), logger: logger}
}

/*
Start builds and registers an engine for every profile.

Description: On failure the engines started so far are closed and the
registry is left empty.

Parameters:
  - source: Source
  - profiles: []*Profile

Returns:
  - error: Invalid profile settings or a duplicate profile name
*/
func (registry *Registry) Start(source Source, profiles ...*Profile) error {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	started := make([]*Engine, 0, len(profiles))
	fail := func(err error) error {
		for _, engine := range started {
			engine.Close()
			delete(registry.engines, engine.Name())
		}
		return err
	}

	for _, profile := range profiles {
		if _, exists := registry.engines[profile.Name()]; exists {
			return fail(apperr.Conflict(fmt.Sprintf("View profile %q is already running", profile.Name())))
		}

		engine, err := NewEngine(source, profile, registry.logger)
		if err != nil {
			return fail(err)
		}
		registry.engines[profile.Name()] = engine
		started = append(started, engine)
	}
	return nil
}

// Get returns the engine of the named profile.
func (registry *Registry) Get(name string) (*Engine, error) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	engine, ok := registry.engines[name]
	if !ok {
		return nil, apperr.NotFound("View profile")
	}
	return engine, nil
}

// Names returns the registered profile names in lexical order.
func (registry *Registry) Names() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	names := make([]string, 0, len(registry.engines))
	for name := range registry.engines {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

/*
DeferRefresh opens a batch on every registered view.

Description: Used around bulk catalogue imports so each view recomputes once
when the import finishes instead of once per game.

Returns:
  - func(): Ends every batch opened here
  - error: The loop of a view was closed or ctx expired; batches already
    opened are ended before returning
*/
func (registry *Registry) DeferRefresh(ctx context.Context) (end func(), err error) {
	registry.mu.RLock()
	engines := make([]*Engine, 0, len(registry.engines))
	for _, engine := range registry.engines {
		engines = append(engines, engine)
	}
	registry.mu.RUnlock()

	ends := make([]func(), 0, len(engines))
	endAll := func() {
		for _, end := range ends {
			end()
		}
	}

	for _, engine := range engines {
		end, err := engine.DeferRefresh(ctx)
		if err != nil {
			endAll()
			return nil, err
		}
		ends = append(ends, end)
	}
	return endAll, nil
}

// Close stops every engine.
func (registry *Registry) Close() {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	for name, engine := range registry.engines {
		engine.Close()
		delete(registry.engines, name)
	}
}
