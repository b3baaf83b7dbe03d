// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"slices"
	"sync"

	"github.com/taibuivan/ludex/internal/platform/validate"
)

// Profile names. A fullscreen profile always renders in [ModeStandard].
const (
	ProfileDesktop    = "desktop"
	ProfileFullscreen = "fullscreen"
)

// Field identifiers used in validation errors.
const (
	FieldSortingOrder          = "sorting_order"
	FieldSortingOrderDirection = "sorting_order_direction"
	FieldGroupingOrder         = "grouping_order"
)

// # View Configuration

// ViewSettings is the sort and grouping configuration of a view.
type ViewSettings struct {
	SortingOrder          SortOrder      `json:"sorting_order"`
	SortingOrderDirection SortDirection  `json:"sorting_order_direction"`
	GroupingOrder         GroupableField `json:"grouping_order"`
}

// DefaultViewSettings returns the configuration of a fresh profile.
func DefaultViewSettings() ViewSettings {
	return ViewSettings{
		SortingOrder:          SortName,
		SortingOrderDirection: Ascending,
		GroupingOrder:         GroupNone,
	}
}

// Validate rejects unknown sort orders, directions and grouping fields.
func (s ViewSettings) Validate() error {
	validator := &validate.Validator{}
	validator.
		Custom(FieldSortingOrder, !s.SortingOrder.IsValid(), "Unknown sorting order").
		Custom(FieldGroupingOrder, !s.GroupingOrder.IsValid(), "Unknown grouping field")
	validate.OneOf(validator, FieldSortingOrderDirection, s.SortingOrderDirection, Ascending, Descending)
	return validator.Err()
}

// # Settings Collaborator

// SettingsListener receives profile change notifications.
type SettingsListener interface {
	ViewSettingsChanged(settings ViewSettings)
	FilterSettingsChanged(settings FilterSettings)
}

// Profile holds the current configuration of one named view.
//
// # Concurrency
//
// Profile is safe for concurrent use. Listeners run synchronously on the
// writer's goroutine after the lock is released. Writers are serialized
// together with their notifications, so listeners see changes in the order
// they were stored and must not write back into the Profile.
type Profile struct {
	name string

	// writeMu is held from the start of a write until its listeners return.
	writeMu sync.Mutex

	mu     sync.RWMutex
	view   ViewSettings
	filter FilterSettings

	listenersMu sync.Mutex
	listeners   map[int]SettingsListener
	nextID      int
}

// NewProfile constructs a [Profile] after validating its view settings.
func NewProfile(name string, view ViewSettings, filter FilterSettings) (*Profile, error) {
	if err := view.Validate(); err != nil {
		return nil, err
	}

	return &Profile{
		name:      name,
		view:      view,
		filter:    filter.Clone(),
		listeners: make(map[int]SettingsListener),
	}, nil
}

// Name returns the profile name.
func (p *Profile) Name() string { return p.name }

// IsFullscreen reports whether the profile drives a fullscreen view.
func (p *Profile) IsFullscreen() bool { return p.name == ProfileFullscreen }

// View returns the current view settings.
func (p *Profile) View() ViewSettings {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.view
}

// Filter returns a copy of the current filter settings.
func (p *Profile) Filter() FilterSettings {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.filter.Clone()
}

// SetView validates and stores new view settings. Listeners are notified
// only when the value changed.
func (p *Profile) SetView(settings ViewSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	p.setView(settings)
	return nil
}

// SetFilter stores new filter settings and notifies listeners.
func (p *Profile) SetFilter(settings FilterSettings) {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	p.setFilter(settings)
}

// setView and setFilter require writeMu.
func (p *Profile) setView(settings ViewSettings) {
	p.mu.Lock()
	changed := p.view != settings
	p.view = settings
	p.mu.Unlock()

	if changed {
		for _, listener := range p.snapshotListeners() {
			listener.ViewSettingsChanged(settings)
		}
	}
}

func (p *Profile) setFilter(settings FilterSettings) {
	p.mu.Lock()
	p.filter = settings.Clone()
	p.mu.Unlock()

	for _, listener := range p.snapshotListeners() {
		listener.FilterSettingsChanged(settings.Clone())
	}
}

// Subscribe registers listener and returns the function that removes it.
func (p *Profile) Subscribe(listener SettingsListener) (unsubscribe func()) {
	p.listenersMu.Lock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = listener
	p.listenersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.listenersMu.Lock()
			delete(p.listeners, id)
			p.listenersMu.Unlock()
		})
	}
}

func (p *Profile) snapshotListeners() []SettingsListener {
	p.listenersMu.Lock()
	defer p.listenersMu.Unlock()

	ids := make([]int, 0, len(p.listeners))
	for id := range p.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	listeners := make([]SettingsListener, 0, len(ids))
	for _, id := range ids {
		listeners = append(listeners, p.listeners[id])
	}
	return listeners
}
