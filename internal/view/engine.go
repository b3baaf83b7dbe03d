// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/taibuivan/ludex/internal/library"
	"github.com/taibuivan/ludex/pkg/slice"
)

// Source is a catalogue that can be projected and observed.
type Source interface {
	Catalog
	Subscribe(listener library.Listener) (unsubscribe func())
}

// # Engine

// Engine binds a [View] to its own [Loop], a catalogue [Source] and a
// [Profile].
//
// Catalogue and profile notifications may arrive on any goroutine; the
// engine posts them to the loop so the view only ever runs on one goroutine.
// Every exported method is safe for concurrent use.
type Engine struct {
	profile *Profile
	loop    *Loop
	view    *View
	logger  *slog.Logger

	unsubscribe []func()
	closeOnce   sync.Once
}

/*
NewEngine builds the view of profile over source and starts its loop.

Description: Subscriptions are registered before the initial snapshot is
read, and the loop is held until the view exists. Notifications racing with
construction are therefore replayed against a view that may already contain
their effect; the view's handlers are idempotent for that reason.

Parameters:
  - source: Source (catalogue to project)
  - profile: *Profile (sort, grouping and filter settings)
  - logger: *slog.Logger

Returns:
  - *Engine: Running engine
  - error: Invalid profile settings
*/
func NewEngine(source Source, profile *Profile, logger *slog.Logger) (*Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("profile", profile.Name()))

	loop := NewLoop(logger)
	ready := make(chan struct{})
	loop.Post(func() { <-ready })

	engine := &Engine{
		profile: profile,
		loop:    loop,
		logger:  logger,
	}

	engine.unsubscribe = []func(){
		source.Subscribe(catalogRelay{engine: engine}),
		profile.Subscribe(settingsRelay{engine: engine}),
	}

	view, err := New(source, profile.View(), profile.Filter(), Options{
		Name:       profile.Name(),
		Fullscreen: profile.IsFullscreen(),
		Logger:     logger,
	})
	if err != nil {
		for _, unsubscribe := range engine.unsubscribe {
			unsubscribe()
		}
		close(ready)
		loop.Close()
		return nil, err
	}

	engine.view = view
	close(ready)

	logger.Info("view_engine_started",
		slog.String("mode", string(view.Mode())),
		slog.Int("visible", view.Len()),
	)
	return engine, nil
}

// Name returns the profile name.
func (engine *Engine) Name() string { return engine.profile.Name() }

// Profile returns the settings collaborator driving the view.
func (engine *Engine) Profile() *Profile { return engine.profile }

// # Snapshots

// Item is the serialisable projection of one visible entry.
type Item struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Group        string     `json:"group,omitempty"`
	Library      string     `json:"library,omitempty"`
	Platform     string     `json:"platform,omitempty"`
	Series       string     `json:"series,omitempty"`
	Region       string     `json:"region,omitempty"`
	Source       string     `json:"source,omitempty"`
	AgeRating    string     `json:"age_rating,omitempty"`
	Genres       []string   `json:"genres"`
	Developers   []string   `json:"developers"`
	Publishers   []string   `json:"publishers"`
	Categories   []string   `json:"categories"`
	Tags         []string   `json:"tags"`
	ReleaseDate  *time.Time `json:"release_date,omitempty"`
	ReleaseYear  int        `json:"release_year,omitempty"`
	IsInstalled  bool       `json:"is_installed"`
	Hidden       bool       `json:"hidden"`
	Favorite     bool       `json:"favorite"`
	Playtime     uint64     `json:"playtime"`
	LastActivity *time.Time `json:"last_activity,omitempty"`
	Added        *time.Time `json:"added,omitempty"`
}

// Snapshot is a consistent copy of a view's visible sequence.
type Snapshot struct {
	Profile  string         `json:"profile"`
	Mode     Mode           `json:"mode"`
	Grouping GroupableField `json:"grouping"`
	Settings ViewSettings   `json:"settings"`
	Filter   FilterSettings `json:"filter"`
	Items    []Item         `json:"items"`
}

// NewItem projects entry under grouping.
func NewItem(entry *Entry, grouping GroupableField) Item {
	game := entry.Game.Clone()
	return Item{
		ID:           game.ID,
		Name:         game.Name,
		Group:        entry.Group(grouping),
		Library:      entry.Library(),
		Platform:     entry.Platform(),
		Series:       entry.Series(),
		Region:       entry.Region(),
		Source:       entry.Source(),
		AgeRating:    entry.AgeRating(),
		Genres:       entry.Genres(),
		Developers:   entry.Developers(),
		Publishers:   entry.Publishers(),
		Categories:   entry.Categories(),
		Tags:         entry.Tags(),
		ReleaseDate:  game.ReleaseDate,
		ReleaseYear:  entry.ReleaseYear(),
		IsInstalled:  game.IsInstalled,
		Hidden:       game.Hidden,
		Favorite:     game.Favorite,
		Playtime:     game.Playtime,
		LastActivity: game.LastActivity,
		Added:        game.Added,
	}
}

// Snapshot copies the visible sequence on the loop.
func (engine *Engine) Snapshot(ctx context.Context) (*Snapshot, error) {
	var snapshot *Snapshot

	err := engine.loop.Do(ctx, func() {
		view := engine.view
		items := slice.Map(view.visible, func(entry *Entry) Item {
			return NewItem(entry, view.Grouping())
		})
		if items == nil {
			items = []Item{}
		}

		snapshot = &Snapshot{
			Profile:  view.Name(),
			Mode:     view.Mode(),
			Grouping: view.Grouping(),
			Settings: view.Settings(),
			Filter:   view.Filter(),
			Items:    items,
		}
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

// # Observation And Batching

// Observe registers observer on the view. Observers run on the loop
// goroutine and must not block or call back into the engine synchronously.
func (engine *Engine) Observe(ctx context.Context, observer Observer) (unsubscribe func(), err error) {
	var remove func()
	if err := engine.loop.Do(ctx, func() { remove = engine.view.Subscribe(observer) }); err != nil {
		// The subscription may still happen after ctx expired.
		engine.loop.Post(func() {
			if remove != nil {
				remove()
			}
		})
		return nil, err
	}

	var once sync.Once
	return func() {
		once.Do(func() { engine.loop.Post(remove) })
	}, nil
}

// DeferRefresh opens a batch on the view. The returned function closes it
// asynchronously and is safe to call more than once.
func (engine *Engine) DeferRefresh(ctx context.Context) (end func(), err error) {
	var closeBatch func()
	if err := engine.loop.Do(ctx, func() { closeBatch = engine.view.DeferRefresh() }); err != nil {
		// The batch may still open after ctx expired.
		engine.loop.Post(func() {
			if closeBatch != nil {
				closeBatch()
			}
		})
		return nil, err
	}

	var once sync.Once
	return func() {
		once.Do(func() { engine.loop.Post(closeBatch) })
	}, nil
}

// Refresh forces a full recomputation and waits for it.
func (engine *Engine) Refresh(ctx context.Context) error {
	return engine.loop.Do(ctx, func() { engine.view.Refresh() })
}

// Close detaches the engine from its collaborators and stops the loop after
// pending notifications have been applied.
func (engine *Engine) Close() {
	engine.closeOnce.Do(func() {
		for _, unsubscribe := range engine.unsubscribe {
			unsubscribe()
		}
		engine.loop.Close()
		engine.logger.Info("view_engine_stopped")
	})
}

func (engine *Engine) post(apply func(view *View)) {
	if !engine.loop.Post(func() { apply(engine.view) }) {
		engine.logger.Warn("view_event_dropped")
	}
}

// # Notification Relays

type catalogRelay struct {
	engine *Engine
}

func (relay catalogRelay) GamesChanged(event library.GamesChanged) {
	relay.engine.post(func(view *View) { view.GamesChanged(event) })
}

func (relay catalogRelay) GamesUpdated(event library.GamesUpdated) {
	relay.engine.post(func(view *View) { view.GamesUpdated(event) })
}

func (relay catalogRelay) ReferencesUpdated(event library.ReferencesUpdated) {
	relay.engine.post(func(view *View) { view.ReferencesUpdated(event) })
}

type settingsRelay struct {
	engine *Engine
}

func (relay settingsRelay) ViewSettingsChanged(settings ViewSettings) {
	relay.engine.post(func(view *View) { view.ViewSettingsChanged(settings) })
}

func (relay settingsRelay) FilterSettingsChanged(settings FilterSettings) {
	relay.engine.post(func(view *View) { view.FilterSettingsChanged(settings) })
}
