// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package view derives the filtered, sorted and grouped projection of the game
catalogue that a library screen displays.

Core Responsibility:

  - Filtering: [Evaluator] decides which entries are visible.
  - Materializing: a game becomes one [Entry], or one per value when grouped
    by a multi-valued field (genres, tags...).
  - Ordering: composite sort keys derived from [ViewSettings].
  - Incremental updates: catalogue and settings events patch the visible
    sequence and publish discrete [Change] notifications.

# Threading

A [View] is single-threaded: all methods must be called from one goroutine.
[Engine] provides that goroutine through a [Loop] and marshals catalogue and
settings notifications onto it.
*/
package view

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/taibuivan/ludex/internal/library"
)

// # Modes

// Mode is the entry expansion mode of a view.
type Mode string

const (
	// ModeStandard yields one entry per game.
	ModeStandard Mode = "standard"

	// ModeGrouped yields one entry per game and value of a multi-valued grouping field.
	ModeGrouped Mode = "grouped"
)

// # Change Notifications

// ChangeKind classifies a [Change].
type ChangeKind string

const (
	ChangeReset   ChangeKind = "reset"
	ChangeAdded   ChangeKind = "added"
	ChangeRemoved ChangeKind = "removed"
	ChangeMoved   ChangeKind = "moved"
)

// Change describes one mutation of the visible sequence.
//
// Added carries the new Index, Removed the former Index, Moved both. A Moved
// change with Index == OldIndex means the entry changed in place. Reset means
// the whole sequence must be re-read.
type Change struct {
	Kind     ChangeKind
	Entry    *Entry
	Index    int
	OldIndex int
}

// Observer receives change notifications on the view's goroutine.
type Observer interface {
	ViewChanged(change Change)
}

// ObserverFunc adapts a function to [Observer].
type ObserverFunc func(change Change)

// ViewChanged implements [Observer].
func (f ObserverFunc) ViewChanged(change Change) { f(change) }

// # Collaborators

// Catalog is the read side of the catalogue store the view projects.
type Catalog interface {
	Games() []library.Game
	library.Resolver
	library.PluginResolver
}

// Options tunes a [View].
type Options struct {
	// Name labels logs and metrics; usually the profile name.
	Name string

	// Fullscreen forces [ModeStandard] and ignores the configured grouping.
	Fullscreen bool

	Logger *slog.Logger
}

type observerSlot struct {
	id       int
	observer Observer
}

// # View Engine

// View is the Catalog View Filter Engine.
type View struct {
	name       string
	catalog    Catalog
	fullscreen bool
	logger     *slog.Logger

	settings  ViewSettings
	filter    FilterSettings
	mode      Mode
	grouping  GroupableField
	sorter    *sorter
	evaluator *Evaluator

	// entries holds every materialized entry, visible or not.
	entries []*Entry
	// visible holds the filtered entries in sort order.
	visible []*Entry

	observers    []observerSlot
	nextObserver int
	deferDepth   int
}

/*
New builds a view and materializes the current catalogue.

Parameters:
  - catalog: Catalog (read-only access to games and reference data)
  - settings: ViewSettings (validated here)
  - filter: FilterSettings
  - opts: Options

Returns:
  - *View: Ready view
  - error: Validation failure for unknown sort or grouping values
*/
func New(catalog Catalog, settings ViewSettings, filter FilterSettings, opts Options) (*View, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	view := &View{
		name:       opts.Name,
		catalog:    catalog,
		fullscreen: opts.Fullscreen,
		logger:     logger.With(slog.String("view", opts.Name)),
		filter:     filter.Clone(),
		evaluator:  NewEvaluator(),
		grouping:   GroupNone,
	}

	view.configure(settings)
	view.materialize()
	view.refresh("initial")
	return view, nil
}

// # Accessors

// Name returns the view label.
func (v *View) Name() string { return v.name }

// Mode returns the current expansion mode.
func (v *View) Mode() Mode { return v.mode }

// Grouping returns the effective grouping field ([GroupNone] in fullscreen).
func (v *View) Grouping() GroupableField { return v.grouping }

// Settings returns the active view settings.
func (v *View) Settings() ViewSettings { return v.settings }

// Filter returns a copy of the active filter settings.
func (v *View) Filter() FilterSettings { return v.filter.Clone() }

// Items returns the visible entries in display order.
//
// Inside a [View.DeferRefresh] batch this is the sequence as of the batch start.
func (v *View) Items() []*Entry { return slices.Clone(v.visible) }

// Len returns the number of visible entries.
func (v *View) Len() int { return len(v.visible) }

// Subscribe registers observer and returns the function that removes it.
func (v *View) Subscribe(observer Observer) (unsubscribe func()) {
	id := v.nextObserver
	v.nextObserver++
	v.observers = append(v.observers, observerSlot{id: id, observer: observer})

	return func() {
		v.observers = slices.DeleteFunc(v.observers, func(slot observerSlot) bool { return slot.id == id })
	}
}

// # Configuration

/*
Configure applies new sort and grouping settings.

Description: Sort descriptors are always rebuilt. The entries are
re-materialized only when the effective grouping changed; either way the
visible sequence is recomputed once.

Returns:
  - error: Validation failure; the view is left unchanged
*/
func (v *View) Configure(settings ViewSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	if settings == v.settings {
		return nil
	}

	v.logger.Debug("updating_view_settings",
		slog.String("sorting_order", string(settings.SortingOrder)),
		slog.String("grouping_order", string(settings.GroupingOrder)),
	)

	if v.configure(settings) {
		v.materialize()
	}
	v.refresh("view_settings")
	return nil
}

// SetFilter replaces the filter criteria and re-evaluates every entry.
// Grouping is untouched.
func (v *View) SetFilter(filter FilterSettings) {
	v.logger.Debug("refreshing_view_filter")
	v.filter = filter.Clone()
	v.refresh("filter")
}

// ViewSettingsChanged implements [SettingsListener].
func (v *View) ViewSettingsChanged(settings ViewSettings) {
	if err := v.Configure(settings); err != nil {
		v.logger.Error("view_settings_rejected", slog.Any("error", err))
	}
}

// FilterSettingsChanged implements [SettingsListener].
func (v *View) FilterSettingsChanged(settings FilterSettings) {
	v.SetFilter(settings)
}

// configure derives mode, grouping and sort keys. It reports whether the
// effective grouping changed.
func (v *View) configure(settings ViewSettings) bool {
	grouping := settings.GroupingOrder
	if v.fullscreen {
		grouping = GroupNone
	}

	changed := grouping != v.grouping || v.sorter == nil
	v.settings = settings
	v.grouping = grouping

	v.mode = ModeStandard
	if grouping.IsMultiValued() {
		v.mode = ModeGrouped
	}

	v.sorter = newSorter(sortKeys(settings, grouping), grouping)
	return changed
}

// # Batching

/*
DeferRefresh suspends recomputation until the returned function is called.

Description: Batches nest. Mutations inside a batch only update the
materialized entries and publish nothing; ending the outermost batch
recomputes the visible sequence once and publishes a single Reset. Calling
the returned function more than once has no further effect.
*/
func (v *View) DeferRefresh() (end func()) {
	v.deferDepth++

	var once sync.Once
	return func() {
		once.Do(func() {
			v.deferDepth--
			if v.deferDepth == 0 {
				v.refresh("batch")
			}
		})
	}
}

// Refresh recomputes the visible sequence from scratch.
func (v *View) Refresh() {
	v.refresh("manual")
}

// # Catalogue Events

// GamesChanged implements [library.Listener]: removed games lose all their
// entries and added games are expanded and inserted. Adding a game that is
// already present replaces its entries.
func (v *View) GamesChanged(event library.GamesChanged) {
	drop := make(map[uuid.UUID]struct{}, len(event.Removed)+len(event.Added))
	for _, game := range event.Removed {
		drop[game.ID] = struct{}{}
	}
	for _, game := range event.Added {
		drop[game.ID] = struct{}{}
	}
	v.removeGames(drop)

	for _, game := range event.Added {
		for _, entry := range v.expand(game) {
			v.insert(entry)
		}
	}
}

// GamesUpdated implements [library.Listener].
//
// A game whose grouping key changed is removed and re-added; any other edit
// repositions its entries in place.
func (v *View) GamesUpdated(event library.GamesUpdated) {
	var regroup []library.Game

	for _, update := range event.Updates {
		entries := v.entriesOf(update.New.ID)
		if len(entries) == 0 {
			continue
		}

		if groupingKeyChanged(v.grouping, &update.Old, &update.New) {
			regroup = append(regroup, update.New)
			continue
		}

		plugin, _ := v.catalog.Plugin(update.New.PluginID)
		for _, entry := range entries {
			entry.Game = update.New.Clone()
			entry.Plugin = plugin
			v.reposition(entry)
		}
	}

	if len(regroup) > 0 {
		v.GamesChanged(library.GamesChanged{Added: regroup, Removed: regroup})
	}
}

// ReferencesUpdated implements [library.Listener].
//
// Entries referencing an updated object are re-evaluated and repositioned.
// When the affected field is the active grouping and at least one entry was
// touched, the whole sequence is refreshed instead.
func (v *View) ReferencesUpdated(event library.ReferencesUpdated) {
	updated := make(map[uuid.UUID]struct{}, len(event.Updates))
	for _, update := range event.Updates {
		updated[update.New.ID] = struct{}{}
	}

	var touched []*Entry
	regroup := false

	for _, name := range referenceFields(event.Kind) {
		ids := fields[name].ids
		hit := false

		for _, entry := range v.entries {
			if !referencesAny(ids(&entry.Game), updated) {
				continue
			}
			hit = true
			if !slices.Contains(touched, entry) {
				touched = append(touched, entry)
			}
		}

		if hit && v.grouping == name {
			regroup = true
		}
	}

	if regroup {
		v.refresh("reference_updated")
		return
	}
	v.repositionAll(touched)
}

// # Materialization

// materialize rebuilds every entry from the catalogue.
func (v *View) materialize() {
	games := v.catalog.Games()
	entries := make([]*Entry, 0, len(games))
	for _, game := range games {
		entries = append(entries, v.expand(game)...)
	}
	v.entries = entries
}

// expand projects one game into its entries for the current mode.
func (v *View) expand(game library.Game) []*Entry {
	plugin, _ := v.catalog.Plugin(game.PluginID)

	if v.mode == ModeGrouped {
		f := fields[v.grouping]
		if ids := uniqueIDs(f.ids(&game)); len(ids) > 0 {
			entries := make([]*Entry, 0, len(ids))
			for _, id := range ids {
				entry := NewEntry(game.Clone(), plugin, v.catalog)
				entry.GroupKind = f.kind
				entry.GroupID = id
				entries = append(entries, entry)
			}
			return entries
		}
	}

	return []*Entry{NewEntry(game.Clone(), plugin, v.catalog)}
}

func (v *View) entriesOf(id uuid.UUID) []*Entry {
	var result []*Entry
	for _, entry := range v.entries {
		if entry.Game.ID == id {
			result = append(result, entry)
		}
	}
	return result
}

// # Visible Sequence Maintenance

// refresh recomputes the visible sequence and publishes Reset, unless a
// batch is open.
func (v *View) refresh(reason string) {
	if v.deferDepth > 0 {
		return
	}

	visible := make([]*Entry, 0, len(v.entries))
	for _, entry := range v.entries {
		if v.evaluator.Matches(entry, v.filter) {
			visible = append(visible, entry)
		}
	}
	slices.SortFunc(visible, v.sorter.compare)
	v.visible = visible

	refreshTotal.WithLabelValues(reason).Inc()
	visibleEntries.WithLabelValues(v.name).Set(float64(len(visible)))

	v.logger.Debug("view_refreshed",
		slog.String("reason", reason),
		slog.Int("entries", len(v.entries)),
		slog.Int("visible", len(visible)),
	)

	v.publish(Change{Kind: ChangeReset, Index: -1, OldIndex: -1})
}

// insert adds a new entry and, when visible, places it by binary search.
func (v *View) insert(entry *Entry) {
	v.entries = append(v.entries, entry)

	if v.deferDepth > 0 || !v.evaluator.Matches(entry, v.filter) {
		return
	}

	index := v.position(entry)
	v.visible = slices.Insert(v.visible, index, entry)
	v.publish(Change{Kind: ChangeAdded, Entry: entry, Index: index, OldIndex: -1})
}

// removeGames drops all entries of the given games.
func (v *View) removeGames(ids map[uuid.UUID]struct{}) {
	if len(ids) == 0 {
		return
	}

	kept := make([]*Entry, 0, len(v.entries))
	for _, entry := range v.entries {
		if _, drop := ids[entry.Game.ID]; !drop {
			kept = append(kept, entry)
			continue
		}

		if v.deferDepth > 0 {
			continue
		}
		if index := slices.Index(v.visible, entry); index >= 0 {
			v.visible = slices.Delete(v.visible, index, index+1)
			v.publish(Change{Kind: ChangeRemoved, Entry: entry, Index: index, OldIndex: index})
		}
	}
	v.entries = kept
}

// reposition re-evaluates one entry and moves it to its sorted position
// without replacing it.
func (v *View) reposition(entry *Entry) {
	if v.deferDepth > 0 {
		return
	}

	oldIndex := slices.Index(v.visible, entry)
	if oldIndex >= 0 {
		v.visible = slices.Delete(v.visible, oldIndex, oldIndex+1)
	}

	if !v.evaluator.Matches(entry, v.filter) {
		if oldIndex >= 0 {
			v.publish(Change{Kind: ChangeRemoved, Entry: entry, Index: oldIndex, OldIndex: oldIndex})
		}
		return
	}

	index := v.position(entry)
	v.visible = slices.Insert(v.visible, index, entry)

	if oldIndex < 0 {
		v.publish(Change{Kind: ChangeAdded, Entry: entry, Index: index, OldIndex: -1})
		return
	}
	v.publish(Change{Kind: ChangeMoved, Entry: entry, Index: index, OldIndex: oldIndex})
}

/*
repositionAll re-evaluates entries whose sort keys changed at the same time.

Description: Every entry leaves the visible sequence before any is placed
back, so each binary search runs over a sorted remainder. A single entry is
moved in place with [View.reposition].
*/
func (v *View) repositionAll(entries []*Entry) {
	if v.deferDepth > 0 || len(entries) == 0 {
		return
	}
	if len(entries) == 1 {
		v.reposition(entries[0])
		return
	}

	for _, entry := range entries {
		if index := slices.Index(v.visible, entry); index >= 0 {
			v.visible = slices.Delete(v.visible, index, index+1)
			v.publish(Change{Kind: ChangeRemoved, Entry: entry, Index: index, OldIndex: index})
		}
	}

	for _, entry := range entries {
		if !v.evaluator.Matches(entry, v.filter) {
			continue
		}
		index := v.position(entry)
		v.visible = slices.Insert(v.visible, index, entry)
		v.publish(Change{Kind: ChangeAdded, Entry: entry, Index: index, OldIndex: -1})
	}
}

// position returns the insertion index of entry in the visible sequence.
func (v *View) position(entry *Entry) int {
	index, _ := slices.BinarySearchFunc(v.visible, entry, v.sorter.compare)
	return index
}

func (v *View) publish(change Change) {
	changesTotal.WithLabelValues(string(change.Kind)).Inc()
	for _, slot := range slices.Clone(v.observers) {
		slot.observer.ViewChanged(change)
	}
}

func referencesAny(ids []uuid.UUID, set map[uuid.UUID]struct{}) bool {
	for _, id := range ids {
		if _, ok := set[id]; ok {
			return true
		}
	}
	return false
}
