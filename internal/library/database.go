// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/taibuivan/ludex/internal/platform/apperr"
)

// # In-Memory Catalogue

// Database is the runtime catalogue store.
//
// # Concurrency
//
// Reads take a shared lock, mutations an exclusive one. Listeners are invoked
// after that lock is released, in registration order, so they may read back
// from the Database. Mutations are serialized together with their
// notifications: every listener observes events in the order the changes were
// applied. A listener must not mutate the Database it listens to.
type Database struct {
	// writeMu is held from the start of a mutation until its listeners return.
	writeMu sync.Mutex

	mu         sync.RWMutex
	games      map[uuid.UUID]Game
	order      []uuid.UUID
	references map[Kind]map[uuid.UUID]Reference
	plugins    map[uuid.UUID]Plugin

	listenersMu sync.Mutex
	listeners   map[int]Listener
	nextID      int
}

// NewDatabase constructs an empty [Database].
func NewDatabase() *Database {
	references := make(map[Kind]map[uuid.UUID]Reference, len(Kinds))
	for _, kind := range Kinds {
		references[kind] = make(map[uuid.UUID]Reference)
	}

	return &Database{
		games:      make(map[uuid.UUID]Game),
		references: references,
		plugins:    make(map[uuid.UUID]Plugin),
		listeners:  make(map[int]Listener),
	}
}

// # Subscriptions

// Subscribe registers listener and returns the function that removes it.
func (db *Database) Subscribe(listener Listener) (unsubscribe func()) {
	db.listenersMu.Lock()
	id := db.nextID
	db.nextID++
	db.listeners[id] = listener
	db.listenersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			db.listenersMu.Lock()
			delete(db.listeners, id)
			db.listenersMu.Unlock()
		})
	}
}

// snapshotListeners returns the listeners in registration order.
func (db *Database) snapshotListeners() []Listener {
	db.listenersMu.Lock()
	defer db.listenersMu.Unlock()

	ids := make([]int, 0, len(db.listeners))
	for id := range db.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	listeners := make([]Listener, 0, len(ids))
	for _, id := range ids {
		listeners = append(listeners, db.listeners[id])
	}
	return listeners
}

// # Reads

// Games returns copies of all games in insertion order.
func (db *Database) Games() []Game {
	db.mu.RLock()
	defer db.mu.RUnlock()

	games := make([]Game, 0, len(db.order))
	for _, id := range db.order {
		games = append(games, db.games[id].Clone())
	}
	return games
}

// Game returns a copy of the game with the given id.
func (db *Database) Game(id uuid.UUID) (Game, bool) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	game, ok := db.games[id]
	if !ok {
		return Game{}, false
	}
	return game.Clone(), true
}

// Count returns the number of games in the catalogue.
func (db *Database) Count() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.order)
}

// Reference implements [Resolver].
func (db *Database) Reference(kind Kind, id uuid.UUID) (*Reference, bool) {
	if id == uuid.Nil {
		return nil, false
	}

	db.mu.RLock()
	defer db.mu.RUnlock()

	reference, ok := db.references[kind][id]
	if !ok {
		return nil, false
	}
	return &reference, true
}

// References returns all references of kind ordered by name.
func (db *Database) References(kind Kind) []Reference {
	db.mu.RLock()
	defer db.mu.RUnlock()

	references := make([]Reference, 0, len(db.references[kind]))
	for _, reference := range db.references[kind] {
		references = append(references, reference)
	}
	slices.SortFunc(references, func(a, b Reference) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
	return references
}

// Plugin implements [PluginResolver].
func (db *Database) Plugin(id uuid.UUID) (*Plugin, bool) {
	if id == uuid.Nil {
		return nil, false
	}

	db.mu.RLock()
	defer db.mu.RUnlock()

	plugin, ok := db.plugins[id]
	if !ok {
		return nil, false
	}
	return &plugin, true
}

// # Mutations

// Load replaces the catalogue content. Previously loaded games are reported
// as removed and the new ones as added, in one [GamesChanged] event.
func (db *Database) Load(games []Game, references []Reference, plugins []Plugin) {
	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	db.mu.Lock()

	removed := make([]Game, 0, len(db.order))
	for _, id := range db.order {
		removed = append(removed, db.games[id])
	}

	for _, kind := range Kinds {
		db.references[kind] = make(map[uuid.UUID]Reference)
	}
	for _, reference := range references {
		if kind, ok := db.references[reference.Kind]; ok {
			kind[reference.ID] = reference
		}
	}

	db.plugins = make(map[uuid.UUID]Plugin, len(plugins))
	for _, plugin := range plugins {
		db.plugins[plugin.ID] = plugin
	}

	db.games = make(map[uuid.UUID]Game, len(games))
	db.order = make([]uuid.UUID, 0, len(games))
	added := make([]Game, 0, len(games))
	for _, game := range games {
		if _, dup := db.games[game.ID]; dup {
			continue
		}
		db.games[game.ID] = game.Clone()
		db.order = append(db.order, game.ID)
		added = append(added, game.Clone())
	}

	db.mu.Unlock()

	db.emitGamesChanged(GamesChanged{Added: added, Removed: removed})
}

// AddGames inserts new games. It fails without side effects if any id is
// already present.
func (db *Database) AddGames(games ...Game) error {
	if len(games) == 0 {
		return nil
	}

	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	db.mu.Lock()
	seen := make(map[uuid.UUID]struct{}, len(games))
	for _, game := range games {
		if _, exists := db.games[game.ID]; exists {
			db.mu.Unlock()
			return apperr.Conflict(fmt.Sprintf("Game %s already exists", game.ID))
		}
		if _, dup := seen[game.ID]; dup {
			db.mu.Unlock()
			return apperr.Conflict(fmt.Sprintf("Game %s listed twice", game.ID))
		}
		seen[game.ID] = struct{}{}
	}

	added := make([]Game, 0, len(games))
	for _, game := range games {
		db.games[game.ID] = game.Clone()
		db.order = append(db.order, game.ID)
		added = append(added, game.Clone())
	}
	db.mu.Unlock()

	db.emitGamesChanged(GamesChanged{Added: added})
	return nil
}

// UpdateGames replaces existing games. It fails without side effects if any
// game is unknown.
func (db *Database) UpdateGames(games ...Game) error {
	if len(games) == 0 {
		return nil
	}

	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	db.mu.Lock()
	for _, game := range games {
		if _, exists := db.games[game.ID]; !exists {
			db.mu.Unlock()
			return apperr.NotFound("Game")
		}
	}

	updates := make([]GameUpdate, 0, len(games))
	for _, game := range games {
		old := db.games[game.ID]
		db.games[game.ID] = game.Clone()
		updates = append(updates, GameUpdate{Old: old, New: game.Clone()})
	}
	db.mu.Unlock()

	for _, listener := range db.snapshotListeners() {
		listener.GamesUpdated(GamesUpdated{Updates: updates})
	}
	return nil
}

// RemoveGames deletes games by id. Unknown ids are ignored.
func (db *Database) RemoveGames(ids ...uuid.UUID) []Game {
	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	db.mu.Lock()
	removed := make([]Game, 0, len(ids))
	for _, id := range ids {
		game, ok := db.games[id]
		if !ok {
			continue
		}
		delete(db.games, id)
		db.order = slices.DeleteFunc(db.order, func(other uuid.UUID) bool { return other == id })
		removed = append(removed, game)
	}
	db.mu.Unlock()

	if len(removed) > 0 {
		db.emitGamesChanged(GamesChanged{Removed: removed})
	}
	return removed
}

// PutReferences inserts or replaces reference objects. Replacements are
// reported through [ReferencesUpdated], one event per kind.
func (db *Database) PutReferences(references ...Reference) error {
	for _, reference := range references {
		if !reference.Kind.IsValid() {
			return apperr.ValidationError("Unknown reference kind", apperr.FieldError{
				Field:   FieldKind,
				Message: string(reference.Kind),
			})
		}
	}

	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	db.mu.Lock()
	updates := make(map[Kind][]ReferenceUpdate)
	for _, reference := range references {
		if old, exists := db.references[reference.Kind][reference.ID]; exists {
			updates[reference.Kind] = append(updates[reference.Kind], ReferenceUpdate{Old: old, New: reference})
		}
		db.references[reference.Kind][reference.ID] = reference
	}
	db.mu.Unlock()

	listeners := db.snapshotListeners()
	for _, kind := range Kinds {
		if len(updates[kind]) == 0 {
			continue
		}
		event := ReferencesUpdated{Kind: kind, Updates: updates[kind]}
		for _, listener := range listeners {
			listener.ReferencesUpdated(event)
		}
	}
	return nil
}

// PutPlugins inserts or replaces library plugins.
func (db *Database) PutPlugins(plugins ...Plugin) {
	db.writeMu.Lock()
	defer db.writeMu.Unlock()

	db.mu.Lock()
	defer db.mu.Unlock()

	for _, plugin := range plugins {
		db.plugins[plugin.ID] = plugin
	}
}

func (db *Database) emitGamesChanged(event GamesChanged) {
	for _, listener := range db.snapshotListeners() {
		listener.GamesChanged(event)
	}
}
