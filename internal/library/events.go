// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

// # Change Events

// GamesChanged reports games entering or leaving the catalogue.
type GamesChanged struct {
	Added   []Game
	Removed []Game
}

// GameUpdate carries both versions of an edited game.
type GameUpdate struct {
	Old Game
	New Game
}

// GamesUpdated reports in-place edits of existing games.
type GamesUpdated struct {
	Updates []GameUpdate
}

// ReferenceUpdate carries both versions of an edited reference object.
type ReferenceUpdate struct {
	Old Reference
	New Reference
}

// ReferencesUpdated reports edits (e.g. renames) of reference objects of one kind.
type ReferencesUpdated struct {
	Kind    Kind
	Updates []ReferenceUpdate
}

// IDs returns the ids of the updated references.
func (e ReferencesUpdated) IDs() []string {
	ids := make([]string, 0, len(e.Updates))
	for _, update := range e.Updates {
		ids = append(ids, update.New.ID.String())
	}
	return ids
}

// Listener receives catalogue notifications.
//
// # Threading
//
// Notifications are delivered synchronously on the goroutine that performed
// the mutation, after the [Database] released its lock. Listeners that own
// single-threaded state must hand the event over to their own processing
// context instead of mutating in place.
type Listener interface {
	GamesChanged(event GamesChanged)
	GamesUpdated(event GamesUpdated)
	ReferencesUpdated(event ReferencesUpdated)
}
