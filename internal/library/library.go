// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package library defines the game catalogue and its shared reference data.

It is the source of truth that views are derived from: games reference genres,
platforms, companies and the other taxonomy entities by id, never by value.

Core Responsibility:

  - Catalogue: Holds [Game] records and their owning library [Plugin].
  - Taxonomy: Holds [Reference] objects (genres, tags, platforms...) per [Kind].
  - Notification: Emits change events so derived views can patch themselves.

The in-memory [Database] is authoritative at runtime; the PostgreSQL
[Repository] only persists it.
*/
package library

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// # Reference Kinds

// Kind identifies the family of a [Reference] object.
type Kind string

const (
	KindPlatform  Kind = "platform"
	KindSeries    Kind = "series"
	KindRegion    Kind = "region"
	KindSource    Kind = "source"
	KindAgeRating Kind = "age_rating"
	KindGenre     Kind = "genre"
	KindCompany   Kind = "company"
	KindCategory  Kind = "category"
	KindTag       Kind = "tag"
)

// Kinds lists every reference kind in a stable order.
var Kinds = []Kind{
	KindPlatform, KindSeries, KindRegion, KindSource, KindAgeRating,
	KindGenre, KindCompany, KindCategory, KindTag,
}

// IsValid reports whether k is a recognised [Kind].
func (k Kind) IsValid() bool {
	return slices.Contains(Kinds, k)
}

// # Core Entities

// Reference is a named classification entity shared between games.
type Reference struct {
	ID   uuid.UUID `json:"id"`
	Kind Kind      `json:"kind"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// Plugin is the library integration a game was imported from (e.g. Steam, GOG).
type Plugin struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Game is one catalogue entry.
//
// Single-valued references use the zero UUID for "unset".
type Game struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Hidden       bool       `json:"hidden"`
	IsInstalled  bool       `json:"is_installed"`
	Favorite     bool       `json:"favorite"`
	ReleaseDate  *time.Time `json:"release_date,omitempty"`
	Added        *time.Time `json:"added,omitempty"`
	LastActivity *time.Time `json:"last_activity,omitempty"`
	Playtime     uint64     `json:"playtime"` // seconds
	PluginID     uuid.UUID  `json:"plugin_id"`

	// # Single-valued references
	PlatformID  uuid.UUID `json:"platform_id"`
	SeriesID    uuid.UUID `json:"series_id"`
	RegionID    uuid.UUID `json:"region_id"`
	SourceID    uuid.UUID `json:"source_id"`
	AgeRatingID uuid.UUID `json:"age_rating_id"`

	// # Multi-valued references
	GenreIDs     []uuid.UUID `json:"genre_ids,omitempty"`
	DeveloperIDs []uuid.UUID `json:"developer_ids,omitempty"`
	PublisherIDs []uuid.UUID `json:"publisher_ids,omitempty"`
	CategoryIDs  []uuid.UUID `json:"category_ids,omitempty"`
	TagIDs       []uuid.UUID `json:"tag_ids,omitempty"`
}

// Clone returns a deep copy of g so the copy can be handed across goroutines.
func (g Game) Clone() Game {
	clone := g
	clone.ReleaseDate = cloneTime(g.ReleaseDate)
	clone.Added = cloneTime(g.Added)
	clone.LastActivity = cloneTime(g.LastActivity)
	clone.GenreIDs = slices.Clone(g.GenreIDs)
	clone.DeveloperIDs = slices.Clone(g.DeveloperIDs)
	clone.PublisherIDs = slices.Clone(g.PublisherIDs)
	clone.CategoryIDs = slices.Clone(g.CategoryIDs)
	clone.TagIDs = slices.Clone(g.TagIDs)
	return clone
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// # Resolution Contracts

// Resolver looks up reference objects by id.
//
// A zero id or an id that is not in the catalogue resolves to (nil, false).
type Resolver interface {
	Reference(kind Kind, id uuid.UUID) (*Reference, bool)
}

// PluginResolver maps a game's owning-plugin id to the plugin handle.
type PluginResolver interface {
	Plugin(id uuid.UUID) (*Plugin, bool)
}

// # Field Identifiers

// Field names used for validation errors and JSON payloads.
const (
	FieldID          = "id"
	FieldName        = "name"
	FieldKind        = "kind"
	FieldPluginID    = "plugin_id"
	FieldReleaseDate = "release_date"
	FieldGames       = "games"
)
