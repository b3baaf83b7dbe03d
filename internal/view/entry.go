// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/taibuivan/ludex/internal/library"
)

// # View Entries

// Entry is the display projection of one game.
//
// When the view is grouped by a multi-valued field a game yields one Entry
// per value, each with its own GroupID. Reference names are resolved on read
// so renames are visible without rebuilding the entry.
type Entry struct {
	Game      library.Game
	Plugin    *library.Plugin
	GroupKind library.Kind
	GroupID   uuid.UUID

	resolver library.Resolver
}

// NewEntry projects game. resolver may be nil, in which case references
// never resolve.
func NewEntry(game library.Game, plugin *library.Plugin, resolver library.Resolver) *Entry {
	return &Entry{Game: game, Plugin: plugin, resolver: resolver}
}

// ID returns the id of the underlying game.
func (e *Entry) ID() uuid.UUID { return e.Game.ID }

// Name returns the game name.
func (e *Entry) Name() string { return e.Game.Name }

// Library returns the owning plugin name, or "" for manually added games.
func (e *Entry) Library() string {
	if e.Plugin == nil {
		return ""
	}
	return e.Plugin.Name
}

func (e *Entry) Platform() string  { return e.name(library.KindPlatform, e.Game.PlatformID) }
func (e *Entry) Series() string    { return e.name(library.KindSeries, e.Game.SeriesID) }
func (e *Entry) Region() string    { return e.name(library.KindRegion, e.Game.RegionID) }
func (e *Entry) Source() string    { return e.name(library.KindSource, e.Game.SourceID) }
func (e *Entry) AgeRating() string { return e.name(library.KindAgeRating, e.Game.AgeRatingID) }

func (e *Entry) Genres() []string     { return e.names(library.KindGenre, e.Game.GenreIDs) }
func (e *Entry) Developers() []string { return e.names(library.KindCompany, e.Game.DeveloperIDs) }
func (e *Entry) Publishers() []string { return e.names(library.KindCompany, e.Game.PublisherIDs) }
func (e *Entry) Categories() []string { return e.names(library.KindCategory, e.Game.CategoryIDs) }
func (e *Entry) Tags() []string       { return e.names(library.KindTag, e.Game.TagIDs) }

// ReleaseYear returns the release year, or 0 when unknown.
func (e *Entry) ReleaseYear() int { return releaseYear(&e.Game) }

// GroupValue returns the name of the group value this entry was expanded
// for, or "" for entries that are not expanded.
func (e *Entry) GroupValue() string {
	if e.GroupID == uuid.Nil {
		return ""
	}
	return e.name(e.GroupKind, e.GroupID)
}

// Group returns the section label of the entry under grouping.
func (e *Entry) Group(grouping GroupableField) string {
	switch grouping {
	case GroupNone:
		return ""
	case GroupLibrary:
		return e.Library()
	case GroupReleaseYear:
		if year := e.ReleaseYear(); year > 0 {
			return strconv.Itoa(year)
		}
		return ""
	}

	f := fields[grouping]
	if f.multi {
		return e.GroupValue()
	}

	ids := f.ids(&e.Game)
	if len(ids) == 0 {
		return ""
	}
	return e.name(f.kind, ids[0])
}

// object resolves a single reference.
func (e *Entry) object(kind library.Kind, id uuid.UUID) (*library.Reference, bool) {
	if e.resolver == nil || id == uuid.Nil {
		return nil, false
	}
	return e.resolver.Reference(kind, id)
}

// objects resolves the references behind ids, skipping missing ones.
func (e *Entry) objects(kind library.Kind, ids []uuid.UUID) []*library.Reference {
	result := make([]*library.Reference, 0, len(ids))
	for _, id := range ids {
		if reference, ok := e.object(kind, id); ok {
			result = append(result, reference)
		}
	}
	return result
}

func (e *Entry) name(kind library.Kind, id uuid.UUID) string {
	if reference, ok := e.object(kind, id); ok {
		return reference.Name
	}
	return ""
}

// names returns the resolved names sorted, for display and list sorting.
func (e *Entry) names(kind library.Kind, ids []uuid.UUID) []string {
	objects := e.objects(kind, ids)
	result := make([]string, 0, len(objects))
	for _, reference := range objects {
		result = append(result, reference.Name)
	}
	slices.Sort(result)
	return result
}

func joinNames(names []string) string {
	return strings.Join(names, ", ")
}
