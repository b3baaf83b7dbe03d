// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"slices"

	"github.com/google/uuid"

	"github.com/taibuivan/ludex/internal/library"
)

// # Sort Orders

// SortOrder names the primary sort key of a view.
type SortOrder string

const (
	SortName         SortOrder = "name"
	SortLibrary      SortOrder = "library"
	SortPlatform     SortOrder = "platform"
	SortSeries       SortOrder = "series"
	SortRegion       SortOrder = "region"
	SortSource       SortOrder = "source"
	SortAgeRating    SortOrder = "age_rating"
	SortReleaseDate  SortOrder = "release_date"
	SortReleaseYear  SortOrder = "release_year"
	SortInstalled    SortOrder = "is_installed"
	SortHidden       SortOrder = "hidden"
	SortFavorite     SortOrder = "favorite"
	SortLastActivity SortOrder = "last_activity"
	SortPlaytime     SortOrder = "playtime"
	SortAdded        SortOrder = "added"
	SortGenres       SortOrder = "genres"
	SortDevelopers   SortOrder = "developers"
	SortPublishers   SortOrder = "publishers"
	SortCategories   SortOrder = "categories"
	SortTags         SortOrder = "tags"
)

// SortDirection is the direction of the primary sort key.
type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// # Groupable Fields

// GroupableField names the field entries are bucketed by.
type GroupableField string

const (
	GroupNone        GroupableField = "none"
	GroupLibrary     GroupableField = "library"
	GroupCategory    GroupableField = "category"
	GroupGenre       GroupableField = "genre"
	GroupDeveloper   GroupableField = "developer"
	GroupPublisher   GroupableField = "publisher"
	GroupTag         GroupableField = "tag"
	GroupPlatform    GroupableField = "platform"
	GroupSeries      GroupableField = "series"
	GroupAgeRating   GroupableField = "age_rating"
	GroupRegion      GroupableField = "region"
	GroupSource      GroupableField = "source"
	GroupReleaseYear GroupableField = "release_year"
)

// # Entry Properties

// property identifies a sortable attribute of an [Entry]. Sort orders and
// groupable fields both map onto properties; the group-prefix rule compares
// properties, not names.
type property int

const (
	propName property = iota
	propLibrary
	propPlatform
	propSeries
	propRegion
	propSource
	propAgeRating
	propReleaseDate
	propReleaseYear
	propInstalled
	propHidden
	propFavorite
	propLastActivity
	propPlaytime
	propAdded
	propGenres
	propDevelopers
	propPublishers
	propCategories
	propTags
	propGroupValue
)

var sortProperties = map[SortOrder]property{
	SortName:         propName,
	SortLibrary:      propLibrary,
	SortPlatform:     propPlatform,
	SortSeries:       propSeries,
	SortRegion:       propRegion,
	SortSource:       propSource,
	SortAgeRating:    propAgeRating,
	SortReleaseDate:  propReleaseDate,
	SortReleaseYear:  propReleaseYear,
	SortInstalled:    propInstalled,
	SortHidden:       propHidden,
	SortFavorite:     propFavorite,
	SortLastActivity: propLastActivity,
	SortPlaytime:     propPlaytime,
	SortAdded:        propAdded,
	SortGenres:       propGenres,
	SortDevelopers:   propDevelopers,
	SortPublishers:   propPublishers,
	SortCategories:   propCategories,
	SortTags:         propTags,
}

// IsValid reports whether o is a recognised [SortOrder].
func (o SortOrder) IsValid() bool {
	_, ok := sortProperties[o]
	return ok
}

// # Field Table

// field describes how a groupable field reads a game.
//
// Reference fields carry the reference kind they resolve against; multi
// fields produce one entry per value when grouped.
type field struct {
	property property
	kind     library.Kind
	multi    bool
	ids      func(game *library.Game) []uuid.UUID
}

func single(get func(game *library.Game) uuid.UUID) func(game *library.Game) []uuid.UUID {
	return func(game *library.Game) []uuid.UUID {
		if id := get(game); id != uuid.Nil {
			return []uuid.UUID{id}
		}
		return nil
	}
}

var fields = map[GroupableField]field{
	GroupLibrary: {property: propLibrary, ids: single(func(g *library.Game) uuid.UUID { return g.PluginID })},
	GroupCategory: {property: propGroupValue, kind: library.KindCategory, multi: true,
		ids: func(g *library.Game) []uuid.UUID { return g.CategoryIDs }},
	GroupGenre: {property: propGroupValue, kind: library.KindGenre, multi: true,
		ids: func(g *library.Game) []uuid.UUID { return g.GenreIDs }},
	GroupDeveloper: {property: propGroupValue, kind: library.KindCompany, multi: true,
		ids: func(g *library.Game) []uuid.UUID { return g.DeveloperIDs }},
	GroupPublisher: {property: propGroupValue, kind: library.KindCompany, multi: true,
		ids: func(g *library.Game) []uuid.UUID { return g.PublisherIDs }},
	GroupTag: {property: propGroupValue, kind: library.KindTag, multi: true,
		ids: func(g *library.Game) []uuid.UUID { return g.TagIDs }},
	GroupPlatform: {property: propPlatform, kind: library.KindPlatform,
		ids: single(func(g *library.Game) uuid.UUID { return g.PlatformID })},
	GroupSeries: {property: propSeries, kind: library.KindSeries,
		ids: single(func(g *library.Game) uuid.UUID { return g.SeriesID })},
	GroupAgeRating: {property: propAgeRating, kind: library.KindAgeRating,
		ids: single(func(g *library.Game) uuid.UUID { return g.AgeRatingID })},
	GroupRegion: {property: propRegion, kind: library.KindRegion,
		ids: single(func(g *library.Game) uuid.UUID { return g.RegionID })},
	GroupSource: {property: propSource, kind: library.KindSource,
		ids: single(func(g *library.Game) uuid.UUID { return g.SourceID })},
	GroupReleaseYear: {property: propReleaseYear},
}

// IsValid reports whether g is a recognised [GroupableField].
func (g GroupableField) IsValid() bool {
	if g == GroupNone {
		return true
	}
	_, ok := fields[g]
	return ok
}

// IsMultiValued reports whether grouping by g expands a game into one entry
// per referenced value.
func (g GroupableField) IsMultiValued() bool {
	return fields[g].multi
}

// referenceFields lists the groupable fields backed by each reference kind.
// Companies back two fields.
func referenceFields(kind library.Kind) []GroupableField {
	var result []GroupableField
	for _, name := range groupOrder {
		if fields[name].kind == kind {
			result = append(result, name)
		}
	}
	return result
}

// groupOrder fixes the iteration order over [fields].
var groupOrder = []GroupableField{
	GroupLibrary, GroupCategory, GroupGenre, GroupDeveloper, GroupPublisher, GroupTag,
	GroupPlatform, GroupSeries, GroupAgeRating, GroupRegion, GroupSource, GroupReleaseYear,
}

// groupingKeyChanged reports whether an edit moves a game between groups.
//
// Multi-valued fields compare as unordered sets.
func groupingKeyChanged(grouping GroupableField, old, updated *library.Game) bool {
	if grouping == GroupNone {
		return false
	}

	if grouping == GroupReleaseYear {
		return releaseYear(old) != releaseYear(updated)
	}

	return !sameSet(fields[grouping].ids(old), fields[grouping].ids(updated))
}

func sameSet(a, b []uuid.UUID) bool {
	left := uniqueIDs(a)
	right := uniqueIDs(b)
	if len(left) != len(right) {
		return false
	}
	for _, id := range left {
		if !slices.Contains(right, id) {
			return false
		}
	}
	return true
}

// uniqueIDs drops duplicates and the zero id, keeping first-seen order.
func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	result := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil || slices.Contains(result, id) {
			continue
		}
		result = append(result, id)
	}
	return result
}

func releaseYear(game *library.Game) int {
	if game.ReleaseDate == nil {
		return 0
	}
	return game.ReleaseDate.Year()
}
