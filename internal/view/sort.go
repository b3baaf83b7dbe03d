// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"bytes"
	"cmp"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// # Sort Descriptors

// sortKey is one level of the composite ordering.
type sortKey struct {
	property   property
	descending bool
}

// sortKeys derives the composite ordering from a configuration.
//
// Rules:
//  1. The primary key is the configured sort order. Sorting by name inverts
//     the configured direction.
//  2. Name ascending follows unless name is already primary.
//  3. An active grouping whose property differs from the primary key is
//     prepended, ascending.
func sortKeys(settings ViewSettings, grouping GroupableField) []sortKey {
	descending := settings.SortingOrderDirection == Descending
	if settings.SortingOrder == SortName {
		descending = !descending
	}

	keys := []sortKey{{property: sortProperties[settings.SortingOrder], descending: descending}}
	if settings.SortingOrder != SortName {
		keys = append(keys, sortKey{property: propName})
	}

	if grouping != GroupNone {
		groupProperty := fields[grouping].property
		if keys[0].property != groupProperty {
			keys = append([]sortKey{{property: groupProperty}}, keys...)
		}
	}

	return keys
}

// sorter orders entries by a list of sort keys with a final tie-break on
// game id and group id so the order is total.
//
// # Concurrency
//
// The collator is stateful; a sorter must not be shared between goroutines.
type sorter struct {
	keys     []sortKey
	grouping GroupableField
	collator *collate.Collator
}

func newSorter(keys []sortKey, grouping GroupableField) *sorter {
	return &sorter{
		keys:     keys,
		grouping: grouping,
		collator: collate.New(language.Und, collate.IgnoreCase),
	}
}

func (s *sorter) compare(a, b *Entry) int {
	for _, key := range s.keys {
		c := s.compareProperty(key.property, a, b)
		if key.descending {
			c = -c
		}
		if c != 0 {
			return c
		}
	}

	if c := bytes.Compare(a.Game.ID[:], b.Game.ID[:]); c != 0 {
		return c
	}
	return bytes.Compare(a.GroupID[:], b.GroupID[:])
}

func (s *sorter) compareProperty(p property, a, b *Entry) int {
	switch p {
	case propName:
		return s.text(a.Name(), b.Name())
	case propLibrary:
		return s.text(a.Library(), b.Library())
	case propPlatform:
		return s.text(a.Platform(), b.Platform())
	case propSeries:
		return s.text(a.Series(), b.Series())
	case propRegion:
		return s.text(a.Region(), b.Region())
	case propSource:
		return s.text(a.Source(), b.Source())
	case propAgeRating:
		return s.text(a.AgeRating(), b.AgeRating())
	case propReleaseDate:
		return compareTime(a.Game.ReleaseDate, b.Game.ReleaseDate)
	case propReleaseYear:
		return cmp.Compare(a.ReleaseYear(), b.ReleaseYear())
	case propInstalled:
		return compareBool(a.Game.IsInstalled, b.Game.IsInstalled)
	case propHidden:
		return compareBool(a.Game.Hidden, b.Game.Hidden)
	case propFavorite:
		return compareBool(a.Game.Favorite, b.Game.Favorite)
	case propLastActivity:
		return compareTime(a.Game.LastActivity, b.Game.LastActivity)
	case propPlaytime:
		return cmp.Compare(a.Game.Playtime, b.Game.Playtime)
	case propAdded:
		return compareTime(a.Game.Added, b.Game.Added)
	case propGenres:
		return s.text(joinNames(a.Genres()), joinNames(b.Genres()))
	case propDevelopers:
		return s.text(joinNames(a.Developers()), joinNames(b.Developers()))
	case propPublishers:
		return s.text(joinNames(a.Publishers()), joinNames(b.Publishers()))
	case propCategories:
		return s.text(joinNames(a.Categories()), joinNames(b.Categories()))
	case propTags:
		return s.text(joinNames(a.Tags()), joinNames(b.Tags()))
	case propGroupValue:
		return s.text(a.Group(s.grouping), b.Group(s.grouping))
	}
	return 0
}

// text compares case-insensitively; empty values sort first.
func (s *sorter) text(a, b string) int {
	switch {
	case a == b:
		return 0
	case a == "":
		return -1
	case b == "":
		return 1
	}
	return s.collator.CompareString(a, b)
}

// compareTime sorts unknown dates first.
func compareTime(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return a.Compare(*b)
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	}
	return 1
}
