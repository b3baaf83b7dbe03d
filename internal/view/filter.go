// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"slices"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"github.com/taibuivan/ludex/internal/library"
)

// ListSeparator splits a filter text into alternative terms ("rpg, action").
const ListSeparator = ","

// ReleaseDateFormat is the textual form release-date filters match against.
const ReleaseDateFormat = "2006-01-02"

// # Filter Criteria

// FilterItem constrains one field either by free text or by a set of ids.
//
// Text takes precedence over ids. A blank text or a text made only of
// separators counts as unset.
type FilterItem struct {
	Text string      `json:"text,omitempty"`
	IDs  []uuid.UUID `json:"ids,omitempty"`
}

// Texts returns the trimmed, non-empty terms of the text.
func (f *FilterItem) Texts() []string {
	if f == nil {
		return nil
	}

	var terms []string
	for _, term := range strings.Split(f.Text, ListSeparator) {
		if term = strings.TrimSpace(term); term != "" {
			terms = append(terms, term)
		}
	}
	return terms
}

// IsSet reports whether the criterion constrains anything.
func (f *FilterItem) IsSet() bool {
	if f == nil {
		return false
	}
	return len(f.Texts()) > 0 || len(f.IDs) > 0
}

func (f *FilterItem) clone() *FilterItem {
	if f == nil {
		return nil
	}
	return &FilterItem{Text: f.Text, IDs: slices.Clone(f.IDs)}
}

// FilterSettings is the full set of user-configured filter criteria.
type FilterSettings struct {
	Installed   bool   `json:"installed"`
	Uninstalled bool   `json:"uninstalled"`
	Hidden      bool   `json:"hidden"`
	Favorite    bool   `json:"favorite"`
	Name        string `json:"name,omitempty"`
	ReleaseDate string `json:"release_date,omitempty"`

	Library   *FilterItem `json:"library,omitempty"`
	Series    *FilterItem `json:"series,omitempty"`
	Region    *FilterItem `json:"region,omitempty"`
	Source    *FilterItem `json:"source,omitempty"`
	AgeRating *FilterItem `json:"age_rating,omitempty"`
	Genre     *FilterItem `json:"genre,omitempty"`
	Platform  *FilterItem `json:"platform,omitempty"`
	Publisher *FilterItem `json:"publisher,omitempty"`
	Developer *FilterItem `json:"developer,omitempty"`
	Category  *FilterItem `json:"category,omitempty"`
	Tag       *FilterItem `json:"tag,omitempty"`
}

// IsActive reports whether any criterion is enabled.
func (f FilterSettings) IsActive() bool {
	if f.Installed || f.Uninstalled || f.Hidden || f.Favorite {
		return true
	}
	if strings.TrimSpace(f.Name) != "" || strings.TrimSpace(f.ReleaseDate) != "" {
		return true
	}
	for _, item := range f.items() {
		if item.IsSet() {
			return true
		}
	}
	return false
}

func (f FilterSettings) items() []*FilterItem {
	return []*FilterItem{
		f.Library, f.Series, f.Region, f.Source, f.AgeRating, f.Genre,
		f.Platform, f.Publisher, f.Developer, f.Category, f.Tag,
	}
}

// Clone returns a deep copy of f.
func (f FilterSettings) Clone() FilterSettings {
	clone := f
	clone.Library = f.Library.clone()
	clone.Series = f.Series.clone()
	clone.Region = f.Region.clone()
	clone.Source = f.Source.clone()
	clone.AgeRating = f.AgeRating.clone()
	clone.Genre = f.Genre.clone()
	clone.Platform = f.Platform.clone()
	clone.Publisher = f.Publisher.clone()
	clone.Developer = f.Developer.clone()
	clone.Category = f.Category.clone()
	clone.Tag = f.Tag.clone()
	return clone
}

// # Predicate Evaluator

// Evaluator decides whether an entry passes a set of filter criteria.
//
// # Concurrency
//
// Evaluator is not safe for concurrent use; each view owns one.
type Evaluator struct {
	fold cases.Caser
}

// NewEvaluator constructs an [Evaluator] using Unicode case folding.
func NewEvaluator() *Evaluator {
	return &Evaluator{fold: cases.Fold()}
}

// Matches is a convenience wrapper around a fresh [Evaluator].
func Matches(entry *Entry, criteria FilterSettings) bool {
	return NewEvaluator().Matches(entry, criteria)
}

/*
Matches reports whether entry passes criteria.

Description: With an inactive filter every game except hidden ones passes.
An active filter is evaluated as a fail-fast AND chain in a fixed order:
installed, hidden, favorite, library, name, release date, series, region,
source, age rating, genre, platform, publisher, developer, category, tag.
*/
func (evaluator *Evaluator) Matches(entry *Entry, criteria FilterSettings) bool {
	game := &entry.Game

	if !criteria.IsActive() {
		return !game.Hidden
	}

	// Installed
	if criteria.Installed != criteria.Uninstalled {
		if criteria.Installed && !game.IsInstalled {
			return false
		}
		if criteria.Uninstalled && game.IsInstalled {
			return false
		}
	}

	// Hidden must match exactly
	if criteria.Hidden != game.Hidden {
		return false
	}

	// Favorite
	if criteria.Favorite && !game.Favorite {
		return false
	}

	// Library
	if !evaluator.matchesPlugin(criteria.Library, entry) {
		return false
	}

	// Name
	if name := strings.TrimSpace(criteria.Name); name != "" {
		if game.Name == "" || !evaluator.contains(game.Name, name) {
			return false
		}
	}

	// Release date
	if date := strings.TrimSpace(criteria.ReleaseDate); date != "" {
		if game.ReleaseDate == nil || !evaluator.contains(game.ReleaseDate.Format(ReleaseDateFormat), date) {
			return false
		}
	}

	singles := []struct {
		item *FilterItem
		kind library.Kind
		id   uuid.UUID
	}{
		{criteria.Series, library.KindSeries, game.SeriesID},
		{criteria.Region, library.KindRegion, game.RegionID},
		{criteria.Source, library.KindSource, game.SourceID},
		{criteria.AgeRating, library.KindAgeRating, game.AgeRatingID},
	}
	for _, check := range singles {
		if !evaluator.matchesSingle(check.item, entry, check.kind, check.id) {
			return false
		}
	}

	if !evaluator.matchesMulti(criteria.Genre, entry, library.KindGenre, game.GenreIDs) {
		return false
	}
	if !evaluator.matchesSingle(criteria.Platform, entry, library.KindPlatform, game.PlatformID) {
		return false
	}

	multis := []struct {
		item *FilterItem
		kind library.Kind
		ids  []uuid.UUID
	}{
		{criteria.Publisher, library.KindCompany, game.PublisherIDs},
		{criteria.Developer, library.KindCompany, game.DeveloperIDs},
		{criteria.Category, library.KindCategory, game.CategoryIDs},
		{criteria.Tag, library.KindTag, game.TagIDs},
	}
	for _, check := range multis {
		if !evaluator.matchesMulti(check.item, entry, check.kind, check.ids) {
			return false
		}
	}

	return true
}

// matchesSingle evaluates a single-valued reference field.
// A set criterion never matches a game whose reference cannot be resolved.
func (evaluator *Evaluator) matchesSingle(item *FilterItem, entry *Entry, kind library.Kind, id uuid.UUID) bool {
	if !item.IsSet() {
		return true
	}

	reference, ok := entry.object(kind, id)
	if !ok {
		return false
	}

	if terms := item.Texts(); len(terms) > 0 {
		return evaluator.anyContains(reference.Name, terms)
	}
	return slices.Contains(item.IDs, id)
}

// matchesMulti evaluates a multi-valued reference field: any referenced
// object may satisfy the criterion.
func (evaluator *Evaluator) matchesMulti(item *FilterItem, entry *Entry, kind library.Kind, ids []uuid.UUID) bool {
	if !item.IsSet() {
		return true
	}

	if terms := item.Texts(); len(terms) > 0 {
		for _, reference := range entry.objects(kind, ids) {
			if evaluator.anyContains(reference.Name, terms) {
				return true
			}
		}
		return false
	}

	for _, id := range ids {
		if slices.Contains(item.IDs, id) {
			return true
		}
	}
	return false
}

// matchesPlugin evaluates the library criterion against the owning plugin.
func (evaluator *Evaluator) matchesPlugin(item *FilterItem, entry *Entry) bool {
	if !item.IsSet() {
		return true
	}

	if terms := item.Texts(); len(terms) > 0 {
		return entry.Plugin != nil && evaluator.anyContains(entry.Plugin.Name, terms)
	}
	return slices.Contains(item.IDs, entry.Game.PluginID)
}

func (evaluator *Evaluator) anyContains(value string, terms []string) bool {
	for _, term := range terms {
		if evaluator.contains(value, term) {
			return true
		}
	}
	return false
}

// contains is a case-insensitive substring test.
func (evaluator *Evaluator) contains(value, term string) bool {
	return strings.Contains(evaluator.fold.String(value), evaluator.fold.String(term))
}
