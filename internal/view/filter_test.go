// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/ludex/internal/library"
	"github.com/taibuivan/ludex/internal/view"
)

/*
TestMatches_Inactive verifies the default policy: hidden games are excluded,
everything else is shown.
*/
func TestMatches_Inactive(t *testing.T) {
	visible := view.NewEntry(game("Celeste"), nil, nil)
	hidden := view.NewEntry(game("Secret", func(g *library.Game) { g.Hidden = true }), nil, nil)

	assert.True(t, view.Matches(visible, view.FilterSettings{}))
	assert.False(t, view.Matches(hidden, view.FilterSettings{}))
}

/*
TestMatches_Hidden verifies that an active filter requires an exact hidden match.
*/
func TestMatches_Hidden(t *testing.T) {
	visible := view.NewEntry(game("Celeste"), nil, nil)
	hidden := view.NewEntry(game("Secret", func(g *library.Game) { g.Hidden = true }), nil, nil)

	criteria := view.FilterSettings{Hidden: true}

	assert.False(t, view.Matches(visible, criteria))
	assert.True(t, view.Matches(hidden, criteria))
}

/*
TestMatches_Installed verifies the installed/uninstalled pair.
*/
func TestMatches_Installed(t *testing.T) {
	installed := view.NewEntry(game("Hades", func(g *library.Game) { g.IsInstalled = true }), nil, nil)
	missing := view.NewEntry(game("Hades II"), nil, nil)

	tests := []struct {
		name      string
		criteria  view.FilterSettings
		installed bool
		missing   bool
	}{
		{"installed only", view.FilterSettings{Installed: true}, true, false},
		{"uninstalled only", view.FilterSettings{Uninstalled: true}, false, true},
		{"both cancel out", view.FilterSettings{Installed: true, Uninstalled: true}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.installed, view.Matches(installed, tt.criteria))
			assert.Equal(t, tt.missing, view.Matches(missing, tt.criteria))
		})
	}
}

/*
TestMatches_Name verifies case-insensitive substring matching on the name.
*/
func TestMatches_Name(t *testing.T) {
	entry := view.NewEntry(game("The Legend of Zelda"), nil, nil)

	assert.True(t, view.Matches(entry, view.FilterSettings{Name: "ZELDA"}))
	assert.True(t, view.Matches(entry, view.FilterSettings{Name: "  legend "}))
	assert.False(t, view.Matches(entry, view.FilterSettings{Name: "Mario"}))
}

/*
TestMatches_ReleaseDate verifies the textual date match.
*/
func TestMatches_ReleaseDate(t *testing.T) {
	dated := view.NewEntry(game("Breath of the Wild", released(2017)), nil, nil)
	undated := view.NewEntry(game("Prototype"), nil, nil)

	assert.True(t, view.Matches(dated, view.FilterSettings{ReleaseDate: "2017"}))
	assert.True(t, view.Matches(dated, view.FilterSettings{ReleaseDate: "2017-03"}))
	assert.False(t, view.Matches(dated, view.FilterSettings{ReleaseDate: "2018"}))
	assert.False(t, view.Matches(undated, view.FilterSettings{ReleaseDate: "2017"}))
}

/*
TestMatches_MultiValued verifies text and id criteria on genres.
*/
func TestMatches_MultiValued(t *testing.T) {
	source := newCatalog(t)
	rpg := source.reference(library.KindGenre, "RPG")
	action := source.reference(library.KindGenre, "Action")
	puzzle := source.reference(library.KindGenre, "Puzzle")

	entry := view.NewEntry(game("Diablo", withGenres(rpg, action)), nil, source)

	tests := []struct {
		name  string
		item  *view.FilterItem
		match bool
	}{
		{"text matches one genre", &view.FilterItem{Text: "rpg"}, true},
		{"substring", &view.FilterItem{Text: "act"}, true},
		{"any term of a list", &view.FilterItem{Text: "puzzle, action"}, true},
		{"no term matches", &view.FilterItem{Text: "puzzle, racing"}, false},
		{"id intersection", &view.FilterItem{IDs: []uuid.UUID{puzzle.ID, rpg.ID}}, true},
		{"empty intersection", &view.FilterItem{IDs: []uuid.UUID{puzzle.ID}}, false},
		{"text wins over ids", &view.FilterItem{Text: "puzzle", IDs: []uuid.UUID{rpg.ID}}, false},
		{"blank text is unset", &view.FilterItem{Text: " , "}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.match, view.Matches(entry, view.FilterSettings{Genre: tt.item}))
		})
	}
}

/*
TestMatches_SingleValued verifies that an unresolved reference never matches
an active criterion.
*/
func TestMatches_SingleValued(t *testing.T) {
	source := newCatalog(t)
	pc := source.reference(library.KindPlatform, "PC")

	onPC := view.NewEntry(game("Doom", withPlatform(pc)), nil, source)
	orphan := view.NewEntry(game("Doom 64", func(g *library.Game) { g.PlatformID = uuid.New() }), nil, source)
	none := view.NewEntry(game("Quake"), nil, source)

	byText := view.FilterSettings{Platform: &view.FilterItem{Text: "pc"}}
	byID := view.FilterSettings{Platform: &view.FilterItem{IDs: []uuid.UUID{pc.ID}}}

	assert.True(t, view.Matches(onPC, byText))
	assert.True(t, view.Matches(onPC, byID))
	assert.False(t, view.Matches(orphan, byText))
	assert.False(t, view.Matches(none, byID))
}

/*
TestMatches_Library verifies plugin filtering by name and by id.
*/
func TestMatches_Library(t *testing.T) {
	steam := library.Plugin{ID: uuid.New(), Name: "Steam"}
	owned := game("Portal", func(g *library.Game) { g.PluginID = steam.ID })

	fromSteam := view.NewEntry(owned, &steam, nil)
	manual := view.NewEntry(game("Homebrew"), nil, nil)

	assert.True(t, view.Matches(fromSteam, view.FilterSettings{Library: &view.FilterItem{Text: "steam"}}))
	assert.True(t, view.Matches(fromSteam, view.FilterSettings{Library: &view.FilterItem{IDs: []uuid.UUID{steam.ID}}}))
	assert.False(t, view.Matches(manual, view.FilterSettings{Library: &view.FilterItem{Text: "steam"}}))
}

/*
TestMatches_Conjunction verifies that every enabled criterion must pass.
*/
func TestMatches_Conjunction(t *testing.T) {
	source := newCatalog(t)
	rpg := source.reference(library.KindGenre, "RPG")

	favorite := view.NewEntry(game("Chrono Trigger", withGenres(rpg), func(g *library.Game) {
		g.Favorite = true
		g.IsInstalled = true
	}), nil, source)
	plain := view.NewEntry(game("Chrono Cross", withGenres(rpg)), nil, source)

	criteria := view.FilterSettings{
		Installed: true,
		Favorite:  true,
		Name:      "chrono",
		Genre:     &view.FilterItem{Text: "rpg"},
	}

	assert.True(t, view.Matches(favorite, criteria))
	assert.False(t, view.Matches(plain, criteria))
}

/*
TestFilterSettings_IsActive verifies that blank criteria keep the filter off.
*/
func TestFilterSettings_IsActive(t *testing.T) {
	assert.False(t, view.FilterSettings{}.IsActive())
	assert.False(t, view.FilterSettings{Name: "   ", Tag: &view.FilterItem{Text: ","}}.IsActive())
	assert.True(t, view.FilterSettings{Favorite: true}.IsActive())
	assert.True(t, view.FilterSettings{Tag: &view.FilterItem{IDs: []uuid.UUID{uuid.New()}}}.IsActive())
}

/*
TestFilterSettings_Clone verifies that clones do not share id slices.
*/
func TestFilterSettings_Clone(t *testing.T) {
	original := view.FilterSettings{Genre: &view.FilterItem{IDs: []uuid.UUID{uuid.New()}}}

	clone := original.Clone()
	clone.Genre.IDs[0] = uuid.Nil

	assert.NotEqual(t, uuid.Nil, original.Genre.IDs[0])
}
