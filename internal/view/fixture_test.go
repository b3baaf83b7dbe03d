// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ludex/internal/library"
	"github.com/taibuivan/ludex/internal/view"
)

// catalog wraps a [library.Database] with helpers to seed it.
type catalog struct {
	*library.Database
	t *testing.T
}

func newCatalog(t *testing.T) *catalog {
	return &catalog{Database: library.NewDatabase(), t: t}
}

func (c *catalog) reference(kind library.Kind, name string) library.Reference {
	reference := library.Reference{ID: uuid.New(), Kind: kind, Name: name}
	require.NoError(c.t, c.PutReferences(reference))
	return reference
}

func (c *catalog) plugin(name string) library.Plugin {
	plugin := library.Plugin{ID: uuid.New(), Name: name}
	c.PutPlugins(plugin)
	return plugin
}

func (c *catalog) add(games ...library.Game) {
	require.NoError(c.t, c.AddGames(games...))
}

func (c *catalog) rename(reference library.Reference, name string) {
	reference.Name = name
	require.NoError(c.t, c.PutReferences(reference))
}

func game(name string, edits ...func(*library.Game)) library.Game {
	g := library.Game{ID: uuid.New(), Name: name}
	for _, edit := range edits {
		edit(&g)
	}
	return g
}

func released(year int) func(*library.Game) {
	return func(g *library.Game) {
		date := time.Date(year, time.March, 3, 0, 0, 0, 0, time.UTC)
		g.ReleaseDate = &date
	}
}

func withGenres(genres ...library.Reference) func(*library.Game) {
	return func(g *library.Game) {
		for _, genre := range genres {
			g.GenreIDs = append(g.GenreIDs, genre.ID)
		}
	}
}

func withPlatform(platform library.Reference) func(*library.Game) {
	return func(g *library.Game) { g.PlatformID = platform.ID }
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func settings(order view.SortOrder, direction view.SortDirection, grouping view.GroupableField) view.ViewSettings {
	return view.ViewSettings{
		SortingOrder:          order,
		SortingOrderDirection: direction,
		GroupingOrder:         grouping,
	}
}

func newView(t *testing.T, source view.Catalog, config view.ViewSettings, filter view.FilterSettings) *view.View {
	t.Helper()

	v, err := view.New(source, config, filter, view.Options{Name: "test", Logger: discardLogger()})
	require.NoError(t, err)
	return v
}

func names(entries []*view.Entry) []string {
	result := make([]string, 0, len(entries))
	for _, entry := range entries {
		result = append(result, entry.Name())
	}
	return result
}

// changeLog is an [view.Observer] that records change kinds.
type changeLog struct {
	changes []view.Change
}

func (log *changeLog) ViewChanged(change view.Change) {
	log.changes = append(log.changes, change)
}

func (log *changeLog) kinds() []view.ChangeKind {
	kinds := make([]view.ChangeKind, 0, len(log.changes))
	for _, change := range log.changes {
		kinds = append(kinds, change.Kind)
	}
	return kinds
}
