// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"context"

	"github.com/google/uuid"
)

// # Catalogue Data Access

// Catalog is a full snapshot of the persisted catalogue.
type Catalog struct {
	Games      []Game
	References []Reference
	Plugins    []Plugin
}

// Repository defines the persistence contract for the catalogue.
type Repository interface {

	/*
		LoadCatalog reads every game, reference and plugin.

		Parameters:
		  - context: context.Context

		Returns:
		  - *Catalog: Snapshot used to seed the in-memory [Database]
		  - error: Database retrieval failures
	*/
	LoadCatalog(context context.Context) (*Catalog, error)

	/*
		InsertGames persists new games in a single transaction.

		Parameters:
		  - context: context.Context
		  - games: []Game

		Returns:
		  - error: Storage or constraint failures
	*/
	InsertGames(context context.Context, games []Game) error

	/*
		UpdateGame persists all mutable fields of an existing game.

		Parameters:
		  - context: context.Context
		  - game: *Game

		Returns:
		  - error: dberr.ErrNotFound if the row is missing
	*/
	UpdateGame(context context.Context, game *Game) error

	/*
		DeleteGames removes games by id.

		Parameters:
		  - context: context.Context
		  - ids: []uuid.UUID

		Returns:
		  - error: Execution failures
	*/
	DeleteGames(context context.Context, ids []uuid.UUID) error

	/*
		UpsertReference creates or renames a reference object.

		Parameters:
		  - context: context.Context
		  - reference: *Reference

		Returns:
		  - error: Execution failures
	*/
	UpsertReference(context context.Context, reference *Reference) error

	/*
		UpsertPlugin registers or renames a library plugin.

		Parameters:
		  - context: context.Context
		  - plugin: *Plugin

		Returns:
		  - error: Execution failures
	*/
	UpsertPlugin(context context.Context, plugin *Plugin) error
}
