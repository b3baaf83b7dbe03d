// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/ludex/internal/platform/database/schema"
	"github.com/taibuivan/ludex/internal/platform/dberr"
)

// # PostgreSQL Repository

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed catalogue store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
LoadCatalog reads the full catalogue in three round-trips.

Description: The catalogue of a single user is small enough to be held in
memory; the view engine works on that copy, not on SQL.
*/
func (repository *PostgresRepository) LoadCatalog(context context.Context) (*Catalog, error) {
	catalog := &Catalog{}

	// 1. Plugins
	pluginQuery := fmt.Sprintf(`SELECT %s FROM %s`,
		strings.Join(schema.LibraryPlugin.Columns(), ", "), schema.LibraryPlugin.Table)

	pluginRows, err := repository.pool.Query(context, pluginQuery)
	if err != nil {
		return nil, dberr.Wrap(err, "list_plugins")
	}
	catalog.Plugins, err = pgx.CollectRows(pluginRows, func(row pgx.CollectableRow) (Plugin, error) {
		var plugin Plugin
		err := row.Scan(&plugin.ID, &plugin.Name)
		return plugin, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "scan_plugin")
	}

	// 2. References
	referenceQuery := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC`,
		strings.Join(schema.LibraryReference.Columns(), ", "), schema.LibraryReference.Table,
		schema.LibraryReference.Name)

	referenceRows, err := repository.pool.Query(context, referenceQuery)
	if err != nil {
		return nil, dberr.Wrap(err, "list_references")
	}
	catalog.References, err = pgx.CollectRows(referenceRows, func(row pgx.CollectableRow) (Reference, error) {
		var reference Reference
		var kind string
		err := row.Scan(&reference.ID, &kind, &reference.Name, &reference.Slug)
		reference.Kind = Kind(kind)
		return reference, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "scan_reference")
	}

	// 3. Games
	gameQuery := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC`,
		strings.Join(schema.LibraryGame.Columns(), ", "), schema.LibraryGame.Table,
		schema.LibraryGame.Added)

	gameRows, err := repository.pool.Query(context, gameQuery)
	if err != nil {
		return nil, dberr.Wrap(err, "list_games")
	}
	catalog.Games, err = pgx.CollectRows(gameRows, scanGame)
	if err != nil {
		return nil, dberr.Wrap(err, "scan_game")
	}

	return catalog, nil
}

// InsertGames persists new games atomically.
func (repository *PostgresRepository) InsertGames(context context.Context, games []Game) error {
	if len(games) == 0 {
		return nil
	}

	columns := schema.LibraryGame.Columns()
	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		schema.LibraryGame.Table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_insert_games")
	}
	defer func() { _ = transaction.Rollback(context) }()

	batch := &pgx.Batch{}
	for i := range games {
		batch.Queue(query, gameArgs(&games[i])...)
	}

	if err := transaction.SendBatch(context, batch).Close(); err != nil {
		return dberr.Wrap(err, "insert_games")
	}

	if err := transaction.Commit(context); err != nil {
		return dberr.Wrap(err, "commit_insert_games")
	}
	return nil
}

// UpdateGame rewrites every mutable column of an existing game.
func (repository *PostgresRepository) UpdateGame(context context.Context, game *Game) error {
	columns := schema.LibraryGame.Columns()
	assignments := make([]string, 0, len(columns)-1)
	for i, column := range columns[1:] {
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, i+2))
	}

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE %s = $1`,
		schema.LibraryGame.Table, strings.Join(assignments, ", "), schema.LibraryGame.ID)

	tag, err := repository.pool.Exec(context, query, gameArgs(game)...)
	if err != nil {
		return dberr.Wrap(err, "update_game")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// DeleteGames removes games by id.
func (repository *PostgresRepository) DeleteGames(context context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = ANY($1)`,
		schema.LibraryGame.Table, schema.LibraryGame.ID)

	if _, err := repository.pool.Exec(context, query, ids); err != nil {
		return dberr.Wrap(err, "delete_games")
	}
	return nil
}

// UpsertReference creates or renames a reference object.
func (repository *PostgresRepository) UpsertReference(context context.Context, reference *Reference) error {
	table := schema.LibraryReference
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4)
		ON CONFLICT (%s) DO UPDATE SET %s = EXCLUDED.%s, %s = EXCLUDED.%s
	`,
		table.Table, table.ID, table.Kind, table.Name, table.Slug,
		table.ID, table.Name, table.Name, table.Slug, table.Slug,
	)

	if _, err := repository.pool.Exec(context, query, reference.ID, string(reference.Kind), reference.Name, reference.Slug); err != nil {
		return dberr.Wrap(err, "upsert_reference")
	}
	return nil
}

// UpsertPlugin registers or renames a library plugin.
func (repository *PostgresRepository) UpsertPlugin(context context.Context, plugin *Plugin) error {
	table := schema.LibraryPlugin
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s) VALUES ($1, $2)
		ON CONFLICT (%s) DO UPDATE SET %s = EXCLUDED.%s
	`, table.Table, table.ID, table.Name, table.ID, table.Name, table.Name)

	if _, err := repository.pool.Exec(context, query, plugin.ID, plugin.Name); err != nil {
		return dberr.Wrap(err, "upsert_plugin")
	}
	return nil
}

// # Row Mapping

// gameArgs returns the query arguments in [schema.LibraryGameTable.Columns] order.
func gameArgs(game *Game) []any {
	return []any{
		game.ID, game.Name, game.Hidden, game.IsInstalled, game.Favorite,
		game.ReleaseDate, game.Added, game.LastActivity, int64(game.Playtime), game.PluginID,
		game.PlatformID, game.SeriesID, game.RegionID, game.SourceID, game.AgeRatingID,
		nonNil(game.GenreIDs), nonNil(game.DeveloperIDs), nonNil(game.PublisherIDs),
		nonNil(game.CategoryIDs), nonNil(game.TagIDs),
	}
}

func scanGame(row pgx.CollectableRow) (Game, error) {
	var game Game
	var playtime int64
	err := row.Scan(
		&game.ID, &game.Name, &game.Hidden, &game.IsInstalled, &game.Favorite,
		&game.ReleaseDate, &game.Added, &game.LastActivity, &playtime, &game.PluginID,
		&game.PlatformID, &game.SeriesID, &game.RegionID, &game.SourceID, &game.AgeRatingID,
		&game.GenreIDs, &game.DeveloperIDs, &game.PublisherIDs, &game.CategoryIDs, &game.TagIDs,
	)
	if playtime > 0 {
		game.Playtime = uint64(playtime)
	}
	return game, err
}

// nonNil keeps NOT NULL array columns satisfied.
func nonNil(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return []uuid.UUID{}
	}
	return ids
}
