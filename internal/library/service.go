// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/taibuivan/ludex/internal/platform/apperr"
	"github.com/taibuivan/ludex/internal/platform/validate"
	"github.com/taibuivan/ludex/pkg/slug"
	"github.com/taibuivan/ludex/pkg/uuidv7"
)

const (
	maxGameNameLength      = 500
	maxReferenceNameLength = 200
)

// # Service Layer

// Service orchestrates catalogue mutations.
//
// Every mutation is persisted first and applied to the in-memory [Database]
// second, so subscribers are only notified about durable changes.
type Service struct {
	repo   Repository
	db     *Database
	logger *slog.Logger
	now    func() time.Time
}

// NewService constructs a new library [Service].
func NewService(repo Repository, db *Database, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

// Database exposes the in-memory catalogue the service mutates.
func (service *Service) Database() *Database {
	return service.db
}

/*
Load seeds the in-memory catalogue from persistent storage.

Parameters:
  - context: context.Context

Returns:
  - error: Retrieval failures
*/
func (service *Service) Load(context context.Context) error {
	catalog, err := service.repo.LoadCatalog(context)
	if err != nil {
		return err
	}

	service.db.Load(catalog.Games, catalog.References, catalog.Plugins)

	service.logger.Info("catalog_loaded",
		slog.Int("games", len(catalog.Games)),
		slog.Int("references", len(catalog.References)),
		slog.Int("plugins", len(catalog.Plugins)),
	)
	return nil
}

// # Game Methods

// ListGames returns every game in insertion order.
func (service *Service) ListGames() []Game {
	return service.db.Games()
}

// GetGame returns a single game.
func (service *Service) GetGame(id uuid.UUID) (*Game, error) {
	game, ok := service.db.Game(id)
	if !ok {
		return nil, apperr.NotFound("Game")
	}
	return &game, nil
}

/*
AddGames validates and imports new games.

Description: Missing ids are generated (UUIDv7) and a missing Added timestamp
defaults to now.

Parameters:
  - context: context.Context
  - games: []Game

Returns:
  - []Game: The stored games with generated fields filled in
  - error: Validation, conflict or storage failures
*/
func (service *Service) AddGames(context context.Context, games []Game) ([]Game, error) {
	validator := &validate.Validator{}
	validator.Custom(FieldGames, len(games) == 0, "At least one game is required")

	now := service.now().UTC()
	for i := range games {
		if games[i].ID == uuid.Nil {
			games[i].ID = uuidv7.New()
		}
		if games[i].Added == nil {
			games[i].Added = &now
		}
		validateGame(validator.At(FieldGames, i), &games[i])
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	for _, game := range games {
		if _, exists := service.db.Game(game.ID); exists {
			return nil, apperr.Conflict("Game already exists")
		}
	}

	if err := service.repo.InsertGames(context, games); err != nil {
		return nil, err
	}

	if err := service.db.AddGames(games...); err != nil {
		return nil, err
	}

	service.logger.Info("games_added", slog.Int("count", len(games)))
	return games, nil
}

/*
UpdateGame replaces the mutable fields of an existing game.

Parameters:
  - context: context.Context
  - id: uuid.UUID
  - game: *Game

Returns:
  - error: apperr.NotFound, validation or storage failures
*/
func (service *Service) UpdateGame(context context.Context, id uuid.UUID, game *Game) error {
	existing, ok := service.db.Game(id)
	if !ok {
		return apperr.NotFound("Game")
	}

	game.ID = id
	if game.Added == nil {
		game.Added = existing.Added
	}

	validator := &validate.Validator{}
	validateGame(validator, game)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.UpdateGame(context, game); err != nil {
		return err
	}

	return service.db.UpdateGames(*game)
}

/*
RemoveGames deletes games from storage and the catalogue.

Parameters:
  - context: context.Context
  - ids: []uuid.UUID

Returns:
  - int: Number of games that were present
  - error: Storage failures
*/
func (service *Service) RemoveGames(context context.Context, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, validate.Invalid(FieldID, "At least one id is required")
	}

	if err := service.repo.DeleteGames(context, ids); err != nil {
		return 0, err
	}

	removed := service.db.RemoveGames(ids...)
	service.logger.Info("games_removed", slog.Int("count", len(removed)))
	return len(removed), nil
}

// # Reference Methods

// References returns all reference objects of kind ordered by name.
func (service *Service) References(kind Kind) ([]Reference, error) {
	if !kind.IsValid() {
		return nil, apperr.NotFound("Reference kind")
	}
	return service.db.References(kind), nil
}

/*
CreateReference registers a new reference object.

Parameters:
  - context: context.Context
  - kind: Kind
  - name: string

Returns:
  - *Reference: The stored object
  - error: Validation or storage failures
*/
func (service *Service) CreateReference(context context.Context, kind Kind, name string) (*Reference, error) {
	if !kind.IsValid() {
		return nil, apperr.NotFound("Reference kind")
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, name).MaxLen(FieldName, name, maxReferenceNameLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	reference := &Reference{ID: uuidv7.New(), Kind: kind, Name: name, Slug: slug.From(name)}
	if err := service.repo.UpsertReference(context, reference); err != nil {
		return nil, err
	}

	if err := service.db.PutReferences(*reference); err != nil {
		return nil, err
	}
	return reference, nil
}

/*
RenameReference changes the display name of an existing reference object.

Description: Views observe the rename through [ReferencesUpdated] and re-sort
or regroup the affected games.

Parameters:
  - context: context.Context
  - kind: Kind
  - id: uuid.UUID
  - name: string

Returns:
  - *Reference: The renamed object
  - error: apperr.NotFound, validation or storage failures
*/
func (service *Service) RenameReference(context context.Context, kind Kind, id uuid.UUID, name string) (*Reference, error) {
	if !kind.IsValid() {
		return nil, apperr.NotFound("Reference kind")
	}

	existing, ok := service.db.Reference(kind, id)
	if !ok {
		return nil, apperr.NotFound("Reference")
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, name).MaxLen(FieldName, name, maxReferenceNameLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	renamed := *existing
	renamed.Name = name
	renamed.Slug = slug.From(name)

	if err := service.repo.UpsertReference(context, &renamed); err != nil {
		return nil, err
	}

	if err := service.db.PutReferences(renamed); err != nil {
		return nil, err
	}

	service.logger.Info("reference_renamed",
		slog.String("kind", string(kind)),
		slog.String("id", id.String()),
	)
	return &renamed, nil
}

// # Plugin Methods

// RegisterPlugin stores a library plugin so games can resolve it.
func (service *Service) RegisterPlugin(context context.Context, plugin Plugin) error {
	validator := &validate.Validator{}
	validator.
		Custom(FieldPluginID, plugin.ID == uuid.Nil, "This field is required").
		Required(FieldName, plugin.Name)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.UpsertPlugin(context, &plugin); err != nil {
		return err
	}

	service.db.PutPlugins(plugin)
	return nil
}

// # Validation

func validateGame(validator *validate.Validator, game *Game) {
	validator.Required(FieldName, game.Name).MaxLen(FieldName, game.Name, maxGameNameLength)
	if game.ReleaseDate != nil {
		validator.Custom(FieldReleaseDate, game.ReleaseDate.Year() < 1950, "Release date is too early")
	}
}
