// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/taibuivan/ludex/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/ludex/internal/platform/request"
	"github.com/taibuivan/ludex/internal/platform/respond"
	"github.com/taibuivan/ludex/pkg/pointer"
	"github.com/taibuivan/ludex/pkg/query"
	"github.com/taibuivan/ludex/pkg/slice"
)

// BatchScope suspends derived-view recomputation around bulk mutations.
type BatchScope interface {
	DeferRefresh(ctx context.Context) (end func(), err error)
}

// Handler implements the HTTP layer for the game catalogue.
type Handler struct {
	service *Service
	batch   BatchScope
}

// NewHandler constructs a new library [Handler].
//
// batch may be nil; bulk mutations then notify views game by game.
func NewHandler(service *Service, batch BatchScope) *Handler {
	return &Handler{service: service, batch: batch}
}

// Routes returns a [chi.Router] configured with the catalogue endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// # Games
	router.Route("/games", func(gameRoute chi.Router) {
		gameRoute.Get("/", handler.listGames)
		gameRoute.Post("/", handler.addGames)
		gameRoute.Delete("/", handler.removeGames)

		gameRoute.Get("/{id}", handler.getGame)
		gameRoute.Put("/{id}", handler.replaceGame)
		gameRoute.Patch("/{id}", handler.patchGame)
		gameRoute.Delete("/{id}", handler.removeGame)
	})

	// # Reference Data
	router.Get("/references/{kind}", handler.listReferences)
	router.Post("/references/{kind}", handler.createReference)
	router.Put("/references/{kind}/{id}", handler.renameReference)

	// # Plugins
	router.Put("/plugins/{id}", handler.registerPlugin)

	return router
}

/*
GET /api/v1/games.

Description: Lists the catalogue in insertion order, optionally restricted
to a set of ids.

Request:
  - ids: string (comma-separated UUIDs)

Response:
  - 200: []Game: Success
*/
func (handler *Handler) listGames(writer http.ResponseWriter, request *http.Request) {
	games := handler.service.ListGames()

	if ids := query.UUIDSlice(request.URL.Query().Get("ids")); len(ids) > 0 {
		games = slice.Filter(games, func(game Game) bool { return slices.Contains(ids, game.ID) })
	}
	if games == nil {
		games = []Game{}
	}

	respond.OK(writer, games)
}

/*
GET /api/v1/games/{id}.

Response:
  - 200: Game: Success
  - 400: ValidationError: Malformed id
  - 404: ErrNotFound: Game missing
*/
func (handler *Handler) getGame(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.UUID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	game, err := handler.service.GetGame(id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, game)
}

/*
POST /api/v1/games.

Description: Imports one or more games. Views recompute once for the whole
import instead of once per game.

Request:
  - body: []Game

Response:
  - 201: []Game: Stored games with generated ids
  - 400: ValidationError: Invalid payload
  - 409: Conflict: A game id already exists
*/
func (handler *Handler) addGames(writer http.ResponseWriter, request *http.Request) {
	var games []Game
	if err := requestutil.DecodeJSON(request, &games); err != nil {
		respond.Error(writer, request, err)
		return
	}

	end, err := handler.deferRefresh(request.Context(), len(games))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer end()

	stored, err := handler.service.AddGames(request.Context(), games)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, stored)
}

/*
PUT /api/v1/games/{id}.

Description: Replaces every mutable field of a game.

Request:
  - body: Game

Response:
  - 200: Game: Updated game
  - 404: ErrNotFound: Game missing
*/
func (handler *Handler) replaceGame(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.UUID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var game Game
	if err := requestutil.DecodeJSON(request, &game); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateGame(request.Context(), id, &game); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, game)
}

// gamePatch carries the user-editable flags of a game. Nil fields are left
// untouched.
type gamePatch struct {
	Name         *string    `json:"name"`
	Hidden       *bool      `json:"hidden"`
	IsInstalled  *bool      `json:"is_installed"`
	Favorite     *bool      `json:"favorite"`
	Playtime     *uint64    `json:"playtime"`
	LastActivity *time.Time `json:"last_activity"`
}

func (patch gamePatch) apply(game *Game) {
	game.Name = pointer.Fallback(patch.Name, game.Name)
	game.Hidden = pointer.Fallback(patch.Hidden, game.Hidden)
	game.IsInstalled = pointer.Fallback(patch.IsInstalled, game.IsInstalled)
	game.Favorite = pointer.Fallback(patch.Favorite, game.Favorite)
	game.Playtime = pointer.Fallback(patch.Playtime, game.Playtime)
	if patch.LastActivity != nil {
		game.LastActivity = patch.LastActivity
	}
}

/*
PATCH /api/v1/games/{id}.

Description: Updates individual flags (hidden, favorite...) without
resending the whole game.

Request:
  - body: gamePatch

Response:
  - 200: Game: Updated game
  - 404: ErrNotFound: Game missing
*/
func (handler *Handler) patchGame(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.UUID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var patch gamePatch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	game, err := handler.service.GetGame(id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	patch.apply(game)
	if err := handler.service.UpdateGame(request.Context(), id, game); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, game)
}

/*
DELETE /api/v1/games/{id}.

Response:
  - 204: No Content
  - 404: ErrNotFound: Game missing
*/
func (handler *Handler) removeGame(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.UUID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.service.GetGame(id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.service.RemoveGames(request.Context(), []uuid.UUID{id}); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
DELETE /api/v1/games.

Description: Removes several games at once; unknown ids are ignored.

Request:
  - ids: string (comma-separated UUIDs)

Response:
  - 200: {"removed": int}
  - 400: ValidationError: No valid id given
*/
func (handler *Handler) removeGames(writer http.ResponseWriter, request *http.Request) {
	ids := query.UUIDSlice(request.URL.Query().Get("ids"))

	end, err := handler.deferRefresh(request.Context(), len(ids))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer end()

	removed, err := handler.service.RemoveGames(request.Context(), ids)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]int{"removed": removed})
}

/*
GET /api/v1/references/{kind}.

Response:
  - 200: []Reference: Ordered by name
  - 404: ErrNotFound: Unknown kind
*/
func (handler *Handler) listReferences(writer http.ResponseWriter, request *http.Request) {
	references, err := handler.service.References(Kind(requestutil.Param(request, "kind")))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, references)
}

// referenceRequest is the body of reference create and rename calls.
type referenceRequest struct {
	Name string `json:"name"`
}

/*
POST /api/v1/references/{kind}.

Request:
  - body: {"name": string}

Response:
  - 201: Reference: Stored object
  - 400: ValidationError: Missing name
  - 404: ErrNotFound: Unknown kind
*/
func (handler *Handler) createReference(writer http.ResponseWriter, request *http.Request) {
	var body referenceRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	reference, err := handler.service.CreateReference(request.Context(), Kind(requestutil.Param(request, "kind")), body.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, reference)
}

/*
PUT /api/v1/references/{kind}/{id}.

Description: Renames a reference object. Views sorted or grouped by the
affected field reorder the games that reference it.

Request:
  - body: {"name": string}

Response:
  - 200: Reference: Renamed object
  - 404: ErrNotFound: Unknown kind or object
*/
func (handler *Handler) renameReference(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.UUID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body referenceRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	kind := Kind(requestutil.Param(request, "kind"))
	reference, err := handler.service.RenameReference(request.Context(), kind, id, body.Name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, reference)
}

/*
PUT /api/v1/plugins/{id}.

Request:
  - body: {"name": string}

Response:
  - 200: Plugin: Stored plugin
  - 400: ValidationError: Missing name
*/
func (handler *Handler) registerPlugin(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.UUID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body Plugin
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}
	body.ID = id

	if err := handler.service.RegisterPlugin(request.Context(), body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, body)
}

// deferRefresh opens a view batch for mutations touching more than one game.
func (handler *Handler) deferRefresh(ctx context.Context, size int) (end func(), err error) {
	if handler.batch == nil || size < 2 {
		return func() {}, nil
	}

	end, err = handler.batch.DeferRefresh(ctx)
	if err != nil {
		return nil, err
	}

	ctxutil.GetLogger(ctx).Debug("view_batch_opened", slog.Int("size", size))
	return end, nil
}
