// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/ludex/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/ludex/internal/platform/request"
	"github.com/taibuivan/ludex/internal/platform/respond"
	"github.com/taibuivan/ludex/pkg/pagination"
)

// Handler implements the HTTP layer for catalogue views.
//
// Reads go through the engine loop; settings writes go to the [Profile],
// which notifies the engine, and are then persisted.
type Handler struct {
	registry *Registry
	store    ProfileStore
}

// NewHandler constructs a new view [Handler].
func NewHandler(registry *Registry, store ProfileStore) *Handler {
	return &Handler{registry: registry, store: store}
}

// Routes returns a [chi.Router] configured with the view endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listProfiles)

	router.Route("/{profile}", func(profileRoute chi.Router) {
		profileRoute.Get("/", handler.getView)

		profileRoute.Get("/settings", handler.getSettings)
		profileRoute.Put("/settings", handler.updateSettings)

		profileRoute.Get("/filter", handler.getFilter)
		profileRoute.Put("/filter", handler.updateFilter)
	})

	return router
}

// viewPage is one page of a view snapshot.
type viewPage struct {
	Profile  string         `json:"profile"`
	Mode     Mode           `json:"mode"`
	Grouping GroupableField `json:"grouping"`
	Items    []Item         `json:"items"`
}

/*
GET /api/v1/views.

Description: Lists the names of the running view profiles.

Response:
  - 200: []string: Success
*/
func (handler *Handler) listProfiles(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.registry.Names())
}

/*
GET /api/v1/views/{profile}.

Description: Returns one page of the visible entries of a profile, in
display order. In grouped mode a game appears once per group value.

Request:
  - profile: string (desktop, fullscreen)
  - page: int
  - limit: int

Response:
  - 200: viewPage: Paginated list
  - 404: ErrNotFound: Unknown profile
*/
func (handler *Handler) getView(writer http.ResponseWriter, request *http.Request) {
	engine, err := handler.registry.Get(requestutil.Param(request, "profile"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	snapshot, err := engine.Snapshot(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	items, meta := pagination.Window(snapshot.Items, pagination.FromRequest(request))

	respond.Paginated(writer, viewPage{
		Profile:  snapshot.Profile,
		Mode:     snapshot.Mode,
		Grouping: snapshot.Grouping,
		Items:    items,
	}, meta)
}

/*
GET /api/v1/views/{profile}/settings.

Response:
  - 200: ViewSettings: Success
  - 404: ErrNotFound: Unknown profile
*/
func (handler *Handler) getSettings(writer http.ResponseWriter, request *http.Request) {
	engine, err := handler.registry.Get(requestutil.Param(request, "profile"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, engine.Profile().View())
}

/*
PUT /api/v1/views/{profile}/settings.

Description: Replaces the sort and grouping configuration. The view is
reconfigured before any later read of the same profile is served.

Request:
  - body: ViewSettings

Response:
  - 200: ViewSettings: Stored settings
  - 400: ValidationError: Unknown sort order, direction or grouping field
  - 404: ErrNotFound: Unknown profile
*/
func (handler *Handler) updateSettings(writer http.ResponseWriter, request *http.Request) {
	engine, err := handler.registry.Get(requestutil.Param(request, "profile"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var settings ViewSettings
	if err := requestutil.DecodeJSON(request, &settings); err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile := engine.Profile()
	if err := profile.SaveView(request.Context(), handler.store, settings); err != nil {
		respond.Error(writer, request, err)
		return
	}

	ctxutil.GetLogger(request.Context()).Info("view_settings_updated",
		slog.String("profile", profile.Name()),
		slog.String("sorting_order", string(settings.SortingOrder)),
		slog.String("grouping_order", string(settings.GroupingOrder)),
	)

	respond.OK(writer, profile.View())
}

/*
GET /api/v1/views/{profile}/filter.

Response:
  - 200: FilterSettings: Success
  - 404: ErrNotFound: Unknown profile
*/
func (handler *Handler) getFilter(writer http.ResponseWriter, request *http.Request) {
	engine, err := handler.registry.Get(requestutil.Param(request, "profile"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, engine.Profile().Filter())
}

/*
PUT /api/v1/views/{profile}/filter.

Description: Replaces the filter criteria. Every entry is re-evaluated.

Request:
  - body: FilterSettings

Response:
  - 200: FilterSettings: Stored criteria
  - 404: ErrNotFound: Unknown profile
*/
func (handler *Handler) updateFilter(writer http.ResponseWriter, request *http.Request) {
	engine, err := handler.registry.Get(requestutil.Param(request, "profile"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var filter FilterSettings
	if err := requestutil.DecodeJSON(request, &filter); err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile := engine.Profile()

	ctx := ctxutil.WithAttrs(request.Context(), slog.String("profile", profile.Name()))
	if err := profile.SaveFilter(ctx, handler.store, filter); err != nil {
		respond.Error(writer, request, err)
		return
	}

	ctxutil.GetLogger(ctx).Info("view_filter_updated", slog.Bool("active", filter.IsActive()))

	respond.OK(writer, profile.Filter())
}
