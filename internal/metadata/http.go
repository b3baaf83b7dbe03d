// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metadata

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/ludex/internal/platform/request"
	"github.com/taibuivan/ludex/internal/platform/respond"
)

// Handler implements the HTTP layer of the metadata proxy.
type Handler struct {
	service *Service
}

// NewHandler constructs a new metadata [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the metadata endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/collections/{id}", handler.getCollection)
	return router
}

/*
GET /api/v1/metadata/collections/{id}.

Description: Returns a game collection from the metadata service, served
from cache when possible.

Request:
  - id: uint64 (Collection ID)

Response:
  - 200: Collection: Success
  - 400: ValidationError: Malformed id
  - 404: ErrNotFound: Unknown collection
  - 502: Upstream: Metadata service failure
*/
func (handler *Handler) getCollection(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Uint64(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	collection, err := handler.service.GetCollection(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, collection)
}
