// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"golang.org/x/sync/singleflight"

	"github.com/taibuivan/ludex/internal/platform/apperr"
)

// # Service Layer

// Service resolves metadata items through the cache and the upstream client.
//
// # Concurrency
//
// Concurrent misses on the same key share one upstream request. The cache
// is read again inside the flight so a caller arriving just after a fetch
// completes does not start another.
type Service struct {
	fetcher Fetcher
	cache   *Cache
	logger  *slog.Logger
	flights singleflight.Group
}

// NewService constructs a metadata [Service].
func NewService(fetcher Fetcher, cache *Cache, logger *slog.Logger) *Service {
	return &Service{
		fetcher: fetcher,
		cache:   cache,
		logger:  logger,
	}
}

/*
GetItem returns the item of type T stored at endpoint/id.

Description: Callers share the raw payload of one flight and each decodes it
into its own T, so the flight key does not depend on the requested type.

Parameters:
  - context: context.Context
  - service: *Service
  - endpoint: string (e.g. "collections")
  - id: uint64

Returns:
  - *T: Decoded item
  - error: apperr.NotFound, apperr.Upstream or decoding failures
*/
func GetItem[T any](context context.Context, service *Service, endpoint string, id uint64) (*T, error) {
	key := Key(endpoint, id)

	if item, ok := decodeCached[T](context, service, key); ok {
		return item, nil
	}

	result, err, shared := service.flights.Do(key, func() (any, error) {
		if payload, ok := service.cache.Get(context, key); ok && json.Valid(payload) {
			return payload, nil
		}

		payload, err := service.fetcher.Fetch(context, endpoint, id)
		if err != nil {
			return nil, err
		}
		if !json.Valid(payload) {
			return nil, apperr.Upstream(fmt.Errorf("metadata: %s returned malformed JSON", key))
		}

		service.cache.Set(context, key, payload)
		return payload, nil
	})
	if err != nil {
		return nil, err
	}

	if shared {
		service.logger.Debug("metadata_fetch_shared", slog.String("key", key))
	}

	payload, ok := result.([]byte)
	if !ok {
		return nil, apperr.Internal(fmt.Errorf("metadata: unexpected flight result %T for %s", result, key))
	}

	var item T
	if err := json.Unmarshal(payload, &item); err != nil {
		return nil, apperr.Upstream(fmt.Errorf("metadata: decode %s: %w", key, err))
	}
	return &item, nil
}

// decodeCached returns the cached item; undecodable entries count as misses.
func decodeCached[T any](context context.Context, service *Service, key string) (*T, bool) {
	payload, ok := service.cache.Get(context, key)
	if !ok {
		return nil, false
	}

	var item T
	if err := json.Unmarshal(payload, &item); err != nil {
		service.logger.Warn("metadata_cache_entry_corrupt", slog.String("key", key), slog.Any("error", err))
		return nil, false
	}
	return &item, true
}

// GetCollection returns a game collection by id.
func (service *Service) GetCollection(context context.Context, id uint64) (*Collection, error) {
	return GetItem[Collection](context, service, EndpointCollections, id)
}

func formatID(id uint64) string {
	return strconv.FormatUint(id, 10)
}
