// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metadata

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/ludex/internal/platform/constants"
)

// Cache tiers used as metric labels.
const (
	tierMemory = "memory"
	tierRedis  = "redis"
)

// Prometheus metrics of the metadata cache.
var (
	cacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ludex_metadata_cache_hits_total",
		Help: "Metadata cache hits, by tier.",
	}, []string{"tier"})

	cacheMissesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ludex_metadata_cache_misses_total",
		Help: "Metadata cache misses, by tier.",
	}, []string{"tier"})
)

// # Remote Tier

// RemoteStore is the shared second cache tier.
type RemoteStore interface {
	// Get returns (nil, nil) when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
}

// RedisStore implements [RemoteStore] using Redis.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed [RemoteStore].
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Get implements [RemoteStore].
func (store *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	payload, err := store.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return payload, err
}

// Set implements [RemoteStore].
func (store *RedisStore) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	return store.client.Set(ctx, key, payload, ttl).Err()
}

// # Two-Tier Cache

// Cache keeps raw item payloads in an expirable LRU in front of a
// [RemoteStore]. Remote failures degrade to a miss and are logged; they never
// fail a lookup.
type Cache struct {
	local  *expirable.LRU[string, []byte]
	remote RemoteStore
	ttl    time.Duration
	logger *slog.Logger
}

// NewCache creates a cache holding up to size payloads for ttl.
// remote may be nil for a memory-only cache.
func NewCache(size int, ttl time.Duration, remote RemoteStore, logger *slog.Logger) *Cache {
	return &Cache{
		local:  expirable.NewLRU[string, []byte](size, nil, ttl),
		remote: remote,
		ttl:    ttl,
		logger: logger,
	}
}

// Key builds the cache key of an item.
func Key(endpoint string, id uint64) string {
	return constants.RedisPrefixMetadata + endpoint + ":" + formatID(id)
}

// Get looks the key up in memory, then in the remote tier. A remote hit is
// promoted to memory.
func (cache *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if payload, ok := cache.local.Get(key); ok {
		cacheHitsTotal.WithLabelValues(tierMemory).Inc()
		return payload, true
	}
	cacheMissesTotal.WithLabelValues(tierMemory).Inc()

	if cache.remote == nil {
		return nil, false
	}

	payload, err := cache.remote.Get(ctx, key)
	if err != nil {
		cache.logger.Warn("metadata_cache_read_failed", slog.String("key", key), slog.Any("error", err))
		return nil, false
	}
	if payload == nil {
		cacheMissesTotal.WithLabelValues(tierRedis).Inc()
		return nil, false
	}

	cacheHitsTotal.WithLabelValues(tierRedis).Inc()
	cache.local.Add(key, payload)
	return payload, true
}

// Set stores the payload in both tiers.
func (cache *Cache) Set(ctx context.Context, key string, payload []byte) {
	cache.local.Add(key, payload)

	if cache.remote == nil {
		return
	}
	if err := cache.remote.Set(ctx, key, payload, cache.ttl); err != nil {
		cache.logger.Warn("metadata_cache_write_failed", slog.String("key", key), slog.Any("error", err))
	}
}
