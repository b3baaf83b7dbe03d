// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/ludex/internal/platform/apperr"
	"github.com/taibuivan/ludex/internal/platform/constants"
)

// RedisProfileStore implements [ProfileStore] using Redis.
type RedisProfileStore struct {
	client *redis.Client
}

// NewRedisProfileStore creates a new Redis-backed [ProfileStore].
func NewRedisProfileStore(client *redis.Client) *RedisProfileStore {
	return &RedisProfileStore{client: client}
}

/*
Load retrieves the record of a profile.

Parameters:
  - context: context.Context
  - name: string

Returns:
  - *ProfileRecord: Decoded record
  - error: apperr.NotFound if the key is absent, connectivity or decoding errors
*/
func (repository *RedisProfileStore) Load(context context.Context, name string) (*ProfileRecord, error) {

	// Get the JSON document
	payload, err := repository.client.Get(context, profileKey(name)).Bytes()

	// Handle errors
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("View profile")
		}
		return nil, fmt.Errorf("redis_view_profile_get_failed: %w", err)
	}

	var record ProfileRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("redis_view_profile_decode_failed: %w", err)
	}

	return &record, nil
}

/*
Save stores the record of a profile without expiry.

Parameters:
  - context: context.Context
  - name: string
  - record: ProfileRecord

Returns:
  - error: Encoding or execution errors
*/
func (repository *RedisProfileStore) Save(context context.Context, name string, record ProfileRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("redis_view_profile_encode_failed: %w", err)
	}

	if err := repository.client.Set(context, profileKey(name), payload, 0).Err(); err != nil {
		return fmt.Errorf("redis_view_profile_set_failed: %w", err)
	}

	return nil
}

func profileKey(name string) string {
	return constants.RedisPrefixViewProfile + name
}
