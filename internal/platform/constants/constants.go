// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package constants holds the fixed names and limits shared across layers:
// HTTP server timing, header names, the PostgreSQL schema and the Redis key
// layout. Anything an operator may want to tune lives in config instead.
package constants

import "time"

const (
	AppName    = "ludex-api"
	AppVersion = "0.1.0-dev"
)

// # HTTP Server

const (
	ReadTimeout       = 5 * time.Second
	ReadHeaderTimeout = 2 * time.Second
	IdleTimeout       = 120 * time.Second

	// WriteTimeout exceeds the request timeout so a handler that hits its
	// deadline can still write the error body.
	WriteTimeout = 35 * time.Second

	// StatementTimeout caps a single SQL statement.
	StatementTimeout = 15 * time.Second

	// MaxRequestBody bounds JSON bodies. Bulk imports carry a few thousand games.
	MaxRequestBody = 8 << 20
)

// # Rate Limiter Housekeeping

const (
	RateLimitSweepInterval = time.Minute
	RateLimitIdleTTL       = 3 * time.Minute
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderRetryAfter    = "Retry-After"

	// HeaderMetadataAPIKey authenticates calls to the metadata service.
	HeaderMetadataAPIKey = "X-Api-Key"
)

// SchemaLibrary is the PostgreSQL schema holding the catalogue tables.
const SchemaLibrary = "library"

// # Redis Keys

const (
	// RedisPrefixViewProfile keys persisted view profiles: view:profile:{name}.
	RedisPrefixViewProfile = "view:profile:"

	// RedisPrefixMetadata keys cached metadata items: metadata:{endpoint}:{id}.
	RedisPrefixMetadata = "metadata:"
)
