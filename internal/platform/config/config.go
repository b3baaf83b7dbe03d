// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config loads the Ludex server settings from the environment.

Variables are mapped onto [Config] by caarlos0/env. Values that parse but
make no sense together (an empty port, a zero cache) are rejected by
[Config.Validate] so the server fails at startup instead of at first use.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
*/
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// Environments recognized by [Config.Environment].
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds all runtime configuration for the Ludex API server.
type Config struct {

	// # Server
	ServerPort      string        `env:"SERVER_PORT"      envDefault:"8080"`
	Environment     string        `env:"ENVIRONMENT"      envDefault:"development"`
	LogLevel        slog.Level    `env:"LOG_LEVEL"        envDefault:"info"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT"  envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// CORSOrigins lists the origins allowed outside development. A leading
	// dot matches any subdomain (".ludex.app").
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:".ludex.app"`

	// Per-client token bucket
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"   envDefault:"100"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"150"`

	// # Storage
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`
	RedisURL    string `env:"REDIS_URL,required,notEmpty"`

	// MigrationPath replaces the embedded migrations with a directory.
	MigrationPath string `env:"MIGRATION_PATH"`

	// # Metadata Proxy
	MetadataBaseURL string        `env:"METADATA_BASE_URL" envDefault:"https://metadata.ludex.app/api"`
	MetadataAPIKey  string        `env:"METADATA_API_KEY"`
	MetadataTimeout time.Duration `env:"METADATA_TIMEOUT"  envDefault:"10s"`

	// In-process LRU in front of Redis
	MetadataCacheSize int           `env:"METADATA_CACHE_SIZE" envDefault:"1024"`
	MetadataCacheTTL  time.Duration `env:"METADATA_CACHE_TTL"  envDefault:"24h"`
}

// Load parses and validates the environment.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return &cfg, nil
}

// Validate reports every inconsistent setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.ServerPort == "" {
		errs = append(errs, errors.New("SERVER_PORT must not be empty"))
	}
	if c.Environment != EnvDevelopment && c.Environment != EnvProduction {
		errs = append(errs, fmt.Errorf("ENVIRONMENT must be %q or %q, got %q", EnvDevelopment, EnvProduction, c.Environment))
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive"))
	}
	if c.MetadataCacheSize <= 0 {
		errs = append(errs, errors.New("METADATA_CACHE_SIZE must be positive"))
	}
	if c.MetadataTimeout <= 0 || c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("timeouts must be positive"))
	}

	return errors.Join(errs...)
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}
