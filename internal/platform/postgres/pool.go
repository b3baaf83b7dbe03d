// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package postgres provides the managed PostgreSQL connection pool backing
// the Ludex catalogue.
//
// # Workload
//
// The catalogue is read in full once at startup and then written one game
// or reference at a time, so the pool stays small and connections are kept
// warm for the occasional write.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/taibuivan/ludex/internal/platform/constants"
)

const (
	maxConns          = 10
	minConns          = 1
	maxConnLifetime   = time.Hour
	maxConnIdleTime   = 10 * time.Minute
	healthCheckPeriod = time.Minute
	connectTimeout    = 5 * time.Second
	pingTimeout       = 2 * time.Second
)

/*
NewPool connects to PostgreSQL and verifies the connection.

Description: Every connection starts with the library schema first on its
search_path and a statement timeout, both sent as startup parameters so no
extra round trip is needed per connection.

Parameters:
  - ctx: context.Context (bounds the initial connection)
  - dsn: string (libpq DSN or postgres:// URL)
  - logger: *slog.Logger

Returns:
  - *pgxpool.Pool: Connected pool
  - error: Parse, connect or ping failure
*/
func NewPool(ctx context.Context, dsn string, logger *slog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: invalid DSN: %w", err)
	}

	poolConfig.MaxConns = maxConns
	poolConfig.MinConns = minConns
	poolConfig.MaxConnLifetime = maxConnLifetime
	poolConfig.MaxConnIdleTime = maxConnIdleTime
	poolConfig.HealthCheckPeriod = healthCheckPeriod

	connConfig := poolConfig.ConnConfig
	connConfig.ConnectTimeout = connectTimeout
	connConfig.RuntimeParams["application_name"] = constants.AppName
	connConfig.RuntimeParams["search_path"] = constants.SchemaLibrary + ",public"
	connConfig.RuntimeParams["statement_timeout"] = fmt.Sprint(constants.StatementTimeout.Milliseconds())

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres: create pool: %w", err)
	}

	if err := Ping(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	registerPoolMetrics(pool)

	logger.Info("postgres_pool_connected",
		slog.String("host", connConfig.Host),
		slog.String("database", connConfig.Database),
		slog.Int("max_conns", int(poolConfig.MaxConns)),
	)

	return pool, nil
}

// Ping verifies that the pool can reach the server.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("postgres: ping: %w", err)
	}
	return nil
}

// registerPoolMetrics exports the pool occupancy as gauges. It must be
// called once per process.
func registerPoolMetrics(pool *pgxpool.Pool) {
	gauge := func(name, help string, value func(*pgxpool.Stat) int32) {
		promauto.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "ludex_postgres_pool_" + name,
			Help: help,
		}, func() float64 {
			return float64(value(pool.Stat()))
		})
	}

	gauge("total_conns", "Open connections in the pool.", (*pgxpool.Stat).TotalConns)
	gauge("acquired_conns", "Connections currently checked out.", (*pgxpool.Stat).AcquiredConns)
	gauge("idle_conns", "Idle connections in the pool.", (*pgxpool.Stat).IdleConns)
}
