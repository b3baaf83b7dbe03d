// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api runs the Ludex catalogue server.
//
// # Startup Sequence
//
//  1. Load configuration and build the JSON logger.
//  2. Connect to PostgreSQL and Redis, then migrate the schema.
//  3. Load the catalogue into memory.
//  4. Start one view engine per persisted profile.
//  5. Wire the metadata proxy.
//  6. Serve HTTP until SIGINT or SIGTERM, then drain.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"

	"github.com/taibuivan/ludex/internal/api"
	"github.com/taibuivan/ludex/internal/library"
	"github.com/taibuivan/ludex/internal/metadata"
	"github.com/taibuivan/ludex/internal/platform/config"
	"github.com/taibuivan/ludex/internal/platform/constants"
	"github.com/taibuivan/ludex/internal/platform/migration"
	pgstore "github.com/taibuivan/ludex/internal/platform/postgres"
	redisstore "github.com/taibuivan/ludex/internal/platform/redis"
	"github.com/taibuivan/ludex/internal/view"
)

// startupTimeout bounds connecting, migrating and loading the catalogue.
const startupTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})).
		With(slog.String("app", constants.AppName), slog.String("version", constants.AppVersion))
	slog.SetDefault(log)

	log.Info("service_initializing",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	if err := run(cfg, log); err != nil {
		log.Error("service_failed", slog.Any("error", err))
		os.Exit(1)
	}
	log.Info("server_stopped_cleanly")
}

// run wires every component and blocks until shutdown. Deferred cleanups
// run in reverse order: view engines stop before the stores they read.
func run(cfg *config.Config, log *slog.Logger) error {
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), startupTimeout)
	defer cancelStartup()

	// # Storage
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	if err != nil {
		return err
	}
	defer pool.Close()

	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	if err != nil {
		return err
	}
	defer closeRedis(rdb, log)

	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
		return err
	}

	// # Catalogue
	database := library.NewDatabase()
	libraryService := library.NewService(library.NewPostgresRepository(pool), database, log)
	if err := libraryService.Load(startupCtx); err != nil {
		return err
	}

	// # Views
	profileStore := view.NewRedisProfileStore(rdb)
	profiles := make([]*view.Profile, 0, 2)
	for _, name := range []string{view.ProfileDesktop, view.ProfileFullscreen} {
		profile, err := view.LoadProfile(startupCtx, profileStore, name, log)
		if err != nil {
			return fmt.Errorf("load view profile %s: %w", name, err)
		}
		profiles = append(profiles, profile)
	}

	registry := view.NewRegistry(log)
	if err := registry.Start(database, profiles...); err != nil {
		return err
	}
	defer registry.Close()

	// # Metadata Proxy
	metadataService := metadata.NewService(
		metadata.NewClient(cfg.MetadataBaseURL, cfg.MetadataAPIKey, cfg.MetadataTimeout, log),
		metadata.NewCache(cfg.MetadataCacheSize, cfg.MetadataCacheTTL, metadata.NewRedisStore(rdb), log),
		log,
	)

	// # HTTP
	liveness, readiness := api.NewHealthHandlers(healthChecks(pool, rdb), log)

	serverCtx, cancelServer := context.WithCancel(context.Background())
	defer cancelServer()

	server := api.NewServer(serverCtx, cfg, log, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Metrics:   promhttp.Handler(),
		Library:   library.NewHandler(libraryService, registry),
		Views:     view.NewHandler(registry, profileStore),
		Metadata:  metadata.NewHandler(metadataService),
	})

	return serve(server, cfg.ShutdownTimeout, log)
}

// serve runs the server until a signal arrives or it fails to listen.
func serve(server *api.Server, shutdownTimeout time.Duration, log *slog.Logger) error {
	signalCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-signalCtx.Done():
		log.Info("shutdown_signal_received", slog.Duration("timeout", shutdownTimeout))
	case err := <-serverErr:
		return fmt.Errorf("listen: %w", err)
	}

	if err := server.Shutdown(shutdownTimeout); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func healthChecks(pool *pgxpool.Pool, rdb *goredis.Client) map[string]api.Checker {
	return map[string]api.Checker{
		"postgres": func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
		"redis":    func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
	}
}

func closeRedis(rdb *goredis.Client, log *slog.Logger) {
	if err := rdb.Close(); err != nil {
		log.Error("redis_close_failed", slog.Any("error", err))
	}
}
