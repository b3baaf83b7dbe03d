// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api assembles the Ludex HTTP server: the middleware chain, the
probe endpoints and the versioned route groups of each domain package.

Routes:

	GET  /health, /ready, /metrics
	/api/v1/games, /references, /plugins   library
	/api/v1/views                          view
	/api/v1/metadata                       metadata
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/ludex/internal/library"
	"github.com/taibuivan/ludex/internal/metadata"
	"github.com/taibuivan/ludex/internal/platform/config"
	"github.com/taibuivan/ludex/internal/platform/constants"
	"github.com/taibuivan/ludex/internal/platform/middleware"
	"github.com/taibuivan/ludex/internal/view"
)

// Server owns the router and the underlying [http.Server].
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// Handlers groups the handlers mounted by [NewServer].
type Handlers struct {
	Liveness  http.HandlerFunc
	Readiness http.HandlerFunc

	// Metrics is optional; /metrics is not routed when nil.
	Metrics http.Handler

	Library  *library.Handler
	Views    *view.Handler
	Metadata *metadata.Handler
}

// NewServer builds the router. ctx bounds background work started by the
// middleware, such as the rate limiter sweeper.
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, h Handlers) *Server {
	r := chi.NewRouter()
	r.Use(baseMiddlewares(ctx, cfg, log)...)

	// # Probes
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	if h.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.Metrics)
	}

	// # API v1
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/views", h.Views.Routes())
		api.Mount("/metadata", h.Metadata.Routes())
		api.Mount("/", h.Library.Routes())
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.ReadTimeout,
			ReadHeaderTimeout: constants.ReadHeaderTimeout,
			WriteTimeout:      constants.WriteTimeout,
			IdleTimeout:       constants.IdleTimeout,
			ErrorLog:          slog.NewLogLogger(log.Handler(), slog.LevelWarn),
		},
	}
}

// baseMiddlewares returns the chain shared by every route, outermost first.
// Panic recovery sits right after the request id so the logger, metrics and
// rate limiter layers run under it too.
func baseMiddlewares(ctx context.Context, cfg *config.Config, log *slog.Logger) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.PanicRecovery(),
		middleware.StructuredLogger(log),
		middleware.Metrics(),
		middleware.NewRateLimiter(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst).Middleware,
		middleware.CORS(middleware.CORSPolicy{
			AllowAll: cfg.IsDevelopment(),
			Origins:  cfg.CORSOrigins,
		}),
		chimw.CleanPath,
		chimw.Timeout(cfg.RequestTimeout),
	}
}

// Handler returns the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe blocks until the server stops.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting connections and waits up to timeout for
// in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
