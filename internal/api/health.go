// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/ludex/internal/platform/constants"
	"github.com/taibuivan/ludex/internal/platform/respond"
)

// readinessTimeout bounds all dependency checks of one /ready call.
const readinessTimeout = 3 * time.Second

// Checker probes one dependency.
type Checker func(ctx context.Context) error

// checkResult is the per-dependency entry of the /ready body.
type checkResult struct {
	Name  string `json:"name"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// readinessReport is the /ready body.
type readinessReport struct {
	Status  string        `json:"status"`
	Version string        `json:"version"`
	Checks  []checkResult `json:"checks"`
}

/*
NewHealthHandlers creates the /health and /ready handlers.

Description: Liveness always answers 200. Readiness runs every checker
concurrently and answers 503 with status "degraded" if any fails.

Parameters:
  - checks: map[string]Checker (dependency name to probe, e.g. "postgres")
  - logger: *slog.Logger

Returns:
  - liveness: http.HandlerFunc
  - readiness: http.HandlerFunc
*/
func NewHealthHandlers(checks map[string]Checker, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	slices.Sort(names)

	liveness = func(writer http.ResponseWriter, _ *http.Request) {
		respond.OK(writer, map[string]string{"status": "ok"})
	}

	readiness = func(writer http.ResponseWriter, request *http.Request) {
		ctx, cancel := context.WithTimeout(request.Context(), readinessTimeout)
		defer cancel()

		results := make([]checkResult, len(names))
		var group errgroup.Group
		for index, name := range names {
			group.Go(func() error {
				results[index] = checkResult{Name: name, OK: true}
				if err := checks[name](ctx); err != nil {
					results[index] = checkResult{Name: name, Error: err.Error()}
					logger.Error("readiness_check_failed", slog.String("dependency", name), slog.Any("error", err))
				}
				return nil
			})
		}
		_ = group.Wait()

		report := readinessReport{Status: "ready", Version: constants.AppVersion, Checks: results}
		status := http.StatusOK
		if slices.ContainsFunc(results, func(result checkResult) bool { return !result.OK }) {
			report.Status = "degraded"
			status = http.StatusServiceUnavailable
		}

		respond.JSON(writer, status, respond.SuccessEnvelope{Data: report})
	}

	return liveness, readiness
}
