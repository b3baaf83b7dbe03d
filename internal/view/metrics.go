// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics of the view engine.
var (
	// refreshTotal counts full recomputations of the visible sequence.
	refreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ludex_view_refresh_total",
			Help: "Full view recomputations, by reason.",
		},
		[]string{"reason"},
	)

	// changesTotal counts published change notifications.
	changesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ludex_view_changes_total",
			Help: "Change notifications published to view observers, by kind.",
		},
		[]string{"kind"},
	)

	// visibleEntries tracks the size of each profile's visible sequence.
	visibleEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ludex_view_visible_entries",
			Help: "Number of entries currently visible in a view.",
		},
		[]string{"profile"},
	)
)
