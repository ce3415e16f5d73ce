package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collectors are registered with the default registry on import.

var (
	// Number of traversal states expanded by all searches.
	SearchExpansions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "journeys_search_expansions_total",
			Help: "Total number of traversal states expanded",
		},
	)

	// Evaluator decisions, labeled by reason.
	SearchReasons = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "journeys_search_reasons_total",
			Help: "Evaluator decisions by reason",
		},
		[]string{"reason"},
	)

	// Finished searches, labeled by outcome (found, empty, cancelled, error).
	Searches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "journeys_searches_total",
			Help: "Total number of journey searches",
		},
		[]string{"kind", "outcome"},
	)

	SearchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "journeys_search_duration_seconds",
			Help:    "Duration of journey searches in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"kind"},
	)

	// Cells processed by grid batches, labeled by result (reached, no_route).
	GridCells = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "journeys_grid_cells_total",
			Help: "Total number of grid cells searched",
		},
		[]string{"result"},
	)
)

const (
	KIND_QUERY     = "query"
	KIND_ARRIVE_BY = "arrive_by"
	KIND_GRID      = "grid"

	OUTCOME_FOUND     = "found"
	OUTCOME_EMPTY     = "empty"
	OUTCOME_CANCELLED = "cancelled"
	OUTCOME_ERROR     = "error"
)
