package solver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// solveTotal counts Solve outcomes.
	// Labels: "solved", "already_solved", "invalid_input",
	// "unsupported_size", "node_limit", "timeout", "search_limit",
	// "failed", "panic"
	solveTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "slidesolver_solves_total",
		Help: "Total solve calls by result",
	}, []string{"result"})

	solveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "slidesolver_solve_duration_seconds",
		Help:    "Wall-clock duration of full solves",
		Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 2, 5, 10, 30},
	})

	solveNodes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "slidesolver_solve_nodes",
		Help:    "Nodes expanded per full solve",
		Buckets: []float64{1000, 10000, 50000, 100000, 500000, 1000000, 5000000},
	})

	solveMoves = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "slidesolver_solution_moves",
		Help:    "Emitted solution length in moves",
		Buckets: []float64{5, 10, 20, 40, 80, 120, 200, 400},
	})

	pdbBuildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "slidesolver_pdb_build_duration_seconds",
		Help:    "Pattern database build duration",
		Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 15, 60},
	})

	pdbEntries = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "slidesolver_pdb_entries",
		Help: "Entries held per pattern database",
	}, []string{"board"})
)
