package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Package-level Prometheus metrics for the learning pipeline.
// Auto-registered via promauto so no explicit registry wiring is needed
// beyond mounting the Prometheus exporter's HTTP handler.
var (
	// RulesTotal counts rules grown or pruned, labeled by class and
	// outcome ("grown", "pruned").
	RulesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ripperk",
			Subsystem: "learner",
			Name:      "rules_total",
			Help:      "Total number of rules produced by the learner, by class and outcome.",
		},
		[]string{"class", "outcome"},
	)

	// ClassDescriptionLength records the final description length of
	// each class's ruleset at the end of a training run.
	ClassDescriptionLength = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ripperk",
			Subsystem: "learner",
			Name:      "class_description_length_bits",
			Help:      "Final description length (bits) of each class's ruleset.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		},
		[]string{"class"},
	)

	// OptimizationPasses counts completed k-pass optimization rounds, by
	// class.
	OptimizationPasses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "ripperk",
			Subsystem: "learner",
			Name:      "optimization_passes_total",
			Help:      "Total number of k-pass optimization rounds completed, by class.",
		},
		[]string{"class"},
	)
)
