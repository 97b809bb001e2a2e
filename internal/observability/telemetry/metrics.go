package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Métricas de negócio
	AnalysisRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "evplan_analysis_runs_total",
		Help: "Analysis recomputes by scope kind and outcome",
	}, []string{"scope", "status"})

	AnalysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "evplan_analysis_duration_seconds",
		Help:    "Wall time of a full financial recompute",
		Buckets: prometheus.DefBuckets,
	})

	SimulatedFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "evplan_simulated_failures_total",
		Help: "Equipment failures drawn across all simulation runs",
	})

	IRRFallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "evplan_irr_fallbacks_total",
		Help: "Analyses where the IRR solver degenerated and 0 was reported",
	})

	// Métricas de infraestrutura
	DatabaseLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "evplan_database_latency_seconds",
		Help:    "Latency of derived-artifact writes",
		Buckets: prometheus.DefBuckets,
	})
)
