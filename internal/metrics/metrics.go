package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the purge service.
type Metrics struct {
	PurgeRuns     *prometheus.CounterVec // Purge invocations by status (success/error/disabled)
	PurgeDeleted  prometheus.Counter     // Total ciphers permanently deleted
	PurgeLastRun  prometheus.Gauge       // Unix timestamp of the last completed purge
	PurgeDuration prometheus.Histogram   // Purge invocation latency in seconds
}

func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		PurgeRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trash_purge_runs_total",
				Help: "Total number of purge invocations by status (success, error, disabled)",
			},
			[]string{"status"},
		),
		PurgeDeleted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "trash_purge_deleted_total",
				Help: "Total number of soft-deleted ciphers permanently purged",
			},
		),
		PurgeLastRun: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "trash_purge_last_run_timestamp_seconds",
				Help: "Unix timestamp of the last completed purge invocation",
			},
		),
		PurgeDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "trash_purge_duration_seconds",
				Help:    "Duration of purge invocations in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}
