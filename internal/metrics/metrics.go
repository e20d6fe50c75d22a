package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ActionsTotal counts dispatched actions by name and outcome
	// (ok, degraded, error).
	ActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lexrelay_actions_total",
			Help: "Total number of dispatched actions",
		},
		[]string{"action", "outcome"},
	)

	// UpstreamDuration observes the latency of upstream model calls.
	UpstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "lexrelay_upstream_duration_seconds",
			Help: "Duration of upstream model calls",
		},
		[]string{"action"},
	)

	// StagedBytes counts bytes accepted into the upload staging area.
	StagedBytes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "lexrelay_staged_bytes_total",
			Help: "Total bytes accepted into upload staging",
		},
	)
)
