// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Generation outcomes
const (
	OutcomeSuccess      = "success"
	OutcomeNotFound     = "not_found"
	OutcomePrecondition = "precondition_failed"
	OutcomeRenderError  = "render_error"
	OutcomeIOError      = "io_error"
	OutcomeError        = "error"
)

var (
	// GenerationsTotal counts site generations by outcome.
	GenerationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "folio_generations_total",
		Help: "Total number of site generations by outcome",
	}, []string{"outcome"})

	// GenerationDuration records how long a generation took, lock wait excluded.
	GenerationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "folio_generation_duration_seconds",
		Help:    "Site generation duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})

	// GenerationLockWait records time spent waiting for the per-user lock.
	GenerationLockWait = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "folio_generation_lock_wait_seconds",
		Help:    "Time spent waiting for the per-user generation lock",
		Buckets: prometheus.DefBuckets,
	})

	// HTTPRequestDuration records request latency by route pattern and status.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "folio_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	// RedisErrors counts Redis errors by command.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "folio_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})
)

// ObserveGeneration records one finished generation.
func ObserveGeneration(outcome string, start time.Time) {
	GenerationsTotal.WithLabelValues(outcome).Inc()
	GenerationDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
}
