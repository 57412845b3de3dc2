package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Resolutions counts answered operations by the source that answered them.
	Resolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulse_resolutions_total",
			Help: "Data operations answered, by entity, operation and source (real|mock)",
		},
		[]string{"entity", "op", "source"},
	)

	// Fallbacks counts primary store failures that were recovered from the mock store.
	Fallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulse_fallbacks_total",
			Help: "Primary store connectivity failures recovered from the mock store",
		},
		[]string{"entity", "op"},
	)

	PrimaryLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pulse_primary_duration_seconds",
			Help:    "Primary store call duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"entity", "op", "outcome"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"method", "path", "status"},
	)

	// SideEffectFailures counts best-effort writes (activity log, notifications,
	// event publishing) that failed without failing their request.
	SideEffectFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulse_side_effect_failures_total",
			Help: "Best-effort side effects that failed",
		},
		[]string{"effect"},
	)
)

func RecordResolution(entity, op, source string) {
	Resolutions.WithLabelValues(entity, op, source).Inc()
}

func RecordFallback(entity, op string) {
	Fallbacks.WithLabelValues(entity, op).Inc()
}

func RecordPrimaryLatency(entity, op, outcome string, d time.Duration) {
	PrimaryLatency.WithLabelValues(entity, op, outcome).Observe(d.Seconds())
}

func RecordHTTPRequestDuration(method, path, status string, d time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(d.Seconds())
}

func RecordSideEffectFailure(effect string) {
	SideEffectFailures.WithLabelValues(effect).Inc()
}
