// Package metrics provides Prometheus instrumentation for the moderation
// services. It exposes counters for check throughput and blocked verdicts,
// a histogram for engine latency, and a gauge for the compiled deny-list
// size.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ChecksTotal counts moderation checks run, labeled by check name
	// ("profanity", "contact_info", "gibberish") and outcome ("clean",
	// "flagged").
	ChecksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "moderation_checks_total",
		Help: "Total number of moderation checks run",
	}, []string{"check", "outcome"})

	// BlockedTotal counts blocked submissions, labeled by field and the
	// check that produced the verdict.
	BlockedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "moderation_blocked_total",
		Help: "Total number of submissions blocked",
	}, []string{"field", "check"})

	// CheckLatency records full validate-call latency in seconds. The
	// engine is CPU-bound string work, so the buckets sit well below
	// typical request-latency ranges.
	CheckLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "moderation_check_latency_seconds",
		Help:    "Moderation check latency in seconds",
		Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
	})

	// DenyListSize tracks the number of compiled deny-list terms in the
	// active policy.
	DenyListSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "moderation_deny_list_size",
		Help: "Number of compiled deny-list terms in the active policy",
	})

	// StreamConnections tracks the current number of gateway WebSocket
	// connections.
	StreamConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "moderation_stream_connections",
		Help: "Current number of gateway WebSocket connections",
	})
)

func init() {
	prometheus.MustRegister(
		ChecksTotal,
		BlockedTotal,
		CheckLatency,
		DenyListSize,
		StreamConnections,
	)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// FieldLabel bounds the field label to the known field names so that
// caller-supplied strings cannot blow up metric cardinality.
func FieldLabel(field string) string {
	switch field {
	case "display name", "bio", "prompt answer", "message":
		return field
	case "":
		return "text"
	default:
		return "other"
	}
}
