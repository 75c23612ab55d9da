// Package metrics exposes Prometheus counters for record store traffic and
// bulk batch outcomes.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry bundles all Shelfline metrics behind one Prometheus registry.
type Registry struct {
	reg *prometheus.Registry

	RemoteRequests  *prometheus.CounterVec
	RemoteFailures  *prometheus.CounterVec
	RemoteLatencySec prometheus.Histogram

	BatchesApplied prometheus.Counter
	BatchesFailed  prometheus.Counter
}

// NewRegistry creates and registers all metrics.
func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	remoteRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shelfline_record_store_requests_total",
		Help: "Record store calls issued, by operation.",
	}, []string{"op"})
	remoteFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shelfline_record_store_failures_total",
		Help: "Record store calls that failed, by operation.",
	}, []string{"op"})
	remoteLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "shelfline_record_store_latency_seconds",
		Help:    "Record store round-trip latency.",
		Buckets: prometheus.DefBuckets,
	})
	batchesApplied := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shelfline_bulk_batches_applied_total",
		Help: "Bulk batches whose calls all succeeded and were applied locally.",
	})
	batchesFailed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "shelfline_bulk_batches_failed_total",
		Help: "Bulk batches discarded because at least one call failed.",
	})

	r.MustRegister(remoteRequests, remoteFailures, remoteLatency, batchesApplied, batchesFailed)

	return &Registry{
		reg:              r,
		RemoteRequests:   remoteRequests,
		RemoteFailures:   remoteFailures,
		RemoteLatencySec: remoteLatency,
		BatchesApplied:   batchesApplied,
		BatchesFailed:    batchesFailed,
	}
}

// Handler returns the /metrics HTTP handler for this registry.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
