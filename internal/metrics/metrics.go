package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Tracks outbound calls to the remote product/dolar store.
	StoreRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "remote_store_requests_total",
			Help: "Total number of remote store requests made (by endpoint, method and status).",
		},
		[]string{"endpoint", "method", "status"},
	)

	// Measures duration of requests to the remote store.
	StoreRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "remote_store_request_duration_seconds",
			Help:    "Duration of remote store requests in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15), // 1ms → ~16s
		},
		[]string{"endpoint", "method"},
	)

	// Counts collection operations that failed and left the mirror untouched.
	ReconcileFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_reconcile_failures_total",
			Help: "Number of failed collection operations, by entity and operation.",
		},
		[]string{"entity", "op"},
	)

	// Counts updates/deletes that succeeded remotely with no matching local element.
	DriftDetected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sync_drift_detected_total",
			Help: "Number of reconciliations that found no matching local element.",
		},
		[]string{"entity", "op"},
	)

	NATSPublishErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nats_publish_errors_total",
			Help: "Number of NATS publish failures",
		},
		[]string{"subject"},
	)
)

// ObserveStoreRequest records one completed remote store request.
func ObserveStoreRequest(method, endpoint string, status int, elapsed time.Duration) {
	StoreRequestsTotal.WithLabelValues(endpoint, method, strconv.Itoa(status)).Inc()
	StoreRequestDuration.WithLabelValues(endpoint, method).Observe(elapsed.Seconds())
}

func IncReconcileFailure(entity, op string) {
	ReconcileFailures.WithLabelValues(entity, op).Inc()
}

func IncDrift(entity, op string) {
	DriftDetected.WithLabelValues(entity, op).Inc()
}

func StartServer(addr string) {
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		http.ListenAndServe(addr, nil) //nolint:errcheck
	}()
}
