// Package metrics provides Prometheus metrics for the pyth-history system.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// BenchmarksRequestsTotal is a counter of requests to the benchmarks provider.
	BenchmarksRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "benchmarks_requests_total",
			Help: "Total number of requests issued to the benchmarks provider",
		},
		[]string{"status"},
	)

	// BenchmarksRequestDuration is a histogram of benchmarks round trip durations.
	BenchmarksRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "benchmarks_request_duration_seconds",
			Help:    "Duration of benchmarks provider round trips",
			Buckets: prometheus.DefBuckets,
		},
	)

	// BlobDecodeFailuresTotal is a counter of binary blob decode failures.
	BlobDecodeFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "blob_decode_failures_total",
			Help: "Total number of binary blobs that failed to decode",
		},
	)

	// UpdatesFetchedTotal is a counter of price feed updates fetched.
	UpdatesFetchedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "updates_fetched_total",
			Help: "Total number of price feed updates fetched from the provider",
		},
	)

	// StreamMessagesTotal is a counter of messages received on the live stream.
	StreamMessagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stream_messages_total",
			Help: "Total number of messages received on the price update stream",
		},
		[]string{"type"},
	)

	// StreamConnected is a gauge of the stream connection state (1=connected, 0=disconnected).
	StreamConnected = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "stream_connected",
			Help: "Whether the price update stream is connected (1=connected, 0=disconnected)",
		},
	)

	// HTTPRequestsTotal is a counter of total HTTP requests served.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"endpoint", "status"},
	)

	// HTTPRequestDuration is a histogram of HTTP request latencies.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"endpoint"},
	)
)

// Init initializes Prometheus metrics registry.
func Init() {
	prometheus.MustRegister(
		BenchmarksRequestsTotal,
		BenchmarksRequestDuration,
		BlobDecodeFailuresTotal,
		UpdatesFetchedTotal,
		StreamMessagesTotal,
		StreamConnected,
		HTTPRequestsTotal,
		HTTPRequestDuration,
	)
}

// ServeHTTP serves Prometheus metrics on the specified address.
func ServeHTTP(addr, path string) error {
	mux := http.NewServeMux()
	mux.Handle(path, promhttp.Handler())
	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return server.ListenAndServe()
}

// RecordBenchmarksRequest records one round trip to the benchmarks provider.
func RecordBenchmarksRequest(status string, duration time.Duration) {
	BenchmarksRequestsTotal.WithLabelValues(status).Inc()
	BenchmarksRequestDuration.Observe(duration.Seconds())
}

// RecordBlobDecodeFailure records a binary blob that failed to decode.
func RecordBlobDecodeFailure() {
	BlobDecodeFailuresTotal.Inc()
}

// RecordUpdatesFetched records successfully fetched price feed updates.
func RecordUpdatesFetched(count int) {
	UpdatesFetchedTotal.Add(float64(count))
}

// RecordStreamMessage records a message received on the live stream.
func RecordStreamMessage(msgType string) {
	StreamMessagesTotal.WithLabelValues(msgType).Inc()
}

// RecordStreamConnected records the stream connection state.
func RecordStreamConnected(connected bool) {
	val := 0.0
	if connected {
		val = 1.0
	}
	StreamConnected.Set(val)
}

// RecordHTTPRequest records a served HTTP request.
func RecordHTTPRequest(endpoint, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(endpoint, status).Inc()
	HTTPRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}
