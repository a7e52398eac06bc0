package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for Lageboard
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Polling Metrics
	PollTicksTotal      prometheus.CounterVec
	PollTickDuration    prometheus.HistogramVec
	SnapshotLastSuccess prometheus.GaugeVec

	// Gateway Metrics
	GatewayRequestsTotal  prometheus.CounterVec
	GatewayRequestLatency prometheus.HistogramVec

	// Map Metrics
	MarkersPlaced prometheus.GaugeVec

	// Cache Metrics
	CacheHitsTotal   prometheus.CounterVec
	CacheMissesTotal prometheus.CounterVec
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lageboard_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lageboard_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "lageboard_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Polling Metrics
		PollTicksTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lageboard_poll_ticks_total",
				Help: "Total poll ticks by view and result (ok, failed, skipped)",
			},
			[]string{"view", "result"},
		),
		PollTickDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lageboard_poll_tick_duration_seconds",
				Help:    "Poll tick execution time in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"view"},
		),
		SnapshotLastSuccess: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "lageboard_snapshot_last_success_timestamp_seconds",
				Help: "Unix timestamp of the last successfully published snapshot",
			},
			[]string{"view"},
		),

		// Gateway Metrics
		GatewayRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lageboard_gateway_requests_total",
				Help: "Total requests issued to the operations API by resource and result",
			},
			[]string{"resource", "result"},
		),
		GatewayRequestLatency: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lageboard_gateway_request_latency_seconds",
				Help:    "Operations API request latency in seconds",
				Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"resource"},
		),

		// Map Metrics
		MarkersPlaced: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "lageboard_markers_placed",
				Help: "Markers placed in the last placement pass by kind",
			},
			[]string{"view", "kind"},
		),

		// Cache Metrics
		CacheHitsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lageboard_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lageboard_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
	}
}
