package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for Basecamp
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Cache Metrics
	CacheHitsTotal   prometheus.CounterVec
	CacheMissesTotal prometheus.CounterVec

	// Ingestion Metrics
	ReportsProcessedTotal  prometheus.CounterVec
	ReportsRejectedTotal   prometheus.CounterVec
	ForecastRecordsDropped prometheus.CounterVec
	SyncJobDuration        prometheus.HistogramVec
	SyncJobErrors          prometheus.CounterVec

	// Business Metrics
	ChaseAlertsActive prometheus.Gauge
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "basecamp_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "basecamp_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "basecamp_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		CacheHitsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "basecamp_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "basecamp_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		ReportsProcessedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "basecamp_reports_processed_total",
				Help: "Snow reports processed by outcome (created, updated, noop)",
			},
			[]string{"outcome"},
		),
		ReportsRejectedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "basecamp_reports_rejected_total",
				Help: "Raw readings dropped at the adapter boundary by source",
			},
			[]string{"source"},
		),
		ForecastRecordsDropped: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "basecamp_forecast_records_dropped_total",
				Help: "Forecast records rejected by the validator, by failing field",
			},
			[]string{"field"},
		),
		SyncJobDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "basecamp_sync_job_duration_seconds",
				Help:    "Sync job execution time in seconds",
				Buckets: []float64{0.5, 1, 5, 10, 30, 60, 120, 300, 600},
			},
			[]string{"job_name"},
		),
		SyncJobErrors: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "basecamp_sync_job_errors_total",
				Help: "Per-item errors inside sync jobs, by job name",
			},
			[]string{"job_name"},
		),

		ChaseAlertsActive: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "basecamp_chase_alerts_active",
				Help: "Number of chase alerts emitted on the last scoring pass",
			},
		),
	}
}
