// Modista - Collaborative Filtering Fashion Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/modista

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - Engine computations (pivot, similarity, ranking)
// - API endpoint latency and throughput
// - Analysis session lifecycle
// - Dataset store queries (DuckDB)

var (
	// Engine Metrics
	EngineComputeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "engine_compute_duration_seconds",
			Help:    "Duration of recommendation engine computations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // "pivot", "user_similarity", "item_similarity", "neighbors", "recommend"
	)

	EngineComputeErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_compute_errors_total",
			Help: "Total number of engine computation errors",
		},
		[]string{"operation", "error_kind"}, // error_kind: "empty_input", "malformed_data", "not_found"
	)

	PivotMatrixCells = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "engine_pivot_matrix_cells",
			Help: "Size (users x items) of the most recently built pivot matrix",
		},
	)

	// Session Metrics
	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sessions_active",
			Help: "Current number of live analysis sessions",
		},
	)

	SessionsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_created_total",
			Help: "Total number of analysis sessions created",
		},
	)

	SessionsExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_expired_total",
			Help: "Total number of analysis sessions evicted by TTL",
		},
	)

	DatasetRowsLoaded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataset_rows_loaded_total",
			Help: "Total number of rating rows loaded into sessions",
		},
		[]string{"source"}, // "upload", "generate", "store"
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Dataset Store Metrics (DuckDB)
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation"},
	)
)

// ObserveEngineCompute records the duration of one engine computation.
//
//	defer metrics.ObserveEngineCompute("pivot", time.Now())
func ObserveEngineCompute(operation string, start time.Time) {
	EngineComputeDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// ObserveDBQuery records the duration of one dataset store query.
func ObserveDBQuery(operation string, start time.Time) {
	DBQueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// RecordAPIRequest records a completed API request.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}
