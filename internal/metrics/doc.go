// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

/*
Package metrics provides Prometheus metrics collection and export for observability.

This package instruments the application using the Prometheus client library,
exposing metrics for monitoring performance, errors, and system health.

# Overview

The package provides metrics for:
  - HTTP request latency and throughput
  - Recommendation scoring and blending
  - Model training runs
  - Catalog reloads and rating imports
  - Cache hit/miss rates
  - Circuit breaker state transitions

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: Active requests (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)
    Labels: endpoint

Recommendation Metrics:
  - recommendation_duration_seconds: Scoring latency (histogram)
    Labels: mode (blended, content_only)
  - recommendations_served_total: Responses served (counter)
    Labels: mode
  - recommendation_candidates: Candidates scored per request (histogram)
  - signal_degradations_total: Responses with a degraded signal (counter)
    Labels: signal
  - partial_results_total: Responses truncated by the deadline (counter)

Training Metrics:
  - training_duration_seconds: Training run duration (histogram)
    Buckets: 1, 5, 10, 30, 60, 120, 300, 600
  - training_runs_total: Training runs (counter)
    Labels: result (success, failure)
  - training_last_success_timestamp: Unix timestamp of last success (gauge)
  - model_factors: Latent factors in the trained model (gauge)
  - model_stale: Model staleness against the catalog (gauge)

Catalog Metrics:
  - catalog_reloads_total: Reload attempts (counter)
    Labels: result
  - catalog_courses, catalog_skills, catalog_version: Snapshot gauges

Rating Metrics:
  - ratings_submitted_total: Ratings submitted via the API (counter)
  - rating_import_duration_seconds: History import duration (histogram)
  - rating_import_rows_total: Rows processed (counter)
    Labels: disposition (imported, skipped)
  - rating_import_runs_total: Import runs (counter)
    Labels: result

Database Metrics:
  - duckdb_query_duration_seconds: Query execution time (histogram)
    Labels: operation, table
  - duckdb_query_errors_total: Failed queries (counter)
    Labels: operation, table, error_type

Circuit Breaker Metrics:
  - circuit_breaker_state: Current state (gauge)
    Labels: name
    Values: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total: Requests through a breaker (counter)
    Labels: name, result
  - circuit_breaker_state_transitions_total: State transitions (counter)
    Labels: name, from_state, to_state

Cache Metrics:
  - cache_hits_total, cache_misses_total, cache_evictions_total (counters)
    Labels: cache_type
  - cache_entries: Current entries (gauge)
    Labels: cache_type

# Usage Example

Basic setup in main.go:

	import (
	    "github.com/tomtom215/curricula/internal/metrics"
	    "github.com/prometheus/client_golang/prometheus/promhttp"
	)

	func main() {
	    http.Handle("/metrics", promhttp.Handler())

	    metrics.RecordAPIRequest("GET", "/api/v1/courses", "200", 23*time.Millisecond)
	    metrics.RecordTraining(42*time.Second, nil)
	}

Example PromQL queries:

	# Request rate
	rate(api_requests_total[5m])

	# p95 recommendation latency
	histogram_quantile(0.95, rate(recommendation_duration_seconds_bucket[5m]))

	# Cache hit rate
	sum(rate(cache_hits_total[5m])) / (sum(rate(cache_hits_total[5m])) + sum(rate(cache_misses_total[5m])))

# Thread Safety

All metric recording functions are thread-safe and designed for concurrent use
from multiple goroutines. The Prometheus client library handles synchronization
internally.

# Cardinality Management

To prevent high cardinality issues:

  - Endpoint labels use the chi route pattern, not the raw URL path
  - Error types are truncated to 50 characters
  - Per-user labels are avoided

# See Also

  - internal/api: HTTP middleware with metrics integration
  - internal/skills: Circuit breaker metrics for the similarity provider
  - https://prometheus.io/docs/practices/naming/: Metric naming conventions
*/
package metrics
