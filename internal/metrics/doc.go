// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

/*
Package metrics provides Prometheus metrics collection and export for observability.

Collectors are registered with promauto at package init and exposed at
/metrics in Prometheus text format:

	curl http://localhost:8417/metrics

# Available Metrics

Clustering:
  - momentline_cluster_batches_total: Batches by outcome (counter)
    Labels: outcome (success, rejected, config_error, error)
  - momentline_cluster_duration_seconds: Batch latency (histogram)
  - momentline_cluster_photos_total: Photos placed into events (counter)
  - momentline_cluster_events_total: Events materialized (counter)
  - momentline_photos_rejected_total: Rejected photos (counter)
    Labels: reason
  - momentline_bursts_total: Bursts detected (counter)

Overrides:
  - momentline_overrides_total: Splits, merges and attribute edits (counter)
    Labels: operation, outcome
  - momentline_override_duration_seconds: Override latency (histogram)
    Labels: operation
  - momentline_events: Events held in memory (gauge)

Store:
  - momentline_store_operation_duration_seconds (histogram)
    Labels: operation
  - momentline_store_errors_total (counter)
    Labels: operation
  - momentline_store_gc_runs_total (counter)
    Labels: result

API:
  - momentline_api_requests_total (counter)
    Labels: method, endpoint, status_code
  - momentline_api_request_duration_seconds (histogram)
    Labels: method, endpoint
  - momentline_api_active_requests (gauge)
  - momentline_api_rate_limit_hits_total (counter)
    Labels: endpoint

# Usage

	start := time.Now()
	res, err := engine.Run(raws, owner, params)
	metrics.RecordClusterBatch(time.Since(start), len(raws), len(res.Events), bursts, err)

Label values are derived from sentinel errors through ReasonLabel, never
from free-form error text, to keep cardinality bounded.
*/
package metrics
