// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tomtom215/momentline/internal/models"
)

var (
	// Clustering Metrics
	ClusterBatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "momentline_cluster_batches_total",
			Help: "Total number of clustering batches by outcome",
		},
		[]string{"outcome"}, // "success", "rejected", "config_error", "error"
	)

	ClusterDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "momentline_cluster_duration_seconds",
			Help:    "Duration of one clustering batch in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	ClusterPhotosTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "momentline_cluster_photos_total",
			Help: "Total number of photos placed into events",
		},
	)

	ClusterEventsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "momentline_cluster_events_total",
			Help: "Total number of events materialized by the automatic pass",
		},
	)

	PhotosRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "momentline_photos_rejected_total",
			Help: "Total number of photos rejected during normalization",
		},
		[]string{"reason"},
	)

	BurstsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "momentline_bursts_total",
			Help: "Total number of bursts detected",
		},
	)

	// Override Metrics
	OverridesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "momentline_overrides_total",
			Help: "Total number of manual overrides by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	OverrideDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "momentline_override_duration_seconds",
			Help:    "Duration of manual overrides including persistence",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	EventsTracked = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "momentline_events",
			Help: "Current number of events held by the coordinator",
		},
	)

	// Store Metrics
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "momentline_store_operation_duration_seconds",
			Help:    "Duration of badger store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "momentline_store_errors_total",
			Help: "Total number of failed store operations",
		},
		[]string{"operation"},
	)

	StoreGCRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "momentline_store_gc_runs_total",
			Help: "Total number of value log GC passes by result",
		},
		[]string{"result"}, // "rewritten", "noop", "error"
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "momentline_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "momentline_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "momentline_api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "momentline_api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)
)

// RecordClusterBatch records the outcome of one automatic pass.
func RecordClusterBatch(duration time.Duration, photos, events, bursts int, err error) {
	ClusterDuration.Observe(duration.Seconds())
	if err != nil {
		ClusterBatchesTotal.WithLabelValues(batchOutcome(err)).Inc()
		var rejErr *models.RejectionError
		if errors.As(err, &rejErr) {
			RecordRejections(rejErr.Rejections)
		}
		return
	}
	ClusterBatchesTotal.WithLabelValues("success").Inc()
	ClusterPhotosTotal.Add(float64(photos))
	ClusterEventsTotal.Add(float64(events))
	BurstsTotal.Add(float64(bursts))
}

// RecordRejections counts rejected photos by reason.
func RecordRejections(rejections []models.Rejection) {
	for _, r := range rejections {
		PhotosRejectedTotal.WithLabelValues(ReasonLabel(r.Reason)).Inc()
	}
}

// RecordOverride records a split, merge or attribute edit.
func RecordOverride(operation string, duration time.Duration, err error) {
	OverrideDuration.WithLabelValues(operation).Observe(duration.Seconds())
	outcome := "success"
	if err != nil {
		outcome = ReasonLabel(err)
	}
	OverridesTotal.WithLabelValues(operation, outcome).Inc()
}

// RecordStoreOperation records a store operation metric.
func RecordStoreOperation(operation string, duration time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		StoreErrors.WithLabelValues(operation).Inc()
	}
}

// RecordStoreGC records one value log GC pass.
func RecordStoreGC(result string) {
	StoreGCRuns.WithLabelValues(result).Inc()
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// ReasonLabel maps an error to a low-cardinality label value.
func ReasonLabel(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, models.ErrMissingTemporalAnchor):
		return "missing_temporal_anchor"
	case errors.Is(err, models.ErrMissingPhotoID):
		return "missing_photo_id"
	case errors.Is(err, models.ErrDuplicatePhoto):
		return "duplicate_photo"
	case errors.Is(err, models.ErrInvalidCoordinate):
		return "invalid_coordinate"
	case errors.Is(err, models.ErrInvalidFuzzyDate):
		return "invalid_fuzzy_date"
	case errors.Is(err, models.ErrInvalidSplit):
		return "invalid_split"
	case errors.Is(err, models.ErrIncompatibleMerge):
		return "incompatible_merge"
	case errors.Is(err, models.ErrEventNotFound):
		return "not_found"
	case errors.Is(err, models.ErrConfiguration):
		return "config_error"
	default:
		return "other"
	}
}

func batchOutcome(err error) string {
	var rejErr *models.RejectionError
	switch {
	case errors.As(err, &rejErr):
		return "rejected"
	case errors.Is(err, models.ErrConfiguration):
		return "config_error"
	default:
		return "error"
	}
}
