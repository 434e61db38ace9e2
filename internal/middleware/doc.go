// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

/*
Package middleware provides chi-compatible HTTP middleware for the
Momentline API.

  - RequestID: assigns or propagates X-Request-ID and X-Correlation-ID and
    stores both in the logging context
  - PrometheusMetrics: records request count, latency and in-flight requests
    labelled by the matched chi route pattern, so event IDs in paths do not
    create new series
  - RateLimitExceeded: httprate limit handler that counts rejections

Usage:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
*/
package middleware
