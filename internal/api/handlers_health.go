// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/momentline/internal/logging"
)

// HealthStatus is returned by the health endpoints.
type HealthStatus struct {
	Status         string  `json:"status"`
	StoreConnected bool    `json:"store_connected"`
	Uptime         float64 `json:"uptime_seconds"`
}

// HealthLive reports that the process is serving requests.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(HealthStatus{
		Status:         "alive",
		StoreConnected: h.store != nil,
		Uptime:         time.Since(h.startTime).Seconds(),
	})
}

// HealthReady reports whether the event store accepts requests.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.store != nil {
		if err := h.store.Ping(); err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("Readiness check failed")
			rw.ServiceUnavailable("event store unavailable")
			return
		}
	}
	rw.Success(HealthStatus{
		Status:         "ready",
		StoreConnected: h.store != nil,
		Uptime:         time.Since(h.startTime).Seconds(),
	})
}
