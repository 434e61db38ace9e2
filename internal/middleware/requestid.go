// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

package middleware

import (
	"net/http"
	"strings"

	"github.com/tomtom215/momentline/internal/logging"
)

// Header names for request tracing.
const (
	RequestIDHeader     = "X-Request-ID"
	CorrelationIDHeader = "X-Correlation-ID"
)

// maxTraceIDLen bounds client-supplied IDs before they reach the logs.
const maxTraceIDLen = 128

// RequestID assigns a request ID (reusing a sane upstream X-Request-ID) and
// a correlation ID, echoes both in the response and stores them in the
// logging context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := sanitizeTraceID(r.Header.Get(RequestIDHeader))
		if requestID == "" {
			requestID = logging.GenerateRequestID()
		}
		correlationID := sanitizeTraceID(r.Header.Get(CorrelationIDHeader))
		if correlationID == "" {
			correlationID = logging.GenerateCorrelationID()
		}

		w.Header().Set(RequestIDHeader, requestID)
		w.Header().Set(CorrelationIDHeader, correlationID)

		ctx := logging.ContextWithRequestID(r.Context(), requestID)
		ctx = logging.ContextWithCorrelationID(ctx, correlationID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sanitizeTraceID drops IDs that are too long or contain anything but
// printable ASCII without spaces.
func sanitizeTraceID(id string) string {
	id = strings.TrimSpace(id)
	if len(id) > maxTraceIDLen {
		return ""
	}
	for i := 0; i < len(id); i++ {
		if id[i] <= 0x20 || id[i] >= 0x7f {
			return ""
		}
	}
	return id
}
