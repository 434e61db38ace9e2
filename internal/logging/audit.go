// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

package logging

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// AuditEvent describes one change to a context's event set.
type AuditEvent struct {
	// Action is the change type: import, split, merge, set_attributes.
	Action string
	// ContextID is the timeline context the change applies to.
	ContextID string
	// EventIDs lists the events written or absorbed.
	EventIDs []string
	// Photos is the number of photos moved or imported.
	Photos int
	// Keys lists attribute keys touched by the change.
	Keys []string
	// Duration covers computation and persistence.
	Duration time.Duration
	// Err is set when the change was rejected or failed to persist.
	Err error
}

// AuditLogger records event-set changes with a fixed field layout so they
// can be filtered out of the general log stream.
type AuditLogger struct {
	logger zerolog.Logger
}

// NewAuditLogger creates an audit logger on the global logger.
func NewAuditLogger() *AuditLogger {
	return &AuditLogger{logger: With().Str("component", "audit").Logger()}
}

// NewAuditLoggerWithLogger creates an audit logger on a specific logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewAuditLoggerWithLogger(logger zerolog.Logger) *AuditLogger {
	return &AuditLogger{logger: logger.With().Str("component", "audit").Logger()}
}

// Log writes the event. Failures are logged at warn level.
func (l *AuditLogger) Log(ctx context.Context, event *AuditEvent) {
	base := l.logger
	if ctx != nil {
		if id := RequestIDFromContext(ctx); id != "" {
			base = base.With().Str("request_id", id).Logger()
		}
	}

	var e *zerolog.Event
	if event.Err != nil {
		e = base.Warn().Str("status", "failed").Str("error", truncate(event.Err.Error(), 200))
	} else {
		e = base.Info().Str("status", "success")
	}

	e = e.Str("action", event.Action).Str("context_id", event.ContextID)
	if len(event.EventIDs) > 0 {
		e = e.Strs("event_ids", event.EventIDs)
	}
	if event.Photos > 0 {
		e = e.Int("photos", event.Photos)
	}
	if len(event.Keys) > 0 {
		e = e.Str("keys", strings.Join(event.Keys, ","))
	}
	if event.Duration > 0 {
		e = e.Dur("duration", event.Duration)
	}
	e.Msg("event set changed")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
