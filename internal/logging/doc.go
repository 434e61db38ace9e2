// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

// Package logging provides centralized zerolog-based structured logging for Momentline.
//
// JSON output is the default; console output is available for development.
// The pure clustering core never logs. The coordinator, store, API handlers
// and supervised services do, always with structured fields.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Str("context_id", id).Int("events", n).Msg("Import committed")
//	logging.Err(err).Str("event_id", eventID).Msg("Split failed")
//
//	// Request-scoped fields (request_id, correlation_id, context_id)
//	logging.Ctx(ctx).Info().Msg("Processing import")
//
// # Configuration
//
// The config package maps these environment variables onto Config:
//
//	LOG_LEVEL   - trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - json, console (default: json)
//	LOG_CALLER  - include caller file:line (default: false)
//
// # Audit Trail
//
// AuditLogger writes one record per committed or rejected change to an
// event set (import, split, merge, attribute edit) under component=audit.
//
// # Suture Integration
//
// SlogHandler adapts zerolog to log/slog so sutureslog can report
// supervisor restarts and failures:
//
//	handler := &sutureslog.Handler{Logger: logging.NewSlogLogger()}
//	supervisor := suture.New("root", suture.Spec{EventHook: handler.MustHook()})
package logging
