// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

// Package main is the entry point for the Momentline server.
//
// Momentline groups photos into timeline events (by capture time, place and
// rapid-fire bursts) for person, pet, project and business timelines, and
// lets users split and merge the events it produced.
//
// # Startup
//
//  1. Configuration: defaults, optional YAML file, environment (Koanf v2)
//  2. Logging: zerolog, JSON by default
//  3. Policy: event type rules and attribute defaults (built-in or POLICY_PATH)
//  4. Event store: BadgerDB, restored into the override coordinator
//  5. Supervisor tree: store GC (data layer) and HTTP server (api layer)
//
// # Configuration
//
// Common environment variables:
//
//	HTTP_PORT              listen port (default 8417)
//	STORE_PATH             BadgerDB directory (default /data/momentline)
//	STORE_IN_MEMORY        keep events in memory only
//	CLUSTER_TIME_WINDOW    temporal grouping window (default 3h)
//	CLUSTER_DISTANCE_THRESHOLD  spatial split threshold in meters (default 500)
//	POLICY_PATH            YAML policy file
//	LOG_LEVEL, LOG_FORMAT  logging
//
// # Signal Handling
//
// SIGINT and SIGTERM stop the supervisor tree. The HTTP server drains
// in-flight requests for HTTP_SHUTDOWN_TIMEOUT, then the store is closed.
package main
