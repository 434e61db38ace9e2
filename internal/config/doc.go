// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

/*
Package config provides centralized configuration management for Momentline.

Configuration is layered with Koanf v2: built-in defaults, then an optional
YAML file, then environment variables. The result is validated once and is
read-only afterwards.

# Configuration Structure

  - ServerConfig: HTTP listener, timeouts, body and import limits
  - SecurityConfig: CORS origins and rate limiting
  - ClusteringConfig: engine thresholds with per-kind and per-context overrides
  - PolicyConfig: event type and defaults policy file
  - StoreConfig: BadgerDB location and value log GC
  - LoggingConfig: zerolog level and format
  - SupervisorConfig: suture failure handling

# Clustering Overrides

ParamsFor resolves thresholds for one context. A context entry wins over its
kind entry, which wins over the defaults; zero fields inherit. Context IDs
used as keys under clustering.contexts must not contain dots, since dots
separate Koanf paths.

# Environment Variables

	HTTP_PORT, HTTP_HOST, HTTP_TIMEOUT, ENVIRONMENT
	RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT, CORS_ORIGINS
	CLUSTER_TIME_WINDOW, CLUSTER_DISTANCE_THRESHOLD, CLUSTER_BURST_MIN_COUNT,
	CLUSTER_BURST_GAP, CLUSTER_FUZZY_POLICY, CLUSTER_WORKERS
	POLICY_PATH
	STORE_PATH, STORE_IN_MEMORY, STORE_SYNC_WRITES, STORE_GC_INTERVAL
	LOG_LEVEL, LOG_FORMAT, LOG_CALLER
	CONFIG_PATH (config file location)

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
	params := cfg.Clustering.ParamsFor("ctx-family", models.ContextPerson)
*/
package config
