// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/momentline/internal/clustering"
	"github.com/tomtom215/momentline/internal/models"
)

// Config holds all application configuration.
//
// Loading order (Koanf v2):
//  1. Defaults: built-in values from defaultConfig
//  2. Config file: optional YAML (config.yaml, /etc/momentline/config.yaml or CONFIG_PATH)
//  3. Environment variables: override individual settings
//
// Config is immutable after Load and safe for concurrent reads.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Security   SecurityConfig   `koanf:"security"`
	Clustering ClusteringConfig `koanf:"clustering"`
	Policy     PolicyConfig     `koanf:"policy"`
	Store      StoreConfig      `koanf:"store"`
	Logging    LoggingConfig    `koanf:"logging"`
	Supervisor SupervisorConfig `koanf:"supervisor"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	MaxBodyBytes    int64         `koanf:"max_body_bytes"`
	MaxImportPhotos int           `koanf:"max_import_photos"`
	Environment     string        `koanf:"environment"` // development, staging, production
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SecurityConfig holds CORS and rate limiting settings. Authentication is
// handled in front of the service.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// ClusteringParams is one layer of clustering tuning. In the kinds and
// contexts overrides a zero field inherits from the layer below.
type ClusteringParams struct {
	TimeWindow         time.Duration `koanf:"time_window"`
	DistanceThresholdM float64       `koanf:"distance_threshold_m"`
	BurstMinCount      int           `koanf:"burst_min_count"`
	BurstGap           time.Duration `koanf:"burst_gap"`
	FuzzyPolicy        string        `koanf:"fuzzy_policy"`
	CaptionSeparator   string        `koanf:"caption_separator"`
}

// ClusteringConfig holds engine tuning. Resolution order for a context is
// Contexts[id] over Kinds[kind] over Defaults.
//
//	clustering:
//	  defaults:
//	    time_window: 3h
//	    distance_threshold_m: 500
//	  kinds:
//	    project:
//	      time_window: 72h
//	  contexts:
//	    rex-the-dog:
//	      burst_min_count: 5
type ClusteringConfig struct {
	// Workers bounds the per-cluster fan-out. 0 = runtime.NumCPU().
	Workers  int                         `koanf:"workers"`
	Defaults ClusteringParams            `koanf:"defaults"`
	Kinds    map[string]ClusteringParams `koanf:"kinds"`
	Contexts map[string]ClusteringParams `koanf:"contexts"`
}

// ParamsFor resolves the engine parameters for one context.
func (c ClusteringConfig) ParamsFor(contextID string, kind models.ContextKind) clustering.Params {
	merged := c.Defaults
	if o, ok := c.Kinds[string(kind)]; ok {
		merged = overlay(merged, o)
	}
	if o, ok := c.Contexts[contextID]; ok {
		merged = overlay(merged, o)
	}
	return merged.Params()
}

// Params converts the layer into engine parameters.
func (p ClusteringParams) Params() clustering.Params {
	return clustering.Params{
		TimeWindow:        p.TimeWindow,
		DistanceThreshold: p.DistanceThresholdM,
		BurstMinCount:     p.BurstMinCount,
		BurstGapThreshold: p.BurstGap,
		FuzzyPolicy:       clustering.FuzzyPolicy(p.FuzzyPolicy),
		CaptionSeparator:  p.CaptionSeparator,
	}
}

func overlay(base, o ClusteringParams) ClusteringParams {
	if o.TimeWindow != 0 {
		base.TimeWindow = o.TimeWindow
	}
	if o.DistanceThresholdM != 0 {
		base.DistanceThresholdM = o.DistanceThresholdM
	}
	if o.BurstMinCount != 0 {
		base.BurstMinCount = o.BurstMinCount
	}
	if o.BurstGap != 0 {
		base.BurstGap = o.BurstGap
	}
	if o.FuzzyPolicy != "" {
		base.FuzzyPolicy = o.FuzzyPolicy
	}
	if o.CaptionSeparator != "" {
		base.CaptionSeparator = o.CaptionSeparator
	}
	return base
}

// PolicyConfig points at the event type and defaults policy file. An empty
// path uses the built-in policy.
type PolicyConfig struct {
	Path string `koanf:"path"`
}

// StoreConfig holds BadgerDB settings.
type StoreConfig struct {
	Path           string        `koanf:"path"`
	InMemory       bool          `koanf:"in_memory"`
	SyncWrites     bool          `koanf:"sync_writes"`
	GCInterval     time.Duration `koanf:"gc_interval"`
	GCDiscardRatio float64       `koanf:"gc_discard_ratio"`
}

// LoggingConfig holds logging configuration.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// SupervisorConfig mirrors suture's failure handling knobs.
type SupervisorConfig struct {
	FailureThreshold float64       `koanf:"failure_threshold"`
	FailureDecay     float64       `koanf:"failure_decay"`
	FailureBackoff   time.Duration `koanf:"failure_backoff"`
	ShutdownTimeout  time.Duration `koanf:"shutdown_timeout"`
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Load loads configuration from defaults, an optional file and the environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
