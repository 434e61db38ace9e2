// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

package config

import (
	"fmt"
	"sort"
	"time"

	"github.com/tomtom215/momentline/internal/models"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	if err := c.validateClustering(); err != nil {
		return err
	}

	if err := c.validateStore(); err != nil {
		return err
	}

	if err := c.validateSupervisor(); err != nil {
		return err
	}

	return c.validateLogging()
}

var validEnvironments = map[string]bool{
	"development": true,
	"staging":     true,
	"production":  true,
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive")
	}
	if c.Server.MaxBodyBytes < 1024 {
		return fmt.Errorf("HTTP_MAX_BODY_BYTES must be at least 1024, got %d", c.Server.MaxBodyBytes)
	}
	if c.Server.MaxImportPhotos < 1 {
		return fmt.Errorf("MAX_IMPORT_PHOTOS must be positive, got %d", c.Server.MaxImportPhotos)
	}
	if !validEnvironments[c.Server.Environment] {
		return fmt.Errorf("ENVIRONMENT must be one of development, staging, production, got %q", c.Server.Environment)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if err := c.validateCORS(); err != nil {
		return err
	}
	return c.validateRateLimits()
}

// validateCORS rejects an empty origin list. A wildcard is allowed but
// ShouldWarnAboutCORS reports it for production.
func (c *Config) validateCORS() error {
	if len(c.Security.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must list at least one origin")
	}
	return nil
}

// hasWildcardCORS checks if CORS is configured with wildcard origins
func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// ShouldWarnAboutCORS returns true when a production deployment accepts any origin.
func (c *Config) ShouldWarnAboutCORS() bool {
	return c.IsProduction() && c.hasWildcardCORS()
}

// Rate limiting bounds
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// validateClustering resolves every configured layer and checks the result,
// so an override can never produce unusable parameters at runtime.
func (c *Config) validateClustering() error {
	if c.Clustering.Workers < 0 {
		return fmt.Errorf("CLUSTER_WORKERS must not be negative, got %d", c.Clustering.Workers)
	}
	if err := c.Clustering.Defaults.Params().Validate(); err != nil {
		return fmt.Errorf("clustering.defaults: %w", err)
	}

	for _, name := range sortedKeys(c.Clustering.Kinds) {
		kind, ok := models.ParseContextKind(name)
		if !ok || string(kind) != name {
			return fmt.Errorf("clustering.kinds: unknown context kind %q", name)
		}
		if err := c.Clustering.ParamsFor("", kind).Validate(); err != nil {
			return fmt.Errorf("clustering.kinds.%s: %w", name, err)
		}
	}

	// Context overrides are checked over the defaults only; the kind layer
	// in between is validated above on its own.
	for _, id := range sortedKeys(c.Clustering.Contexts) {
		if id == "" {
			return fmt.Errorf("clustering.contexts: empty context id")
		}
		if err := overlay(c.Clustering.Defaults, c.Clustering.Contexts[id]).Params().Validate(); err != nil {
			return fmt.Errorf("clustering.contexts.%s: %w", id, err)
		}
	}
	return nil
}

func (c *Config) validateStore() error {
	if !c.Store.InMemory && c.Store.Path == "" {
		return fmt.Errorf("STORE_PATH is required unless STORE_IN_MEMORY=true")
	}
	if c.Store.GCInterval < 0 {
		return fmt.Errorf("STORE_GC_INTERVAL must not be negative")
	}
	if c.Store.GCDiscardRatio <= 0 || c.Store.GCDiscardRatio >= 1 {
		return fmt.Errorf("STORE_GC_DISCARD_RATIO must be between 0 and 1 (exclusive), got %g", c.Store.GCDiscardRatio)
	}
	return nil
}

func (c *Config) validateSupervisor() error {
	if c.Supervisor.FailureThreshold <= 0 {
		return fmt.Errorf("SUPERVISOR_FAILURE_THRESHOLD must be positive")
	}
	if c.Supervisor.FailureDecay <= 0 {
		return fmt.Errorf("SUPERVISOR_FAILURE_DECAY must be positive")
	}
	if c.Supervisor.FailureBackoff <= 0 || c.Supervisor.ShutdownTimeout <= 0 {
		return fmt.Errorf("supervisor backoff and shutdown timeout must be positive")
	}
	return nil
}

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, got %q", c.Logging.Level)
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of json, console, got %q", c.Logging.Format)
	}
	return nil
}

func sortedKeys(m map[string]ClusteringParams) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
