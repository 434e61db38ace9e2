// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/momentline/internal/api"
	"github.com/tomtom215/momentline/internal/clustering"
	"github.com/tomtom215/momentline/internal/config"
	"github.com/tomtom215/momentline/internal/logging"
	"github.com/tomtom215/momentline/internal/override"
	"github.com/tomtom215/momentline/internal/policy"
	"github.com/tomtom215/momentline/internal/store"
)

// app holds the wired components of a running server.
type app struct {
	cfg         *config.Config
	store       *store.EventStore
	coordinator *override.Coordinator
	handler     http.Handler
}

// loadPolicy returns the configured policy file, or the built-in policy.
func loadPolicy(cfg *config.Config) (*policy.Policy, error) {
	if cfg.Policy.Path == "" {
		logging.Info().Msg("Using built-in event policy")
		return policy.Builtin(), nil
	}
	p, err := policy.Load(cfg.Policy.Path)
	if err != nil {
		return nil, fmt.Errorf("load policy: %w", err)
	}
	logging.Info().Str("path", cfg.Policy.Path).Int("rules", len(p.Resolver.Rules)).Msg("Event policy loaded")
	return p, nil
}

// newApp opens the store, restores persisted events and builds the HTTP
// handler. The caller owns a.store and must close it.
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	pol, err := loadPolicy(cfg)
	if err != nil {
		return nil, err
	}

	es, err := store.Open(store.Config{
		Path:           cfg.Store.Path,
		InMemory:       cfg.Store.InMemory,
		SyncWrites:     cfg.Store.SyncWrites,
		GCDiscardRatio: cfg.Store.GCDiscardRatio,
	})
	if err != nil {
		return nil, err
	}

	engine := clustering.NewEngine(pol.Resolver, pol.Defaults)
	engine.Workers = cfg.Clustering.Workers

	coord, err := override.NewCoordinator(override.CoordinatorConfig{
		Engine:          engine,
		Params:          cfg.Clustering.ParamsFor,
		Persister:       es,
		Audit:           logging.NewAuditLogger(),
		MaxImportPhotos: cfg.Server.MaxImportPhotos,
	})
	if err != nil {
		_ = es.Close()
		return nil, err
	}

	start := time.Now()
	snapshots, err := es.LoadAll(ctx)
	if err != nil {
		_ = es.Close()
		return nil, fmt.Errorf("restore events: %w", err)
	}
	coord.Restore(snapshots)
	logging.Info().Dur("duration", time.Since(start)).Msg("Event store restored")

	handler := api.NewHandler(coord, es, cfg.Server.MaxBodyBytes)
	mw := api.NewChiMiddleware(api.ChiMiddlewareConfigFrom(cfg.Security))

	return &app{
		cfg:         cfg,
		store:       es,
		coordinator: coord,
		handler:     api.NewRouter(handler, mw).SetupChi(),
	}, nil
}

// httpServer builds the listening server.
func (a *app) httpServer() *http.Server {
	return &http.Server{
		Addr:              a.cfg.Server.Addr(),
		Handler:           a.handler,
		ReadTimeout:       a.cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      a.cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}
}
