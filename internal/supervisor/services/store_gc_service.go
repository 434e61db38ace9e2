// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

package services

import (
	"context"
	"time"

	"github.com/tomtom215/momentline/internal/logging"
)

// GarbageCollector is satisfied by *store.EventStore.
type GarbageCollector interface {
	// RunGC reclaims value log space and returns the number of files
	// rewritten.
	RunGC() (int, error)
}

// StoreGCService runs value log garbage collection on a fixed interval.
// GC errors are logged and retried on the next tick; they never restart
// the service.
type StoreGCService struct {
	store    GarbageCollector
	interval time.Duration
	name     string
}

// NewStoreGCService creates the service. interval <= 0 means 10m.
func NewStoreGCService(store GarbageCollector, interval time.Duration) *StoreGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &StoreGCService{
		store:    store,
		interval: interval,
		name:     "store-gc",
	}
}

// Serve implements suture.Service.
func (s *StoreGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.runOnce()
		}
	}
}

func (s *StoreGCService) runOnce() {
	start := time.Now()
	rewritten, err := s.store.RunGC()
	if err != nil {
		logging.Warn().Err(err).Msg("Event store GC failed")
		return
	}
	if rewritten > 0 {
		logging.Info().Int("files_rewritten", rewritten).Dur("duration", time.Since(start)).Msg("Event store GC completed")
	}
}

// String implements fmt.Stringer for logging.
func (s *StoreGCService) String() string {
	return s.name
}
