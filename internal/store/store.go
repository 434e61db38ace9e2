// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/momentline/internal/logging"
	"github.com/tomtom215/momentline/internal/metrics"
)

// Key prefixes for BadgerDB storage
const (
	contextKeyPrefix  = "context:"
	eventKeyPrefix    = "event:"
	ctxEventKeyPrefix = "ctxevent:"
	photoKeyPrefix    = "photo:"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("store is closed")

// Config configures an EventStore.
type Config struct {
	Path           string
	InMemory       bool
	SyncWrites     bool
	GCDiscardRatio float64
	CloseTimeout   time.Duration
}

// EventStore is the BadgerDB-backed event and photo store.
type EventStore struct {
	db  *badger.DB
	cfg Config

	mu     sync.RWMutex
	closed bool
}

// Open opens (or creates) the store.
func Open(cfg Config) (*EventStore, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, fmt.Errorf("store path is required")
	}
	if cfg.GCDiscardRatio <= 0 || cfg.GCDiscardRatio >= 1 {
		cfg.GCDiscardRatio = 0.5
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Path)
		opts.SyncWrites = cfg.SyncWrites
	}
	// Badger's own logger is too chatty at info level.
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	logging.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Bool("sync_writes", cfg.SyncWrites).
		Msg("Event store opened")
	return &EventStore{db: db, cfg: cfg}, nil
}

func (s *EventStore) checkOpen() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}

// Ping reports whether the store can serve reads.
func (s *EventStore) Ping() error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	return s.db.View(func(*badger.Txn) error { return nil })
}

// Close flushes and closes the database. A hung close is abandoned after
// CloseTimeout (default 30s).
func (s *EventStore) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	timeout := s.cfg.CloseTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	s.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		done <- s.db.Close()
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("close BadgerDB: %w", err)
		}
		logging.Info().Msg("Event store closed")
		return nil
	case <-time.After(timeout):
		logging.Warn().Dur("timeout", timeout).Msg("BadgerDB close timed out")
		return fmt.Errorf("badgerdb close timeout after %v", timeout)
	}
}

// RunGC runs value log garbage collection until nothing is left to rewrite
// and returns the number of rewritten files.
func (s *EventStore) RunGC() (int, error) {
	if err := s.checkOpen(); err != nil {
		return 0, err
	}
	if s.cfg.InMemory {
		return 0, nil
	}

	start := time.Now()
	rewrites := 0
	for {
		err := s.db.RunValueLogGC(s.cfg.GCDiscardRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			break
		}
		if err != nil {
			metrics.RecordStoreOperation("gc", time.Since(start), err)
			metrics.RecordStoreGC("error")
			return rewrites, fmt.Errorf("run GC: %w", err)
		}
		rewrites++
	}

	metrics.RecordStoreOperation("gc", time.Since(start), nil)
	if rewrites > 0 {
		metrics.RecordStoreGC("rewritten")
	} else {
		metrics.RecordStoreGC("noop")
	}
	return rewrites, nil
}
