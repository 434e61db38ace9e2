// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tomtom215/momentline/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadFile("")
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	cfg.Store.Path = filepath.Join(t.TempDir(), "events")
	cfg.Security.RateLimitDisabled = true
	return cfg
}

const importBody = `{
  "context_kind": "pet",
  "owner_id": "user-1",
  "photos": [
    {"id": "a", "captured_at": "2026-05-02T10:00:00Z", "caption": "park"},
    {"id": "b", "captured_at": "2026-05-02T10:20:00Z"},
    {"id": "c", "captured_at": "2026-05-09T16:00:00Z", "caption": "vet"}
  ]
}`

func TestNewApp_PersistsAcrossRestart(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()

	a, err := newApp(ctx, cfg)
	if err != nil {
		t.Fatalf("newApp() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/contexts/rex/imports", strings.NewReader(importBody))
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("import status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if err := a.store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	b, err := newApp(ctx, cfg)
	if err != nil {
		t.Fatalf("newApp() after restart error = %v", err)
	}
	defer func() { _ = b.store.Close() }()

	events := b.coordinator.Events("rex")
	if len(events) != 2 {
		t.Fatalf("restored %d events, want 2", len(events))
	}
	for _, e := range events {
		if _, ok := e.CustomAttributes["milestone"]; !ok {
			t.Errorf("event %s lacks built-in pet default: %v", e.ID, e.CustomAttributes)
		}
	}
	if got := len(b.coordinator.Photos("rex")); got != 3 {
		t.Errorf("restored %d photos, want 3", got)
	}
}

func TestNewApp_PolicyFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.Store.InMemory = true

	cfg.Policy.Path = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := newApp(context.Background(), cfg); err == nil {
		t.Fatal("newApp() with missing policy file: expected error")
	}

	path := filepath.Join(t.TempDir(), "policy.yaml")
	policyYAML := "event_types:\n  fallback: walk\n"
	if err := os.WriteFile(path, []byte(policyYAML), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg.Policy.Path = path
	a, err := newApp(context.Background(), cfg)
	if err != nil {
		t.Fatalf("newApp() error = %v", err)
	}
	defer func() { _ = a.store.Close() }()

	srv := a.httpServer()
	if srv.Addr != cfg.Server.Addr() || srv.Handler == nil {
		t.Errorf("server = %+v", srv)
	}
}
