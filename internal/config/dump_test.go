// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDump_RoundTrip(t *testing.T) {
	cfg := defaultConfig()
	cfg.Clustering.Defaults.TimeWindow = 90 * time.Minute
	cfg.Server.Port = 9000

	out, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	if !strings.Contains(string(out), "time_window: 1h30m0s") {
		t.Errorf("durations not rendered as strings:\n%s", out)
	}

	path := filepath.Join(t.TempDir(), "dump.yaml")
	if err := os.WriteFile(path, out, 0o600); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile(dump) error = %v", err)
	}
	if loaded.Clustering.Defaults.TimeWindow != 90*time.Minute || loaded.Server.Port != 9000 {
		t.Errorf("round trip lost values: window=%v port=%d",
			loaded.Clustering.Defaults.TimeWindow, loaded.Server.Port)
	}
}
