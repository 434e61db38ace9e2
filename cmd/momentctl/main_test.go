// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/momentline/internal/models"
)

const manifestYAML = `context_id: rex
context_kind: pet
owner_id: user-1
photos:
  - id: a
    captured_at: 2026-05-02T10:00:00Z
    caption: park
  - id: b
    captured_at: 2026-05-02T10:00:01Z
  - id: c
    captured_at: 2026-05-02T10:00:02Z
  - id: d
    captured_at: 2026-05-02T18:00:00Z
    caption: dinner
  - id: old
    fuzzy_date:
      granularity: year
      start: 1994-01-01T00:00:00Z
      end: 1995-01-01T00:00:00Z
`

// run executes momentctl with a minimal config file and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("store:\n  in_memory: true\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "photos.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestClusterCmd_Table(t *testing.T) {
	out, err := run(t, "cluster", "--input", writeManifest(t, manifestYAML))
	if err != nil {
		t.Fatalf("cluster error = %v", err)
	}
	if !strings.Contains(out, "5 photos in 3 events") {
		t.Errorf("summary missing:\n%s", out)
	}
	if !strings.Contains(out, "~year 1994") {
		t.Errorf("fuzzy event not rendered:\n%s", out)
	}
}

func TestClusterCmd_JSONAndOverrides(t *testing.T) {
	out, err := run(t, "cluster", "--input", writeManifest(t, manifestYAML),
		"--json", "--time-window", "12h", "--kind", "person", "--context", "alice")
	if err != nil {
		t.Fatalf("cluster error = %v", err)
	}

	var got struct {
		Owner  models.Owner           `json:"owner"`
		Events []models.TimelineEvent `json:"events"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if got.Owner.ContextID != "alice" || got.Owner.ContextKind != models.ContextPerson {
		t.Errorf("owner = %+v", got.Owner)
	}
	// 12h joins the morning burst with dinner; the fuzzy photo stays apart.
	if len(got.Events) != 2 {
		t.Errorf("got %d events, want 2", len(got.Events))
	}
}

func TestClusterCmd_Errors(t *testing.T) {
	missingAnchor := "context_id: rex\ncontext_kind: pet\nowner_id: u\nphotos:\n  - id: a\n"

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "missing input flag", args: []string{"cluster"}, wantErr: "input"},
		{name: "missing file", args: []string{"cluster", "--input", "/nonexistent/photos.yaml"}, wantErr: "open manifest"},
		{name: "unknown manifest field", args: []string{"cluster", "--input", writeManifest(t, "colour: red\n")}, wantErr: "parse manifest"},
		{name: "empty manifest", args: []string{"cluster", "--input", writeManifest(t, "")}, wantErr: "empty"},
		{name: "invalid kind", args: []string{"cluster", "--input", writeManifest(t, manifestYAML), "--kind", "robot"}, wantErr: "invalid owner"},
		{name: "missing temporal anchor", args: []string{"cluster", "--input", writeManifest(t, missingAnchor)}, wantErr: "missing temporal anchor"},
		{name: "bad window", args: []string{"cluster", "--input", writeManifest(t, manifestYAML), "--time-window=-1h"}, wantErr: "configuration error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfigCmd(t *testing.T) {
	out, err := run(t, "config")
	if err != nil {
		t.Fatalf("config error = %v", err)
	}
	for _, want := range []string{"in_memory: true", "time_window: 3h0m0s", "distance_threshold_m: 500"} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
}
