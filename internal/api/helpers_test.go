// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

package api

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/momentline/internal/clustering"
	"github.com/tomtom215/momentline/internal/models"
	"github.com/tomtom215/momentline/internal/override"
	"github.com/tomtom215/momentline/internal/policy"
)

var baseDay = time.Date(2026, time.May, 2, 0, 0, 0, 0, time.UTC)

// fakePinger reports a fixed store health.
type fakePinger struct{ err error }

func (p fakePinger) Ping() error { return p.err }

var errStoreDown = errors.New("store closed")

func testParams() clustering.Params {
	return clustering.Params{
		TimeWindow:        30 * time.Minute,
		DistanceThreshold: 500,
		BurstMinCount:     3,
		BurstGapThreshold: 2 * time.Second,
	}
}

func newTestCoordinator(t *testing.T) *override.Coordinator {
	t.Helper()
	engine := clustering.NewEngine(
		policy.ResolverFunc(func(models.Owner, policy.ClusterSummary) string { return "outing" }),
		policy.NoDefaults{},
	)
	engine.Clock = func() time.Time { return baseDay }
	c, err := override.NewCoordinator(override.CoordinatorConfig{
		Engine: engine,
		Params: func(string, models.ContextKind) clustering.Params { return testParams() },
		Clock:  func() time.Time { return baseDay.Add(24 * time.Hour) },
	})
	if err != nil {
		t.Fatalf("NewCoordinator() error = %v", err)
	}
	return c
}

// testServer builds the full router with rate limiting disabled.
func testServer(t *testing.T, store Pinger) http.Handler {
	t.Helper()
	mwCfg := DefaultChiMiddlewareConfig()
	mwCfg.RateLimitDisabled = true
	mwCfg.CORSAllowedOrigins = []string{"https://app.example.com"}
	h := NewHandler(newTestCoordinator(t), store, 1<<20)
	return NewRouter(h, NewChiMiddleware(mwCfg)).SetupChi()
}

// envelope mirrors APIResponse with a raw payload.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func do(t *testing.T, h http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}
	return rec, env
}

func decodeData(t *testing.T, env envelope, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("decode data %s: %v", env.Data, err)
	}
}

func photo(id string, hour, minute int, caption string) map[string]interface{} {
	p := map[string]interface{}{
		"id":          id,
		"captured_at": baseDay.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute).Format(time.RFC3339),
	}
	if caption != "" {
		p["caption"] = caption
	}
	return p
}

// outingImport is a morning of three photos and an afternoon of two.
func outingImport() map[string]interface{} {
	return map[string]interface{}{
		"context_kind": "person",
		"owner_id":     "user-1",
		"photos": []interface{}{
			photo("p1", 10, 0, "arrived"),
			photo("p2", 10, 5, ""),
			photo("p3", 10, 10, "lunch"),
			photo("p4", 14, 0, "museum"),
			photo("p5", 14, 2, ""),
		},
	}
}

// importOuting imports outingImport into contextID and returns the events.
func importOuting(t *testing.T, h http.Handler, contextID string) []models.TimelineEvent {
	t.Helper()
	rec, env := do(t, h, http.MethodPost, "/api/v1/contexts/"+contextID+"/imports", outingImport())
	if rec.Code != http.StatusCreated {
		t.Fatalf("import status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp ImportResponse
	decodeData(t, env, &resp)
	return resp.Events
}
