// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

package override

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/momentline/internal/clustering"
	"github.com/tomtom215/momentline/internal/models"
	"github.com/tomtom215/momentline/internal/policy"
)

var baseDay = time.Date(2026, time.May, 2, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return baseDay.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func raw(id string, ts time.Time, caption string) models.RawPhoto {
	r := models.RawPhoto{ID: &id, CapturedAt: &ts}
	if caption != "" {
		r.Caption = &caption
	}
	return r
}

// outing is the two-event day used throughout: a morning walk of three
// photos and an afternoon visit of two.
func outing() []models.RawPhoto {
	return []models.RawPhoto{
		raw("p1", at(10, 0), "arrived"),
		raw("p2", at(10, 5), ""),
		raw("p3", at(10, 10), "lunch"),
		raw("p4", at(14, 0), "museum"),
		raw("p5", at(14, 2), ""),
	}
}

func testParams() clustering.Params {
	return clustering.Params{
		TimeWindow:        30 * time.Minute,
		DistanceThreshold: 500,
		BurstMinCount:     3,
		BurstGapThreshold: 2 * time.Second,
	}
}

func owner(contextID string) models.Owner {
	return models.Owner{ContextID: contextID, ContextKind: models.ContextPerson, OwnerID: "user-1"}
}

func testEngine() *clustering.Engine {
	e := clustering.NewEngine(
		policy.ResolverFunc(func(models.Owner, policy.ClusterSummary) string { return "outing" }),
		policy.NoDefaults{},
	)
	e.Clock = func() time.Time { return baseDay }
	return e
}

// clustered runs the engine over raws and returns the events and index.
func clustered(t *testing.T, contextID string, raws []models.RawPhoto) ([]models.TimelineEvent, PhotoIndex) {
	t.Helper()
	res, err := testEngine().Run(raws, owner(contextID), testParams())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return res.Events, PhotoIndex(res.Photos)
}

func findByMember(t *testing.T, events []models.TimelineEvent, photoID string) models.TimelineEvent {
	t.Helper()
	for _, e := range events {
		if e.HasMember(photoID) {
			return e
		}
	}
	t.Fatalf("no event contains %s", photoID)
	return models.TimelineEvent{}
}

func sameIDs(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

// memoryPersister records change sets and can be told to fail.
type memoryPersister struct {
	mu      sync.Mutex
	changes []ChangeSet
	fail    bool
}

var errPersist = errors.New("disk full")

func (p *memoryPersister) ApplyChanges(_ context.Context, cs *ChangeSet) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errPersist
	}
	p.changes = append(p.changes, *cs)
	return nil
}

func (p *memoryPersister) setFail(fail bool) {
	p.mu.Lock()
	p.fail = fail
	p.mu.Unlock()
}

func newTestCoordinator(t *testing.T, persister Persister) *Coordinator {
	t.Helper()
	n := 0
	var idMu sync.Mutex
	c, err := NewCoordinator(CoordinatorConfig{
		Engine:    testEngine(),
		Params:    func(string, models.ContextKind) clustering.Params { return testParams() },
		Persister: persister,
		Clock:     func() time.Time { return baseDay.Add(24 * time.Hour) },
		NewID: func() string {
			idMu.Lock()
			defer idMu.Unlock()
			n++
			return fmt.Sprintf("split-%d", n)
		},
	})
	if err != nil {
		t.Fatalf("NewCoordinator() error = %v", err)
	}
	return c
}
