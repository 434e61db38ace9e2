// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tomtom215/momentline/internal/models"
	"github.com/tomtom215/momentline/internal/override"
)

func openTestStore(t *testing.T) *EventStore {
	t.Helper()
	s, err := Open(Config{InMemory: true})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

var testOwner = models.Owner{ContextID: "ctx-family", ContextKind: models.ContextPerson, OwnerID: "user-1"}

func testEvent(id string, members ...string) models.TimelineEvent {
	ts := time.Date(2026, time.May, 2, 10, 0, 0, 0, time.UTC)
	return models.TimelineEvent{
		ID:               id,
		ContextID:        testOwner.ContextID,
		ContextKind:      testOwner.ContextKind,
		OwnerID:          testOwner.OwnerID,
		EventType:        "outing",
		Timestamp:        &ts,
		Location:         &models.Coordinate{Latitude: 48.85, Longitude: 2.35},
		CustomAttributes: models.Attributes{"mood": models.String("sunny"), "stars": models.Number(4)},
		MemberPhotoIDs:   members,
		KeyPhotoID:       members[0],
		CreatedAt:        ts,
		UpdatedAt:        ts,
	}
}

func testPhoto(id string) models.PhotoRecord {
	ts := time.Date(2026, time.May, 2, 10, 0, 0, 0, time.UTC)
	return models.PhotoRecord{ID: id, CapturedAt: &ts, Caption: "caption " + id}
}

func TestOpen_RequiresPath(t *testing.T) {
	if _, err := Open(Config{}); err == nil {
		t.Error("expected error without path or in-memory flag")
	}
}

func TestApplyChanges_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	cs := &override.ChangeSet{
		Owner:     testOwner,
		PutEvents: []models.TimelineEvent{testEvent("e1", "p1", "p2"), testEvent("e2", "p3")},
		PutPhotos: []models.PhotoRecord{testPhoto("p1"), testPhoto("p2"), testPhoto("p3")},
	}
	if err := s.ApplyChanges(ctx, cs); err != nil {
		t.Fatalf("ApplyChanges() error = %v", err)
	}

	got, err := s.Event(ctx, "e1")
	if err != nil {
		t.Fatalf("Event() error = %v", err)
	}
	want := cs.PutEvents[0]
	if got.ID != want.ID || got.EventType != want.EventType || len(got.MemberPhotoIDs) != 2 {
		t.Errorf("Event() = %+v", got)
	}
	if !got.CustomAttributes.Equal(want.CustomAttributes) {
		t.Errorf("attributes = %v, want %v", got.CustomAttributes, want.CustomAttributes)
	}
	if got.Timestamp == nil || !got.Timestamp.Equal(*want.Timestamp) {
		t.Errorf("Timestamp = %v", got.Timestamp)
	}

	snaps, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(snaps) != 1 {
		t.Fatalf("snapshots = %d, want 1", len(snaps))
	}
	if snaps[0].Owner != testOwner {
		t.Errorf("owner = %+v", snaps[0].Owner)
	}
	if len(snaps[0].Events) != 2 || len(snaps[0].Photos) != 3 {
		t.Errorf("snapshot has %d events, %d photos", len(snaps[0].Events), len(snaps[0].Photos))
	}
}

func TestApplyChanges_DeleteEvent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.ApplyChanges(ctx, &override.ChangeSet{
		Owner:     testOwner,
		PutEvents: []models.TimelineEvent{testEvent("e1", "p1"), testEvent("e2", "p2")},
	}); err != nil {
		t.Fatal(err)
	}
	merged := testEvent("e1", "p1", "p2")
	if err := s.ApplyChanges(ctx, &override.ChangeSet{
		Owner:        testOwner,
		PutEvents:    []models.TimelineEvent{merged},
		DeleteEvents: []string{"e2"},
	}); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Event(ctx, "e2"); !errors.Is(err, models.ErrEventNotFound) {
		t.Errorf("Event(e2) error = %v, want ErrEventNotFound", err)
	}
	snaps, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps[0].Events) != 1 || len(snaps[0].Events[0].MemberPhotoIDs) != 2 {
		t.Errorf("events after merge = %+v", snaps[0].Events)
	}
}

func TestApplyChanges_RejectsInvalidContext(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name string
		cs   *override.ChangeSet
	}{
		{"empty context", &override.ChangeSet{}},
		{"separator in context", &override.ChangeSet{Owner: models.Owner{ContextID: "a:b"}}},
		{"foreign event", &override.ChangeSet{
			Owner:     models.Owner{ContextID: "other"},
			PutEvents: []models.TimelineEvent{testEvent("e1", "p1")},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.ApplyChanges(ctx, tt.cs); err == nil {
				t.Error("expected error")
			}
		})
	}

	// A failed transaction writes nothing.
	snaps, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps) != 0 {
		t.Errorf("snapshots = %+v, want none", snaps)
	}
}

func TestLoadAll_SeparatesContexts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	other := models.Owner{ContextID: "ctx-family-2", ContextKind: models.ContextPet, OwnerID: "user-2"}
	e := testEvent("e9", "p9")
	e.ContextID, e.ContextKind, e.OwnerID = other.ContextID, other.ContextKind, other.OwnerID

	if err := s.ApplyChanges(ctx, &override.ChangeSet{Owner: testOwner, PutEvents: []models.TimelineEvent{testEvent("e1", "p1")},
		PutPhotos: []models.PhotoRecord{testPhoto("p1")}}); err != nil {
		t.Fatal(err)
	}
	if err := s.ApplyChanges(ctx, &override.ChangeSet{Owner: other, PutEvents: []models.TimelineEvent{e},
		PutPhotos: []models.PhotoRecord{testPhoto("p9")}}); err != nil {
		t.Fatal(err)
	}

	snaps, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps) != 2 {
		t.Fatalf("snapshots = %d, want 2", len(snaps))
	}
	for _, snap := range snaps {
		if len(snap.Events) != 1 || len(snap.Photos) != 1 {
			t.Errorf("context %s has %d events, %d photos", snap.Owner.ContextID, len(snap.Events), len(snap.Photos))
		}
		if snap.Events[0].ContextID != snap.Owner.ContextID {
			t.Errorf("context %s loaded event of %s", snap.Owner.ContextID, snap.Events[0].ContextID)
		}
	}
}

func TestCoordinatorPersistsThroughStore(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	cs := &override.ChangeSet{
		Owner:     testOwner,
		PutEvents: []models.TimelineEvent{testEvent("e1", "p1", "p2")},
		PutPhotos: []models.PhotoRecord{testPhoto("p1"), testPhoto("p2")},
	}
	var p override.Persister = s
	if err := p.ApplyChanges(ctx, cs); err != nil {
		t.Fatal(err)
	}
	snaps, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps) != 1 || snaps[0].Events[0].KeyPhotoID != "p1" {
		t.Errorf("snapshots = %+v", snaps)
	}
}

func TestClosedStore(t *testing.T) {
	s, err := Open(Config{InMemory: true})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Ping(); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := s.Ping(); !errors.Is(err, ErrClosed) {
		t.Errorf("Ping() after close = %v, want ErrClosed", err)
	}
	if _, err := s.RunGC(); !errors.Is(err, ErrClosed) {
		t.Errorf("RunGC() after close = %v, want ErrClosed", err)
	}
	if err := s.ApplyChanges(context.Background(), &override.ChangeSet{Owner: testOwner}); !errors.Is(err, ErrClosed) {
		t.Errorf("ApplyChanges() after close = %v, want ErrClosed", err)
	}
}

func TestRunGC_OnDisk(t *testing.T) {
	s, err := Open(Config{Path: t.TempDir(), GCDiscardRatio: 0.5})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if err := s.ApplyChanges(context.Background(), &override.ChangeSet{
		Owner: testOwner, PutEvents: []models.TimelineEvent{testEvent("e1", "p1")},
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.RunGC(); err != nil {
		t.Errorf("RunGC() error = %v", err)
	}
}
