// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

package clustering

import (
	"math"
	"testing"
	"time"

	"github.com/tomtom215/momentline/internal/models"
	"github.com/tomtom215/momentline/internal/policy"
)

func captioned(r *models.PhotoRecord, caption string) *models.PhotoRecord {
	r.Caption = caption
	return r
}

func TestMaterialize_Captions(t *testing.T) {
	tests := []struct {
		name      string
		members   []*models.PhotoRecord
		wantTitle string
		wantDesc  string
		wantKey   string
	}{
		{
			name:      "no captions",
			members:   []*models.PhotoRecord{rec("a", at(10, 0, 0)), rec("b", at(10, 5, 0))},
			wantTitle: "",
			wantDesc:  "",
			wantKey:   "a",
		},
		{
			name: "sole caption verbatim",
			members: []*models.PhotoRecord{
				rec("a", at(10, 0, 0)),
				captioned(rec("b", at(10, 5, 0)), "Grandma's 90th!"),
			},
			wantTitle: "Grandma's 90th!",
			wantDesc:  "Grandma's 90th!",
			wantKey:   "b",
		},
		{
			name: "repeated caption collapses",
			members: []*models.PhotoRecord{
				captioned(rec("a", at(10, 0, 0)), "Beach"),
				captioned(rec("b", at(10, 5, 0)), "Beach"),
			},
			wantTitle: "Beach",
			wantDesc:  "Beach",
			wantKey:   "a",
		},
		{
			name: "several captions joined chronologically",
			members: []*models.PhotoRecord{
				captioned(rec("b", at(10, 5, 0)), "second"),
				captioned(rec("a", at(10, 0, 0)), "first"),
				captioned(rec("c", at(10, 9, 0)), "third"),
			},
			wantTitle: "first",
			wantDesc:  "first\n\nsecond\n\nthird",
			wantKey:   "a",
		},
	}

	resolver := policy.ResolverFunc(func(models.Owner, policy.ClusterSummary) string { return "moment" })
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCluster(tt.members)
			DetectBursts(c, 3, 2*time.Second)
			e := Materialize(c, testOwner(), resolver, policy.NoDefaults{}, nil, "")

			if e.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", e.Title, tt.wantTitle)
			}
			if e.Description != tt.wantDesc {
				t.Errorf("Description = %q, want %q", e.Description, tt.wantDesc)
			}
			if e.KeyPhotoID != tt.wantKey {
				t.Errorf("KeyPhotoID = %q, want %q", e.KeyPhotoID, tt.wantKey)
			}
			if !e.HasMember(e.KeyPhotoID) {
				t.Error("key photo is not a member")
			}
		})
	}
}

func TestMaterialize_TimestampAndLocation(t *testing.T) {
	c := NewCluster([]*models.PhotoRecord{
		recAt("a", at(10, 0, 0), 10, 20),
		captioned(recAt("b", at(10, 5, 0), 10, 20), "key"),
		rec("c", at(10, 9, 0)),
	})
	DetectBursts(c, 3, 2*time.Second)
	e := Materialize(c, testOwner(), policy.ResolverFunc(func(models.Owner, policy.ClusterSummary) string { return "x" }), nil, nil, "")

	if e.Timestamp == nil || !e.Timestamp.Equal(at(10, 5, 0)) {
		t.Errorf("Timestamp = %v, want key photo capture time", e.Timestamp)
	}
	if e.FuzzyDate != nil {
		t.Error("FuzzyDate should be nil when key photo is exact")
	}
	if e.Location == nil || math.Abs(e.Location.Latitude-10) > 1e-9 || math.Abs(e.Location.Longitude-20) > 1e-9 {
		t.Errorf("Location = %+v", e.Location)
	}
	if e.EventType != "x" {
		t.Errorf("EventType = %q", e.EventType)
	}
	if e.ContextID != "ctx-family" || e.OwnerID != "user-1" || e.ContextKind != models.ContextPerson {
		t.Errorf("owner not copied: %+v", e.Owner())
	}
}

func TestDominantFuzzyDate(t *testing.T) {
	y94 := models.FuzzyYear(1994)
	y95 := models.FuzzyYear(1995)
	summer, _ := models.FuzzySeason(1994, models.SeasonSummer)

	tests := []struct {
		name    string
		members []*models.PhotoRecord
		want    *models.FuzzyDate
	}{
		{name: "none", members: []*models.PhotoRecord{rec("a", at(1, 0, 0))}, want: nil},
		{
			name:    "most frequent",
			members: []*models.PhotoRecord{recFuzzy("a", y94), recFuzzy("b", y95), recFuzzy("c", y95)},
			want:    &y95,
		},
		{
			name:    "finer granularity wins tie",
			members: []*models.PhotoRecord{recFuzzy("a", y94), recFuzzy("b", summer)},
			want:    &summer,
		},
		{
			name:    "earlier start wins tie",
			members: []*models.PhotoRecord{recFuzzy("a", y95), recFuzzy("b", y94)},
			want:    &y94,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DominantFuzzyDate(tt.members)
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("got %v, want nil", got)
			case tt.want != nil && (got == nil || !got.Equal(*tt.want)):
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMaterialize_DefaultsNeverOverwrite(t *testing.T) {
	defaults := policy.DefaultsFunc(func(ctx string, kind models.ContextKind, eventType string) models.Attributes {
		return models.Attributes{
			"cost":  models.Number(0),
			"phase": models.String("planning"),
		}
	})
	existing := models.Attributes{"cost": models.Number(1500)}

	c := NewCluster([]*models.PhotoRecord{rec("a", at(10, 0, 0))})
	e := Materialize(c, testOwner(), policy.ResolverFunc(func(models.Owner, policy.ClusterSummary) string { return "renovation" }), defaults, existing, "")

	if n, _ := e.CustomAttributes["cost"].AsNumber(); n != 1500 {
		t.Errorf("cost = %v, want 1500", n)
	}
	if s, _ := e.CustomAttributes["phase"].AsString(); s != "planning" {
		t.Errorf("phase = %q, want planning", s)
	}
	if _, ok := existing["phase"]; ok {
		t.Error("existing attributes were mutated")
	}
}

func TestEventID_OrderIndependent(t *testing.T) {
	a := EventID("ctx", []string{"p1", "p2", "p3"})
	b := EventID("ctx", []string{"p3", "p1", "p2"})
	if a != b {
		t.Errorf("EventID differs by order: %s != %s", a, b)
	}
	if EventID("other", []string{"p1", "p2", "p3"}) == a {
		t.Error("EventID should depend on context")
	}
}

func TestSummarize(t *testing.T) {
	c := NewCluster([]*models.PhotoRecord{
		recAt("a", at(10, 0, 0), 48.85, 2.35),
		captioned(recAt("b", at(12, 0, 0), 51.50, -0.12), "London"),
	})
	DetectBursts(c, 3, 2*time.Second)
	s := Summarize(c)

	if s.PhotoCount != 2 || s.Located != 2 || s.CaptionCount != 1 {
		t.Errorf("summary counts = %+v", s)
	}
	if s.Span != 2*time.Hour {
		t.Errorf("Span = %v", s.Span)
	}
	if s.Fuzzy {
		t.Error("Fuzzy should be false with exact members")
	}
	if s.RadiusMeters < 100_000 {
		t.Errorf("RadiusMeters = %.0f, want > 100km", s.RadiusMeters)
	}
}
