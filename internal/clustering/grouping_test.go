// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

package clustering

import (
	"reflect"
	"testing"
	"time"

	"github.com/tomtom215/momentline/internal/models"
)

func clusterIDs(clusters []*Cluster) [][]string {
	out := make([][]string, len(clusters))
	for i, c := range clusters {
		out[i] = c.MemberIDs()
	}
	return out
}

func TestGroupByTime(t *testing.T) {
	spring, err := models.FuzzySeason(1994, models.SeasonSpring)
	if err != nil {
		t.Fatal(err)
	}
	year := models.FuzzyYear(1994)

	tests := []struct {
		name    string
		records []*models.PhotoRecord
		window  time.Duration
		policy  FuzzyPolicy
		want    [][]string
	}{
		{
			name:   "empty",
			window: time.Hour,
			want:   [][]string{},
		},
		{
			name: "gap beyond window cuts",
			records: []*models.PhotoRecord{
				rec("d", at(14, 0, 0)),
				rec("a", at(10, 0, 0)),
				rec("c", at(10, 10, 0)),
				rec("b", at(10, 5, 0)),
				rec("e", at(14, 2, 0)),
			},
			window: 30 * time.Minute,
			want:   [][]string{{"a", "b", "c"}, {"d", "e"}},
		},
		{
			name: "gap equal to window does not cut",
			records: []*models.PhotoRecord{
				rec("a", at(10, 0, 0)),
				rec("b", at(10, 30, 0)),
			},
			window: 30 * time.Minute,
			want:   [][]string{{"a", "b"}},
		},
		{
			name: "chain spans more than one window",
			records: []*models.PhotoRecord{
				rec("a", at(8, 0, 0)),
				rec("b", at(8, 20, 0)),
				rec("c", at(8, 40, 0)),
				rec("d", at(9, 0, 0)),
			},
			window: 30 * time.Minute,
			want:   [][]string{{"a", "b", "c", "d"}},
		},
		{
			name: "ties broken by id",
			records: []*models.PhotoRecord{
				rec("z", at(10, 0, 0)),
				rec("m", at(10, 0, 0)),
			},
			window: 0,
			want:   [][]string{{"m", "z"}},
		},
		{
			name: "fuzzy never merges with exact",
			records: []*models.PhotoRecord{
				rec("exact", year.Midpoint()),
				recFuzzy("fuzzy", year),
			},
			window: 365 * 24 * time.Hour,
			want:   [][]string{{"exact"}, {"fuzzy"}},
		},
		{
			name: "per granularity streams",
			records: []*models.PhotoRecord{
				recFuzzy("s1", spring),
				recFuzzy("y1", year),
				recFuzzy("s2", spring),
			},
			window: 365 * 24 * time.Hour,
			policy: FuzzyPerGranularity,
			want:   [][]string{{"s1", "s2"}, {"y1"}},
		},
		{
			name: "combined fuzzy stream",
			records: []*models.PhotoRecord{
				recFuzzy("s1", spring),
				recFuzzy("y1", year),
				recFuzzy("s2", spring),
			},
			window: 365 * 24 * time.Hour,
			policy: FuzzyCombined,
			want:   [][]string{{"s1", "s2", "y1"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := clusterIDs(GroupByTime(tt.records, tt.window, tt.policy))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("GroupByTime() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRefineBySpace(t *testing.T) {
	// Roughly 1.1 km apart along a meridian.
	home := [2]float64{52.5200, 13.4050}
	park := [2]float64{52.5300, 13.4050}

	tests := []struct {
		name      string
		members   []*models.PhotoRecord
		threshold float64
		want      [][]string
	}{
		{
			name: "close photos stay together",
			members: []*models.PhotoRecord{
				recAt("a", at(10, 0, 0), home[0], home[1]),
				recAt("b", at(10, 5, 0), home[0], home[1]+0.001),
			},
			threshold: 500,
			want:      [][]string{{"a", "b"}},
		},
		{
			name: "distance jump cuts",
			members: []*models.PhotoRecord{
				recAt("a", at(10, 0, 0), home[0], home[1]),
				recAt("b", at(10, 5, 0), park[0], park[1]),
			},
			threshold: 500,
			want:      [][]string{{"a"}, {"b"}},
		},
		{
			name: "unlocated photos never cut",
			members: []*models.PhotoRecord{
				recAt("a", at(10, 0, 0), home[0], home[1]),
				rec("b", at(10, 1, 0)),
				rec("c", at(10, 2, 0)),
				recAt("d", at(10, 3, 0), home[0], home[1]),
			},
			threshold: 500,
			want:      [][]string{{"a", "b", "c", "d"}},
		},
		{
			name: "unlocated photo stays with preceding sub-cluster",
			members: []*models.PhotoRecord{
				recAt("a", at(10, 0, 0), home[0], home[1]),
				rec("b", at(10, 1, 0)),
				recAt("c", at(10, 2, 0), park[0], park[1]),
			},
			threshold: 500,
			want:      [][]string{{"a", "b"}, {"c"}},
		},
		{
			name: "larger threshold keeps jump",
			members: []*models.PhotoRecord{
				recAt("a", at(10, 0, 0), home[0], home[1]),
				recAt("b", at(10, 5, 0), park[0], park[1]),
			},
			threshold: 5000,
			want:      [][]string{{"a", "b"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := clusterIDs(RefineBySpace(NewCluster(tt.members), tt.threshold))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("RefineBySpace() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectBursts(t *testing.T) {
	// A fuzzy range whose midpoint falls between b and c.
	between := models.FuzzyDate{Granularity: models.GranularityYear, Start: at(10, 0, 1), End: at(10, 0, 2)}

	tests := []struct {
		name       string
		members    []*models.PhotoRecord
		wantBursts [][]string
		wantKey    string
	}{
		{
			name: "rapid run becomes burst",
			members: []*models.PhotoRecord{
				rec("a", at(10, 0, 0)),
				rec("b", at(10, 0, 1)),
				rec("c", at(10, 0, 2)),
				rec("d", at(10, 0, 4)),
			},
			wantBursts: [][]string{{"a", "b", "c", "d"}},
			wantKey:    "a",
		},
		{
			name: "too few photos",
			members: []*models.PhotoRecord{
				rec("a", at(10, 0, 0)),
				rec("b", at(10, 0, 1)),
			},
			wantBursts: nil,
			wantKey:    "a",
		},
		{
			name: "gap breaks run",
			members: []*models.PhotoRecord{
				rec("a", at(10, 0, 0)),
				rec("b", at(10, 0, 1)),
				rec("c", at(10, 0, 2)),
				rec("d", at(10, 0, 10)),
				rec("e", at(10, 0, 11)),
			},
			wantBursts: [][]string{{"a", "b", "c"}},
			wantKey:    "a",
		},
		{
			name: "fuzzy member breaks run",
			members: []*models.PhotoRecord{
				rec("a", at(10, 0, 0)),
				rec("b", at(10, 0, 1)),
				recFuzzy("f", between),
				rec("c", at(10, 0, 2)),
			},
			wantBursts: nil,
			wantKey:    "a",
		},
		{
			name: "captioned photo preferred as key",
			members: []*models.PhotoRecord{
				rec("a", at(10, 0, 0)),
				{ID: "b", CapturedAt: timePtr(at(10, 0, 1)), Caption: "jump!"},
				rec("c", at(10, 0, 2)),
			},
			wantBursts: [][]string{{"a", "b", "c"}},
			wantKey:    "b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCluster(tt.members)
			DetectBursts(c, 3, 2*time.Second)

			var got [][]string
			for _, b := range c.Bursts {
				got = append(got, b.MemberIDs)
			}
			if !reflect.DeepEqual(got, tt.wantBursts) {
				t.Errorf("bursts = %v, want %v", got, tt.wantBursts)
			}
			if c.IsBurst != (len(tt.wantBursts) > 0) {
				t.Errorf("IsBurst = %v", c.IsBurst)
			}
			if c.KeyPhotoID != tt.wantKey {
				t.Errorf("KeyPhotoID = %q, want %q", c.KeyPhotoID, tt.wantKey)
			}
			if len(c.Members) != len(tt.members) {
				t.Errorf("membership changed: %d != %d", len(c.Members), len(tt.members))
			}
		})
	}
}

func timePtr(t time.Time) *time.Time { return &t }
