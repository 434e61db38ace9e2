// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

package clustering

import (
	"time"

	"github.com/tomtom215/momentline/internal/models"
	"github.com/tomtom215/momentline/internal/policy"
)

var baseDay = time.Date(2026, time.May, 2, 0, 0, 0, 0, time.UTC)

func at(hour, minute, second int) time.Time {
	return baseDay.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute + time.Duration(second)*time.Second)
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

// raw builds an exactly-timed raw photo.
func raw(id string, ts time.Time) models.RawPhoto {
	return models.RawPhoto{ID: strPtr(id), CapturedAt: &ts}
}

func rawAt(id string, ts time.Time, lat, lon float64) models.RawPhoto {
	r := raw(id, ts)
	r.Latitude = floatPtr(lat)
	r.Longitude = floatPtr(lon)
	return r
}

func rawFuzzy(id string, fd models.FuzzyDate) models.RawPhoto {
	return models.RawPhoto{ID: strPtr(id), FuzzyDate: &fd}
}

func withCaption(r models.RawPhoto, caption string) models.RawPhoto {
	r.Caption = strPtr(caption)
	return r
}

// rec builds a normalized, exactly-timed record.
func rec(id string, ts time.Time) *models.PhotoRecord {
	return &models.PhotoRecord{ID: id, CapturedAt: &ts}
}

func recAt(id string, ts time.Time, lat, lon float64) *models.PhotoRecord {
	r := rec(id, ts)
	r.Location = &models.Coordinate{Latitude: lat, Longitude: lon}
	return r
}

func recFuzzy(id string, fd models.FuzzyDate) *models.PhotoRecord {
	return &models.PhotoRecord{ID: id, FuzzyDate: &fd}
}

func testParams() Params {
	return Params{
		TimeWindow:        30 * time.Minute,
		DistanceThreshold: 500,
		BurstMinCount:     3,
		BurstGapThreshold: 2 * time.Second,
	}
}

func testOwner() models.Owner {
	return models.Owner{ContextID: "ctx-family", ContextKind: models.ContextPerson, OwnerID: "user-1"}
}

func testEngine() *Engine {
	e := NewEngine(
		policy.ResolverFunc(func(models.Owner, policy.ClusterSummary) string { return "moment" }),
		policy.NoDefaults{},
	)
	e.Clock = func() time.Time { return baseDay }
	return e
}

func memberSets(events []models.TimelineEvent) [][]string {
	out := make([][]string, len(events))
	for i, e := range events {
		out[i] = e.MemberPhotoIDs
	}
	return out
}
