// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

package models

import (
	"math"
	"time"
)

// RawPhoto is photo metadata as delivered by the metadata extraction step.
// Every field may be missing; the clustering normalizer decides whether the
// record can enter clustering.
type RawPhoto struct {
	ID         *string    `json:"id,omitempty" yaml:"id"`
	CapturedAt *time.Time `json:"captured_at,omitempty" yaml:"captured_at"`
	FuzzyDate  *FuzzyDate `json:"fuzzy_date,omitempty" yaml:"fuzzy_date"`
	Latitude   *float64   `json:"latitude,omitempty" yaml:"latitude"`
	Longitude  *float64   `json:"longitude,omitempty" yaml:"longitude"`
	Caption    *string    `json:"caption,omitempty" yaml:"caption"`
}

// Coordinate is a WGS84 latitude/longitude pair in degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// Valid reports whether both components are finite and within range.
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) {
		return false
	}
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

// PhotoRecord is a normalized photo. Exactly one of CapturedAt and FuzzyDate
// is set. Caption holds the original bytes untouched.
type PhotoRecord struct {
	ID         string      `json:"id"`
	CapturedAt *time.Time  `json:"captured_at,omitempty"`
	FuzzyDate  *FuzzyDate  `json:"fuzzy_date,omitempty"`
	Location   *Coordinate `json:"location,omitempty"`
	Caption    string      `json:"caption,omitempty"`
}

// IsExact reports whether the record carries an exact capture instant.
func (p *PhotoRecord) IsExact() bool {
	return p.CapturedAt != nil
}

// Anchor returns the instant the record is ordered by: the capture time, or
// the midpoint of its fuzzy range.
func (p *PhotoRecord) Anchor() time.Time {
	if p.CapturedAt != nil {
		return *p.CapturedAt
	}
	if p.FuzzyDate != nil {
		return p.FuzzyDate.Midpoint()
	}
	return time.Time{}
}

// HasCaption reports whether the record has a non-empty caption.
func (p *PhotoRecord) HasCaption() bool {
	return p.Caption != ""
}

// AnchorLess orders records by anchor, breaking ties by ID ascending.
// Every ordering in the engine goes through this comparison.
func AnchorLess(a, b *PhotoRecord) bool {
	ta, tb := a.Anchor(), b.Anchor()
	if !ta.Equal(tb) {
		return ta.Before(tb)
	}
	return a.ID < b.ID
}
