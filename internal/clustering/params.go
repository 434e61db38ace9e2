// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

package clustering

import (
	"fmt"
	"time"

	"github.com/tomtom215/momentline/internal/models"
)

// FuzzyPolicy controls how photos with only a fuzzy date are streamed
// through the temporal grouper.
type FuzzyPolicy string

const (
	// FuzzyPerGranularity groups each granularity (season, year, decade) separately.
	FuzzyPerGranularity FuzzyPolicy = "per_granularity"

	// FuzzyCombined groups all fuzzy photos together, still apart from exact ones.
	FuzzyCombined FuzzyPolicy = "combined"
)

// DefaultCaptionSeparator joins multiple captions into one description.
const DefaultCaptionSeparator = "\n\n"

// Params tunes one clustering run. There are no built-in defaults: every
// threshold must be supplied by the caller (usually from config).
type Params struct {
	// TimeWindow is the largest gap between consecutive photos of one event.
	TimeWindow time.Duration `json:"time_window"`

	// DistanceThreshold is the largest great-circle step, in meters, between
	// consecutive located photos of one event.
	DistanceThreshold float64 `json:"distance_threshold_m"`

	// BurstMinCount is the shortest run of rapid photos treated as a burst.
	BurstMinCount int `json:"burst_min_count"`

	// BurstGapThreshold is the largest gap inside a burst.
	BurstGapThreshold time.Duration `json:"burst_gap_threshold"`

	// FuzzyPolicy defaults to FuzzyPerGranularity when empty.
	FuzzyPolicy FuzzyPolicy `json:"fuzzy_policy,omitempty"`

	// CaptionSeparator defaults to DefaultCaptionSeparator when empty.
	CaptionSeparator string `json:"caption_separator,omitempty"`
}

// Validate checks the thresholds. Errors wrap models.ErrConfiguration.
func (p Params) Validate() error {
	if p.TimeWindow < 0 {
		return fmt.Errorf("%w: time window must not be negative, got %s", models.ErrConfiguration, p.TimeWindow)
	}
	if p.DistanceThreshold <= 0 {
		return fmt.Errorf("%w: distance threshold must be positive, got %g", models.ErrConfiguration, p.DistanceThreshold)
	}
	if p.BurstMinCount <= 0 {
		return fmt.Errorf("%w: burst min count must be positive, got %d", models.ErrConfiguration, p.BurstMinCount)
	}
	if p.BurstGapThreshold <= 0 {
		return fmt.Errorf("%w: burst gap threshold must be positive, got %s", models.ErrConfiguration, p.BurstGapThreshold)
	}
	switch p.FuzzyPolicy {
	case "", FuzzyPerGranularity, FuzzyCombined:
	default:
		return fmt.Errorf("%w: unknown fuzzy policy %q", models.ErrConfiguration, p.FuzzyPolicy)
	}
	return nil
}

// withDefaults fills the optional fields.
func (p Params) withDefaults() Params {
	if p.FuzzyPolicy == "" {
		p.FuzzyPolicy = FuzzyPerGranularity
	}
	if p.CaptionSeparator == "" {
		p.CaptionSeparator = DefaultCaptionSeparator
	}
	return p
}
