// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

package models

import (
	"fmt"
	"time"
)

// Granularity is the resolution of a fuzzy date.
type Granularity string

const (
	// GranularitySeason covers one meteorological season (three months).
	GranularitySeason Granularity = "season"

	// GranularityYear covers one calendar year.
	GranularityYear Granularity = "year"

	// GranularityDecade covers ten calendar years starting at a year divisible by ten.
	GranularityDecade Granularity = "decade"
)

// Rank orders granularities from finest (0) to coarsest.
func (g Granularity) Rank() int {
	switch g {
	case GranularitySeason:
		return 0
	case GranularityYear:
		return 1
	case GranularityDecade:
		return 2
	default:
		return 3
	}
}

// Valid reports whether g is a known granularity.
func (g Granularity) Valid() bool {
	return g.Rank() < 3
}

// Season names a meteorological season (northern hemisphere).
type Season string

const (
	SeasonWinter Season = "winter"
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
)

// FuzzyDate is a half-open UTC range [Start, End) standing in for an unknown
// capture instant.
type FuzzyDate struct {
	Granularity Granularity `json:"granularity" yaml:"granularity" validate:"required,fuzzygranularity"`
	Start       time.Time   `json:"start" yaml:"start"`
	End         time.Time   `json:"end" yaml:"end"`
}

// FuzzyYear returns the fuzzy date covering calendar year y.
func FuzzyYear(y int) FuzzyDate {
	return FuzzyDate{
		Granularity: GranularityYear,
		Start:       time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:         time.Date(y+1, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

// FuzzyDecade returns the fuzzy date covering the decade containing year y.
func FuzzyDecade(y int) FuzzyDate {
	start := y - ((y%10)+10)%10
	return FuzzyDate{
		Granularity: GranularityDecade,
		Start:       time.Date(start, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:         time.Date(start+10, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

// FuzzySeason returns the fuzzy date covering season s of year y. Winter of
// year y starts in December of y-1.
func FuzzySeason(y int, s Season) (FuzzyDate, error) {
	var startMonth time.Month
	startYear := y
	switch s {
	case SeasonWinter:
		startMonth = time.December
		startYear = y - 1
	case SeasonSpring:
		startMonth = time.March
	case SeasonSummer:
		startMonth = time.June
	case SeasonAutumn:
		startMonth = time.September
	default:
		return FuzzyDate{}, fmt.Errorf("unknown season %q", s)
	}
	start := time.Date(startYear, startMonth, 1, 0, 0, 0, 0, time.UTC)
	return FuzzyDate{
		Granularity: GranularitySeason,
		Start:       start,
		End:         start.AddDate(0, 3, 0),
	}, nil
}

// Midpoint returns the instant halfway through the range. It works on Unix
// seconds since time.Duration saturates for ranges beyond ~292 years.
func (f FuzzyDate) Midpoint() time.Time {
	sum := f.Start.Unix() + f.End.Unix()
	ns := (int64(f.Start.Nanosecond()) + int64(f.End.Nanosecond())) / 2
	if sum&1 != 0 {
		ns += int64(time.Second / 2)
	}
	return time.Unix(sum>>1, ns).UTC()
}

// Valid reports whether the range is non-empty and the granularity known.
func (f FuzzyDate) Valid() bool {
	return f.Granularity.Valid() && f.End.After(f.Start)
}

// Equal reports whether two fuzzy dates describe the same range.
func (f FuzzyDate) Equal(o FuzzyDate) bool {
	return f.Granularity == o.Granularity && f.Start.Equal(o.Start) && f.End.Equal(o.End)
}

// Key returns a stable string identifying the range.
func (f FuzzyDate) Key() string {
	return fmt.Sprintf("%s:%d:%d", f.Granularity, f.Start.Unix(), f.End.Unix())
}

// String renders the range for logs and CLI output.
func (f FuzzyDate) String() string {
	switch f.Granularity {
	case GranularityYear:
		return fmt.Sprintf("%d", f.Start.Year())
	case GranularityDecade:
		return fmt.Sprintf("%ds", f.Start.Year())
	default:
		return fmt.Sprintf("%s %s..%s", f.Granularity, f.Start.Format("2006-01"), f.End.Format("2006-01"))
	}
}
