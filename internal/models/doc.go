// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

/*
Package models defines the data structures shared by the clustering engine,
the override layer, the store and the HTTP API.

Key Components:

  - RawPhoto: photo metadata as extracted, every field optional
  - PhotoRecord: a normalized photo with exactly one temporal anchor
  - FuzzyDate: a half-open UTC range (season, year or decade)
  - TimelineEvent: the durable grouping rendered on a timeline
  - Attributes / Value: the schema-agnostic custom attribute map
  - Rejection / RejectionError: per-photo normalization failures

Temporal Anchors:

A PhotoRecord is ordered by its anchor: the exact capture instant, or the
midpoint of its fuzzy range. AnchorLess breaks ties by photo ID so every
ordering in the engine is total and deterministic.

	season, _ := models.FuzzySeason(1994, models.SeasonWinter)
	// winter 1994 covers 1993-12-01 .. 1994-03-01

Custom Attributes:

Values hold a string, a number, a boolean or a nested map. They round-trip
through JSON and YAML in their natural form; arrays and nulls are rejected.

	attrs := models.Attributes{
	    "vet_visit": models.Bool(true),
	    "weight_kg": models.Number(31.5),
	}
	added := attrs.SeedDefaults(policyDefaults) // never overwrites

Errors:

Sentinel errors (ErrMissingTemporalAnchor, ErrInvalidSplit,
ErrIncompatibleMerge, ...) are matched with errors.Is. A RejectionError
unwraps to every individual Rejection, so errors.Is finds any reason in a
failed batch.

Thread Safety:

Models are plain values. TimelineEvent.Clone and Attributes.Clone produce
deep copies; the override layer never shares a mutable event between
snapshots.
*/
package models
