// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

package clustering

import (
	"fmt"

	"github.com/tomtom215/momentline/internal/models"
)

// Normalize converts raw metadata into a PhotoRecord.
//
// An exact timestamp wins over a fuzzy date. Coordinates and captions pass
// through unchanged; the caption keeps its exact bytes.
func Normalize(raw *models.RawPhoto) (models.PhotoRecord, error) {
	if raw.ID == nil || *raw.ID == "" {
		return models.PhotoRecord{}, models.ErrMissingPhotoID
	}
	rec := models.PhotoRecord{ID: *raw.ID}

	switch {
	case raw.CapturedAt != nil:
		ts := raw.CapturedAt.UTC()
		rec.CapturedAt = &ts
	case raw.FuzzyDate != nil:
		if !raw.FuzzyDate.Valid() {
			return models.PhotoRecord{}, fmt.Errorf("%w: %s", models.ErrInvalidFuzzyDate, raw.FuzzyDate.Key())
		}
		fd := models.FuzzyDate{
			Granularity: raw.FuzzyDate.Granularity,
			Start:       raw.FuzzyDate.Start.UTC(),
			End:         raw.FuzzyDate.End.UTC(),
		}
		rec.FuzzyDate = &fd
	default:
		return models.PhotoRecord{}, models.ErrMissingTemporalAnchor
	}

	switch {
	case raw.Latitude == nil && raw.Longitude == nil:
	case raw.Latitude == nil || raw.Longitude == nil:
		return models.PhotoRecord{}, fmt.Errorf("%w: latitude and longitude must both be present", models.ErrInvalidCoordinate)
	default:
		loc := models.Coordinate{Latitude: *raw.Latitude, Longitude: *raw.Longitude}
		if !loc.Valid() {
			return models.PhotoRecord{}, fmt.Errorf("%w: (%g, %g) out of range", models.ErrInvalidCoordinate, loc.Latitude, loc.Longitude)
		}
		rec.Location = &loc
	}

	if raw.Caption != nil {
		rec.Caption = *raw.Caption
	}
	return rec, nil
}

// NormalizeBatch normalizes every raw photo. Records that fail, including
// repeated IDs, are returned as rejections rather than dropped; the accepted
// slice keeps input order.
func NormalizeBatch(raws []models.RawPhoto) ([]models.PhotoRecord, []models.Rejection) {
	accepted := make([]models.PhotoRecord, 0, len(raws))
	var rejected []models.Rejection
	seen := make(map[string]struct{}, len(raws))

	for i := range raws {
		var id string
		if raws[i].ID != nil {
			id = *raws[i].ID
		}
		rec, err := Normalize(&raws[i])
		if err != nil {
			rejected = append(rejected, models.Rejection{Index: i, PhotoID: id, Reason: err})
			continue
		}
		if _, dup := seen[rec.ID]; dup {
			rejected = append(rejected, models.Rejection{Index: i, PhotoID: id, Reason: models.ErrDuplicatePhoto})
			continue
		}
		seen[rec.ID] = struct{}{}
		accepted = append(accepted, rec)
	}
	return accepted, rejected
}
