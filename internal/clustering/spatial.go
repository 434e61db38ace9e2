// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

package clustering

import "github.com/tomtom215/momentline/internal/models"

// RefineBySpace splits a temporal cluster wherever consecutive located
// photos are more than thresholdMeters apart.
//
// Each located photo is compared with the most recent located photo of the
// sub-cluster being built. Photos without a location never cause a cut and
// stay in the sub-cluster they fall into temporally.
func RefineBySpace(c *Cluster, thresholdMeters float64) []*Cluster {
	if len(c.Members) < 2 {
		return []*Cluster{c}
	}

	var (
		out         []*Cluster
		current     []*models.PhotoRecord
		lastLocated *models.Coordinate
	)
	for _, m := range c.Members {
		if m.Location != nil && lastLocated != nil &&
			HaversineMeters(*lastLocated, *m.Location) > thresholdMeters {
			out = append(out, NewCluster(current))
			current = nil
		}
		current = append(current, m)
		if m.Location != nil {
			lastLocated = m.Location
		}
	}
	out = append(out, NewCluster(current))

	if len(out) == 1 {
		return []*Cluster{c}
	}
	return out
}
