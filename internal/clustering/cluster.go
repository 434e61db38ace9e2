// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

package clustering

import (
	"sort"
	"time"

	"github.com/tomtom215/momentline/internal/models"
)

// Cluster is a transient group of photos inside one pipeline run.
// Members are always in anchor order.
type Cluster struct {
	Members    []*models.PhotoRecord
	Start      time.Time
	End        time.Time
	Centroid   *models.Coordinate
	Bounds     *BoundingBox
	KeyPhotoID string
	Bursts     []Burst
	IsBurst    bool
}

// Burst is a run of rapid-fire photos inside a cluster.
type Burst struct {
	MemberIDs  []string `json:"member_ids"`
	KeyPhotoID string   `json:"key_photo_id"`
}

// NewCluster sorts members and derives span, centroid and bounds.
func NewCluster(members []*models.PhotoRecord) *Cluster {
	sorted := append([]*models.PhotoRecord(nil), members...)
	sortRecords(sorted)

	c := &Cluster{Members: sorted}
	if len(sorted) == 0 {
		return c
	}
	c.Start = sorted[0].Anchor()
	c.End = sorted[len(sorted)-1].Anchor()

	points := locations(sorted)
	c.Centroid = Centroid(points)
	c.Bounds = boundsOf(points)
	return c
}

// MemberIDs returns member IDs in anchor order.
func (c *Cluster) MemberIDs() []string {
	ids := make([]string, len(c.Members))
	for i, m := range c.Members {
		ids[i] = m.ID
	}
	return ids
}

// Span is the time between the first and last anchors.
func (c *Cluster) Span() time.Duration {
	return c.End.Sub(c.Start)
}

func sortRecords(recs []*models.PhotoRecord) {
	sort.SliceStable(recs, func(i, j int) bool {
		return models.AnchorLess(recs[i], recs[j])
	})
}

func locations(recs []*models.PhotoRecord) []models.Coordinate {
	var pts []models.Coordinate
	for _, r := range recs {
		if r.Location != nil {
			pts = append(pts, *r.Location)
		}
	}
	return pts
}
