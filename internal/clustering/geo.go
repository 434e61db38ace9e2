// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

package clustering

import (
	"math"

	"github.com/tomtom215/momentline/internal/models"
)

const earthRadiusMeters = 6371008.8

// HaversineMeters returns the great-circle distance between two coordinates.
func HaversineMeters(a, b models.Coordinate) float64 {
	lat1 := a.Latitude * math.Pi / 180.0
	lat2 := b.Latitude * math.Pi / 180.0
	dLat := lat2 - lat1
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180.0

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	// Rounding can push h a hair above 1 for antipodal points.
	h = math.Min(1, h)

	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Centroid returns the spherical mean of the points, or nil for none.
// Points are averaged as unit vectors so clusters straddling the
// antimeridian land where the photos are.
func Centroid(points []models.Coordinate) *models.Coordinate {
	if len(points) == 0 {
		return nil
	}
	if allSame(points) {
		c := points[0]
		return &c
	}

	var x, y, z float64
	for _, p := range points {
		lat := p.Latitude * math.Pi / 180.0
		lon := p.Longitude * math.Pi / 180.0
		x += math.Cos(lat) * math.Cos(lon)
		y += math.Cos(lat) * math.Sin(lon)
		z += math.Sin(lat)
	}
	n := float64(len(points))
	x, y, z = x/n, y/n, z/n

	hyp := math.Sqrt(x*x + y*y)
	if hyp < 1e-12 && math.Abs(z) < 1e-12 {
		// Points cancel out; fall back to the plain average.
		var sumLat, sumLon float64
		for _, p := range points {
			sumLat += p.Latitude
			sumLon += p.Longitude
		}
		return &models.Coordinate{Latitude: sumLat / n, Longitude: sumLon / n}
	}

	return &models.Coordinate{
		Latitude:  math.Atan2(z, hyp) * 180.0 / math.Pi,
		Longitude: math.Atan2(y, x) * 180.0 / math.Pi,
	}
}

func allSame(points []models.Coordinate) bool {
	for _, p := range points[1:] {
		if p != points[0] {
			return false
		}
	}
	return true
}

// BoundingBox is the lat/lon extent of a set of located photos.
type BoundingBox struct {
	MinLatitude  float64 `json:"min_latitude"`
	MinLongitude float64 `json:"min_longitude"`
	MaxLatitude  float64 `json:"max_latitude"`
	MaxLongitude float64 `json:"max_longitude"`
}

func boundsOf(points []models.Coordinate) *BoundingBox {
	if len(points) == 0 {
		return nil
	}
	b := &BoundingBox{
		MinLatitude: points[0].Latitude, MaxLatitude: points[0].Latitude,
		MinLongitude: points[0].Longitude, MaxLongitude: points[0].Longitude,
	}
	for _, p := range points[1:] {
		b.MinLatitude = math.Min(b.MinLatitude, p.Latitude)
		b.MaxLatitude = math.Max(b.MaxLatitude, p.Latitude)
		b.MinLongitude = math.Min(b.MinLongitude, p.Longitude)
		b.MaxLongitude = math.Max(b.MaxLongitude, p.Longitude)
	}
	return b
}

// radiusMeters is the largest distance from center to any point.
func radiusMeters(center *models.Coordinate, points []models.Coordinate) float64 {
	if center == nil {
		return 0
	}
	var r float64
	for _, p := range points {
		r = math.Max(r, HaversineMeters(*center, p))
	}
	return r
}
