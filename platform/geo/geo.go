// Package geo provides coordinate math shared by the discovery directory.
// This is part of the platform layer and contains no business logic.
package geo

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

const earthRadiusKm = 6371.0

// Point is a WGS84 coordinate in decimal degrees.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Orb converts the point to an orb.Point ([lng, lat] order).
func (p Point) Orb() orb.Point {
	return orb.Point{p.Longitude, p.Latitude}
}

// HaversineKm returns the great-circle distance between two points in kilometers.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLng := (lng2 - lng1) * math.Pi / 180.0
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180.0)*math.Cos(lat2*math.Pi/180.0)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// DistanceKm returns the distance between two points in kilometers using
// orb's geo distance (meters) for consistency with bound math.
func DistanceKm(a, b Point) float64 {
	return geo.Distance(a.Orb(), b.Orb()) / 1000.0
}

// BoundAround returns a bounding box covering radiusKm around the center.
// Used as a cheap SQL prefilter before exact haversine ordering.
func BoundAround(center Point, radiusKm float64) orb.Bound {
	return geo.NewBoundAroundPoint(center.Orb(), radiusKm*1000.0)
}

// FormatDistance renders a distance for display: metres under 1 km,
// otherwise kilometres with one decimal.
func FormatDistance(km float64) string {
	if km < 0 {
		km = 0
	}
	if km < 1.0 {
		return fmt.Sprintf("%dm", int(math.Round(km*1000)))
	}
	return fmt.Sprintf("%.1fkm", km)
}
