package geo

import (
	"math"
	"testing"
)

func TestHaversineKm(t *testing.T) {
	// Kigali city center to Huye, roughly 80 km great-circle.
	got := HaversineKm(-1.9441, 30.0619, -2.5921, 29.7394)
	if got < 79 || got > 83 {
		t.Fatalf("distance = %v km, want ~81", got)
	}

	if d := HaversineKm(-1.9441, 30.0619, -1.9441, 30.0619); d != 0 {
		t.Fatalf("zero distance = %v", d)
	}
}

func TestHaversineMatchesOrbDistance(t *testing.T) {
	a := Point{Latitude: -1.9441, Longitude: 30.0619}
	b := Point{Latitude: -1.9312, Longitude: 30.1128}

	haversine := HaversineKm(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
	orbKm := DistanceKm(a, b)
	if math.Abs(haversine-orbKm) > 0.05 {
		t.Fatalf("haversine %v vs orb %v diverge", haversine, orbKm)
	}
}

func TestBoundAround(t *testing.T) {
	center := Point{Latitude: -1.9441, Longitude: 30.0619}
	bound := BoundAround(center, 5)

	if !bound.Contains(center.Orb()) {
		t.Fatalf("bound does not contain its center")
	}

	// A point ~2 km east must fall inside a 5 km bound.
	inside := Point{Latitude: -1.9441, Longitude: 30.0799}
	if !bound.Contains(inside.Orb()) {
		t.Fatalf("nearby point outside bound")
	}

	// ~20 km away must fall outside.
	outside := Point{Latitude: -1.9441, Longitude: 30.2419}
	if bound.Contains(outside.Orb()) {
		t.Fatalf("distant point inside bound")
	}
}

func TestFormatDistance(t *testing.T) {
	cases := []struct {
		km   float64
		want string
	}{
		{0, "0m"},
		{0.04, "40m"},
		{0.999, "999m"},
		{1.0, "1.0km"},
		{3.25, "3.3km"},
		{12.04, "12.0km"},
		{-1, "0m"},
	}
	for _, tc := range cases {
		if got := FormatDistance(tc.km); got != tc.want {
			t.Fatalf("FormatDistance(%v) = %q, want %q", tc.km, got, tc.want)
		}
	}
}
