package geo

import (
	"math"
	"testing"
)

// Klinik Dokterku reference point used across the attendance tests.
var clinic = Point{Latitude: -6.2088, Longitude: 106.8456}

func TestHaversineDistance_SamePoint(t *testing.T) {
	d := HaversineDistance(clinic, clinic)
	if d != 0 {
		t.Errorf("HaversineDistance(p, p) = %v, want 0", d)
	}
}

func TestHaversineDistance_KnownDistance(t *testing.T) {
	// 0.0018 degrees of latitude is about 200m on a 6371km sphere.
	away := Point{Latitude: clinic.Latitude - 0.0018, Longitude: clinic.Longitude}
	d := HaversineDistance(clinic, away)
	if math.Abs(d-200) > 1.0 {
		t.Errorf("HaversineDistance = %.2fm, want ~200m", d)
	}
	// Symmetric
	if rev := HaversineDistance(away, clinic); rev != d {
		t.Errorf("distance not symmetric: %v != %v", rev, d)
	}
}

func TestCheckGeofence_InsideRadius(t *testing.T) {
	res := CheckGeofence(clinic, 10, clinic, 150, AccuracyModeStrict)
	if !res.Inside {
		t.Error("point at center should be inside")
	}
	if res.DistanceMeters != 0 {
		t.Errorf("distance at center = %v, want 0", res.DistanceMeters)
	}
}

func TestCheckGeofence_OutsideRadius(t *testing.T) {
	away := Point{Latitude: clinic.Latitude - 0.0018, Longitude: clinic.Longitude}
	res := CheckGeofence(away, 10, clinic, 150, AccuracyModeStrict)
	if res.Inside {
		t.Errorf("point %.2fm away should be outside a 150m radius", res.DistanceMeters)
	}
	if math.Abs(res.DistanceMeters-200) > 1.0 {
		t.Errorf("distance = %.2fm, want ~200m", res.DistanceMeters)
	}
}

func TestCheckGeofence_BoundaryIsInside(t *testing.T) {
	away := Point{Latitude: clinic.Latitude - 0.00135, Longitude: clinic.Longitude}
	d := HaversineDistance(away, clinic)

	// Radius exactly equal to the distance counts as inside.
	if res := CheckGeofence(away, 5, clinic, d, AccuracyModeStrict); !res.Inside {
		t.Errorf("distance == radius (%.4fm) should be inside", d)
	}

	// One centimeter short of the distance is outside.
	if res := CheckGeofence(away, 5, clinic, d-0.01, AccuracyModeStrict); res.Inside {
		t.Errorf("distance %.4fm beyond radius %.4fm should be outside", d, d-0.01)
	}
}

func TestCheckGeofence_AccuracyAwareMode(t *testing.T) {
	away := Point{Latitude: clinic.Latitude - 0.0018, Longitude: clinic.Longitude}

	strict := CheckGeofence(away, 60, clinic, 150, AccuracyModeStrict)
	if strict.Inside {
		t.Error("strict mode must not widen the radius by accuracy")
	}

	aware := CheckGeofence(away, 60, clinic, 150, AccuracyModeAware)
	if !aware.Inside {
		t.Errorf("accuracy_aware mode: distance %.2fm should fit 150m + 60m accuracy", aware.DistanceMeters)
	}
}

func TestPoint_InRange(t *testing.T) {
	cases := []struct {
		p    Point
		want bool
	}{
		{Point{-6.2088, 106.8456}, true},
		{Point{90, 180}, true},
		{Point{-90, -180}, true},
		{Point{95.0, 106.8456}, false},
		{Point{-6.2088, -185.0}, false},
		{Point{-91, 0}, false},
	}
	for _, c := range cases {
		if got := c.p.InRange(); got != c.want {
			t.Errorf("InRange(%v) = %v, want %v", c.p, got, c.want)
		}
	}
}

func TestPoint_IsNullIsland(t *testing.T) {
	if !(Point{0, 0}).IsNullIsland() {
		t.Error("(0,0) should be flagged as null island")
	}
	if (Point{-6.2088, 106.8456}).IsNullIsland() {
		t.Error("real coordinates flagged as null island")
	}
}
