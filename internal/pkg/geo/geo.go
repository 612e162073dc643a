package geo

import "math"

// Jari-jari bumi dalam Meter.
const earthRadiusMeters = 6371000

// Point is an immutable latitude/longitude pair in decimal degrees.
type Point struct {
	Latitude  float64
	Longitude float64
}

// InRange reports whether the point lies within the valid WGS84 domain.
func (p Point) InRange() bool {
	return p.Latitude >= -90 && p.Latitude <= 90 &&
		p.Longitude >= -180 && p.Longitude <= 180
}

// IsNullIsland reports whether the point is exactly (0,0), which in practice
// means the client's location API failed and reported a zero value.
func (p Point) IsNullIsland() bool {
	return p.Latitude == 0 && p.Longitude == 0
}

// HaversineDistance menghitung jarak antara dua titik koordinat dalam Meter.
func HaversineDistance(a, b Point) float64 {
	// Konversi ke Radian
	dLat := (b.Latitude - a.Latitude) * (math.Pi / 180.0)
	dLon := (b.Longitude - a.Longitude) * (math.Pi / 180.0)

	lat1Rad := a.Latitude * (math.Pi / 180.0)
	lat2Rad := b.Latitude * (math.Pi / 180.0)

	// Rumus Haversine
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}

// AccuracyMode controls whether the reported GPS accuracy widens the
// effective geofence radius.
type AccuracyMode string

const (
	// AccuracyModeStrict evaluates containment on raw distance only.
	AccuracyModeStrict AccuracyMode = "strict"
	// AccuracyModeAware adds the reported accuracy to the allowed radius.
	AccuracyModeAware AccuracyMode = "accuracy_aware"
)

var AccuracyModeValues = []string{
	string(AccuracyModeStrict),
	string(AccuracyModeAware),
}

// GeofenceResult carries the containment verdict plus the computed distance
// so callers can report "you are X meters away".
type GeofenceResult struct {
	Inside         bool
	DistanceMeters float64
}

// CheckGeofence decides whether an observed position lies inside a circular
// geofence. Distance exactly equal to the radius counts as inside.
func CheckGeofence(observed Point, accuracyMeters float64, center Point, radiusMeters float64, mode AccuracyMode) GeofenceResult {
	d := HaversineDistance(observed, center)

	allowed := radiusMeters
	if mode == AccuracyModeAware && accuracyMeters > 0 {
		allowed += accuracyMeters
	}

	return GeofenceResult{
		Inside:         d <= allowed,
		DistanceMeters: d,
	}
}
