package utils

import "math"

// CalculateHaversineDistance returns the great-circle distance in meters
// between two coordinates given in degrees.
func CalculateHaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6371000 // meters

	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}

// Geofence is a circle around the yard or site office. A zero radius
// disables the check.
type Geofence struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
}

func (g Geofence) Enabled() bool {
	return g.RadiusMeters > 0
}

// Allows reports whether (lat, lng) is inside the fence. Always true when
// the fence is disabled.
func (g Geofence) Allows(lat, lng float64) bool {
	if !g.Enabled() {
		return true
	}
	return CalculateHaversineDistance(g.Latitude, g.Longitude, lat, lng) <= g.RadiusMeters
}
