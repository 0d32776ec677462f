package utils

import (
	"math"
)

const earthRadiusMeters = 6371000

// BearingBetweenPoints calculates the bearing in degrees from point1 to point2
func BearingBetweenPoints(lat1, lon1, lat2, lon2 float64) float64 {
	// Convert to radians
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	y := math.Sin(deltaLon) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(deltaLon)

	theta := math.Atan2(y, x)
	bearing := math.Mod(theta*180/math.Pi+360, 360)

	return bearing
}

// BearingToCompass converts a bearing (0-360°) to 8-point compass direction
func BearingToCompass(bearing float64) string {
	directions := []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}
	index := int((bearing+22.5)/45.0) % 8
	return directions[index]
}

// Haversine returns the great-circle distance in meters between two points.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// NormalizeHeadingDelta folds the signed difference between two headings into
// (-180, 180], the shortest angular sweep from `from` to `to`.
func NormalizeHeadingDelta(from, to float64) float64 {
	delta := math.Mod(to-from, 360)
	if delta > 180 {
		delta -= 360
	}
	if delta <= -180 {
		delta += 360
	}
	return delta
}
