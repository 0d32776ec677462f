package models

import "math"

// Coordinate is an immutable geographic point.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// IsFinite reports whether both components are real numbers. Telemetry with
// non-finite coordinates must never reach the animation loop.
func (c Coordinate) IsFinite() bool {
	return !math.IsNaN(c.Lat) && !math.IsInf(c.Lat, 0) &&
		!math.IsNaN(c.Lon) && !math.IsInf(c.Lon, 0)
}

func CompareCoordinates(a, b Coordinate) int {
	if a.Lat < b.Lat {
		return -1
	}
	if a.Lat > b.Lat {
		return 1
	}
	if a.Lon < b.Lon {
		return -1
	}
	if a.Lon > b.Lon {
		return 1
	}
	return 0
}
