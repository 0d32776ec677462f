package models

// CongestionLevel is a discrete traffic-density classification for one path
// segment.
type CongestionLevel string

const (
	CongestionFree  CongestionLevel = "FREE"
	CongestionSlow  CongestionLevel = "SLOW"
	CongestionHeavy CongestionLevel = "HEAVY"
	CongestionJam   CongestionLevel = "JAM"
)

// TrafficSegment describes one colored section of a rendered path. A path is
// an ordered sequence of segments, immutable for the duration of one render
// cycle.
type TrafficSegment struct {
	Start Coordinate      `json:"start"`
	End   Coordinate      `json:"end"`
	Level CongestionLevel `json:"congestionLevel"`
}
