package animator

import "tripwatch.villagelink.org/internal/models"

// Polyline is one colored path section ready for the map substrate.
type Polyline struct {
	Points  []models.Coordinate `json:"points"`
	Color   string              `json:"color"`
	Width   float64             `json:"width"`
	Opacity float64             `json:"opacity"`
}

// MarkerPrimitive places a vehicle icon on the map.
type MarkerPrimitive struct {
	ID       string            `json:"id"`
	Position models.Coordinate `json:"position"`
	Heading  float64           `json:"heading"`
	Icon     string            `json:"icon"`
}

// MapRenderer is the boundary to the external tile/marker substrate. The
// core emits plain primitive values; it never owns projection math, tile
// fetching, or gestures.
type MapRenderer interface {
	RenderMarker(m MarkerPrimitive)
	RenderPolylines(lines []Polyline)
	RemoveMarker(id string)
}

// Fixed mapping from congestion severity to render color.
var congestionColors = map[models.CongestionLevel]string{
	models.CongestionFree:  "#16a34a", // green
	models.CongestionSlow:  "#f59e0b", // amber
	models.CongestionHeavy: "#f97316", // orange
	models.CongestionJam:   "#dc2626", // red
}

const (
	pathLineWidth   = 4
	shadowLineWidth = 8
	shadowOpacity   = 0.3
)

// CongestionColor returns the render color for a congestion level. Unknown
// levels fall back to the free-flow color.
func CongestionColor(level models.CongestionLevel) string {
	if c, ok := congestionColors[level]; ok {
		return c
	}
	return congestionColors[models.CongestionFree]
}

// TrafficPolylines renders an ordered segment list as one colored polyline
// per segment.
func TrafficPolylines(segments []models.TrafficSegment) []Polyline {
	lines := make([]Polyline, 0, len(segments))
	for _, seg := range segments {
		lines = append(lines, Polyline{
			Points:  []models.Coordinate{seg.Start, seg.End},
			Color:   CongestionColor(seg.Level),
			Width:   pathLineWidth,
			Opacity: 1,
		})
	}
	return lines
}

// PlainPathPolylines renders a path with no traffic data as a two-layer
// polyline: a wider low-opacity shadow under a narrower solid line. This is a
// presentation default for visual depth, not a correctness requirement.
func PlainPathPolylines(path []models.Coordinate, color string) []Polyline {
	if len(path) < 2 {
		return nil
	}
	return []Polyline{
		{Points: path, Color: color, Width: shadowLineWidth, Opacity: shadowOpacity},
		{Points: path, Color: color, Width: pathLineWidth, Opacity: 1},
	}
}
