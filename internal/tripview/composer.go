// Package tripview merges live telemetry, the fill-and-fly estimate, and the
// stop list into a single tracking-widget view: a horizontal progress rail or
// a vertical station timeline.
package tripview

import (
	"strings"
	"time"

	"tripwatch.villagelink.org/internal/animator"
	"tripwatch.villagelink.org/internal/estimator"
	"tripwatch.villagelink.org/internal/feed"
	"tripwatch.villagelink.org/internal/models"
	"tripwatch.villagelink.org/internal/utils"
)

// Layout selects the widget presentation.
type Layout string

const (
	LayoutVertical   Layout = "VERTICAL"
	LayoutHorizontal Layout = "HORIZONTAL"
)

// ParseLayout maps a caller-supplied layout string onto a Layout, defaulting
// to the vertical timeline.
func ParseLayout(s string) Layout {
	if strings.EqualFold(s, string(LayoutHorizontal)) {
		return LayoutHorizontal
	}
	return LayoutVertical
}

// StopState is the render state of one stop relative to the vehicle.
type StopState string

const (
	StopPassed   StopState = "PASSED"
	StopCurrent  StopState = "CURRENT"
	StopUpcoming StopState = "UPCOMING"
)

// EmptyMessage is the terminal no-data state shown instead of a blank view.
const EmptyMessage = "No active trip or route selected"

// StopView is one rendered row/dot of the widget.
type StopView struct {
	Name    string    `json:"name"`
	Index   int       `json:"index"`
	State   StopState `json:"state"`
	ETAText string    `json:"etaText"`
}

// HeaderView summarizes the tracked vehicle above the stop list.
type HeaderView struct {
	VehicleID      string                `json:"vehicleId"`
	Kind           models.VehicleKind    `json:"vehicleKind"`
	Status         models.BoardingStatus `json:"status"`
	WaitMinutes    int                   `json:"waitMinutes"`
	FillPercentage float64               `json:"fillPercentage"`
	FillKnown      bool                  `json:"fillKnown"`
	Direction      string                `json:"direction"`
}

// View is the fully composed widget. It is a plain value; composing never
// mutates live view state in place.
type View struct {
	Empty            bool                       `json:"empty"`
	EmptyMessage     string                     `json:"emptyMessage,omitempty"`
	Layout           Layout                     `json:"layout"`
	Header           *HeaderView                `json:"header,omitempty"`
	Stops            []StopView                 `json:"stops,omitempty"`
	CurrentStopIndex int                        `json:"currentStopIndex"`
	ProgressPercent  float64                    `json:"progressPercent"`
	Marker           *animator.MarkerPrimitive  `json:"marker,omitempty"`
	Polylines        []animator.Polyline        `json:"polylines,omitempty"`
	GeneratedAt      time.Time                  `json:"generatedAt"`
}

// Composer builds views. It is stateless and safe for concurrent use.
type Composer struct {
	cfg   estimator.Config
	stops *feed.StopDirectory
}

// NewComposer creates a composer. stops may be nil; polylines are then
// omitted from every view.
func NewComposer(cfg estimator.Config, stops *feed.StopDirectory) *Composer {
	return &Composer{cfg: cfg, stops: stops}
}

const routeColor = "#2563eb"

var kindIcons = map[models.VehicleKind]string{
	models.VehicleKindBus:  "bus",
	models.VehicleKindAuto: "auto-rickshaw",
	models.VehicleKindCar:  "car",
}

// Compose renders the widget for a desired path from the current vehicle
// list. marker, when non-nil, supplies the animated display position for the
// matched vehicle; otherwise the raw telemetry position is used.
func (c *Composer) Compose(desiredPath []string, layout Layout, showHeader bool, vehicles []models.VehicleTelemetry, marker *animator.AnimatedPosition, now time.Time) View {
	view := View{Layout: layout, GeneratedAt: now}

	matched := estimator.FilterVehicles(vehicles, desiredPath)
	if len(desiredPath) == 0 || len(matched) == 0 {
		view.Empty = true
		view.EmptyMessage = EmptyMessage
		return view
	}

	vehicle := matched[0]
	currentIndex := estimator.ResolveCurrentStop(vehicle.Path, vehicle.CurrentStopIndex, desiredPath)
	est := estimator.EstimateDeparture(c.cfg, vehicle)

	view.CurrentStopIndex = currentIndex
	view.ProgressPercent = progressPercent(currentIndex, len(desiredPath))
	view.Stops = c.composeStops(desiredPath, currentIndex, est.WaitMinutes, now)

	if showHeader {
		view.Header = &HeaderView{
			VehicleID:      vehicle.VehicleID,
			Kind:           vehicle.Kind,
			Status:         est.Status,
			WaitMinutes:    est.WaitMinutes,
			FillPercentage: est.FillPercentage,
			FillKnown:      est.FillKnown,
			Direction:      utils.BearingToCompass(vehicle.Heading),
		}
	}

	displayed := animator.AnimatedPosition{Current: vehicle.Position, Heading: vehicle.Heading}
	if marker != nil {
		displayed = *marker
	}
	view.Marker = &animator.MarkerPrimitive{
		ID:       vehicle.VehicleID,
		Position: displayed.Current,
		Heading:  displayed.Heading,
		Icon:     kindIcons[vehicle.Kind],
	}

	view.Polylines = c.composePolylines(desiredPath, currentIndex, vehicle.Congestion)
	return view
}

// progressPercent positions the rail fill. A single-stop path renders at 0%;
// there is nothing to progress along.
func progressPercent(currentIndex, numStops int) float64 {
	if numStops <= 1 {
		return 0
	}
	return float64(currentIndex) / float64(numStops-1) * 100
}

func (c *Composer) composeStops(desiredPath []string, currentIndex, waitMinutes int, now time.Time) []StopView {
	stops := make([]StopView, len(desiredPath))
	for i, name := range desiredPath {
		sv := StopView{Name: name, Index: i}
		switch {
		case i == currentIndex:
			sv.State = StopCurrent
			sv.ETAText = "Here"
		case i < currentIndex:
			sv.State = StopPassed
			sv.ETAText = "Departed"
		default:
			sv.State = StopUpcoming
			sv.ETAText = estimator.EstimateStopETA(c.cfg, i, currentIndex, waitMinutes, now).Label
		}
		stops[i] = sv
	}
	return stops
}

// composePolylines draws the route path. With congestion data the hop the
// vehicle occupies is colored by severity; without it the path renders as the
// default two-layer line.
func (c *Composer) composePolylines(desiredPath []string, currentIndex int, congestion models.CongestionLevel) []animator.Polyline {
	if c.stops == nil {
		return nil
	}
	coords, ok := c.stops.PathCoordinates(desiredPath)
	if !ok || len(coords) < 2 {
		return nil
	}

	if congestion == "" || congestion == models.CongestionFree {
		return animator.PlainPathPolylines(coords, routeColor)
	}

	hop := currentIndex
	if hop > len(coords)-2 {
		hop = len(coords) - 2
	}
	if hop < 0 {
		hop = 0
	}

	segments := make([]models.TrafficSegment, 0, len(coords)-1)
	for i := 0; i+1 < len(coords); i++ {
		level := models.CongestionFree
		if i == hop {
			level = congestion
		}
		segments = append(segments, models.TrafficSegment{
			Start: coords[i],
			End:   coords[i+1],
			Level: level,
		})
	}
	return animator.TrafficPolylines(segments)
}
