package tripview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tripwatch.villagelink.org/internal/animator"
	"tripwatch.villagelink.org/internal/estimator"
	"tripwatch.villagelink.org/internal/feed"
	"tripwatch.villagelink.org/internal/models"
)

var testPath = []string{"Rampur", "Sitapur", "Govindpur", "Devgarh", "Karanpur"}

func testVehicle() models.VehicleTelemetry {
	return models.VehicleTelemetry{
		VehicleID:        "bus-1",
		Position:         models.Coordinate{Lat: 26.95, Lon: 80.95},
		Heading:          45,
		Occupancy:        25,
		Capacity:         40,
		Kind:             models.VehicleKindBus,
		Path:             testPath,
		CurrentStopIndex: 2,
	}
}

func newTestComposer() *Composer {
	return NewComposer(estimator.DefaultConfig(), nil)
}

func TestComposeEmptyStates(t *testing.T) {
	c := newTestComposer()
	now := time.Now()

	noPath := c.Compose(nil, LayoutVertical, true, []models.VehicleTelemetry{testVehicle()}, nil, now)
	assert.True(t, noPath.Empty)
	assert.Equal(t, EmptyMessage, noPath.EmptyMessage)

	noVehicle := c.Compose(testPath, LayoutVertical, true, nil, nil, now)
	assert.True(t, noVehicle.Empty)
	assert.Equal(t, EmptyMessage, noVehicle.EmptyMessage)
}

func TestComposeStopStates(t *testing.T) {
	c := newTestComposer()
	view := c.Compose(testPath, LayoutVertical, true, []models.VehicleTelemetry{testVehicle()}, nil, time.Now())

	require.False(t, view.Empty)
	require.Len(t, view.Stops, 5)
	assert.Equal(t, 2, view.CurrentStopIndex)

	assert.Equal(t, StopPassed, view.Stops[0].State)
	assert.Equal(t, "Departed", view.Stops[0].ETAText)
	assert.Equal(t, StopPassed, view.Stops[1].State)
	assert.Equal(t, StopCurrent, view.Stops[2].State)
	assert.Equal(t, "Here", view.Stops[2].ETAText)
	assert.Equal(t, StopUpcoming, view.Stops[3].State)
	assert.NotEmpty(t, view.Stops[3].ETAText)
	assert.Equal(t, StopUpcoming, view.Stops[4].State)
}

func TestComposeProgressPercent(t *testing.T) {
	c := newTestComposer()
	view := c.Compose(testPath, LayoutHorizontal, false, []models.VehicleTelemetry{testVehicle()}, nil, time.Now())

	assert.InDelta(t, 50, view.ProgressPercent, 0.001)
	assert.Nil(t, view.Header, "header suppressed when not requested")
}

func TestComposeSingleStopPathDoesNotDivideByZero(t *testing.T) {
	c := newTestComposer()
	v := testVehicle()
	v.Path = []string{"Rampur", "Rampur"}
	v.CurrentStopIndex = 0

	// Matching needs two endpoints, so the vehicle path has two entries
	// while the desired path has one.
	view := c.Compose([]string{"Rampur"}, LayoutHorizontal, false, []models.VehicleTelemetry{v}, nil, time.Now())

	assert.True(t, view.Empty, "single-stop desired path cannot match a route")

	// progressPercent itself must guard the division.
	assert.Zero(t, progressPercent(0, 1))
}

func TestComposeHeaderCarriesEstimate(t *testing.T) {
	c := newTestComposer()
	view := c.Compose(testPath, LayoutVertical, true, []models.VehicleTelemetry{testVehicle()}, nil, time.Now())

	require.NotNil(t, view.Header)
	assert.Equal(t, "bus-1", view.Header.VehicleID)
	assert.Equal(t, models.StatusBoarding, view.Header.Status)
	assert.InDelta(t, 62.5, view.Header.FillPercentage, 0.001)
	assert.Equal(t, 23, view.Header.WaitMinutes) // ceil(15 * 1.5)
	assert.Equal(t, "NE", view.Header.Direction)
}

func TestComposeMarkerUsesAnimatedPositionWhenSupplied(t *testing.T) {
	c := newTestComposer()
	animated := &animator.AnimatedPosition{
		Current: models.Coordinate{Lat: 26.93, Lon: 80.93},
		Heading: 90,
	}

	view := c.Compose(testPath, LayoutVertical, false, []models.VehicleTelemetry{testVehicle()}, animated, time.Now())

	require.NotNil(t, view.Marker)
	assert.Equal(t, animated.Current, view.Marker.Position)
	assert.InDelta(t, 90, view.Marker.Heading, 1e-9)
	assert.Equal(t, "bus", view.Marker.Icon)
}

func TestComposePolylinesWithCongestion(t *testing.T) {
	stops := feed.NewStopDirectory()
	for i, name := range testPath {
		stops.Register(feed.Stop{Name: name, Position: models.Coordinate{Lat: float64(i), Lon: float64(i)}})
	}
	c := NewComposer(estimator.DefaultConfig(), stops)

	v := testVehicle()
	v.Congestion = models.CongestionJam
	view := c.Compose(testPath, LayoutVertical, false, []models.VehicleTelemetry{v}, nil, time.Now())

	// one polyline per hop; the vehicle's hop is jam-red
	require.Len(t, view.Polylines, 4)
	assert.Equal(t, animator.CongestionColor(models.CongestionJam), view.Polylines[2].Color)
	assert.Equal(t, animator.CongestionColor(models.CongestionFree), view.Polylines[0].Color)
}

func TestComposePolylinesDefaultTwoLayer(t *testing.T) {
	stops := feed.NewStopDirectory()
	for i, name := range testPath {
		stops.Register(feed.Stop{Name: name, Position: models.Coordinate{Lat: float64(i), Lon: float64(i)}})
	}
	c := NewComposer(estimator.DefaultConfig(), stops)

	view := c.Compose(testPath, LayoutVertical, false, []models.VehicleTelemetry{testVehicle()}, nil, time.Now())

	require.Len(t, view.Polylines, 2)
	assert.Greater(t, view.Polylines[0].Width, view.Polylines[1].Width)
}

func TestComposePolylinesOmittedWithoutGeometry(t *testing.T) {
	c := newTestComposer()
	view := c.Compose(testPath, LayoutVertical, false, []models.VehicleTelemetry{testVehicle()}, nil, time.Now())
	assert.Nil(t, view.Polylines)
}

func TestParseLayout(t *testing.T) {
	assert.Equal(t, LayoutHorizontal, ParseLayout("horizontal"))
	assert.Equal(t, LayoutHorizontal, ParseLayout("HORIZONTAL"))
	assert.Equal(t, LayoutVertical, ParseLayout("vertical"))
	assert.Equal(t, LayoutVertical, ParseLayout(""))
	assert.Equal(t, LayoutVertical, ParseLayout("bogus"))
}
