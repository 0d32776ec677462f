package feed

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tripwatch.villagelink.org/internal/models"
)

func TestApplyLastWriteWins(t *testing.T) {
	m := NewManager(nil)

	require.True(t, m.Apply(models.VehicleTelemetry{
		VehicleID: "bus-1",
		Position:  models.Coordinate{Lat: 26.9, Lon: 80.9},
		Occupancy: 10,
		Capacity:  40,
	}))
	require.True(t, m.Apply(models.VehicleTelemetry{
		VehicleID: "bus-1",
		Position:  models.Coordinate{Lat: 26.91, Lon: 80.91},
		Occupancy: 12,
		Capacity:  40,
	}))

	v, ok := m.Vehicle("bus-1")
	require.True(t, ok)
	assert.Equal(t, 12, v.Occupancy)
	assert.InDelta(t, 26.91, v.Position.Lat, 1e-9)
	assert.Len(t, m.ActiveVehicles(), 1)
}

func TestApplyRejectsUnusableReports(t *testing.T) {
	m := NewManager(nil)

	assert.False(t, m.Apply(models.VehicleTelemetry{
		Position: models.Coordinate{Lat: 1, Lon: 1},
	}), "missing vehicle id")

	assert.False(t, m.Apply(models.VehicleTelemetry{
		VehicleID: "bus-1",
		Position:  models.Coordinate{Lat: math.NaN(), Lon: 1},
	}), "non-finite position")

	assert.Empty(t, m.ActiveVehicles())
}

func TestApplyNormalizesDegradedFields(t *testing.T) {
	m := NewManager(nil)

	require.True(t, m.Apply(models.VehicleTelemetry{
		VehicleID: "bus-1",
		Position:  models.Coordinate{Lat: 26.9, Lon: 80.9},
		Heading:   math.NaN(),
		SpeedKmh:  -4,
	}))

	v, _ := m.Vehicle("bus-1")
	assert.Zero(t, v.Heading)
	assert.Zero(t, v.SpeedKmh)
	assert.Equal(t, models.VehicleKindBus, v.Kind)
}

func TestDecodeDefaultsForMissingFields(t *testing.T) {
	// A producer omitting heading and speed yields a stationary reading,
	// not a decode failure.
	var telemetry models.VehicleTelemetry
	raw := []byte(`{"vehicleId":"auto-7","position":{"lat":26.9,"lon":80.9},"occupancy":3,"capacity":6,"vehicleKind":"AUTO"}`)
	require.NoError(t, json.Unmarshal(raw, &telemetry))

	m := NewManager(nil)
	require.True(t, m.Apply(telemetry))

	v, _ := m.Vehicle("auto-7")
	assert.Zero(t, v.Heading)
	assert.Zero(t, v.SpeedKmh)
	assert.Equal(t, models.VehicleKindAuto, v.Kind)
}

func TestSubscribeDeliversFullVehicleList(t *testing.T) {
	m := NewManager(nil)
	var lists [][]models.VehicleTelemetry
	m.Subscribe(nil, func(vs []models.VehicleTelemetry) {
		lists = append(lists, vs)
	})

	m.Apply(models.VehicleTelemetry{VehicleID: "b", Position: models.Coordinate{Lat: 1, Lon: 1}})
	m.Apply(models.VehicleTelemetry{VehicleID: "a", Position: models.Coordinate{Lat: 2, Lon: 2}})

	require.Len(t, lists, 2)
	assert.Len(t, lists[0], 1)
	require.Len(t, lists[1], 2)
	// snapshot ordering is stable by vehicle ID
	assert.Equal(t, "a", lists[1][0].VehicleID)
	assert.Equal(t, "b", lists[1][1].VehicleID)
}

func TestConnectionStateFansOut(t *testing.T) {
	m := NewManager(nil)
	var states []bool
	m.Subscribe(func(connected bool) { states = append(states, connected) }, nil)

	m.SetConnected(true)
	m.SetConnected(false)

	// initial state plus the two transitions
	assert.Equal(t, []bool{false, true, false}, states)
}

func TestApplyDerivesHeadingFromTrack(t *testing.T) {
	m := NewManager(nil)

	require.True(t, m.Apply(models.VehicleTelemetry{
		VehicleID: "bus-1",
		Position:  models.Coordinate{Lat: 26.0, Lon: 80.0},
	}))
	// Second fix due east of the first, still no reported heading.
	require.True(t, m.Apply(models.VehicleTelemetry{
		VehicleID: "bus-1",
		Position:  models.Coordinate{Lat: 26.0, Lon: 80.1},
	}))

	v, _ := m.Vehicle("bus-1")
	assert.InDelta(t, 90, v.Heading, 1.0)
}

func TestApplyKeepsReportedHeading(t *testing.T) {
	m := NewManager(nil)

	require.True(t, m.Apply(models.VehicleTelemetry{
		VehicleID: "bus-1",
		Position:  models.Coordinate{Lat: 26.0, Lon: 80.0},
	}))
	require.True(t, m.Apply(models.VehicleTelemetry{
		VehicleID: "bus-1",
		Position:  models.Coordinate{Lat: 26.0, Lon: 80.1},
		Heading:   210,
	}))

	v, _ := m.Vehicle("bus-1")
	assert.Equal(t, 210.0, v.Heading)
}

func TestSubscriptionCancelStopsDelivery(t *testing.T) {
	m := NewManager(nil)
	var calls int
	sub := m.Subscribe(nil, func([]models.VehicleTelemetry) { calls++ })

	m.Apply(models.VehicleTelemetry{VehicleID: "a", Position: models.Coordinate{Lat: 1, Lon: 1}})
	require.Equal(t, 1, calls)

	sub.Cancel()
	m.Apply(models.VehicleTelemetry{VehicleID: "a", Position: models.Coordinate{Lat: 2, Lon: 2}})
	assert.Equal(t, 1, calls)
}

func TestApplyBatch(t *testing.T) {
	m := NewManager(nil)

	m.ApplyBatch([]models.VehicleTelemetry{
		{VehicleID: "a", Position: models.Coordinate{Lat: 1, Lon: 1}},
		{Position: models.Coordinate{Lat: 2, Lon: 2}}, // dropped, no id
		{VehicleID: "c", Position: models.Coordinate{Lat: 3, Lon: 3}},
	})

	assert.Len(t, m.ActiveVehicles(), 2)
}
