package models

import "math"

// VehicleKind classifies the tracked vehicle.
type VehicleKind string

const (
	VehicleKindBus  VehicleKind = "BUS"
	VehicleKindAuto VehicleKind = "AUTO"
	VehicleKindCar  VehicleKind = "CAR"
)

// VehicleTelemetry is one live report for one tracked vehicle. Every feed
// update supersedes the previous report wholesale; fields are never merged.
type VehicleTelemetry struct {
	VehicleID        string      `json:"vehicleId"`
	Position         Coordinate  `json:"position"`
	Heading          float64     `json:"heading"`
	SpeedKmh         float64     `json:"speedKmh"`
	Occupancy        int         `json:"occupancy"`
	Capacity         int         `json:"capacity"`
	Stationary       bool        `json:"isStationary"`
	Kind             VehicleKind `json:"vehicleKind"`
	Path             []string    `json:"path,omitempty"`
	CurrentStopIndex int         `json:"currentStopIndex"`
	// Congestion is the reported traffic density around the vehicle, when
	// the source feed carries one.
	Congestion     CongestionLevel `json:"congestionLevel,omitempty"`
	LastUpdateTime int64           `json:"lastUpdateTime,omitempty"`
}

// Normalize applies the degraded-field defaults: a missing or non-finite
// heading becomes 0°, a missing or negative speed becomes 0 km/h (treated as
// stationary). The heading is folded into [0, 360).
func (t *VehicleTelemetry) Normalize() {
	if math.IsNaN(t.Heading) || math.IsInf(t.Heading, 0) {
		t.Heading = 0
	}
	t.Heading = math.Mod(t.Heading, 360)
	if t.Heading < 0 {
		t.Heading += 360
	}
	if math.IsNaN(t.SpeedKmh) || math.IsInf(t.SpeedKmh, 0) || t.SpeedKmh < 0 {
		t.SpeedKmh = 0
	}
	if t.Occupancy < 0 {
		t.Occupancy = 0
	}
	if t.Kind == "" {
		t.Kind = VehicleKindBus
	}
}
