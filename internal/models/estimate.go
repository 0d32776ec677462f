package models

// BoardingStatus is the fill-and-fly classification of a vehicle.
type BoardingStatus string

const (
	StatusWaiting       BoardingStatus = "WAITING"
	StatusMoving        BoardingStatus = "MOVING"
	StatusFillingUp     BoardingStatus = "FILLING_UP"
	StatusBoarding      BoardingStatus = "BOARDING"
	StatusDepartingSoon BoardingStatus = "DEPARTING_SOON"
	StatusUnknown       BoardingStatus = "UNKNOWN"
)

// DepartureEstimate is derived from a single VehicleTelemetry report. It has
// no lifecycle of its own and is recomputed on every telemetry tick.
type DepartureEstimate struct {
	WaitMinutes    int            `json:"waitMinutes"`
	Status         BoardingStatus `json:"status"`
	FillPercentage float64        `json:"fillPercentage"`
	// FillKnown is false when capacity was missing or zero; in that case
	// FillPercentage is meaningless and fill-based status is suppressed.
	FillKnown bool `json:"fillKnown"`
}
