package estimator

import (
	"time"
)

// ETAKind distinguishes the three arrival phases of a stop relative to the
// vehicle's current position in its path.
type ETAKind string

const (
	ETADeparted ETAKind = "DEPARTED"
	ETAArriving ETAKind = "ARRIVING"
	ETAFuture   ETAKind = "FUTURE"
)

// StopETA is the projected arrival at one stop.
type StopETA struct {
	Kind         ETAKind   `json:"kind"`
	TotalMinutes int       `json:"totalMinutes,omitempty"`
	Arrival      time.Time `json:"arrival,omitempty"`
	Label        string    `json:"label"`
}

// EstimateStopETA projects the arrival time at stopIndex given the vehicle's
// currentStopIndex and its predicted departure wait. The wait penalty is
// added once to every downstream stop: it models the one-time delay before
// the vehicle starts moving, not a per-stop cost.
func EstimateStopETA(cfg Config, stopIndex, currentStopIndex, waitMinutes int, now time.Time) StopETA {
	if stopIndex < currentStopIndex {
		return StopETA{Kind: ETADeparted, Label: "Departed"}
	}
	if stopIndex == currentStopIndex {
		return StopETA{Kind: ETAArriving, Label: "Arriving"}
	}

	travelMinutes := float64(stopIndex-currentStopIndex) * cfg.MinutesPerHop
	totalMinutes := int(travelMinutes) + waitMinutes
	arrival := now.Add(time.Duration(totalMinutes) * time.Minute)

	return StopETA{
		Kind:         ETAFuture,
		TotalMinutes: totalMinutes,
		Arrival:      arrival,
		Label:        arrival.Format("3:04 PM"),
	}
}
