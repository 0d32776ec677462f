// Package estimator implements the fill-and-fly departure model: a rural
// shared vehicle departs once it is full enough, not on a timetable. The
// estimator classifies boarding status from occupancy, predicts the remaining
// wait, and projects arrival times at downstream stops.
package estimator

// Config collects the heuristic constants of the model. They encode an
// empirical assumption about rural private transit (roughly one boarding
// passenger per 1.5 minutes, 8 minutes per hop) and are deliberately
// swappable instead of inlined.
type Config struct {
	// MinutesPerSeat is the expected boarding time per empty seat.
	MinutesPerSeat float64
	// MinutesPerHop is the fixed travel time between adjacent stops.
	MinutesPerHop float64
	// MovingSpeedKmh is the speed above which a vehicle counts as moving
	// rather than waiting to fill.
	MovingSpeedKmh float64
	// BoardingThresholdPct and DepartingThresholdPct split the fill
	// percentage into FILLING_UP / BOARDING / DEPARTING_SOON bands.
	BoardingThresholdPct  float64
	DepartingThresholdPct float64
}

// DefaultConfig returns the tuned constants for VillageLink's service area.
func DefaultConfig() Config {
	return Config{
		MinutesPerSeat:        1.5,
		MinutesPerHop:         8,
		MovingSpeedKmh:        5,
		BoardingThresholdPct:  50,
		DepartingThresholdPct: 90,
	}
}
