package estimator

import (
	"math"

	"tripwatch.villagelink.org/internal/models"
)

// EstimateDeparture derives the boarding status and predicted wait for one
// telemetry report. It is a pure function of the report and the config.
//
// Occupancy above capacity is clamped to capacity before the fill ratio is
// computed, so the reported fill never exceeds 100%.
func EstimateDeparture(cfg Config, t models.VehicleTelemetry) models.DepartureEstimate {
	occupancy := t.Occupancy
	if t.Capacity > 0 && occupancy > t.Capacity {
		occupancy = t.Capacity
	}

	if t.SpeedKmh > cfg.MovingSpeedKmh {
		est := models.DepartureEstimate{
			Status:      models.StatusMoving,
			WaitMinutes: 0,
		}
		if t.Capacity > 0 {
			est.FillPercentage = fillPercentage(occupancy, t.Capacity)
			est.FillKnown = true
		}
		return est
	}

	// Zero or negative capacity means the fill ratio is unknowable;
	// suppress fill-based classification instead of dividing.
	if t.Capacity <= 0 {
		return models.DepartureEstimate{Status: models.StatusUnknown}
	}

	fill := fillPercentage(occupancy, t.Capacity)

	status := models.StatusWaiting
	switch {
	case fill > cfg.DepartingThresholdPct:
		status = models.StatusDepartingSoon
	case fill > cfg.BoardingThresholdPct:
		status = models.StatusBoarding
	default:
		status = models.StatusFillingUp
	}

	remainingSeats := t.Capacity - occupancy
	waitMinutes := int(math.Ceil(float64(remainingSeats) * cfg.MinutesPerSeat))
	if waitMinutes < 0 {
		waitMinutes = 0
	}

	return models.DepartureEstimate{
		WaitMinutes:    waitMinutes,
		Status:         status,
		FillPercentage: fill,
		FillKnown:      true,
	}
}

func fillPercentage(occupancy, capacity int) float64 {
	return 100 * float64(occupancy) / float64(capacity)
}
