package restapi

import (
	"net/http"
	"time"

	"tripwatch.villagelink.org/internal/estimator"
	"tripwatch.villagelink.org/internal/models"
	"tripwatch.villagelink.org/internal/utils"
)

// stopProjection is the projected arrival at one stop of the vehicle's path.
type stopProjection struct {
	Stop string            `json:"stop"`
	ETA  estimator.StopETA `json:"eta"`
}

// departureEstimateEntry is the response body for one vehicle's estimate.
type departureEstimateEntry struct {
	VehicleID string                   `json:"vehicleId"`
	Estimate  models.DepartureEstimate `json:"estimate"`
	Stops     []stopProjection         `json:"stops,omitempty"`
}

// departureEstimateHandler returns the fill-based departure estimate for one
// vehicle, plus the projected arrival at every stop of its path.
func (api *RestAPI) departureEstimateHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r, "id")
	if err := utils.ValidateID(id); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"id": {err.Error()}})
		return
	}

	vehicle, ok := api.Feed.Vehicle(id)
	if !ok {
		api.notFoundResponse(w, r)
		return
	}

	now := time.Now()
	est := estimator.EstimateDeparture(api.EstimatorConfig, vehicle)
	if api.Metrics != nil {
		api.Metrics.EstimatesComputed.Inc()
	}

	stops := make([]stopProjection, 0, len(vehicle.Path))
	for i, stop := range vehicle.Path {
		eta := estimator.EstimateStopETA(api.EstimatorConfig, i, vehicle.CurrentStopIndex, est.WaitMinutes, now)
		stops = append(stops, stopProjection{Stop: stop, ETA: eta})
	}

	entry := departureEstimateEntry{
		VehicleID: vehicle.VehicleID,
		Estimate:  est,
		Stops:     stops,
	}
	api.sendResponse(w, r, newEntryData(entry))
}
