package restapi

import (
	"net/http"

	"tripwatch.villagelink.org/internal/estimator"
	"tripwatch.villagelink.org/internal/models"
	"tripwatch.villagelink.org/internal/utils"
)

// vehicleWithEstimate pairs a matched vehicle with its departure estimate.
type vehicleWithEstimate struct {
	Vehicle  models.VehicleTelemetry  `json:"vehicle"`
	Estimate models.DepartureEstimate `json:"estimate"`
}

// vehiclesForRouteHandler lists vehicles serving the route between the two
// stops named in the from/to query parameters.
func (api *RestAPI) vehiclesForRouteHandler(w http.ResponseWriter, r *http.Request) {
	queryParams := r.URL.Query()
	from := queryParams.Get("from")
	to := queryParams.Get("to")

	fieldErrors := map[string][]string{}
	if err := utils.ValidateStopName(from); err != nil {
		fieldErrors["from"] = append(fieldErrors["from"], err.Error())
	}
	if err := utils.ValidateStopName(to); err != nil {
		fieldErrors["to"] = append(fieldErrors["to"], err.Error())
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	desiredPath := []string{from, to}
	matched := estimator.FilterVehicles(api.Feed.ActiveVehicles(), desiredPath)

	entries := make([]vehicleWithEstimate, 0, len(matched))
	for _, vehicle := range matched {
		entries = append(entries, vehicleWithEstimate{
			Vehicle:  vehicle,
			Estimate: estimator.EstimateDeparture(api.EstimatorConfig, vehicle),
		})
	}
	if api.Metrics != nil {
		api.Metrics.EstimatesComputed.Add(float64(len(entries)))
	}

	api.sendResponse(w, r, newListData(entries))
}
