package restapi

import (
	"net/http"
	"time"

	"tripwatch.villagelink.org/internal/utils"
)

// demandForRouteHandler forecasts boarding demand for a route at a given
// hour of day. The hour query parameter defaults to the current hour.
func (api *RestAPI) demandForRouteHandler(w http.ResponseWriter, r *http.Request) {
	// Route IDs are stop-pair keys like "Rampur|Devgarh", so they get the
	// looser stop-name validation rather than the vehicle ID pattern.
	routeID := utils.ExtractIDFromParams(r, "id")
	if err := utils.ValidateStopName(routeID); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"id": {err.Error()}})
		return
	}

	queryParams := r.URL.Query()
	hour := time.Now().Hour()
	fieldErrors := map[string][]string{}
	if queryParams.Get("hour") != "" {
		hour, fieldErrors = utils.ParseIntParam(queryParams, "hour", fieldErrors)
		if len(fieldErrors) == 0 {
			if err := utils.ValidateHour(hour); err != nil {
				fieldErrors["hour"] = append(fieldErrors["hour"], err.Error())
			}
		}
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	prediction := api.Demand.Predict(routeID, hour)
	api.sendResponse(w, r, newEntryData(prediction))
}
