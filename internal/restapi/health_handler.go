package restapi

import (
	"encoding/json"
	"net/http"
)

// healthHandler reports process liveness plus feed state. It sits outside
// the API-key check so load balancers can probe it.
func (api *RestAPI) healthHandler(w http.ResponseWriter, r *http.Request) {
	body := struct {
		Status         string `json:"status"`
		ActiveVehicles int    `json:"activeVehicles"`
	}{
		Status:         "UP",
		ActiveVehicles: len(api.Feed.ActiveVehicles()),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		api.Logger.Error("failed to encode health response", "error", err)
	}
}
