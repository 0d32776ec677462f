package restapi

import (
	"net/http"
)

// vehiclesHandler returns the live snapshot of every tracked vehicle.
func (api *RestAPI) vehiclesHandler(w http.ResponseWriter, r *http.Request) {
	vehicles := api.Feed.ActiveVehicles()
	api.sendResponse(w, r, newListData(vehicles))
}
