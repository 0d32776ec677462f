package restapi

import (
	"net/http"

	"tripwatch.villagelink.org/internal/tripview"
	"tripwatch.villagelink.org/internal/utils"
)

// tripViewHandler composes the live tracking widget for the path named in
// the stops query parameter (comma-separated, in travel order).
func (api *RestAPI) tripViewHandler(w http.ResponseWriter, r *http.Request) {
	queryParams := r.URL.Query()

	stops := utils.ParseStopList(queryParams.Get("stops"))
	fieldErrors := map[string][]string{}
	for _, stop := range stops {
		if err := utils.ValidateStopName(stop); err != nil {
			fieldErrors["stops"] = append(fieldErrors["stops"], err.Error())
		}
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	opts := tripview.Options{
		DesiredPath: stops,
		Layout:      tripview.ParseLayout(queryParams.Get("layout")),
		ShowHeader:  queryParams.Get("header") != "false",
	}

	widget := api.Widgets.Widget(opts)
	view := widget.Refresh(api.Feed.ActiveVehicles())
	if api.Metrics != nil {
		api.Metrics.ViewsComposed.Inc()
	}

	api.sendResponse(w, r, newEntryData(view))
}
