package restapi

import (
	"encoding/json"
	"net/http"

	"tripwatch.villagelink.org/internal/models"
)

// sendResponse writes data wrapped in the standard success envelope.
func (api *RestAPI) sendResponse(w http.ResponseWriter, r *http.Request, data interface{}) {
	response := models.NewOKResponse(data)

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		api.Logger.Error("failed to encode response", "error", err)
	}
}

// listData is the envelope body for list endpoints.
type listData struct {
	List  interface{} `json:"list"`
	Limit bool        `json:"limitExceeded"`
}

func newListData(list interface{}) listData {
	return listData{List: list}
}

// entryData is the envelope body for single-entry endpoints.
type entryData struct {
	Entry interface{} `json:"entry"`
}

func newEntryData(entry interface{}) entryData {
	return entryData{Entry: entry}
}
