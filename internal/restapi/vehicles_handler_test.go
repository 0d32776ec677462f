package restapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVehiclesHandlerRequiresValidApiKey(t *testing.T) {
	api := createTestApi(t)

	resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/track/vehicles.json?key=invalid")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, model.Code)
	assert.Equal(t, "permission denied", model.Text)
}

func TestVehiclesHandlerEndToEnd(t *testing.T) {
	api := createTestApi(t)
	vehicle := applyTestVehicle(t, api)

	resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/track/vehicles.json?key=TEST")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, http.StatusOK, model.Code)
	assert.Equal(t, "OK", model.Text)

	data, ok := model.Data.(map[string]interface{})
	assert.True(t, ok)

	list, ok := data["list"].([]interface{})
	assert.True(t, ok, "list should exist and be an array")
	assert.Len(t, list, 1)

	entry, ok := list[0].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, vehicle.VehicleID, entry["vehicleId"])
	assert.Equal(t, "BUS", entry["vehicleKind"])
	assert.Equal(t, float64(vehicle.Occupancy), entry["occupancy"])
}

func TestVehiclesHandlerEmptyFeed(t *testing.T) {
	api := createTestApi(t)

	resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/track/vehicles.json?key=TEST")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	data, ok := model.Data.(map[string]interface{})
	assert.True(t, ok)

	list, ok := data["list"].([]interface{})
	assert.True(t, ok)
	assert.Empty(t, list)
}
