package restapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"tripwatch.villagelink.org/internal/app"
	"tripwatch.villagelink.org/internal/appconf"
	"tripwatch.villagelink.org/internal/estimator"
	"tripwatch.villagelink.org/internal/feed"
	"tripwatch.villagelink.org/internal/logging"
	"tripwatch.villagelink.org/internal/models"
	"tripwatch.villagelink.org/internal/tripview"
)

// createTestApi creates a RestAPI with an in-memory feed for use in tests.
func createTestApi(t *testing.T) *RestAPI {
	t.Helper()

	manager := feed.NewManager(nil)
	composer := tripview.NewComposer(estimator.DefaultConfig(), nil)
	registry := tripview.NewRegistry(composer, manager, nil, slog.Default())
	t.Cleanup(registry.Shutdown)

	application := &app.Application{
		Config: appconf.Config{
			Env:     appconf.EnvFlagToEnvironment("test"),
			ApiKeys: []string{"TEST"},
		},
		Logger:          slog.Default(),
		Feed:            manager,
		EstimatorConfig: estimator.DefaultConfig(),
		Demand:          estimator.NewDemandPredictor(),
		Composer:        composer,
		Widgets:         registry,
	}

	return &RestAPI{Application: application}
}

// applyTestVehicle seeds the feed with one vehicle on the Rampur-Devgarh run.
func applyTestVehicle(t *testing.T, api *RestAPI) models.VehicleTelemetry {
	t.Helper()

	v := models.VehicleTelemetry{
		VehicleID:        "bus-1",
		Position:         models.Coordinate{Lat: 26.85, Lon: 80.95},
		Heading:          45,
		SpeedKmh:         0,
		Occupancy:        25,
		Capacity:         40,
		Kind:             models.VehicleKindBus,
		Path:             []string{"Rampur", "Sitapur", "Govindpur", "Devgarh"},
		CurrentStopIndex: 1,
	}
	require.True(t, api.Feed.Apply(v))
	return v
}

// serveApiAndRetrieveEndpoint sets up a test server, makes a request to the
// specified endpoint, and returns the response and decoded envelope.
func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, models.ResponseModel) {
	t.Helper()

	server := httptest.NewServer(api.Router())
	defer server.Close()

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer logging.SafeCloseWithLogging(resp.Body,
		slog.Default().With(slog.String("component", "test")),
		"http_response_body")

	var response models.ResponseModel
	err = json.NewDecoder(resp.Body).Decode(&response)
	require.NoError(t, err)

	return resp, response
}
