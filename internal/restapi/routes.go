package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

type handlerFunc func(w http.ResponseWriter, r *http.Request)

func validateAPIKey(api *RestAPI, finalHandler handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	}
}

// Router builds the API routing table. Every data endpoint sits behind the
// api-key check, rate limiting, request logging, and response compression.
func (api *RestAPI) Router() http.Handler {
	router := httprouter.New()

	register := func(path string, handler handlerFunc) {
		router.HandlerFunc(http.MethodGet, path, validateAPIKey(api, handler))
	}

	register("/api/track/vehicles.json", api.vehiclesHandler)
	register("/api/track/vehicles-for-route.json", api.vehiclesForRouteHandler)
	register("/api/track/departure-estimate/:id", api.departureEstimateHandler)
	register("/api/track/demand-for-route/:id", api.demandForRouteHandler)
	register("/api/track/trip-view.json", api.tripViewHandler)

	router.HandlerFunc(http.MethodGet, "/health", api.healthHandler)
	if api.Metrics != nil {
		router.Handler(http.MethodGet, "/metrics", api.Metrics.Handler())
	}

	var handler http.Handler = router
	handler = api.requestLoggingMiddleware(handler)
	if api.rateLimiter != nil {
		handler = api.rateLimiter(handler)
	}
	handler = CompressionMiddleware(handler)
	return handler
}
