package restapi

import (
	"net/http"
	"time"

	"tripwatch.villagelink.org/internal/logging"
)

// statusRecorder captures the response status code for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// requestLoggingMiddleware logs every request with method, path, status and
// duration, and feeds the request duration histogram.
func (api *RestAPI) requestLoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		elapsed := time.Since(start)
		logging.LogHTTPRequest(api.Logger, r.Method, r.URL.Path, recorder.status, float64(elapsed.Milliseconds()))
		if api.Metrics != nil {
			api.Metrics.ObserveRequest(r.URL.Path, elapsed)
		}
	})
}
