package estimator

import (
	"fmt"

	"tripwatch.villagelink.org/internal/models"
)

// RouteKey names a route by its endpoints, the same identity the matching
// heuristic uses. Demand history is keyed by it.
func RouteKey(path []string) string {
	if len(path) == 0 {
		return ""
	}
	return fmt.Sprintf("%s|%s", path[0], path[len(path)-1])
}

// ResolveCurrentStop re-maps a vehicle's stop pointer onto a caller-supplied
// desired path. A viewer may care about a sub-route of a longer vehicle
// route, so the vehicle's current stop is located by name within the desired
// path; when it does not appear there the index defaults to 0.
func ResolveCurrentStop(vehiclePath []string, vehicleIndex int, desiredPath []string) int {
	if vehicleIndex < 0 || vehicleIndex >= len(vehiclePath) {
		return 0
	}
	current := vehiclePath[vehicleIndex]
	for i, stop := range desiredPath {
		if stop == current {
			return i
		}
	}
	return 0
}

// MatchesRoute reports whether a vehicle serves the desired path. A vehicle
// matches when its own stop list contains the desired path's first or last
// stop name. This endpoint-inclusion test is an intentional approximation
// carried over from production behavior: it can admit a vehicle that merely
// passes through one endpoint on an unrelated route.
func MatchesRoute(vehiclePath, desiredPath []string) bool {
	if len(desiredPath) < 2 {
		return false
	}
	first := desiredPath[0]
	last := desiredPath[len(desiredPath)-1]
	for _, stop := range vehiclePath {
		if stop == first || stop == last {
			return true
		}
	}
	return false
}

// FilterVehicles returns the vehicles whose paths match the desired path.
func FilterVehicles(vehicles []models.VehicleTelemetry, desiredPath []string) []models.VehicleTelemetry {
	var matched []models.VehicleTelemetry
	for _, v := range vehicles {
		if MatchesRoute(v.Path, desiredPath) {
			matched = append(matched, v)
		}
	}
	return matched
}
