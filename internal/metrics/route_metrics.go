package metrics

import (
	"time"

	"routeanalyzer.g11.org/internal/models"
)

const (
	StatusSuccess = "success"
	StatusFailure = "failure"

	ModeBasic    = "basic"
	ModeAdvanced = "advanced"
)

// recordRouteResults exports the outcome of one analysis run. Gauges of
// absent results are reset to 0 so a previous run does not linger.
func recordRouteResults(source string, waypoints int, results models.AnalysisResults) {
	RouteWaypoints.WithLabelValues(source).Set(float64(waypoints))

	var maxDistance, entries, radius, outside float64
	if r, ok := results.MaxDistanceFromStart.Get(); ok {
		maxDistance = r.DistanceKm
	}
	if r, ok := results.MostFrequentedArea.Get(); ok {
		entries = float64(r.EntriesCount)
		radius = r.AreaRadiusKm
	}
	if r, ok := results.WaypointsOutsideGeofence.Get(); ok {
		outside = float64(r.Count)
	}

	RouteMaxDistanceFromStartKm.WithLabelValues(source).Set(maxDistance)
	RouteMostFrequentedAreaEntries.WithLabelValues(source).Set(entries)
	RouteClusterRadiusKm.WithLabelValues(source).Set(radius)
	RouteWaypointsOutsideGeofence.WithLabelValues(source).Set(outside)
	AnalysisRuns.WithLabelValues(source, StatusSuccess).Inc()
}

func recordFailure(source string) {
	AnalysisRuns.WithLabelValues(source, StatusFailure).Inc()
}

func observeDuration(mode string, d time.Duration) {
	AnalysisDuration.WithLabelValues(mode).Observe(d.Seconds())
}
