package analysis

import "routeanalyzer.g11.org/internal/models"

const (
	// MinClusterRadiusKm is the cluster radius used for empty or short routes.
	MinClusterRadiusKm = 0.1

	// shortRouteKm is the extent under which the minimum radius applies.
	shortRouteKm = 1.0

	// clusterRadiusDivisor scales the route extent down to a neighbourhood.
	clusterRadiusDivisor = 10.0
)

// DefaultClusterRadius derives a clustering radius from the route extent:
// a tenth of the max distance from start, or MinClusterRadiusKm when the
// route is empty or stays within 1 km of its start.
func DefaultClusterRadius(waypoints []models.Waypoint, earthRadiusKm float64) float64 {
	maxDistance, ok := MaxDistanceFromStart(waypoints, earthRadiusKm).Get()
	if !ok {
		return MinClusterRadiusKm
	}
	if maxDistance.DistanceKm < shortRouteKm {
		return MinClusterRadiusKm
	}
	return maxDistance.DistanceKm / clusterRadiusDivisor
}
