package analysis

import (
	"routeanalyzer.g11.org/internal/geo"
	"routeanalyzer.g11.org/internal/models"
)

// MaxDistanceFromStart returns the waypoint farthest from the first waypoint
// of the sequence, together with that distance.
//
// The scan is stable: on ties the earliest waypoint wins. The start itself
// takes part with distance 0, so a stationary route returns the start.
// Returns None for an empty sequence.
func MaxDistanceFromStart(waypoints []models.Waypoint, earthRadiusKm float64) models.Optional[models.MaxDistanceFromStart] {
	if len(waypoints) == 0 {
		return models.None[models.MaxDistanceFromStart]()
	}

	start := waypoints[0]
	best := models.MaxDistanceFromStart{Waypoint: start, DistanceKm: 0}

	for _, w := range waypoints {
		d := geo.WaypointDistanceKm(start, w, earthRadiusKm)
		if d > best.DistanceKm {
			best = models.MaxDistanceFromStart{Waypoint: w, DistanceKm: d}
		}
	}

	return models.Some(best)
}

// MostFrequentedArea finds the waypoint whose radiusKm neighbourhood contains
// the most waypoints of the sequence (itself included).
//
// Candidates are scanned in sequence order and a candidate only replaces the
// current best when its count is strictly greater, so ties go to the first
// occurrence. This is O(n²) in the number of waypoints.
// Returns None for an empty sequence.
func MostFrequentedArea(waypoints []models.Waypoint, radiusKm, earthRadiusKm float64) models.Optional[models.MostFrequentedArea] {
	maxCount := 0
	var center models.Waypoint
	found := false

	for _, candidate := range waypoints {
		count := 0
		for _, w := range waypoints {
			if geo.IsInside(candidate.Latitude, candidate.Longitude, radiusKm, w.Latitude, w.Longitude, earthRadiusKm) {
				count++
			}
		}

		if count > maxCount {
			maxCount = count
			center = candidate
			found = true
		}
	}

	if !found {
		return models.None[models.MostFrequentedArea]()
	}

	return models.Some(models.MostFrequentedArea{
		CentralWaypoint: center,
		AreaRadiusKm:    radiusKm,
		EntriesCount:    maxCount,
	})
}

// WaypointsOutsideGeofence returns the waypoints farther than fence.RadiusKm
// from the fence center, in input order.
//
// Returns None when no waypoint is outside, which includes the empty
// sequence.
func WaypointsOutsideGeofence(waypoints []models.Waypoint, fence models.GeoFence, earthRadiusKm float64) models.Optional[models.WaypointsOutsideGeofence] {
	var outside []models.Waypoint
	for _, w := range waypoints {
		if !geo.FenceContains(fence, w, earthRadiusKm) {
			outside = append(outside, w)
		}
	}

	if len(outside) == 0 {
		return models.None[models.WaypointsOutsideGeofence]()
	}

	return models.Some(models.WaypointsOutsideGeofence{
		CentralWaypoint: models.NewWaypoint(0, fence.CenterLatitude, fence.CenterLongitude),
		AreaRadiusKm:    fence.RadiusKm,
		Count:           len(outside),
		Waypoints:       outside,
	})
}

// TotalDistanceTraveled sums the distances between consecutive waypoints.
// Returns None for an empty sequence and 0 for a single waypoint.
func TotalDistanceTraveled(waypoints []models.Waypoint, earthRadiusKm float64) models.Optional[float64] {
	if len(waypoints) == 0 {
		return models.None[float64]()
	}

	total := 0.0
	for i := 1; i < len(waypoints); i++ {
		total += geo.WaypointDistanceKm(waypoints[i-1], waypoints[i], earthRadiusKm)
	}
	return models.Some(total)
}
