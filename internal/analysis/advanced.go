package analysis

import (
	"routeanalyzer.g11.org/internal/geo"
	"routeanalyzer.g11.org/internal/models"
)

const secondsPerHour = 3600.0

// EntryExitPoints scans the route once and reports the first waypoint at
// which it enters the fence and the last waypoint at which it leaves it.
//
// The starting state is taken from the first waypoint, so a route that
// starts inside has no entry until it has left and come back.
func EntryExitPoints(waypoints []models.Waypoint, fence models.GeoFence, earthRadiusKm float64) (entry, exit models.Optional[models.Waypoint]) {
	if len(waypoints) == 0 {
		return entry, exit
	}

	wasInside := geo.FenceContains(fence, waypoints[0], earthRadiusKm)
	for _, w := range waypoints[1:] {
		inside := geo.FenceContains(fence, w, earthRadiusKm)
		switch {
		case !wasInside && inside && entry.IsNone():
			entry = models.Some(w)
		case wasInside && !inside:
			exit = models.Some(w)
		}
		wasInside = inside
	}
	return entry, exit
}

// GeofencesIntersect reports whether two fences overlap.
func GeofencesIntersect(a, b models.GeoFence, earthRadiusKm float64) bool {
	return geo.GeofencesIntersect(a, b, earthRadiusKm)
}

// SpeedStats summarises the speeds between consecutive waypoints in km/h.
type SpeedStats struct {
	Average models.Optional[float64]
	Max     models.Optional[float64]
}

// legSpeedKmh returns the speed between two waypoints whose timestamps are
// in seconds. ok is false when the time delta is not positive.
func legSpeedKmh(a, b models.Waypoint, earthRadiusKm float64) (speed, distance, seconds float64, ok bool) {
	seconds = b.Timestamp - a.Timestamp
	if seconds <= 0 {
		return 0, 0, seconds, false
	}
	distance = geo.WaypointDistanceKm(a, b, earthRadiusKm)
	return distance / (seconds / secondsPerHour), distance, seconds, true
}

// ComputeSpeeds returns the average speed (total distance over total time)
// and the highest leg speed. Legs with a non-positive time delta are
// ignored; both values are None when no leg is usable.
func ComputeSpeeds(waypoints []models.Waypoint, earthRadiusKm float64) SpeedStats {
	var stats SpeedStats
	totalKm, totalSec := 0.0, 0.0
	maxSpeed := 0.0
	legs := 0

	for i := 1; i < len(waypoints); i++ {
		speed, distance, seconds, ok := legSpeedKmh(waypoints[i-1], waypoints[i], earthRadiusKm)
		if !ok {
			continue
		}
		legs++
		totalKm += distance
		totalSec += seconds
		if speed > maxSpeed {
			maxSpeed = speed
		}
	}

	if legs == 0 {
		return stats
	}
	stats.Average = models.Some(totalKm / (totalSec / secondsPerHour))
	stats.Max = models.Some(maxSpeed)
	return stats
}

// StationaryPeriods returns the maximal runs of consecutive legs slower
// than thresholdKmh that last at least minDurationSec. A leg with a
// non-positive time delta ends the current run.
func StationaryPeriods(waypoints []models.Waypoint, earthRadiusKm, thresholdKmh, minDurationSec float64) []models.StationaryPeriod {
	periods := []models.StationaryPeriod{}
	var current *models.StationaryPeriod

	closeRun := func() {
		if current != nil && current.Duration() >= minDurationSec {
			periods = append(periods, *current)
		}
		current = nil
	}

	for i := 1; i < len(waypoints); i++ {
		prev, next := waypoints[i-1], waypoints[i]
		speed, _, _, ok := legSpeedKmh(prev, next, earthRadiusKm)
		if !ok || speed >= thresholdKmh {
			closeRun()
			continue
		}
		if current == nil {
			current = &models.StationaryPeriod{StartTimestamp: prev.Timestamp}
		}
		current.EndTimestamp = next.Timestamp
	}
	closeRun()

	return periods
}

func boundingBox(waypoints []models.Waypoint) models.Optional[models.BoundingBox] {
	bbox, ok := geo.ComputeBoundingBox(waypoints)
	if !ok {
		return models.None[models.BoundingBox]()
	}
	return models.Some(bbox)
}

func distinctCells(waypoints []models.Waypoint) int {
	return geo.CountDistinctCells(waypoints, geo.CellLevel)
}
