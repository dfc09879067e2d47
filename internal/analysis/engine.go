package analysis

import "routeanalyzer.g11.org/internal/models"

// ResolveParameters fills in the cluster radius from the route extent when
// params leaves it unset. A configured radius is returned unchanged.
func ResolveParameters(waypoints []models.Waypoint, params models.Parameters) models.Parameters {
	if params.MostFrequentedAreaRadiusKm.IsSome() {
		return params
	}
	return params.WithClusterRadius(DefaultClusterRadius(waypoints, params.EarthRadiusKm))
}

// Analyze runs the three primary queries over the waypoints.
//
// The cluster radius is resolved before the clustering query runs; every
// other parameter is used as given. Analyze never fails: an empty sequence
// yields an AnalysisResults whose fields are all None.
func Analyze(waypoints []models.Waypoint, params models.Parameters) models.AnalysisResults {
	resolved := ResolveParameters(waypoints, params)
	radiusKm := resolved.MostFrequentedAreaRadiusKm.MustGet()

	return models.AnalysisResults{
		MaxDistanceFromStart:     MaxDistanceFromStart(waypoints, resolved.EarthRadiusKm),
		MostFrequentedArea:       MostFrequentedArea(waypoints, radiusKm, resolved.EarthRadiusKm),
		WaypointsOutsideGeofence: WaypointsOutsideGeofence(waypoints, resolved.GeoFence, resolved.EarthRadiusKm),
	}
}

// AnalyzeAdvanced runs the extended route statistics.
func AnalyzeAdvanced(waypoints []models.Waypoint, params models.Parameters) models.AdvancedAnalysisResults {
	entry, exit := EntryExitPoints(waypoints, params.GeoFence, params.EarthRadiusKm)
	speeds := ComputeSpeeds(waypoints, params.EarthRadiusKm)
	periods := StationaryPeriods(
		waypoints,
		params.EarthRadiusKm,
		params.StationarySpeedKmh.OrElse(models.DefaultStationarySpeedKmh),
		params.StationaryMinDurationSec.OrElse(models.DefaultStationaryMinDurationSec),
	)

	return models.AdvancedAnalysisResults{
		TotalDistanceKm:   TotalDistanceTraveled(waypoints, params.EarthRadiusKm),
		AverageSpeedKmh:   speeds.Average,
		MaxSpeedKmh:       speeds.Max,
		GeofenceEntry:     entry,
		GeofenceExit:      exit,
		StationaryPeriods: periods,
		BoundingBox:       boundingBox(waypoints),
		DistinctCells:     distinctCells(waypoints),
	}
}
