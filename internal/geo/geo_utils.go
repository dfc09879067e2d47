package geo

import (
	"math"

	"github.com/golang/geo/s2"
	"routeanalyzer.g11.org/internal/models"
)

// EarthRadiusKm represents the mean radius of the Earth in kilometers.
//
// This value (6,371 km) is defined as the Earth's volumetric mean radius,
// which is commonly used for general geospatial calculations and spherical approximations.
//
// Reference: NASA Planetary Fact Sheet – Earth
// https://nssdc.gsfc.nasa.gov/planetary/factsheet/earthfact.html
const EarthRadiusKm = models.DefaultEarthRadiusKm

// DistanceKm returns the great-circle distance between two points given in
// degrees, on a sphere of the given radius.
//
// s2.LatLng.Distance implements the haversine formula, so the result is
// sphereRadiusKm * 2 * atan2(sqrt(a), sqrt(1-a)). NaN inputs yield NaN.
func DistanceKm(lat1, lon1, lat2, lon2, sphereRadiusKm float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * sphereRadiusKm
}

// WaypointDistanceKm is DistanceKm between two waypoints.
func WaypointDistanceKm(a, b models.Waypoint, sphereRadiusKm float64) float64 {
	return DistanceKm(a.Latitude, a.Longitude, b.Latitude, b.Longitude, sphereRadiusKm)
}

// IsInside reports whether (lat, lon) lies within radiusKm of the center.
// The boundary is inclusive.
func IsInside(centerLat, centerLon, radiusKm, lat, lon, sphereRadiusKm float64) bool {
	return DistanceKm(centerLat, centerLon, lat, lon, sphereRadiusKm) <= radiusKm
}

// FenceContains reports whether the waypoint lies inside the fence.
func FenceContains(fence models.GeoFence, w models.Waypoint, sphereRadiusKm float64) bool {
	return IsInside(fence.CenterLatitude, fence.CenterLongitude, fence.RadiusKm, w.Latitude, w.Longitude, sphereRadiusKm)
}

// GeofencesIntersect reports whether two circular fences overlap or touch.
func GeofencesIntersect(a, b models.GeoFence, sphereRadiusKm float64) bool {
	d := DistanceKm(a.CenterLatitude, a.CenterLongitude, b.CenterLatitude, b.CenterLongitude, sphereRadiusKm)
	return d <= a.RadiusKm+b.RadiusKm
}

// IsValidLatLon returns true if the given latitude and longitude values
// fall within the valid geographic coordinate bounds and are finite.
//
// Latitude must be between -90 and 90 degrees, and longitude must be
// between -180 and 180 degrees. Unlike GTFS feeds, GPS logs legitimately
// contain (0,0) so it is accepted.
func IsValidLatLon(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return false
	}
	return true
}

// ComputeBoundingBox computes the bounding box of a waypoint sequence.
// ok is false for an empty sequence.
func ComputeBoundingBox(waypoints []models.Waypoint) (bbox models.BoundingBox, ok bool) {
	if len(waypoints) == 0 {
		return models.BoundingBox{}, false
	}

	minLat := math.MaxFloat64
	maxLat := -math.MaxFloat64
	minLon := math.MaxFloat64
	maxLon := -math.MaxFloat64

	for _, w := range waypoints {
		if w.Latitude < minLat {
			minLat = w.Latitude
		}
		if w.Latitude > maxLat {
			maxLat = w.Latitude
		}
		if w.Longitude < minLon {
			minLon = w.Longitude
		}
		if w.Longitude > maxLon {
			maxLon = w.Longitude
		}
	}

	return models.BoundingBox{
		MinLat: minLat,
		MaxLat: maxLat,
		MinLon: minLon,
		MaxLon: maxLon,
	}, true
}
