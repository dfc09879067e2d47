package models

// MaxDistanceFromStart is the waypoint farthest from the first waypoint of a
// sequence, with that distance.
type MaxDistanceFromStart struct {
	Waypoint   Waypoint `json:"waypoint"`
	DistanceKm float64  `json:"distanceKm"`
}

// MostFrequentedArea is the waypoint whose neighbourhood of AreaRadiusKm
// holds the most waypoints of the sequence, itself included.
type MostFrequentedArea struct {
	CentralWaypoint Waypoint `json:"centralWaypoint"`
	AreaRadiusKm    float64  `json:"areaRadiusKm"`
	EntriesCount    int      `json:"entriesCount"`
}

// WaypointsOutsideGeofence lists the waypoints lying outside a geofence, in
// input order. CentralWaypoint is the fence center with a zero timestamp.
type WaypointsOutsideGeofence struct {
	CentralWaypoint Waypoint   `json:"centralWaypoint"`
	AreaRadiusKm    float64    `json:"areaRadiusKm"`
	Count           int        `json:"count"`
	Waypoints       []Waypoint `json:"waypoints"`
}

// AnalysisResults bundles the three primary queries of one run.
type AnalysisResults struct {
	MaxDistanceFromStart     Optional[MaxDistanceFromStart]     `json:"maxDistanceFromStart"`
	MostFrequentedArea       Optional[MostFrequentedArea]       `json:"mostFrequentedArea"`
	WaypointsOutsideGeofence Optional[WaypointsOutsideGeofence] `json:"waypointsOutsideGeofence"`
}

// StationaryPeriod is a time span during which the route did not move
// faster than the stationary speed threshold.
type StationaryPeriod struct {
	StartTimestamp float64 `json:"startTimestamp"`
	EndTimestamp   float64 `json:"endTimestamp"`
}

// Duration returns the length of the period in timestamp units.
func (s StationaryPeriod) Duration() float64 {
	return s.EndTimestamp - s.StartTimestamp
}

// BoundingBox defines the corners of a lat/lon box.
type BoundingBox struct {
	MinLat float64 `json:"minLat"`
	MaxLat float64 `json:"maxLat"`
	MinLon float64 `json:"minLon"`
	MaxLon float64 `json:"maxLon"`
}

// Contains checks whether the given latitude and longitude are within the bounding box.
func (b BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// AdvancedAnalysisResults holds the extended route statistics.
type AdvancedAnalysisResults struct {
	TotalDistanceKm   Optional[float64]     `json:"totalDistanceKm"`
	AverageSpeedKmh   Optional[float64]     `json:"averageSpeed"`
	MaxSpeedKmh       Optional[float64]     `json:"maxSpeed"`
	GeofenceEntry     Optional[Waypoint]    `json:"geofenceEntry"`
	GeofenceExit      Optional[Waypoint]    `json:"geofenceExit"`
	StationaryPeriods []StationaryPeriod    `json:"stationaryPeriods"`
	BoundingBox       Optional[BoundingBox] `json:"boundingBox"`
	DistinctCells     int                   `json:"distinctCells"`
}
