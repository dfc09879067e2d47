package models

// Waypoint is a single timestamped position sample. Latitude and longitude
// are in degrees; the timestamp unit is whatever the source provides
// (Unix seconds for CSV and GPX input).
type Waypoint struct {
	Timestamp float64 `json:"timestamp"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NewWaypoint creates a Waypoint.
func NewWaypoint(timestamp, latitude, longitude float64) Waypoint {
	return Waypoint{
		Timestamp: timestamp,
		Latitude:  latitude,
		Longitude: longitude,
	}
}
