package models

// Default values applied when the optional tuning parameters are missing.
const (
	DefaultEarthRadiusKm            = 6371.0
	DefaultStationarySpeedKmh       = 1.0
	DefaultStationaryMinDurationSec = 60.0
)

// GeoFence is a circular region on the sphere.
type GeoFence struct {
	CenterLatitude  float64 `json:"centerLatitude"`
	CenterLongitude float64 `json:"centerLongitude"`
	RadiusKm        float64 `json:"radiusKm"`
}

// Parameters holds the settings of one analysis run. It is passed by value
// and never mutated once a run starts.
//
// MostFrequentedAreaRadiusKm is the one optional field the analysis engine
// resolves on its own (see analysis.ResolveParameters).
type Parameters struct {
	EarthRadiusKm              float64           `json:"earthRadiusKm"`
	GeoFence                   GeoFence          `json:"geoFence"`
	MostFrequentedAreaRadiusKm Optional[float64] `json:"mostFrequentedAreaRadiusKm"`
	StationarySpeedKmh         Optional[float64] `json:"stationarySpeedKmh"`
	StationaryMinDurationSec   Optional[float64] `json:"stationaryMinDurationSec"`
}

// WithClusterRadius returns a copy of p with the cluster radius set.
func (p Parameters) WithClusterRadius(radiusKm float64) Parameters {
	p.MostFrequentedAreaRadiusKm = Some(radiusKm)
	return p
}
