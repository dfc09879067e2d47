package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gopkg.in/yaml.v3"
	"routeanalyzer.g11.org/internal/models"
)

// ErrInvalidParameters is wrapped by every parameter validation failure.
var ErrInvalidParameters = errors.New("invalid parameters")

// parametersFile mirrors the custom-parameters YAML document. Pointers
// distinguish a missing key from a zero value.
type parametersFile struct {
	EarthRadiusKm              *float64 `yaml:"earthRadiusKm"`
	GeofenceCenterLatitude     *float64 `yaml:"geofenceCenterLatitude"`
	GeofenceCenterLongitude    *float64 `yaml:"geofenceCenterLongitude"`
	GeofenceRadiusKm           *float64 `yaml:"geofenceRadiusKm"`
	MostFrequentedAreaRadiusKm *float64 `yaml:"mostFrequentedAreaRadiusKm"`
	StationarySpeedKmh         *float64 `yaml:"stationarySpeedKmh"`
	StationaryMinDurationSec   *float64 `yaml:"stationaryMinDurationSec"`
}

// ParseParameters decodes a YAML parameters document and validates it.
//
// earthRadiusKm, geofenceCenterLatitude, geofenceCenterLongitude and
// geofenceRadiusKm are required. mostFrequentedAreaRadiusKm may be left
// out, in which case the analysis derives it from the route.
func ParseParameters(data []byte) (models.Parameters, error) {
	var file parametersFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return models.Parameters{}, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}

	var missing []string
	required := []struct {
		key   string
		value *float64
	}{
		{"earthRadiusKm", file.EarthRadiusKm},
		{"geofenceCenterLatitude", file.GeofenceCenterLatitude},
		{"geofenceCenterLongitude", file.GeofenceCenterLongitude},
		{"geofenceRadiusKm", file.GeofenceRadiusKm},
	}
	for _, r := range required {
		if r.value == nil {
			missing = append(missing, r.key)
		}
	}
	if len(missing) > 0 {
		return models.Parameters{}, fmt.Errorf("%w: missing required keys: %s", ErrInvalidParameters, strings.Join(missing, ", "))
	}

	params := models.Parameters{
		EarthRadiusKm: *file.EarthRadiusKm,
		GeoFence: models.GeoFence{
			CenterLatitude:  *file.GeofenceCenterLatitude,
			CenterLongitude: *file.GeofenceCenterLongitude,
			RadiusKm:        *file.GeofenceRadiusKm,
		},
		MostFrequentedAreaRadiusKm: optionalFrom(file.MostFrequentedAreaRadiusKm),
		StationarySpeedKmh:         optionalFrom(file.StationarySpeedKmh),
		StationaryMinDurationSec:   optionalFrom(file.StationaryMinDurationSec),
	}

	if err := ValidateParameters(params); err != nil {
		return models.Parameters{}, err
	}
	return params, nil
}

func optionalFrom(v *float64) models.Optional[float64] {
	if v == nil {
		return models.None[float64]()
	}
	return models.Some(*v)
}

// ValidateParameters checks the field constraints the analysis engine
// relies on. All problems are reported at once.
func ValidateParameters(p models.Parameters) error {
	var errs []string

	if !(p.EarthRadiusKm > 0) || math.IsInf(p.EarthRadiusKm, 0) {
		errs = append(errs, fmt.Sprintf("earthRadiusKm must be a positive number, got %v", p.EarthRadiusKm))
	}
	if math.IsNaN(p.GeoFence.CenterLatitude) || p.GeoFence.CenterLatitude < -90 || p.GeoFence.CenterLatitude > 90 {
		errs = append(errs, fmt.Sprintf("geofenceCenterLatitude must be within [-90, 90], got %v", p.GeoFence.CenterLatitude))
	}
	if math.IsNaN(p.GeoFence.CenterLongitude) || p.GeoFence.CenterLongitude < -180 || p.GeoFence.CenterLongitude > 180 {
		errs = append(errs, fmt.Sprintf("geofenceCenterLongitude must be within [-180, 180], got %v", p.GeoFence.CenterLongitude))
	}
	if !(p.GeoFence.RadiusKm >= 0) {
		errs = append(errs, fmt.Sprintf("geofenceRadiusKm must not be negative, got %v", p.GeoFence.RadiusKm))
	}
	if r, ok := p.MostFrequentedAreaRadiusKm.Get(); ok && !(r >= 0) {
		errs = append(errs, fmt.Sprintf("mostFrequentedAreaRadiusKm must not be negative, got %v", r))
	}
	if s, ok := p.StationarySpeedKmh.Get(); ok && !(s >= 0) {
		errs = append(errs, fmt.Sprintf("stationarySpeedKmh must not be negative, got %v", s))
	}
	if d, ok := p.StationaryMinDurationSec.Get(); ok && !(d >= 0) {
		errs = append(errs, fmt.Sprintf("stationaryMinDurationSec must not be negative, got %v", d))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w:\n  - %s", ErrInvalidParameters, strings.Join(errs, "\n  - "))
	}
	return nil
}
