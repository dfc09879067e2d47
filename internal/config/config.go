package config

import (
	"sync"

	"routeanalyzer.g11.org/internal/models"
)

// DefaultMaxWaypoints bounds the size of a single analysis request; the
// clustering query is quadratic in the number of waypoints.
const DefaultMaxWaypoints = 20000

// Config holds all the configuration settings for our application.
type Config struct {
	Port         int
	Env          string
	MaxWaypoints int
	Mu           sync.RWMutex
	Parameters   *models.Parameters
}

// NewConfig creates a new instance of a Config struct.
// params may be nil when no default parameters were configured.
func NewConfig(port int, env string, params *models.Parameters) *Config {
	return &Config{
		Port:         port,
		Env:          env,
		MaxWaypoints: DefaultMaxWaypoints,
		Parameters:   params,
	}
}

// UpdateParameters safely replaces the default analysis parameters.
func (cfg *Config) UpdateParameters(params models.Parameters) {
	cfg.Mu.Lock()
	defer cfg.Mu.Unlock()
	cfg.Parameters = &params
}

// GetParameters safely returns a copy of the default analysis parameters.
// ok is false when none are configured.
func (cfg *Config) GetParameters() (params models.Parameters, ok bool) {
	cfg.Mu.RLock()
	defer cfg.Mu.RUnlock()
	if cfg.Parameters == nil {
		return models.Parameters{}, false
	}
	return *cfg.Parameters, true
}
