package app

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"routeanalyzer.g11.org/internal/config"
	"routeanalyzer.g11.org/internal/geo"
	"routeanalyzer.g11.org/internal/models"
)

func testParameters() models.Parameters {
	return models.Parameters{
		EarthRadiusKm: geo.EarthRadiusKm,
		GeoFence: models.GeoFence{
			CenterLatitude:  45.0703,
			CenterLongitude: 7.6869,
			RadiusKm:        0.5,
		},
	}
}

// newTestApplication returns an Application whose default parameters are
// params, or none when params is nil.
func newTestApplication(t *testing.T, params *models.Parameters) *Application {
	t.Helper()

	cfg := config.NewConfig(4000, "testing", params)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(cfg, logger, http.DefaultClient, "test-version")
}
