package app

import (
	"log/slog"
	"net/http"

	"routeanalyzer.g11.org/internal/config"
	"routeanalyzer.g11.org/internal/metrics"
)

// Application wires the services used by serve mode and by one-shot runs.
type Application struct {
	ConfigService  *config.ConfigService
	MetricsService *metrics.MetricsService
	Logger         *slog.Logger
	Version        string
}

// New creates and wires all dependencies for the Application.
func New(cfg *config.Config, logger *slog.Logger, client *http.Client, version string) *Application {
	return &Application{
		ConfigService:  config.NewConfigService(logger, client, cfg),
		MetricsService: metrics.NewMetricsService(logger),
		Logger:         logger,
		Version:        version,
	}
}
