package config

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"routeanalyzer.g11.org/internal/models"
	"routeanalyzer.g11.org/internal/report"
	"routeanalyzer.g11.org/internal/utils"
)

// ConfigService holds dependencies and provides config operations.
//
// It owns the default analysis parameters used by serve mode: they are
// loaded once at startup and, when they come from a URL, refreshed on a
// ticker. Backoffs tracks failed refreshes per URL so a down host is not
// hammered every interval.
type ConfigService struct {
	Logger   *slog.Logger
	Client   *http.Client
	Config   *Config
	Backoffs *BackoffStore
}

// NewConfigService creates a new ConfigService instance with the provided logger and HTTP client.
func NewConfigService(logger *slog.Logger, client *http.Client, config *Config) *ConfigService {
	return &ConfigService{
		Logger:   logger,
		Client:   client,
		Config:   config,
		Backoffs: NewBackoffStore(),
	}
}

// RefreshParameters re-fetches the parameters at url every interval until
// ctx is canceled. A successful fetch replaces Config's parameters under its
// mutex; a failed one is reported and keeps the previous parameters, with
// the next attempt delayed by the backoff store.
func (cs *ConfigService) RefreshParameters(ctx context.Context, url, authUser, authPass string, interval time.Duration, maxRetries int) {
	refreshParameters(ctx, cs.Client, url, authUser, authPass, cs.Config, cs.Backoffs, cs.Logger, interval, maxRetries)
}

// exported helper functions

// LoadParametersFromFile loads and validates the parameters file.
func LoadParametersFromFile(filePath string) (models.Parameters, error) {
	params, err := loadParametersFromFile(filePath)
	if err != nil {
		err := fmt.Errorf("failed to load parameters from file %s: %w", filePath, err)
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags:  utils.MakeMap("file_path", filePath),
			Level: sentry.LevelError,
		})
		return models.Parameters{}, err
	}
	return params, nil
}

// LoadParametersFromURL loads and validates a remote parameters document.
func LoadParametersFromURL(ctx context.Context, client *http.Client, url, authUser, authPass string, maxRetries int) (models.Parameters, error) {
	params, err := loadParametersFromURL(ctx, client, url, authUser, authPass, maxRetries)
	if err != nil {
		err := fmt.Errorf("failed to load parameters from URL %s: %w", url, err)
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags:  utils.MakeMap("params_url", url),
			Level: sentry.LevelError,
		})
		return models.Parameters{}, err
	}
	return params, nil
}
