package config

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"routeanalyzer.g11.org/internal/models"
	"routeanalyzer.g11.org/internal/report"
	"routeanalyzer.g11.org/internal/utils"
)

// ValidateParamsFlags ensures that exactly one parameters source is specified:
// either a local file "--params", or a remote URL "--params-url".
func ValidateParamsFlags(paramsFile, paramsURL *string) error {
	if *paramsFile == "" && *paramsURL == "" {
		return fmt.Errorf("no parameters provided, either --params or --params-url must be specified")
	}
	if (*paramsFile != "" && *paramsURL != "") || len(flag.Args()) > 0 {
		return fmt.Errorf("only one of --params or --params-url can be specified")
	}
	return nil
}

// refreshParameters periodically fetches the parameters document from a
// remote URL and replaces the default parameters held by cfg.
//
// Failures are logged and reported to Sentry and put the URL into backoff,
// so a broken endpoint is polled less often. The loop stops when ctx is
// canceled.
func refreshParameters(ctx context.Context, client *http.Client, paramsURL, authUser, authPass string, cfg *Config, backoffs *BackoffStore, logger *slog.Logger, interval time.Duration, maxRetries int) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopping parameters refresh routine")
			return
		case now := <-ticker.C:
			if backoffs.ShouldSkip(paramsURL, now) {
				continue
			}
			params, err := loadParametersFromURL(ctx, client, paramsURL, authUser, authPass, maxRetries)
			if err != nil {
				backoffs.UpdateBackoff(paramsURL)
				report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
					Tags:  utils.MakeMap("params_url", paramsURL),
					Level: sentry.LevelError,
				})
				logger.Error("Failed to refresh remote parameters", "error", err)
				continue
			}
			backoffs.ResetBackoff(paramsURL)
			cfg.UpdateParameters(params)
			logger.Info("Successfully refreshed analysis parameters")
		}
	}
}

// loadParametersFromFile reads a YAML parameters document from disk.
func loadParametersFromFile(filePath string) (models.Parameters, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return models.Parameters{}, fmt.Errorf("failed to read parameters file: %w", err)
	}

	params, err := ParseParameters(data)
	if err != nil {
		return models.Parameters{}, err
	}
	return params, nil
}

// loadParametersFromURL fetches a YAML parameters document from a remote
// HTTP(S) endpoint, using optional basic authentication.
func loadParametersFromURL(ctx context.Context, client *http.Client, url, authUser, authPass string, maxRetries int) (models.Parameters, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return models.Parameters{}, fmt.Errorf("failed to create request: %w", err)
	}

	if authUser != "" && authPass != "" {
		req.SetBasicAuth(authUser, authPass)
	}

	resp, err := DoWithBackoff(ctx, client, req, maxRetries)
	if err != nil {
		return models.Parameters{}, fmt.Errorf("failed to fetch remote parameters: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Parameters{}, fmt.Errorf("remote parameters returned status: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Parameters{}, fmt.Errorf("failed to read remote parameters: %w", err)
	}

	return ParseParameters(data)
}
