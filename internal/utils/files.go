package utils

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/getsentry/sentry-go"
	"routeanalyzer.g11.org/internal/report"
)

// EnsureDirectory ensures the output directory exists, creating it if necessary.
func EnsureDirectory(dir string, logger *slog.Logger) error {
	stat, err := os.Stat(dir)

	if err != nil {
		if os.IsNotExist(err) {
			if err := os.MkdirAll(dir, os.ModePerm); err != nil {
				report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
					Level: sentry.LevelError,
					ExtraContext: map[string]interface{}{
						"output_dir": dir,
					},
				})
				return err
			}
			logger.Debug("Created output directory", "dir", dir)
			return nil
		}
		return err

	}
	if !stat.IsDir() {
		err := fmt.Errorf("%s is not a directory", dir)
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Level: sentry.LevelError,
			ExtraContext: map[string]interface{}{
				"output_dir": dir,
			},
		})
		return err
	}
	return nil
}
