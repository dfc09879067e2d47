package report

import (
	"os"
	"runtime"
	"strconv"

	"github.com/getsentry/sentry-go"
)

// ConfigureScope tags every event with the deployment and the analyzer limits
// it runs with.
func ConfigureScope(env, version string, maxWaypoints int) {
	sentry.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("service", "routeanalyzer")
		scope.SetTag("env", env)
		scope.SetTag("app_version", version)
		scope.SetTag("go_version", runtime.Version())
		scope.SetTag("max_waypoints", strconv.Itoa(maxWaypoints))
		scope.SetContext("host_info", map[string]interface{}{
			"hostname": hostname(),
			"goos":     runtime.GOOS,
			"goarch":   runtime.GOARCH,
		})
	})
}

func hostname() string {
	name, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return name
}

// ReportError captures err at the given level, sentry.LevelError by default.
func ReportError(err error, levels ...sentry.Level) {
	if err == nil {
		return
	}

	level := sentry.LevelError
	if len(levels) > 0 {
		level = levels[0]
	}

	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(level)
		sentry.CaptureException(err)
	})
}

// SentryReportOptions carries the per-event data attached by
// ReportErrorWithSentryOptions.
type SentryReportOptions struct {
	ExtraContext map[string]interface{}
	Tags         map[string]string
	Level        sentry.Level
	// Fingerprint groups events by something other than the stack trace,
	// e.g. the waypoint source that failed.
	Fingerprint []string
}

func ReportErrorWithSentryOptions(err error, opts SentryReportOptions) {
	if err == nil {
		return
	}

	sentry.WithScope(func(scope *sentry.Scope) {
		if opts.ExtraContext != nil {
			scope.SetContext("extra", opts.ExtraContext)
		}
		for k, v := range opts.Tags {
			scope.SetTag(k, v)
		}
		if opts.Level != "" {
			scope.SetLevel(opts.Level)
		}
		if len(opts.Fingerprint) > 0 {
			scope.SetFingerprint(opts.Fingerprint)
		}
		sentry.CaptureException(err)
	})
}
