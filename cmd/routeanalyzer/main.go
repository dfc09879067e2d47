package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"routeanalyzer.g11.org/internal/app"
	"routeanalyzer.g11.org/internal/config"
	"routeanalyzer.g11.org/internal/models"
	"routeanalyzer.g11.org/internal/report"
	"routeanalyzer.g11.org/internal/waypoints"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "1.0.0"

func main() {
	var cfg config.Config
	var opts runOptions

	flag.IntVar(&cfg.Port, "port", 4000, "API server port")
	flag.StringVar(&cfg.Env, "env", "development", "Environment (development|staging|production)")
	flag.IntVar(&cfg.MaxWaypoints, "max-waypoints", config.DefaultMaxWaypoints, "Maximum number of waypoints in one analysis")

	flag.StringVar(&opts.WaypointsFile, "waypoints", "", "Path to a waypoints CSV file (timestamp;latitude;longitude)")
	flag.StringVar(&opts.GPXFile, "gpx", "", "Path to a GPX file")
	flag.StringVar(&opts.GTFSBundle, "gtfs-bundle", "", "Path or URL of a GTFS static bundle (zip)")
	flag.StringVar(&opts.GTFSShape, "gtfs-shape", "", "Shape ID to analyze in the GTFS bundle")
	flag.StringVar(&opts.Output, "output", "output.json", "Path of the analysis results JSON file")
	flag.StringVar(&opts.AdvancedOutput, "advanced-output", "", "Path of the advanced analysis JSON file (skipped when empty)")
	flag.StringVar(&opts.GeoJSONOutput, "geojson-output", "", "Path of the GeoJSON results file (skipped when empty)")

	var (
		paramsFile      = flag.String("params", "", "Path to a local YAML parameters file")
		paramsURL       = flag.String("params-url", "", "URL to a remote YAML parameters file")
		serve           = flag.Bool("serve", false, "Run the HTTP API instead of a one-shot analysis")
		logLevel        = flag.String("log-level", "info", "Log level (debug|info|warn|error)")
		logFormat       = flag.String("log-format", "text", "Log format (text|json)")
		maxRetries      = flag.Int("max-retries", 3, "Retries for remote downloads, negative for unlimited")
		refreshInterval = flag.Duration("params-refresh", time.Minute, "Refresh interval of remote parameters in serve mode")
	)

	flag.Parse()

	paramsAuthUser := os.Getenv("PARAMS_AUTH_USER")
	paramsAuthPass := os.Getenv("PARAMS_AUTH_PASS")

	logger, err := newLogger(os.Stdout, *logFormat, *logLevel)
	if err != nil {
		fmt.Println("Error:", err)
		flag.Usage()
		os.Exit(1)
	}

	if err := config.ValidateParamsFlags(paramsFile, paramsURL); err != nil {
		fmt.Println("Error:", err)
		flag.Usage()
		os.Exit(1)
	}

	if err := validateInputFlags(opts, *serve); err != nil {
		fmt.Println("Error:", err)
		flag.Usage()
		os.Exit(1)
	}

	if err := waypoints.ValidateFiles(opts.WaypointsFile, opts.GPXFile, opts.GTFSBundle, *paramsFile); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	report.SetupSentry(cfg.Env, version)
	defer report.FlushSentry()
	report.ConfigureScope(cfg.Env, version, cfg.MaxWaypoints)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := app.NewPooledClient()

	var params models.Parameters
	if *paramsFile != "" {
		params, err = config.LoadParametersFromFile(*paramsFile)
	} else {
		params, err = config.LoadParametersFromURL(ctx, client, *paramsURL, paramsAuthUser, paramsAuthPass, *maxRetries)
	}
	if err != nil {
		logger.Error("Failed to load parameters", "error", err)
		report.FlushSentry()
		os.Exit(1)
	}

	appCfg := config.NewConfig(cfg.Port, cfg.Env, &params)
	appCfg.MaxWaypoints = cfg.MaxWaypoints
	application := app.New(appCfg, logger, client, version)

	if !*serve {
		opts.MaxRetries = *maxRetries
		if err := runOnce(ctx, application, opts); err != nil {
			report.ReportError(err)
			report.FlushSentry()
			logger.Error("Analysis failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if *paramsURL != "" {
		go application.ConfigService.RefreshParameters(ctx, *paramsURL, paramsAuthUser, paramsAuthPass, *refreshInterval, *maxRetries)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      application.Routes(ctx),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Graceful shutdown failed", "error", err)
		}
	}()

	logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env)
	err = srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		logger.Info("server stopped")
		return
	}
	report.ReportError(err, sentry.LevelFatal)
	report.FlushSentry()
	logger.Error(err.Error())
	os.Exit(1)
}

// newLogger builds the process logger. format is "text" or "json".
func newLogger(w io.Writer, format, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}

	switch format {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q, expected text or json", format)
	}
}

// validateInputFlags ensures exactly one waypoint source is given for a
// one-shot run. Serve mode takes its waypoints from requests instead.
func validateInputFlags(opts runOptions, serve bool) error {
	sources := 0
	for _, s := range []string{opts.WaypointsFile, opts.GPXFile, opts.GTFSBundle} {
		if s != "" {
			sources++
		}
	}

	if (opts.GTFSBundle != "") != (opts.GTFSShape != "") {
		return fmt.Errorf("--gtfs-bundle and --gtfs-shape must be used together")
	}
	if serve {
		if sources > 0 {
			return fmt.Errorf("--serve does not take a waypoints source")
		}
		return nil
	}
	if sources == 0 {
		return fmt.Errorf("no waypoints provided, one of --waypoints, --gpx or --gtfs-bundle must be specified")
	}
	if sources > 1 {
		return fmt.Errorf("only one of --waypoints, --gpx or --gtfs-bundle can be specified")
	}
	return nil
}
