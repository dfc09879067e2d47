package main

import (
	"context"
	"fmt"

	"routeanalyzer.g11.org/internal/app"
	"routeanalyzer.g11.org/internal/export"
	"routeanalyzer.g11.org/internal/models"
	"routeanalyzer.g11.org/internal/waypoints"
)

// Waypoint source labels used in logs and metrics.
const (
	sourceCSV  = "csv"
	sourceGPX  = "gpx"
	sourceGTFS = "gtfs"
)

// runOptions holds the inputs and outputs of a one-shot run.
type runOptions struct {
	WaypointsFile  string
	GPXFile        string
	GTFSBundle     string
	GTFSShape      string
	Output         string
	AdvancedOutput string
	GeoJSONOutput  string
	MaxRetries     int
}

func loadWaypoints(ctx context.Context, application *app.Application, opts runOptions) (string, []models.Waypoint, error) {
	switch {
	case opts.WaypointsFile != "":
		seq, err := waypoints.LoadCSV(opts.WaypointsFile, application.Logger)
		return sourceCSV, seq, err
	case opts.GPXFile != "":
		seq, err := waypoints.LoadGPX(opts.GPXFile)
		return sourceGPX, seq, err
	case opts.GTFSBundle != "":
		seq, err := waypoints.LoadGTFSShape(ctx, application.ConfigService.Client, opts.GTFSBundle, opts.GTFSShape, opts.MaxRetries)
		return sourceGTFS, seq, err
	default:
		return "", nil, fmt.Errorf("no waypoints source configured")
	}
}

// runOnce reads the route, analyzes it with the default parameters and
// writes every requested output file.
func runOnce(ctx context.Context, application *app.Application, opts runOptions) error {
	source, seq, err := loadWaypoints(ctx, application, opts)
	if err != nil {
		application.MetricsService.RecordFailure(source, err)
		return fmt.Errorf("failed to load waypoints: %w", err)
	}

	cfg := application.ConfigService.Config
	if cfg.MaxWaypoints > 0 && len(seq) > cfg.MaxWaypoints {
		err := fmt.Errorf("route has %d waypoints, the limit is %d", len(seq), cfg.MaxWaypoints)
		application.MetricsService.RecordFailure(source, err)
		return err
	}

	params, ok := cfg.GetParameters()
	if !ok {
		return fmt.Errorf("no analysis parameters loaded")
	}

	application.Logger.Info("Analyzing route", "source", source, "waypoints", len(seq))
	results := application.MetricsService.Analyze(source, seq, params)

	if err := export.WriteJSONFile(opts.Output, results, application.Logger); err != nil {
		return err
	}

	if opts.AdvancedOutput != "" {
		advanced := application.MetricsService.AnalyzeAdvanced(source, seq, params)
		if err := export.WriteJSONFile(opts.AdvancedOutput, advanced, application.Logger); err != nil {
			return err
		}
	}

	if opts.GeoJSONOutput != "" {
		fc := export.BuildFeatureCollection(seq, params.GeoFence, results)
		if err := export.WriteGeoJSONFile(opts.GeoJSONOutput, fc, application.Logger); err != nil {
			return err
		}
	}
	return nil
}
