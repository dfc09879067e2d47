package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"routeanalyzer.g11.org/internal/app"
	"routeanalyzer.g11.org/internal/config"
	"routeanalyzer.g11.org/internal/geo"
	"routeanalyzer.g11.org/internal/models"
)

func TestValidateInputFlags(t *testing.T) {
	tests := []struct {
		name        string
		opts        runOptions
		serve       bool
		expectError bool
	}{
		{"CSV", runOptions{WaypointsFile: "waypoints.csv"}, false, false},
		{"GPX", runOptions{GPXFile: "track.gpx"}, false, false},
		{"GTFS", runOptions{GTFSBundle: "gtfs.zip", GTFSShape: "SH1"}, false, false},
		{"No source", runOptions{}, false, true},
		{"Two sources", runOptions{WaypointsFile: "waypoints.csv", GPXFile: "track.gpx"}, false, true},
		{"GTFS without shape", runOptions{GTFSBundle: "gtfs.zip"}, false, true},
		{"Shape without bundle", runOptions{WaypointsFile: "waypoints.csv", GTFSShape: "SH1"}, false, true},
		{"Serve", runOptions{}, true, false},
		{"Serve with source", runOptions{WaypointsFile: "waypoints.csv"}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateInputFlags(tt.opts, tt.serve)
			if (err != nil) != tt.expectError {
				t.Errorf("Expected error: %v, got: %v", tt.expectError, err)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := newLogger(&buf, "json", "debug")
		if err != nil {
			t.Fatal(err)
		}
		logger.Debug("hello", "count", 3)

		var entry map[string]interface{}
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("expected a JSON log line, got %q", buf.String())
		}
		if entry["msg"] != "hello" {
			t.Errorf("unexpected entry %v", entry)
		}
	})

	t.Run("LevelFilters", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := newLogger(&buf, "text", "warn")
		if err != nil {
			t.Fatal(err)
		}
		logger.Info("quiet")
		if buf.Len() != 0 {
			t.Errorf("expected info to be filtered, got %q", buf.String())
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		if _, err := newLogger(io.Discard, "xml", "info"); err == nil {
			t.Error("expected error for unknown format")
		}
		if _, err := newLogger(io.Discard, "text", "loud"); err == nil {
			t.Error("expected error for unknown level")
		}
	})
}

func newTestApplication(t *testing.T) *app.Application {
	t.Helper()

	params := models.Parameters{
		EarthRadiusKm: geo.EarthRadiusKm,
		GeoFence: models.GeoFence{
			CenterLatitude:  45.0703,
			CenterLongitude: 7.6869,
			RadiusKm:        0.5,
		},
	}
	cfg := config.NewConfig(4000, "testing", &params)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return app.New(cfg, logger, http.DefaultClient, "test-version")
}

func TestRunOnce(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "waypoints.csv")
	content := "0;45.0703;7.6869\n60;45.0710;7.6875\n120;45.1000;7.7500\n"
	if err := os.WriteFile(csvPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	opts := runOptions{
		WaypointsFile:  csvPath,
		Output:         filepath.Join(dir, "out", "output.json"),
		AdvancedOutput: filepath.Join(dir, "out", "output_advanced.json"),
		GeoJSONOutput:  filepath.Join(dir, "out", "output.geojson"),
	}

	if err := runOnce(context.Background(), newTestApplication(t), opts); err != nil {
		t.Fatalf("runOnce failed: %v", err)
	}

	data, err := os.ReadFile(opts.Output)
	if err != nil {
		t.Fatal(err)
	}
	var results models.AnalysisResults
	if err := json.Unmarshal(data, &results); err != nil {
		t.Fatalf("invalid results JSON: %v", err)
	}
	if results.MaxDistanceFromStart.MustGet().Waypoint != models.NewWaypoint(120, 45.1, 7.75) {
		t.Errorf("unexpected results %+v", results)
	}

	advanced, err := os.ReadFile(opts.AdvancedOutput)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(advanced), "totalDistanceKm") {
		t.Errorf("unexpected advanced output %s", advanced)
	}

	geojson, err := os.ReadFile(opts.GeoJSONOutput)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(geojson), "FeatureCollection") {
		t.Errorf("unexpected GeoJSON output %s", geojson)
	}
}

func TestRunOnceErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("MissingInput", func(t *testing.T) {
		opts := runOptions{WaypointsFile: filepath.Join(dir, "missing.csv"), Output: filepath.Join(dir, "output.json")}
		if err := runOnce(context.Background(), newTestApplication(t), opts); err == nil {
			t.Error("expected error for missing waypoints file")
		}
	})

	t.Run("TooManyWaypoints", func(t *testing.T) {
		csvPath := filepath.Join(dir, "waypoints.csv")
		if err := os.WriteFile(csvPath, []byte("0;0;0\n1;0;1\n2;0;2\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		application := newTestApplication(t)
		application.ConfigService.Config.MaxWaypoints = 2

		opts := runOptions{WaypointsFile: csvPath, Output: filepath.Join(dir, "output.json")}
		err := runOnce(context.Background(), application, opts)
		if err == nil || !strings.Contains(err.Error(), "limit") {
			t.Errorf("expected waypoint limit error, got %v", err)
		}
	})
}
