package waypoints

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"routeanalyzer.g11.org/internal/models"
)

func TestReadCSV(t *testing.T) {
	var logBuffer bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuffer, nil))

	content := strings.Join([]string{
		"0;45.0703;7.6869",
		"60; 45.0710 ;7.6875",
		"",
		"not;a;number",
		"120;45.0712",
		"180;45.08;7.70;extra",
		"240;45.1;7.75",
	}, "\n")

	got, err := ReadCSV(strings.NewReader(content), logger)
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}

	want := []models.Waypoint{
		models.NewWaypoint(0, 45.0703, 7.6869),
		models.NewWaypoint(60, 45.0710, 7.6875),
		models.NewWaypoint(240, 45.1, 7.75),
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d waypoints, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("waypoint %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	logs := logBuffer.String()
	if strings.Count(logs, "Skipping") != 3 {
		t.Errorf("expected 3 skipped lines to be logged, got:\n%s", logs)
	}
	if !strings.Contains(logs, "line=4") {
		t.Errorf("expected line numbers in the log, got:\n%s", logs)
	}
}

func TestReadCSVRejectsInvalidCoordinates(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"NaN latitude", "0;NaN;0"},
		{"infinite longitude", "0;45;+Inf"},
		{"negative infinity latitude", "0;-Inf;7"},
		{"NaN timestamp", "NaN;45;7"},
		{"latitude out of range", "2;200;7"},
		{"longitude out of range", "2;45;500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logBuffer bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&logBuffer, nil))

			content := tt.line + "\n1;45.0;7.0\n"
			got, err := ReadCSV(strings.NewReader(content), logger)
			if err != nil {
				t.Fatalf("ReadCSV failed: %v", err)
			}
			if len(got) != 1 || got[0] != models.NewWaypoint(1, 45.0, 7.0) {
				t.Errorf("expected only the valid waypoint, got %+v", got)
			}
			if !strings.Contains(logBuffer.String(), "line=1") {
				t.Errorf("expected skipped line to be logged, got:\n%s", logBuffer.String())
			}
		})
	}
}

func TestReadCSVEmpty(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	got, err := ReadCSV(strings.NewReader(""), logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no waypoints, got %+v", got)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestReadCSVReadError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if _, err := ReadCSV(failingReader{}, logger); err == nil {
		t.Error("expected read error")
	}
}

func TestLoadCSV(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	path := filepath.Join(t.TempDir(), "waypoints.csv")
	if err := os.WriteFile(path, []byte("0;1;2\n1;3;4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadCSV(path, logger)
	if err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}
	if len(got) != 2 || got[1] != models.NewWaypoint(1, 3, 4) {
		t.Errorf("unexpected waypoints %+v", got)
	}

	if _, err := LoadCSV(filepath.Join(t.TempDir(), "missing.csv"), logger); err == nil {
		t.Error("expected error for missing file")
	}
}

const gpxDocument = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
  <trk>
    <trkseg>
      <trkpt lat="45.0703" lon="7.6869"><time>2025-03-01T10:00:00Z</time></trkpt>
      <trkpt lat="45.0710" lon="7.6875"><time>2025-03-01T10:01:00Z</time></trkpt>
    </trkseg>
    <trkseg>
      <trkpt lat="45.0800" lon="7.7000"></trkpt>
    </trkseg>
  </trk>
</gpx>`

func TestReadGPX(t *testing.T) {
	got, err := ReadGPX(strings.NewReader(gpxDocument))
	if err != nil {
		t.Fatalf("ReadGPX failed: %v", err)
	}

	start := float64(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC).Unix())
	want := []models.Waypoint{
		models.NewWaypoint(start, 45.0703, 7.6869),
		models.NewWaypoint(start+60, 45.0710, 7.6875),
		models.NewWaypoint(0, 45.0800, 7.7000),
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d waypoints, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("waypoint %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	outOfRange := strings.Replace(gpxDocument, `lat="45.0710"`, `lat="200"`, 1)
	if _, err := ReadGPX(strings.NewReader(outOfRange)); !errors.Is(err, ErrInvalidCoordinates) {
		t.Errorf("expected ErrInvalidCoordinates, got %v", err)
	}

	if _, err := ReadGPX(strings.NewReader("<gpx><trk>")); err == nil {
		t.Error("expected error for truncated GPX")
	}
}

func TestParseGTFSShape(t *testing.T) {
	data := buildGTFSBundle(t)

	t.Run("KnownShape", func(t *testing.T) {
		got, err := ParseGTFSShape(data, "SH1")
		if err != nil {
			t.Fatalf("ParseGTFSShape failed: %v", err)
		}
		want := []models.Waypoint{
			models.NewWaypoint(0, 45.0622, 7.6785),
			models.NewWaypoint(1, 45.0670, 7.6720),
			models.NewWaypoint(2, 45.0716, 7.6650),
		}
		if len(got) != len(want) {
			t.Fatalf("expected %d points, got %d", len(want), len(got))
		}
		for i := range want {
			if got[i].Timestamp != want[i].Timestamp {
				t.Errorf("point %d timestamp = %v, want %v", i, got[i].Timestamp, want[i].Timestamp)
			}
			if math.Abs(got[i].Latitude-want[i].Latitude) > 1e-4 || math.Abs(got[i].Longitude-want[i].Longitude) > 1e-4 {
				t.Errorf("point %d = %+v, want %+v", i, got[i], want[i])
			}
		}
	})

	t.Run("UnknownShape", func(t *testing.T) {
		_, err := ParseGTFSShape(data, "nope")
		if !errors.Is(err, ErrShapeNotFound) {
			t.Errorf("expected ErrShapeNotFound, got %v", err)
		}
	})

	t.Run("NotAZip", func(t *testing.T) {
		if _, err := ParseGTFSShape([]byte("garbage"), "SH1"); err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestLoadGTFSShape(t *testing.T) {
	data := buildGTFSBundle(t)
	ctx := context.Background()

	t.Run("LocalFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "gtfs.zip")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatal(err)
		}
		got, err := LoadGTFSShape(ctx, http.DefaultClient, path, "SH1", 0)
		if err != nil {
			t.Fatalf("LoadGTFSShape failed: %v", err)
		}
		if len(got) != 3 {
			t.Errorf("expected 3 points, got %d", len(got))
		}
	})

	t.Run("RemoteBundle", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/zip")
			w.Write(data)
		}))
		defer ts.Close()

		got, err := LoadGTFSShape(ctx, ts.Client(), ts.URL+"/gtfs.zip", "SH1", 0)
		if err != nil {
			t.Fatalf("LoadGTFSShape failed: %v", err)
		}
		if len(got) != 3 {
			t.Errorf("expected 3 points, got %d", len(got))
		}
	})

	t.Run("RemoteNotFound", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		defer ts.Close()

		_, err := LoadGTFSShape(ctx, ts.Client(), ts.URL+"/gtfs.zip", "SH1", 0)
		if err == nil || !strings.Contains(err.Error(), "404") {
			t.Errorf("expected status error, got %v", err)
		}
	})
}

func TestValidateFiles(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "waypoints.csv")
	if err := os.WriteFile(existing, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		paths   []string
		wantErr []string
	}{
		{"existing file", []string{existing}, nil},
		{"empty and remote paths are ignored", []string{"", "https://example.com/params.yaml"}, nil},
		{"missing file", []string{existing, filepath.Join(dir, "params.yaml")}, []string{"params.yaml"}},
		{"directory", []string{dir}, []string{"is a directory"}},
		{"all problems reported", []string{filepath.Join(dir, "a.csv"), filepath.Join(dir, "b.yaml")}, []string{"a.csv", "b.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFiles(tt.paths...)
			if len(tt.wantErr) == 0 {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected an error")
			}
			for _, want := range tt.wantErr {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("expected error to mention %q, got %v", want, err)
				}
			}
		})
	}
}
