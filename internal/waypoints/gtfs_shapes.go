package waypoints

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/getsentry/sentry-go"
	remoteGtfs "github.com/jamespfennell/gtfs"
	"routeanalyzer.g11.org/internal/config"
	"routeanalyzer.g11.org/internal/models"
	"routeanalyzer.g11.org/internal/report"
	"routeanalyzer.g11.org/internal/utils"
)

// ErrShapeNotFound is returned when the bundle has no shape with the requested ID.
var ErrShapeNotFound = errors.New("shape not found")

// ParseGTFSShape extracts the points of one shape from a GTFS static bundle.
// Points keep the bundle's sequence order and the timestamp of each point
// is its index in the shape.
func ParseGTFSShape(data []byte, shapeID string) ([]models.Waypoint, error) {
	staticBundle, err := remoteGtfs.ParseStatic(data, remoteGtfs.ParseStaticOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to parse GTFS static data: %w", err)
	}

	if len(staticBundle.Shapes) == 0 {
		return nil, fmt.Errorf("no shapes data found in GTFS feed")
	}

	for _, shape := range staticBundle.Shapes {
		if shape.ID != shapeID {
			continue
		}
		waypoints := make([]models.Waypoint, 0, len(shape.Points))
		for i, point := range shape.Points {
			w := models.NewWaypoint(float64(i), float64(point.Latitude), float64(point.Longitude))
			if err := checkWaypoint(w); err != nil {
				return nil, fmt.Errorf("shape %q point %d: %w", shapeID, i, err)
			}
			waypoints = append(waypoints, w)
		}
		return waypoints, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrShapeNotFound, shapeID)
}

// LoadGTFSShape loads a shape from a GTFS bundle that is either a local zip
// file or an http(s) URL. Remote bundles are downloaded with retries.
func LoadGTFSShape(ctx context.Context, client *http.Client, source, shapeID string, maxRetries int) ([]models.Waypoint, error) {
	var data []byte
	var err error
	if isRemote(source) {
		data, err = downloadGTFSBundle(ctx, client, source, maxRetries)
	} else {
		data, err = os.ReadFile(source)
		if err != nil {
			err = fmt.Errorf("failed to read GTFS file: %w", err)
		}
	}
	if err != nil {
		return nil, err
	}

	waypoints, err := ParseGTFSShape(data, shapeID)
	if err != nil {
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags: utils.MakeMap("shape_id", shapeID),
			ExtraContext: map[string]interface{}{
				"gtfs_bundle": source,
			},
			Level:       sentry.LevelError,
			Fingerprint: []string{"gtfs-shape", shapeID},
		})
		return nil, err
	}
	return waypoints, nil
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func downloadGTFSBundle(ctx context.Context, client *http.Client, url string, maxRetries int) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", url, err)
	}

	resp, err := config.DoWithBackoff(ctx, client, req, maxRetries)
	if err != nil {
		err = fmt.Errorf("failed to make GET request to %s: %w", url, err)
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			ExtraContext: map[string]interface{}{
				"url": url,
			},
		})
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("unexpected response status %d when downloading GTFS bundle from %s", resp.StatusCode, url)
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			ExtraContext: map[string]interface{}{
				"url":    url,
				"status": resp.Status,
			},
		})
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		err = fmt.Errorf("failed to read GTFS bundle response body from %s: %w", url, err)
		report.ReportError(err)
		return nil, err
	}
	return data, nil
}
