package export

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"routeanalyzer.g11.org/internal/models"
)

// Feature kinds, stored in the "kind" property of every feature.
const (
	KindRoute          = "route"
	KindStart          = "start"
	KindFarthest       = "maxDistanceFromStart"
	KindClusterCenter  = "mostFrequentedArea"
	KindGeofenceCenter = "geofenceCenter"
	KindOutside        = "outsideGeofence"
)

func point(lat, lon float64) *geom.Point {
	return geom.NewPointFlat(geom.XY, []float64{lon, lat})
}

func waypointFeature(kind string, w models.Waypoint, props map[string]interface{}) *geojson.Feature {
	properties := map[string]interface{}{
		"kind":      kind,
		"timestamp": w.Timestamp,
	}
	for k, v := range props {
		properties[k] = v
	}
	return &geojson.Feature{
		Geometry:   point(w.Latitude, w.Longitude),
		Properties: properties,
	}
}

// BuildFeatureCollection renders a route and its analysis results as GeoJSON
// features. Absent results produce no feature. Coordinates are [lon, lat].
func BuildFeatureCollection(seq []models.Waypoint, fence models.GeoFence, results models.AnalysisResults) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{}

	if len(seq) >= 2 {
		flat := make([]float64, 0, 2*len(seq))
		for _, w := range seq {
			flat = append(flat, w.Longitude, w.Latitude)
		}
		route := geom.NewLineStringFlat(geom.XY, flat)
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry: route,
			Properties: map[string]interface{}{
				"kind":   KindRoute,
				"points": len(seq),
			},
		})
		fc.BBox = geom.NewBounds(geom.XY).Extend(route)
	}

	if len(seq) > 0 {
		fc.Features = append(fc.Features, waypointFeature(KindStart, seq[0], nil))
	}

	if farthest, ok := results.MaxDistanceFromStart.Get(); ok {
		fc.Features = append(fc.Features, waypointFeature(KindFarthest, farthest.Waypoint, map[string]interface{}{
			"distanceKm": farthest.DistanceKm,
		}))
	}

	if area, ok := results.MostFrequentedArea.Get(); ok {
		fc.Features = append(fc.Features, waypointFeature(KindClusterCenter, area.CentralWaypoint, map[string]interface{}{
			"areaRadiusKm": area.AreaRadiusKm,
			"entriesCount": area.EntriesCount,
		}))
	}

	fc.Features = append(fc.Features, &geojson.Feature{
		Geometry: point(fence.CenterLatitude, fence.CenterLongitude),
		Properties: map[string]interface{}{
			"kind":     KindGeofenceCenter,
			"radiusKm": fence.RadiusKm,
		},
	})

	if outside, ok := results.WaypointsOutsideGeofence.Get(); ok {
		for _, w := range outside.Waypoints {
			fc.Features = append(fc.Features, waypointFeature(KindOutside, w, nil))
		}
	}

	return fc
}

// WriteGeoJSON encodes fc to w.
func WriteGeoJSON(w io.Writer, fc *geojson.FeatureCollection) error {
	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode GeoJSON: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write GeoJSON: %w", err)
	}
	return nil
}

// WriteGeoJSONFile writes fc to path.
func WriteGeoJSONFile(path string, fc *geojson.FeatureCollection, logger *slog.Logger) error {
	return writeFile(path, logger, func(w io.Writer) error {
		return WriteGeoJSON(w, fc)
	})
}
