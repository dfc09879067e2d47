package geo

import (
	"fmt"

	"github.com/golang/geo/s2"
	"routeanalyzer.g11.org/internal/models"
)

// CellLevel is the S2 level used to measure route extent (cells of roughly
// one kilometer).
const CellLevel = 13

// CellID returns the S2 cell containing lat/lon at the given level.
func CellID(lat, lon float64, level int) s2.CellID {
	ll := s2.LatLngFromDegrees(lat, lon)
	return s2.CellIDFromLatLng(ll).Parent(level)
}

// CellToken generates a stable S2-based cell label for a lat/lon.
func CellToken(lat, lon float64, level int) string {
	return fmt.Sprintf("s2_%d", uint64(CellID(lat, lon, level)))
}

// CountDistinctCells returns how many different S2 cells of the given level
// the waypoints fall into.
func CountDistinctCells(waypoints []models.Waypoint, level int) int {
	seen := make(map[s2.CellID]struct{}, len(waypoints))
	for _, w := range waypoints {
		seen[CellID(w.Latitude, w.Longitude, level)] = struct{}{}
	}
	return len(seen)
}
