package waypoints

import (
	"fmt"
	"io"
	"os"

	"github.com/twpayne/go-gpx"
	"routeanalyzer.g11.org/internal/models"
)

// ReadGPX returns every track point of every track segment in document
// order. The timestamp is the point time in Unix seconds, or 0 when the
// point has no time. A point with an out-of-range coordinate fails the
// whole document.
func ReadGPX(r io.Reader) ([]models.Waypoint, error) {
	g, err := gpx.Read(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GPX: %w", err)
	}

	var waypoints []models.Waypoint
	for _, trk := range g.Trk {
		for _, seg := range trk.TrkSeg {
			for _, pt := range seg.TrkPt {
				var ts float64
				if !pt.Time.IsZero() {
					ts = float64(pt.Time.UnixNano()) / 1e9
				}
				w := models.NewWaypoint(ts, pt.Lat, pt.Lon)
				if err := checkWaypoint(w); err != nil {
					return nil, fmt.Errorf("track point %d: %w", len(waypoints), err)
				}
				waypoints = append(waypoints, w)
			}
		}
	}
	return waypoints, nil
}

// LoadGPX reads the GPX file at path.
func LoadGPX(path string) ([]models.Waypoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open GPX file: %w", err)
	}
	defer f.Close()
	return ReadGPX(f)
}
