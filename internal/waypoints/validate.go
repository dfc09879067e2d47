package waypoints

import (
	"errors"
	"fmt"
	"math"
	"os"

	"routeanalyzer.g11.org/internal/geo"
	"routeanalyzer.g11.org/internal/models"
)

// ValidateFiles checks that every non-empty, non-URL path names an existing
// regular file. All missing files are reported together.
func ValidateFiles(paths ...string) error {
	var errs []error
	for _, path := range paths {
		if path == "" || isRemote(path) {
			continue
		}
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				errs = append(errs, fmt.Errorf("file not found at '%s'", path))
				continue
			}
			errs = append(errs, fmt.Errorf("cannot access '%s': %w", path, err))
			continue
		}
		if info.IsDir() {
			errs = append(errs, fmt.Errorf("'%s' is a directory", path))
		}
	}
	return errors.Join(errs...)
}

// ErrInvalidCoordinates is returned for a waypoint whose timestamp is not
// finite or whose coordinates fall outside [-90,90] x [-180,180].
var ErrInvalidCoordinates = errors.New("invalid coordinates")

func checkWaypoint(w models.Waypoint) error {
	if math.IsNaN(w.Timestamp) || math.IsInf(w.Timestamp, 0) {
		return fmt.Errorf("%w: timestamp %v", ErrInvalidCoordinates, w.Timestamp)
	}
	if !geo.IsValidLatLon(w.Latitude, w.Longitude) {
		return fmt.Errorf("%w: latitude %v, longitude %v", ErrInvalidCoordinates, w.Latitude, w.Longitude)
	}
	return nil
}
