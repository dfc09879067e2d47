package waypoints

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"routeanalyzer.g11.org/internal/models"
)

const csvSeparator = ";"

// ReadCSV parses waypoints from r, one "timestamp;latitude;longitude" record
// per line with no header.
//
// Lines without exactly three fields, with a field that is not a number, or
// with a non-finite or out-of-range coordinate are skipped and logged. Blank
// lines are ignored. Only read errors fail.
func ReadCSV(r io.Reader, logger *slog.Logger) ([]models.Waypoint, error) {
	var waypoints []models.Waypoint
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Split(line, csvSeparator)
		if len(parts) != 3 {
			logger.Warn("Skipping malformed line", "line", lineNo, "content", line)
			continue
		}

		values, err := parseFloats(parts)
		if err != nil {
			logger.Warn("Skipping invalid line", "line", lineNo, "content", line, "error", err)
			continue
		}
		w := models.NewWaypoint(values[0], values[1], values[2])
		if err := checkWaypoint(w); err != nil {
			logger.Warn("Skipping invalid line", "line", lineNo, "content", line, "error", err)
			continue
		}
		waypoints = append(waypoints, w)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read waypoints CSV: %w", err)
	}
	return waypoints, nil
}

func parseFloats(parts []string) ([3]float64, error) {
	var values [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return values, err
		}
		values[i] = v
	}
	return values, nil
}

// LoadCSV reads the waypoints CSV file at path.
func LoadCSV(path string, logger *slog.Logger) ([]models.Waypoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open waypoints file: %w", err)
	}
	defer f.Close()

	waypoints, err := ReadCSV(f, logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("Loaded waypoints", "path", path, "count", len(waypoints))
	return waypoints, nil
}
