package app

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"
	"routeanalyzer.g11.org/internal/middleware"
)

// bytesPerWaypoint is a generous upper bound of one encoded waypoint.
const bytesPerWaypoint = 128

// Routes sets up the HTTP routing configuration for the application and returns the final http.Handler.
//
// Registered routes:
//   - GET /v1/healthcheck: service status and whether default parameters are loaded.
//   - POST /v1/analyze: runs the analysis on the posted route.
//   - POST /v1/analyze/geojson: same, rendered as a GeoJSON FeatureCollection.
//   - GET /metrics: cached Prometheus exposition.
func (app *Application) Routes(ctx context.Context) http.Handler {
	router := httprouter.New()

	// MaxWaypoints 0 means no waypoint limit, so bodies are not capped either.
	var bodyLimit int64
	if maxWaypoints := app.ConfigService.Config.MaxWaypoints; maxWaypoints > 0 {
		bodyLimit = int64(maxWaypoints)*bytesPerWaypoint + 64<<10
	}

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthcheckHandler)
	router.Handler(http.MethodPost, "/v1/analyze", middleware.MaxBodyBytes(bodyLimit, http.HandlerFunc(app.analyzeHandler)))
	router.Handler(http.MethodPost, "/v1/analyze/geojson", middleware.MaxBodyBytes(bodyLimit, http.HandlerFunc(app.analyzeGeoJSONHandler)))
	router.Handler(http.MethodGet, "/metrics", middleware.NewCachedPromHandler(ctx, prometheus.DefaultGatherer, 10*time.Second))

	handler := middleware.RequestLogger(app.Logger, router)
	handler = middleware.SentryMiddleware(handler)
	return middleware.SecurityHeaders(handler)
}
