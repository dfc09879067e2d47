package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/getsentry/sentry-go"
	"routeanalyzer.g11.org/internal/config"
	"routeanalyzer.g11.org/internal/export"
	"routeanalyzer.g11.org/internal/geo"
	"routeanalyzer.g11.org/internal/models"
	"routeanalyzer.g11.org/internal/report"
)

// sourceHTTP labels metrics of routes posted to the API.
const sourceHTTP = "http"

// HealthStatus is the body of /v1/healthcheck. Ready is true once default
// analysis parameters are loaded.
type HealthStatus struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
	Version     string `json:"version"`
	Ready       bool   `json:"ready"`
}

// AnalyzeRequest is the body of the analyze endpoints. Parameters falls
// back to the server defaults when omitted.
type AnalyzeRequest struct {
	Waypoints  []models.Waypoint  `json:"waypoints"`
	Parameters *models.Parameters `json:"parameters,omitempty"`
	Advanced   bool               `json:"advanced"`
}

// AnalyzeResponse is the body returned by /v1/analyze.
type AnalyzeResponse struct {
	Results  models.AnalysisResults                          `json:"results"`
	Advanced models.Optional[models.AdvancedAnalysisResults] `json:"advanced"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// healthcheckHandler responds with 500 until default parameters are loaded.
func (app *Application) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	_, ready := app.ConfigService.Config.GetParameters()

	status := HealthStatus{
		Status:      "available",
		Environment: app.ConfigService.Config.Env,
		Version:     app.Version,
		Ready:       ready,
	}

	w.Header().Set("Content-Type", "application/json")
	if !ready {
		w.WriteHeader(http.StatusInternalServerError)
	}
	json.NewEncoder(w).Encode(status)
}

func (app *Application) analyzeHandler(w http.ResponseWriter, r *http.Request) {
	req, params, ok := app.readAnalyzeRequest(w, r)
	if !ok {
		return
	}

	resp := AnalyzeResponse{
		Results: app.MetricsService.Analyze(sourceHTTP, req.Waypoints, params),
	}
	if req.Advanced {
		resp.Advanced = models.Some(app.MetricsService.AnalyzeAdvanced(sourceHTTP, req.Waypoints, params))
	}

	app.writeJSON(w, http.StatusOK, resp)
}

func (app *Application) analyzeGeoJSONHandler(w http.ResponseWriter, r *http.Request) {
	req, params, ok := app.readAnalyzeRequest(w, r)
	if !ok {
		return
	}

	results := app.MetricsService.Analyze(sourceHTTP, req.Waypoints, params)
	fc := export.BuildFeatureCollection(req.Waypoints, params.GeoFence, results)

	w.Header().Set("Content-Type", "application/geo+json")
	if err := export.WriteGeoJSON(w, fc); err != nil {
		app.serverError(w, r, err)
	}
}

// readAnalyzeRequest decodes and validates an analyze request. On failure
// it has already written the error response.
func (app *Application) readAnalyzeRequest(w http.ResponseWriter, r *http.Request) (AnalyzeRequest, models.Parameters, bool) {
	var req AnalyzeRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesErr):
			app.errorResponse(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body must not be larger than %d bytes", maxBytesErr.Limit))
		case errors.Is(err, io.EOF):
			app.errorResponse(w, http.StatusBadRequest, "request body must not be empty")
		default:
			app.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		}
		app.MetricsService.RecordFailure(sourceHTTP, err)
		return req, models.Parameters{}, false
	}

	if limit := app.ConfigService.Config.MaxWaypoints; limit > 0 && len(req.Waypoints) > limit {
		app.errorResponse(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("too many waypoints: %d, the limit is %d", len(req.Waypoints), limit))
		return req, models.Parameters{}, false
	}

	for i, wp := range req.Waypoints {
		if !geo.IsValidLatLon(wp.Latitude, wp.Longitude) {
			app.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("waypoint %d has invalid coordinates (%v, %v)", i, wp.Latitude, wp.Longitude))
			return req, models.Parameters{}, false
		}
	}

	var params models.Parameters
	if req.Parameters != nil {
		params = *req.Parameters
	} else {
		defaults, ok := app.ConfigService.Config.GetParameters()
		if !ok {
			app.errorResponse(w, http.StatusBadRequest, "no parameters in the request and no server defaults loaded")
			return req, models.Parameters{}, false
		}
		params = defaults
	}

	if err := config.ValidateParameters(params); err != nil {
		app.errorResponse(w, http.StatusBadRequest, err.Error())
		return req, models.Parameters{}, false
	}

	return req, params, true
}

func (app *Application) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		app.Logger.Error("Failed to write response", "error", err)
	}
}

func (app *Application) errorResponse(w http.ResponseWriter, status int, message string) {
	app.writeJSON(w, status, errorResponse{Error: message})
}

func (app *Application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
		Tags: map[string]string{
			"method": r.Method,
			"path":   r.URL.Path,
		},
		Level: sentry.LevelError,
	})
	app.Logger.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	app.errorResponse(w, http.StatusInternalServerError, "the server encountered a problem and could not process your request")
}
