package metrics

import (
	"log/slog"
	"time"

	"routeanalyzer.g11.org/internal/analysis"
	"routeanalyzer.g11.org/internal/models"
)

// MetricsService runs analyses and records their outcome as Prometheus metrics.
type MetricsService struct {
	Logger *slog.Logger
	now    func() time.Time
}

func NewMetricsService(logger *slog.Logger) *MetricsService {
	return &MetricsService{
		Logger: logger,
		now:    time.Now,
	}
}

// Analyze runs the basic analysis for a route read from source and records
// the results.
func (ms *MetricsService) Analyze(source string, seq []models.Waypoint, params models.Parameters) models.AnalysisResults {
	if params.MostFrequentedAreaRadiusKm.IsNone() {
		ms.Logger.Info("Cluster radius not configured, deriving it from the route", "source", source, "waypoints", len(seq))
	}

	start := ms.now()
	results := analysis.Analyze(seq, params)
	observeDuration(ModeBasic, ms.now().Sub(start))

	recordRouteResults(source, len(seq), results)
	return results
}

// AnalyzeAdvanced runs the extended analysis for a route read from source.
func (ms *MetricsService) AnalyzeAdvanced(source string, seq []models.Waypoint, params models.Parameters) models.AdvancedAnalysisResults {
	start := ms.now()
	results := analysis.AnalyzeAdvanced(seq, params)
	observeDuration(ModeAdvanced, ms.now().Sub(start))
	return results
}

// RecordFailure counts a run that could not be analyzed, for example because
// the input could not be read.
func (ms *MetricsService) RecordFailure(source string, err error) {
	ms.Logger.Error("Route analysis failed", "source", source, "error", err)
	recordFailure(source)
}
