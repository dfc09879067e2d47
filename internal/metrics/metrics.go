package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AnalysisRuns counts analysis runs by waypoint source and outcome.
	AnalysisRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "route_analysis_runs_total",
		Help: "Number of route analysis runs",
	}, []string{"source", "status"})

	AnalysisDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "route_analysis_duration_seconds",
		Help:    "Time spent running the route analysis",
		Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10),
	}, []string{"mode"})
)

var (
	RouteWaypoints = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "route_waypoints_count",
		Help: "Number of waypoints in the last analyzed route",
	}, []string{"source"})

	RouteMaxDistanceFromStartKm = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "route_max_distance_from_start_km",
		Help: "Distance in km of the farthest waypoint from the start of the last analyzed route",
	}, []string{"source"})

	RouteMostFrequentedAreaEntries = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "route_most_frequented_area_entries",
		Help: "Number of waypoints in the densest area of the last analyzed route",
	}, []string{"source"})

	RouteClusterRadiusKm = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "route_cluster_radius_km",
		Help: "Radius in km used to find the most frequented area",
	}, []string{"source"})

	RouteWaypointsOutsideGeofence = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "route_waypoints_outside_geofence",
		Help: "Number of waypoints outside the geofence in the last analyzed route",
	}, []string{"source"})
)

var (
	// OutgoingLatency tracks outgoing HTTP requests, for example remote
	// parameters and GTFS bundle downloads.
	OutgoingLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "outgoing_http_request_duration_seconds",
		Help:    "Latency of outgoing HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"url", "method", "status"})
)
