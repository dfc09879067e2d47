package analysis

import (
	"math"
	"testing"

	"routeanalyzer.g11.org/internal/geo"
	"routeanalyzer.g11.org/internal/models"
)

const earthRadius = geo.EarthRadiusKm

func wp(ts, lat, lon float64) models.Waypoint {
	return models.NewWaypoint(ts, lat, lon)
}

// route returns a small route around Turin used by several tests.
func route() []models.Waypoint {
	return []models.Waypoint{
		wp(0, 45.0703, 7.6869),
		wp(60, 45.0710, 7.6875),
		wp(120, 45.0712, 7.6880),
		wp(180, 45.0800, 7.7000),
		wp(240, 45.1000, 7.7500),
		wp(300, 45.0711, 7.6877),
	}
}

func TestMaxDistanceFromStart(t *testing.T) {
	t.Run("TwoPointsOnEquator", func(t *testing.T) {
		seq := []models.Waypoint{wp(0, 0, 0), wp(1, 0, 1)}

		got, ok := MaxDistanceFromStart(seq, earthRadius).Get()
		if !ok {
			t.Fatal("expected a result")
		}
		if got.Waypoint != seq[1] {
			t.Errorf("expected farthest waypoint %+v, got %+v", seq[1], got.Waypoint)
		}
		if math.Abs(got.DistanceKm-111.19) > 0.01 {
			t.Errorf("expected distance ≈111.19 km, got %v", got.DistanceKm)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		if MaxDistanceFromStart(nil, earthRadius).IsSome() {
			t.Error("expected no result for empty sequence")
		}
	})

	t.Run("SingleWaypoint", func(t *testing.T) {
		seq := []models.Waypoint{wp(5, 10, 10)}
		got := MaxDistanceFromStart(seq, earthRadius).MustGet()
		if got.Waypoint != seq[0] || got.DistanceKm != 0 {
			t.Errorf("expected start with distance 0, got %+v", got)
		}
	})

	t.Run("TieGoesToFirst", func(t *testing.T) {
		seq := []models.Waypoint{wp(0, 0, 0), wp(1, 0, 1), wp(2, 0, -1), wp(3, 0, 1)}
		got := MaxDistanceFromStart(seq, earthRadius).MustGet()
		if got.Waypoint != seq[1] {
			t.Errorf("expected first maximal waypoint %+v, got %+v", seq[1], got.Waypoint)
		}
	})

	t.Run("Route", func(t *testing.T) {
		seq := route()
		got := MaxDistanceFromStart(seq, earthRadius).MustGet()
		if got.Waypoint != seq[4] {
			t.Errorf("expected %+v, got %+v", seq[4], got.Waypoint)
		}
		for _, w := range seq {
			if d := geo.WaypointDistanceKm(seq[0], w, earthRadius); d > got.DistanceKm {
				t.Errorf("waypoint %+v is farther (%v) than reported max %v", w, d, got.DistanceKm)
			}
		}
	})
}

func TestMostFrequentedArea(t *testing.T) {
	t.Run("IdenticalPoints", func(t *testing.T) {
		seq := []models.Waypoint{wp(0, 10, 10), wp(1, 10, 10), wp(2, 10, 10)}

		got, ok := MostFrequentedArea(seq, 0.01, earthRadius).Get()
		if !ok {
			t.Fatal("expected a result")
		}
		if got.EntriesCount != 3 {
			t.Errorf("expected count 3, got %d", got.EntriesCount)
		}
		if got.CentralWaypoint != seq[0] {
			t.Errorf("expected first point as center, got %+v", got.CentralWaypoint)
		}
		if got.AreaRadiusKm != 0.01 {
			t.Errorf("expected radius 0.01, got %v", got.AreaRadiusKm)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		if MostFrequentedArea([]models.Waypoint{}, 1, earthRadius).IsSome() {
			t.Error("expected no result for empty sequence")
		}
	})

	t.Run("SelfInclusionWithZeroRadius", func(t *testing.T) {
		seq := []models.Waypoint{wp(0, 0, 0), wp(1, 0, 1), wp(2, 0, 2)}
		got := MostFrequentedArea(seq, 0, earthRadius).MustGet()
		if got.EntriesCount != 1 {
			t.Errorf("expected count 1, got %d", got.EntriesCount)
		}
		if got.CentralWaypoint != seq[0] {
			t.Errorf("expected first waypoint on tie, got %+v", got.CentralWaypoint)
		}
	})

	t.Run("DensestCluster", func(t *testing.T) {
		seq := route()
		got := MostFrequentedArea(seq, 0.2, earthRadius).MustGet()
		if got.EntriesCount != 4 {
			t.Errorf("expected 4 waypoints in the cluster, got %d", got.EntriesCount)
		}
		if got.CentralWaypoint != seq[0] {
			t.Errorf("expected center %+v, got %+v", seq[0], got.CentralWaypoint)
		}
	})

	t.Run("LaterCandidateStrictlyBetter", func(t *testing.T) {
		seq := []models.Waypoint{wp(0, 0, 0), wp(1, 5, 5), wp(2, 5, 5.0001), wp(3, 5, 5.0002)}
		got := MostFrequentedArea(seq, 0.05, earthRadius).MustGet()
		if got.CentralWaypoint != seq[1] {
			t.Errorf("expected %+v, got %+v", seq[1], got.CentralWaypoint)
		}
		if got.EntriesCount != 3 {
			t.Errorf("expected count 3, got %d", got.EntriesCount)
		}
	})
}

func TestWaypointsOutsideGeofence(t *testing.T) {
	t.Run("SinglePointInside", func(t *testing.T) {
		seq := []models.Waypoint{wp(0, 0, 0)}
		fence := models.GeoFence{CenterLatitude: 0, CenterLongitude: 0, RadiusKm: 1}
		if WaypointsOutsideGeofence(seq, fence, earthRadius).IsSome() {
			t.Error("expected no result when every point is inside")
		}
	})

	t.Run("ZeroRadiusIdenticalPoints", func(t *testing.T) {
		seq := []models.Waypoint{wp(0, 0, 0), wp(1, 0, 0), wp(2, 0, 0)}
		fence := models.GeoFence{RadiusKm: 0}
		if WaypointsOutsideGeofence(seq, fence, earthRadius).IsSome() {
			t.Error("expected no result, distance 0 is inside a zero radius fence")
		}
	})

	t.Run("ZeroRadiusDistinctPoints", func(t *testing.T) {
		seq := []models.Waypoint{wp(0, 0, 0), wp(1, 0, 0.5), wp(2, 0.5, 0)}
		fence := models.GeoFence{RadiusKm: 0}
		got := WaypointsOutsideGeofence(seq, fence, earthRadius).MustGet()
		if got.Count != 2 || len(got.Waypoints) != 2 {
			t.Fatalf("expected 2 outside points, got %+v", got)
		}
		if got.Waypoints[0] != seq[1] || got.Waypoints[1] != seq[2] {
			t.Errorf("outside points not in input order: %+v", got.Waypoints)
		}
	})

	t.Run("CenterWaypoint", func(t *testing.T) {
		seq := []models.Waypoint{wp(10, 46, 8)}
		fence := models.GeoFence{CenterLatitude: 45, CenterLongitude: 7, RadiusKm: 2.5}
		got := WaypointsOutsideGeofence(seq, fence, earthRadius).MustGet()
		want := models.NewWaypoint(0, 45, 7)
		if got.CentralWaypoint != want {
			t.Errorf("expected center %+v, got %+v", want, got.CentralWaypoint)
		}
		if got.AreaRadiusKm != 2.5 {
			t.Errorf("expected radius 2.5, got %v", got.AreaRadiusKm)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		fence := models.GeoFence{RadiusKm: 1}
		if WaypointsOutsideGeofence(nil, fence, earthRadius).IsSome() {
			t.Error("expected no result for empty sequence")
		}
	})
}

func TestGeofencePartitionCompleteness(t *testing.T) {
	seq := route()
	fences := []models.GeoFence{
		{CenterLatitude: 45.0703, CenterLongitude: 7.6869, RadiusKm: 0},
		{CenterLatitude: 45.0703, CenterLongitude: 7.6869, RadiusKm: 0.1},
		{CenterLatitude: 45.0703, CenterLongitude: 7.6869, RadiusKm: 1.5},
		{CenterLatitude: 45.0703, CenterLongitude: 7.6869, RadiusKm: 100},
		{CenterLatitude: 0, CenterLongitude: 0, RadiusKm: 10},
	}

	for _, fence := range fences {
		var outside []models.Waypoint
		if res, ok := WaypointsOutsideGeofence(seq, fence, earthRadius).Get(); ok {
			outside = res.Waypoints
			if res.Count != len(res.Waypoints) {
				t.Errorf("count %d does not match %d waypoints", res.Count, len(res.Waypoints))
			}
		}

		isOutside := make(map[models.Waypoint]bool, len(outside))
		for _, w := range outside {
			isOutside[w] = true
			if d := geo.WaypointDistanceKm(models.NewWaypoint(0, fence.CenterLatitude, fence.CenterLongitude), w, earthRadius); d <= fence.RadiusKm {
				t.Errorf("fence %+v: outside point %+v is within radius (%v)", fence, w, d)
			}
		}

		inside := 0
		for _, w := range seq {
			if isOutside[w] {
				continue
			}
			inside++
			if !geo.FenceContains(fence, w, earthRadius) {
				t.Errorf("fence %+v: point %+v not reported as outside", fence, w)
			}
		}

		if inside+len(outside) != len(seq) {
			t.Errorf("fence %+v: %d inside + %d outside != %d", fence, inside, len(outside), len(seq))
		}
	}
}

func TestTotalDistanceTraveled(t *testing.T) {
	t.Run("OutAndBack", func(t *testing.T) {
		seq := []models.Waypoint{wp(0, 0, 0), wp(1, 0, 1), wp(2, 0, 0)}
		got := TotalDistanceTraveled(seq, earthRadius).MustGet()
		want := 2 * geo.DistanceKm(0, 0, 0, 1, earthRadius)
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("SingleWaypoint", func(t *testing.T) {
		got, ok := TotalDistanceTraveled([]models.Waypoint{wp(0, 1, 1)}, earthRadius).Get()
		if !ok || got != 0 {
			t.Errorf("expected Some(0), got %v, %v", got, ok)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		if TotalDistanceTraveled(nil, earthRadius).IsSome() {
			t.Error("expected no result for empty sequence")
		}
	})
}
