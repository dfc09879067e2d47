package waypoints

import (
	"archive/zip"
	"bytes"
	"testing"
)

var gtfsFixtureFiles = map[string]string{
	"agency.txt": "agency_id,agency_name,agency_url,agency_timezone\n" +
		"GTT,Gruppo Torinese Trasporti,https://www.gtt.to.it,Europe/Rome\n",
	"routes.txt": "route_id,agency_id,route_short_name,route_long_name,route_type\n" +
		"R4,GTT,4,Falchera - Strada del Drosso,0\n",
	"stops.txt": "stop_id,stop_name,stop_lat,stop_lon\n" +
		"S1,Porta Nuova,45.0622,7.6785\n" +
		"S2,Porta Susa,45.0716,7.6650\n",
	"calendar.txt": "service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date\n" +
		"WK,1,1,1,1,1,0,0,20250101,20251231\n",
	"trips.txt": "route_id,service_id,trip_id,shape_id\n" +
		"R4,WK,T1,SH1\n",
	"stop_times.txt": "trip_id,arrival_time,departure_time,stop_id,stop_sequence\n" +
		"T1,08:00:00,08:00:00,S1,1\n" +
		"T1,08:10:00,08:10:00,S2,2\n",
	"shapes.txt": "shape_id,shape_pt_lat,shape_pt_lon,shape_pt_sequence\n" +
		"SH1,45.0622,7.6785,1\n" +
		"SH1,45.0670,7.6720,2\n" +
		"SH1,45.0716,7.6650,3\n",
}

// buildGTFSBundle returns a zipped GTFS static feed with a single shape
// "SH1" of three points.
func buildGTFSBundle(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range gtfsFixtureFiles {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("Failed to create %s in zip: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
	return buf.Bytes()
}
