package feed

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/kr/pretty"

	"github.com/02loveslollipop/bluebikes-traffic-viewer/services/loader/internal/models"
)

const stationsJSON = `{
  "last_updated": 1710000000,
  "data": {
    "stations": [
      {"station_id": "a3a36d3e", "short_name": "A32000", "name": "Fan Pier", "lat": 42.353391, "lon": -71.044571, "capacity": 15, "region_id": 10},
      {"station_id": 42, "short_name": "", "name": "No Short Name", "lat": 42.3, "lon": -71.1, "capacity": null, "region_id": null}
    ]
  }
}`

const tripsCSV = "ride_id,bike_type,started_at,ended_at,start_station_id,end_station_id,is_member,extra\n" +
	"R1,classic,2024-03-01 08:10:00,2024-03-01 08:25:00,A32000,B32006,1,x\n" +
	"R2,electric,2024-03-01 17:45:12.000,2024-03-01 18:02:00.000,B32006,A32000,0\n"

func expectedTrips() []models.TripRecord {
	return []models.TripRecord{
		{RideID: "R1", BikeType: "classic", StartedAt: "2024-03-01 08:10:00", EndedAt: "2024-03-01 08:25:00", StartStationID: "A32000", EndStationID: "B32006", IsMember: "1"},
		{RideID: "R2", BikeType: "electric", StartedAt: "2024-03-01 17:45:12.000", EndedAt: "2024-03-01 18:02:00.000", StartStationID: "B32006", EndStationID: "A32000", IsMember: "0"},
	}
}

func TestFetchStations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(stationsJSON))
	}))
	defer srv.Close()

	payload, err := FetchStations(context.Background(), srv.Client(), srv.URL+"/bluebikes-stations.json")
	if err != nil {
		t.Fatalf("FetchStations: %v", err)
	}

	if len(payload.Data.Stations) != 2 {
		t.Fatalf("expected 2 stations, got %d", len(payload.Data.Stations))
	}
	first := payload.Data.Stations[0]
	if first.ShortName != "A32000" || first.RegionID != "10" || first.Capacity == nil || *first.Capacity != 15 {
		t.Errorf("unexpected first station: %# v", pretty.Formatter(first))
	}
	second := payload.Data.Stations[1]
	if second.StationID != "42" || second.RegionID != "" || second.Capacity != nil {
		t.Errorf("unexpected second station: %# v", pretty.Formatter(second))
	}
}

func TestFetchStationsBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := FetchStations(context.Background(), srv.Client(), srv.URL); err == nil {
		t.Fatal("expected an error for a 404 response")
	}
}

func TestParseTrips(t *testing.T) {
	got, err := ParseTrips(strings.NewReader(tripsCSV))
	if err != nil {
		t.Fatalf("ParseTrips: %v", err)
	}
	if diff := pretty.Diff(got, expectedTrips()); len(diff) > 0 {
		t.Errorf("unexpected records:\n%s", strings.Join(diff, "\n"))
	}
}

func TestParseTripsStripsBOM(t *testing.T) {
	got, err := ParseTrips(strings.NewReader("\xEF\xBB\xBF" + tripsCSV))
	if err != nil {
		t.Fatalf("ParseTrips: %v", err)
	}
	if len(got) != 2 || got[0].RideID != "R1" {
		t.Errorf("BOM not stripped: %# v", pretty.Formatter(got))
	}
}

func TestFetchTripsCompressed(t *testing.T) {
	dir := t.TempDir()

	var gz bytes.Buffer
	gw := gzip.NewWriter(&gz)
	if _, err := gw.Write([]byte(tripsCSV)); err != nil {
		t.Fatal(err)
	}
	if err := gw.Close(); err != nil {
		t.Fatal(err)
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatal(err)
	}
	zst := enc.EncodeAll([]byte(tripsCSV), nil)
	enc.Close()

	files := map[string][]byte{
		"trips.csv":     []byte(tripsCSV),
		"trips.csv.gz":  gz.Bytes(),
		"trips.csv.zst": zst,
	}

	for name, data := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatal(err)
		}

		got, err := FetchTrips(context.Background(), http.DefaultClient, path)
		if err != nil {
			t.Errorf("%s: FetchTrips: %v", name, err)
			continue
		}
		if diff := pretty.Diff(got, expectedTrips()); len(diff) > 0 {
			t.Errorf("%s: unexpected records:\n%s", name, strings.Join(diff, "\n"))
		}
	}
}

func TestOpenRemoteGzip(t *testing.T) {
	var gz bytes.Buffer
	gw := gzip.NewWriter(&gz)
	_, _ = gw.Write([]byte(tripsCSV))
	_ = gw.Close()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(gz.Bytes())
	}))
	defer srv.Close()

	got, err := FetchTrips(context.Background(), srv.Client(), srv.URL+"/trips.csv.gz?token=abc")
	if err != nil {
		t.Fatalf("FetchTrips: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 records, got %d", len(got))
	}
}

func TestIsURL(t *testing.T) {
	for in, want := range map[string]bool{
		"https://example.com/a.json": true,
		"http://localhost:8080":      true,
		"data/trips.csv":             false,
		"/tmp/https.csv":             false,
	} {
		if got := IsURL(in); got != want {
			t.Errorf("IsURL(%q) = %v, expected %v", in, got, want)
		}
	}
}
