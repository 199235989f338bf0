package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/kr/pretty"

	"github.com/02loveslollipop/bluebikes-traffic-viewer/services/api/traffic"
)

func TestBuildDataset(t *testing.T) {
	name := "Fan Pier"
	stations := []Station{
		{ID: "A32000", Name: &name, Lat: 42.353391, Lon: -71.044571},
		{ID: "B32006", Lat: 42.3581, Lon: -71.0936},
	}
	trips := []Trip{
		{
			RideID:         "r1",
			StartedAt:      time.Date(2024, 3, 1, 8, 0, 12, 0, time.UTC),
			EndedAt:        time.Date(2024, 3, 1, 8, 10, 3, 0, time.UTC),
			StartStationID: "A32000",
			EndStationID:   "B32006",
		},
	}

	ds := BuildDataset(stations, trips)
	wantStations := []traffic.Station{
		{ID: "A32000", Name: "Fan Pier", Lat: 42.353391, Lon: -71.044571},
		{ID: "B32006", Lat: 42.3581, Lon: -71.0936},
	}
	wantTrips := []traffic.Trip{
		{StartStationID: "A32000", EndStationID: "B32006", StartMinute: 480, EndMinute: 490},
	}
	if diff := pretty.Diff(ds.Stations, wantStations); len(diff) > 0 {
		t.Errorf("stations:\n%v", diff)
	}
	if diff := pretty.Diff(ds.Trips, wantTrips); len(diff) > 0 {
		t.Errorf("trips:\n%v", diff)
	}
	if ds.LoadedAt.IsZero() {
		t.Errorf("LoadedAt not set")
	}
}

// TestStoreRoundTrip runs against a live database when TEST_DATABASE_URL is
// set and the schema in schema.sql has been applied.
func TestStoreRoundTrip(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := New(ctx, url)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if err := store.Ping(ctx); err != nil {
		t.Fatal(err)
	}
	counts, err := store.Counts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	ds, err := store.LoadDataset(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(ds.Stations) != counts.Stations || len(ds.Trips) != counts.Trips {
		t.Errorf("dataset %d/%d rows, counts %+v", len(ds.Stations), len(ds.Trips), counts)
	}

	if st, err := store.GetStation(ctx, "no-such-station"); err != nil || st != nil {
		t.Errorf("GetStation(unknown) = %v, %v; expected nil, nil", st, err)
	}
}
