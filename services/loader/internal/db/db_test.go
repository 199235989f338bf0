package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/02loveslollipop/bluebikes-traffic-viewer/services/loader/internal/models"
)

func TestChunk(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	for _, c := range []struct {
		size int
		want []int
	}{
		{1, []int{1, 1, 1, 1, 1}},
		{2, []int{2, 2, 1}},
		{5, []int{5}},
		{10, []int{5}},
		{0, nil},
	} {
		chunks := Chunk(items, c.size)
		if len(chunks) != len(c.want) {
			t.Errorf("size %d: %d chunks, expected %d", c.size, len(chunks), len(c.want))
			continue
		}
		for i, chunk := range chunks {
			if len(chunk) != c.want[i] {
				t.Errorf("size %d: chunk %d has %d items, expected %d", c.size, i, len(chunk), c.want[i])
			}
		}
	}

	if Chunk([]int(nil), 3) != nil {
		t.Error("expected nil for empty input")
	}
}

// TestUpsertRoundTrip needs a disposable database with the bluebikes schema.
func TestUpsertRoundTrip(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatal(err)
	}
	defer pool.Close()

	stations := []models.StationRow{
		{ID: "TEST-A", Name: "Test A", Lat: 42.36, Lon: -71.09, Metadata: map[string]any{"source": "test"}},
		{ID: "TEST-B", Name: "Test B", Lat: 42.35, Lon: -71.05},
	}
	if err := UpsertStations(ctx, pool, stations); err != nil {
		t.Fatalf("UpsertStations: %v", err)
	}

	start := time.Date(2024, 3, 1, 8, 10, 0, 0, time.UTC)
	trips := []models.TripRow{
		{RideID: "TEST-R1", StartedAt: start, EndedAt: start.Add(15 * time.Minute), StartStationID: "TEST-A", EndStationID: "TEST-B"},
		{RideID: "TEST-R2", StartedAt: start, EndedAt: start.Add(5 * time.Minute), StartStationID: "TEST-B", EndStationID: "TEST-A"},
		{RideID: "TEST-R3", StartedAt: start, EndedAt: start.Add(9 * time.Minute), StartStationID: "TEST-A", EndStationID: "TEST-A"},
	}
	n, err := UpsertTrips(ctx, pool, trips, 2)
	if err != nil {
		t.Fatalf("UpsertTrips: %v", err)
	}
	if n != len(trips) {
		t.Errorf("wrote %d trips, expected %d", n, len(trips))
	}

	t.Cleanup(func() {
		_, _ = pool.Exec(ctx, `DELETE FROM bluebikes.trips WHERE ride_id LIKE 'TEST-%'`)
		_, _ = pool.Exec(ctx, `DELETE FROM bluebikes.stations WHERE short_name LIKE 'TEST-%'`)
	})
}
