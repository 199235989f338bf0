package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/02loveslollipop/bluebikes-traffic-viewer/services/loader/internal/models"
)

// UpsertStations inserts/updates station metadata records.
func UpsertStations(ctx context.Context, pool *pgxpool.Pool, stations []models.StationRow) error {
	if len(stations) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `INSERT INTO bluebikes.stations (short_name, name, lat, lon, capacity, region_id, station_id, metadata, created_at, updated_at)
VALUES ($1,NULLIF($2,''),$3,$4,$5,NULLIF($6,''),NULLIF($7,''),$8,NOW(),NOW())
ON CONFLICT (short_name) DO UPDATE
SET name = EXCLUDED.name,
    lat = EXCLUDED.lat,
    lon = EXCLUDED.lon,
    capacity = EXCLUDED.capacity,
    region_id = EXCLUDED.region_id,
    station_id = EXCLUDED.station_id,
    metadata = EXCLUDED.metadata,
    updated_at = NOW()`

	for _, s := range stations {
		batch.Queue(query, s.ID, s.Name, s.Lat, s.Lon, s.Capacity, s.RegionID, s.StationID, s.Metadata)
	}

	res := pool.SendBatch(ctx, batch)
	defer res.Close()

	for range stations {
		if _, err := res.Exec(); err != nil {
			return err
		}
	}

	return nil
}

// UpsertTrips writes trips in batches of batchSize and returns how many rows
// were sent.
func UpsertTrips(ctx context.Context, pool *pgxpool.Pool, trips []models.TripRow, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = len(trips)
	}

	query := `INSERT INTO bluebikes.trips (ride_id, bike_type, started_at, ended_at, start_station_id, end_station_id, is_member, ingested_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,NOW())
ON CONFLICT (ride_id) DO UPDATE
SET bike_type = EXCLUDED.bike_type,
    started_at = EXCLUDED.started_at,
    ended_at = EXCLUDED.ended_at,
    start_station_id = EXCLUDED.start_station_id,
    end_station_id = EXCLUDED.end_station_id,
    is_member = EXCLUDED.is_member`

	written := 0
	for _, chunk := range Chunk(trips, batchSize) {
		batch := &pgx.Batch{}
		for _, t := range chunk {
			batch.Queue(query, t.RideID, t.BikeType, t.StartedAt, t.EndedAt, t.StartStationID, t.EndStationID, t.IsMember)
		}

		res := pool.SendBatch(ctx, batch)
		for range chunk {
			if _, err := res.Exec(); err != nil {
				res.Close()
				return written, err
			}
		}
		if err := res.Close(); err != nil {
			return written, err
		}
		written += len(chunk)
	}

	return written, nil
}

// Chunk splits items into consecutive slices of at most size elements.
func Chunk[T any](items []T, size int) [][]T {
	if len(items) == 0 || size <= 0 {
		return nil
	}
	out := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		out = append(out, items[start:end])
	}
	return out
}
