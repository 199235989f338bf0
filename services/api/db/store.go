package db

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store wraps database access helpers.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store backed by a pgx pool.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// Close releases the pool resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Station represents a roster record.
type Station struct {
	ID        string    `json:"id"`
	Name      *string   `json:"name,omitempty"`
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
	Capacity  *int32    `json:"capacity,omitempty"`
	RegionID  *string   `json:"region_id,omitempty"`
	StationID *string   `json:"station_id,omitempty"`
	Metadata  []byte    `json:"metadata,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const stationColumns = `short_name, name, lat, lon, capacity, region_id, station_id, metadata, created_at, updated_at`

const listStationsSQL = `
    SELECT ` + stationColumns + `
    FROM bluebikes.stations
    ORDER BY short_name
`

func scanStation(row pgx.Row) (Station, error) {
	var st Station
	err := row.Scan(
		&st.ID,
		&st.Name,
		&st.Lat,
		&st.Lon,
		&st.Capacity,
		&st.RegionID,
		&st.StationID,
		&st.Metadata,
		&st.CreatedAt,
		&st.UpdatedAt,
	)
	return st, err
}

// ListStations returns the full station roster.
func (s *Store) ListStations(ctx context.Context) ([]Station, error) {
	rows, err := s.pool.Query(ctx, listStationsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stations := make([]Station, 0)
	for rows.Next() {
		st, err := scanStation(rows)
		if err != nil {
			return nil, err
		}
		stations = append(stations, st)
	}
	return stations, rows.Err()
}

// GetStation returns one station, or nil when the id is unknown.
func (s *Store) GetStation(ctx context.Context, id string) (*Station, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+stationColumns+` FROM bluebikes.stations WHERE short_name = $1`, id)
	st, err := scanStation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// Trip represents a stored ride.
type Trip struct {
	RideID         string    `json:"ride_id"`
	BikeType       *string   `json:"bike_type,omitempty"`
	StartedAt      time.Time `json:"started_at"`
	EndedAt        time.Time `json:"ended_at"`
	StartStationID string    `json:"start_station_id"`
	EndStationID   string    `json:"end_station_id"`
	IsMember       *bool     `json:"is_member,omitempty"`
}

const listTripsSQL = `
    SELECT ride_id, bike_type, started_at, ended_at, start_station_id, end_station_id, is_member
    FROM bluebikes.trips
    ORDER BY started_at, ride_id
`

// ListTrips returns the whole trip log. Timestamps keep the wall clock they
// were stored with.
func (s *Store) ListTrips(ctx context.Context) ([]Trip, error) {
	rows, err := s.pool.Query(ctx, listTripsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trips := make([]Trip, 0)
	for rows.Next() {
		var t Trip
		if err := rows.Scan(
			&t.RideID,
			&t.BikeType,
			&t.StartedAt,
			&t.EndedAt,
			&t.StartStationID,
			&t.EndStationID,
			&t.IsMember,
		); err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

// Counts holds table sizes for health reporting.
type Counts struct {
	Stations int `json:"stations"`
	Trips    int `json:"trips"`
}

// Counts returns the number of stored stations and trips.
func (s *Store) Counts(ctx context.Context) (Counts, error) {
	var c Counts
	err := s.pool.QueryRow(ctx, `
    SELECT (SELECT COUNT(*) FROM bluebikes.stations),
           (SELECT COUNT(*) FROM bluebikes.trips)`).Scan(&c.Stations, &c.Trips)
	return c, err
}
