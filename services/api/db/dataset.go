package db

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/02loveslollipop/bluebikes-traffic-viewer/services/api/traffic"
)

// LoadDataset reads the roster and the trip log and converts them into
// engine inputs.
func (s *Store) LoadDataset(ctx context.Context) (traffic.Dataset, error) {
	start := time.Now()

	stations, err := s.ListStations(ctx)
	if err != nil {
		return traffic.Dataset{}, fmt.Errorf("load stations: %w", err)
	}
	trips, err := s.ListTrips(ctx)
	if err != nil {
		return traffic.Dataset{}, fmt.Errorf("load trips: %w", err)
	}

	ds := BuildDataset(stations, trips)
	log.Info().
		Int("stations", len(ds.Stations)).
		Int("trips", len(ds.Trips)).
		Dur("elapsed", time.Since(start)).
		Msg("dataset loaded")
	return ds, nil
}

// BuildDataset converts stored rows into a traffic.Dataset.
func BuildDataset(stations []Station, trips []Trip) traffic.Dataset {
	ds := traffic.Dataset{
		Stations: make([]traffic.Station, 0, len(stations)),
		Trips:    make([]traffic.Trip, 0, len(trips)),
		LoadedAt: time.Now().UTC(),
	}
	for _, st := range stations {
		rec := traffic.Station{ID: st.ID, Lon: st.Lon, Lat: st.Lat}
		if st.Name != nil {
			rec.Name = *st.Name
		}
		ds.Stations = append(ds.Stations, rec)
	}
	for _, t := range trips {
		ds.Trips = append(ds.Trips, traffic.NewTrip(t.StartStationID, t.EndStationID, t.StartedAt, t.EndedAt))
	}
	return ds
}
