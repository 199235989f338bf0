// Package traffic turns a station roster and a trip log into per-station
// departure and arrival counts, the visual scales derived from them and the
// screen positions of every station under the active map viewport.
package traffic

import "time"

// Station is a roster entry. Departures, Arrivals and TotalTraffic are derived
// by Aggregate and are overwritten on every pass.
type Station struct {
	ID           string  `json:"id"`
	Name         string  `json:"name,omitempty"`
	Lon          float64 `json:"lon"`
	Lat          float64 `json:"lat"`
	Departures   int     `json:"departures"`
	Arrivals     int     `json:"arrivals"`
	TotalTraffic int     `json:"total_traffic"`
}

// Trip is a single ride with both timestamps resolved to minute-of-day.
type Trip struct {
	StartStationID string `json:"start_station_id"`
	EndStationID   string `json:"end_station_id"`
	StartMinute    int    `json:"start_minute"`
	EndMinute      int    `json:"end_minute"`
}

// Dataset is the read-only input of the engine: the roster and the trip log as
// handed over by the loader.
type Dataset struct {
	Stations []Station
	Trips    []Trip
	LoadedAt time.Time
}

// MinutesSinceMidnight resolves a timestamp to its wall-clock minute of day.
func MinutesSinceMidnight(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// NewTrip builds a trip from its endpoints and timestamps.
func NewTrip(startStationID, endStationID string, startedAt, endedAt time.Time) Trip {
	return Trip{
		StartStationID: startStationID,
		EndStationID:   endStationID,
		StartMinute:    MinutesSinceMidnight(startedAt),
		EndMinute:      MinutesSinceMidnight(endedAt),
	}
}
