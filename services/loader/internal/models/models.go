package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// StationFeed models the station information payload (GBFS style).
type StationFeed struct {
	LastUpdated int64 `json:"last_updated"`
	Data        struct {
		Stations []FeedStation `json:"stations"`
	} `json:"data"`
}

// FeedStation represents a single station entry from the feed.
type FeedStation struct {
	StationID FlexString `json:"station_id"`
	ShortName string     `json:"short_name"`
	Name      string     `json:"name"`
	Lat       float64    `json:"lat"`
	Lon       float64    `json:"lon"`
	Capacity  *int       `json:"capacity"`
	RegionID  FlexString `json:"region_id"`
	LegacyID  FlexString `json:"legacy_id"`
}

// FlexString accepts both JSON strings and bare numbers; feeds disagree on
// how identifiers are encoded.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	*f = FlexString(b)
	return nil
}

// TripRecord is one row of the trip CSV.
type TripRecord struct {
	RideID         string `csv:"ride_id"`
	BikeType       string `csv:"bike_type"`
	StartedAt      string `csv:"started_at"`
	EndedAt        string `csv:"ended_at"`
	StartStationID string `csv:"start_station_id"`
	EndStationID   string `csv:"end_station_id"`
	IsMember       string `csv:"is_member"`
}

// StationRow captures the normalized station metadata for DB operations.
type StationRow struct {
	ID        string
	Name      string
	Lat       float64
	Lon       float64
	Capacity  *int
	RegionID  string
	StationID string
	Metadata  map[string]any
}

// TripRow is a validated trip ready for insertion.
type TripRow struct {
	RideID         string
	BikeType       *string
	StartedAt      time.Time
	EndedAt        time.Time
	StartStationID string
	EndStationID   string
	IsMember       *bool
}

// TripStats summarizes a trip normalization pass.
type TripStats struct {
	Total      int
	Valid      int
	Invalid    int
	Duplicates int
}
