package utils

import (
	"strings"
	"time"

	"golang.org/x/exp/slices"

	"github.com/02loveslollipop/bluebikes-traffic-viewer/services/loader/internal/models"
)

// tripLayouts are the timestamp shapes seen in trip exports. Values carry no
// zone and are stored as local wall clock.
var tripLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04",
}

// BuildStationRows converts feed stations into database-ready rows keyed by
// short name. Stations without any identifier are skipped.
func BuildStationRows(stations []models.FeedStation) []models.StationRow {
	rows := make([]models.StationRow, 0, len(stations))
	seen := make(map[string]struct{}, len(stations))
	for _, st := range stations {
		id := strings.TrimSpace(st.ShortName)
		if id == "" {
			id = strings.TrimSpace(string(st.StationID))
		}
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		metadata := map[string]any{"source": "feed"}
		if st.LegacyID != "" {
			metadata["legacy_id"] = string(st.LegacyID)
		}

		rows = append(rows, models.StationRow{
			ID:        id,
			Name:      strings.TrimSpace(st.Name),
			Lat:       st.Lat,
			Lon:       st.Lon,
			Capacity:  st.Capacity,
			RegionID:  string(st.RegionID),
			StationID: string(st.StationID),
			Metadata:  metadata,
		})
	}

	slices.SortFunc(rows, func(a, b models.StationRow) int {
		return strings.Compare(a.ID, b.ID)
	})
	return rows
}

// StationIDs extracts station identifiers from station rows.
func StationIDs(rows []models.StationRow) []string {
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	return ids
}

// ParseTripTime parses a trip timestamp in any of the known layouts.
func ParseTripTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range tripLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseMember reads the membership column. Unknown values yield nil.
func ParseMember(s string) *bool {
	var v bool
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "t", "yes", "member":
		v = true
	case "0", "false", "f", "no", "casual":
		v = false
	default:
		return nil
	}
	return &v
}

// BuildTripRows validates raw CSV records. A record is dropped when it has no
// ride id, lacks a station on either end or has an unreadable timestamp.
// Repeated ride ids keep the first occurrence.
func BuildTripRows(records []models.TripRecord) ([]models.TripRow, models.TripStats) {
	stats := models.TripStats{Total: len(records)}
	rows := make([]models.TripRow, 0, len(records))
	seen := make(map[string]struct{}, len(records))

	for _, rec := range records {
		rideID := strings.TrimSpace(rec.RideID)
		start := strings.TrimSpace(rec.StartStationID)
		end := strings.TrimSpace(rec.EndStationID)
		if rideID == "" || start == "" || end == "" {
			stats.Invalid++
			continue
		}

		startedAt, ok := ParseTripTime(rec.StartedAt)
		if !ok {
			stats.Invalid++
			continue
		}
		endedAt, ok := ParseTripTime(rec.EndedAt)
		if !ok {
			stats.Invalid++
			continue
		}

		if _, dup := seen[rideID]; dup {
			stats.Duplicates++
			continue
		}
		seen[rideID] = struct{}{}

		var bikeType *string
		if bt := strings.TrimSpace(rec.BikeType); bt != "" {
			bikeType = &bt
		}

		rows = append(rows, models.TripRow{
			RideID:         rideID,
			BikeType:       bikeType,
			StartedAt:      startedAt,
			EndedAt:        endedAt,
			StartStationID: start,
			EndStationID:   end,
			IsMember:       ParseMember(rec.IsMember),
		})
	}

	stats.Valid = len(rows)
	return rows, stats
}

// UnknownStations lists the station ids referenced by trips that are not in
// known, sorted.
func UnknownStations(trips []models.TripRow, known []string) []string {
	set := make(map[string]struct{}, len(known))
	for _, id := range known {
		set[id] = struct{}{}
	}
	missing := make(map[string]struct{})
	for _, t := range trips {
		for _, id := range [2]string{t.StartStationID, t.EndStationID} {
			if _, ok := set[id]; !ok {
				missing[id] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(missing))
	for id := range missing {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
