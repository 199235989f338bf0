package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/kr/pretty"

	"github.com/02loveslollipop/bluebikes-traffic-viewer/services/loader/internal/models"
)

func intPtr(v int) *int       { return &v }
func boolPtr(v bool) *bool    { return &v }
func strPtr(v string) *string { return &v }

func TestBuildStationRows(t *testing.T) {
	stations := []models.FeedStation{
		{StationID: "s2", ShortName: "B32006", Name: " Kendall T ", Lat: 42.36, Lon: -71.08, RegionID: "10"},
		{StationID: "s1", ShortName: "A32000", Name: "Fan Pier", Lat: 42.35, Lon: -71.04, Capacity: intPtr(15), LegacyID: "7"},
		{StationID: "99", Name: "Fallback"},
		{StationID: "", ShortName: ""},
		{StationID: "dup", ShortName: "A32000", Name: "Duplicate"},
	}

	got := BuildStationRows(stations)
	want := []models.StationRow{
		{ID: "99", Name: "Fallback", StationID: "99", Metadata: map[string]any{"source": "feed"}},
		{ID: "A32000", Name: "Fan Pier", Lat: 42.35, Lon: -71.04, Capacity: intPtr(15), StationID: "s1", Metadata: map[string]any{"source": "feed", "legacy_id": "7"}},
		{ID: "B32006", Name: "Kendall T", Lat: 42.36, Lon: -71.08, RegionID: "10", StationID: "s2", Metadata: map[string]any{"source": "feed"}},
	}
	if diff := pretty.Diff(got, want); len(diff) > 0 {
		t.Errorf("unexpected rows:\n%s", strings.Join(diff, "\n"))
	}

	if ids := StationIDs(got); strings.Join(ids, ",") != "99,A32000,B32006" {
		t.Errorf("unexpected ids %v", ids)
	}
}

func TestParseTripTime(t *testing.T) {
	want := time.Date(2024, 3, 1, 8, 10, 0, 0, time.UTC)
	for _, in := range []string{
		"2024-03-01 08:10:00",
		"2024-03-01 08:10:00.000",
		"2024-03-01T08:10:00",
		" 2024-03-01 08:10 ",
	} {
		got, ok := ParseTripTime(in)
		if !ok || !got.Equal(want) {
			t.Errorf("ParseTripTime(%q) = %v, %v", in, got, ok)
		}
	}

	for _, in := range []string{"", "yesterday", "03/01/2024 08:10"} {
		if _, ok := ParseTripTime(in); ok {
			t.Errorf("ParseTripTime(%q) unexpectedly succeeded", in)
		}
	}
}

func TestParseMember(t *testing.T) {
	for in, want := range map[string]*bool{
		"1":      boolPtr(true),
		"member": boolPtr(true),
		"TRUE":   boolPtr(true),
		"0":      boolPtr(false),
		"casual": boolPtr(false),
		"":       nil,
		"maybe":  nil,
	} {
		got := ParseMember(in)
		if diff := pretty.Diff(got, want); len(diff) > 0 {
			t.Errorf("ParseMember(%q): %s", in, strings.Join(diff, "; "))
		}
	}
}

func TestBuildTripRows(t *testing.T) {
	records := []models.TripRecord{
		{RideID: "R1", BikeType: "classic", StartedAt: "2024-03-01 08:10:00", EndedAt: "2024-03-01 08:25:00", StartStationID: "A", EndStationID: "B", IsMember: "1"},
		{RideID: "R1", StartedAt: "2024-03-01 09:00:00", EndedAt: "2024-03-01 09:10:00", StartStationID: "A", EndStationID: "B"},
		{RideID: "R2", StartedAt: "not a time", EndedAt: "2024-03-01 09:10:00", StartStationID: "A", EndStationID: "B"},
		{RideID: "R3", StartedAt: "2024-03-01 09:00:00", EndedAt: "2024-03-01 09:10:00", StartStationID: "", EndStationID: "B"},
		{RideID: "", StartedAt: "2024-03-01 09:00:00", EndedAt: "2024-03-01 09:10:00", StartStationID: "A", EndStationID: "B"},
		{RideID: "R4", StartedAt: "2024-03-01T23:50:00", EndedAt: "2024-03-02T00:05:00", StartStationID: "B", EndStationID: "A", IsMember: "casual"},
	}

	rows, stats := BuildTripRows(records)

	wantStats := models.TripStats{Total: 6, Valid: 2, Invalid: 3, Duplicates: 1}
	if stats != wantStats {
		t.Errorf("stats = %+v, expected %+v", stats, wantStats)
	}

	want := []models.TripRow{
		{
			RideID:         "R1",
			BikeType:       strPtr("classic"),
			StartedAt:      time.Date(2024, 3, 1, 8, 10, 0, 0, time.UTC),
			EndedAt:        time.Date(2024, 3, 1, 8, 25, 0, 0, time.UTC),
			StartStationID: "A",
			EndStationID:   "B",
			IsMember:       boolPtr(true),
		},
		{
			RideID:         "R4",
			StartedAt:      time.Date(2024, 3, 1, 23, 50, 0, 0, time.UTC),
			EndedAt:        time.Date(2024, 3, 2, 0, 5, 0, 0, time.UTC),
			StartStationID: "B",
			EndStationID:   "A",
			IsMember:       boolPtr(false),
		},
	}
	if diff := pretty.Diff(rows, want); len(diff) > 0 {
		t.Errorf("unexpected rows:\n%s", strings.Join(diff, "\n"))
	}
}

func TestUnknownStations(t *testing.T) {
	trips := []models.TripRow{
		{StartStationID: "A", EndStationID: "GHOST"},
		{StartStationID: "ZED", EndStationID: "A"},
		{StartStationID: "GHOST", EndStationID: "B"},
	}
	got := UnknownStations(trips, []string{"A", "B"})
	if strings.Join(got, ",") != "GHOST,ZED" {
		t.Errorf("UnknownStations = %v", got)
	}
}
