package traffic

// Record is the per-station output handed to the rendering sink.
type Record struct {
	ID           string  `json:"id"`
	Name         string  `json:"name,omitempty"`
	Lon          float64 `json:"lon"`
	Lat          float64 `json:"lat"`
	Departures   int     `json:"departures"`
	Arrivals     int     `json:"arrivals"`
	TotalTraffic int     `json:"total_traffic"`
	Radius       float64 `json:"radius"`
	FlowBucket   float64 `json:"flow_bucket"`
	ScreenX      float64 `json:"screen_x"`
	ScreenY      float64 `json:"screen_y"`
}

// Snapshot is the result of one filter + aggregate + scale pass. It does not
// depend on the viewport.
type Snapshot struct {
	Filter    TimeFilter
	Stations  []Station
	TripCount int
	Radius    RadiusScale
	Flow      FlowScale
}

// Compute runs the time filter, the aggregation and rebuilds both scales
// against the freshly aggregated stations.
func Compute(stations []Station, trips []Trip, filter TimeFilter) Snapshot {
	filtered := FilterTrips(trips, filter)
	aggregated := Aggregate(stations, filtered)
	return Snapshot{
		Filter:    filter,
		Stations:  aggregated,
		TripCount: len(filtered),
		Radius:    NewRadiusScale(aggregated),
	}
}

// Records projects every station of the snapshot under t.
func (s Snapshot) Records(t Transform) []Record {
	records := make([]Record, len(s.Stations))
	for i, st := range s.Stations {
		pt := Project(st, t)
		records[i] = Record{
			ID:           st.ID,
			Name:         st.Name,
			Lon:          st.Lon,
			Lat:          st.Lat,
			Departures:   st.Departures,
			Arrivals:     st.Arrivals,
			TotalTraffic: st.TotalTraffic,
			Radius:       s.Radius.Radius(st.TotalTraffic),
			FlowBucket:   s.Flow.Bucket(FlowRatio(st)),
			ScreenX:      pt.X,
			ScreenY:      pt.Y,
		}
	}
	return records
}

// Frame is one complete refresh for the rendering sink.
type Frame struct {
	Filter     TimeFilter `json:"time_filter"`
	Label      string     `json:"label"`
	MaxTraffic int        `json:"max_traffic"`
	TripCount  int        `json:"trip_count"`
	Records    []Record   `json:"records"`
}

// Frame projects the snapshot under t and labels it.
func (s Snapshot) Frame(t Transform) Frame {
	return Frame{
		Filter:     s.Filter,
		Label:      FormatTimeFilter(s.Filter),
		MaxTraffic: s.Radius.Max(),
		TripCount:  s.TripCount,
		Records:    s.Records(t),
	}
}
