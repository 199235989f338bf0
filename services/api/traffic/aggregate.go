package traffic

// Aggregate counts departures and arrivals per roster station. It returns a
// fresh slice in roster order; trips naming stations outside the roster are
// not attributed to anyone.
func Aggregate(stations []Station, trips []Trip) []Station {
	departures := make(map[string]int, len(stations))
	arrivals := make(map[string]int, len(stations))
	for _, trip := range trips {
		departures[trip.StartStationID]++
		arrivals[trip.EndStationID]++
	}

	out := make([]Station, len(stations))
	for i, st := range stations {
		st.Departures = departures[st.ID]
		st.Arrivals = arrivals[st.ID]
		st.TotalTraffic = st.Departures + st.Arrivals
		out[i] = st
	}
	return out
}

// MaxTraffic returns the largest TotalTraffic in stations, or 0.
func MaxTraffic(stations []Station) int {
	highest := 0
	for _, st := range stations {
		if st.TotalTraffic > highest {
			highest = st.TotalTraffic
		}
	}
	return highest
}
