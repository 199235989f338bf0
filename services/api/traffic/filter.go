package traffic

// WindowMinutes is the half-width of the time window around a filter value.
const WindowMinutes = 60

// FilterTrips returns the trips that start or end within WindowMinutes of the
// filter minute. NoFilter returns trips itself.
//
// The distance is a plain difference on the 0..1439 scale and does not wrap
// around midnight: a trip at 23:50 is far from a filter at 00:10.
func FilterTrips(trips []Trip, filter TimeFilter) []Trip {
	if filter == NoFilter {
		return trips
	}

	out := make([]Trip, 0, len(trips))
	for _, trip := range trips {
		if withinWindow(trip.StartMinute, filter) || withinWindow(trip.EndMinute, filter) {
			out = append(out, trip)
		}
	}
	return out
}

func withinWindow(minute int, filter TimeFilter) bool {
	d := minute - int(filter)
	if d < 0 {
		d = -d
	}
	return d <= WindowMinutes
}
