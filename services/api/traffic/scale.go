package traffic

import "math"

// MaxRadius is the marker radius in pixels of the busiest station.
const MaxRadius = 25.0

// FlowBuckets are the discrete outputs of FlowScale, from arrival-dominant to
// departure-dominant.
var FlowBuckets = [3]float64{0, 0.5, 1}

// RadiusScale maps total traffic to a marker radius so that marker area grows
// linearly with traffic. Its domain is [0, max total traffic].
type RadiusScale struct {
	max int
}

// NewRadiusScale builds a scale whose domain ends at the busiest station.
func NewRadiusScale(stations []Station) RadiusScale {
	return RadiusScale{max: MaxTraffic(stations)}
}

// Max returns the upper end of the domain.
func (s RadiusScale) Max() int {
	return s.max
}

// Radius returns sqrt(total/max) * MaxRadius, clamped to [0, MaxRadius].
func (s RadiusScale) Radius(total int) float64 {
	if s.max <= 0 || total <= 0 {
		return 0
	}
	if total >= s.max {
		return MaxRadius
	}
	return MaxRadius * math.Sqrt(float64(total)/float64(s.max))
}

// FlowScale quantizes a flow ratio in [0, 1] into three equal-width buckets.
type FlowScale struct{}

// Bucket returns the FlowBuckets entry for ratio. NaN and values below the
// domain map to the first bucket, values above it to the last.
func (FlowScale) Bucket(ratio float64) float64 {
	if math.IsNaN(ratio) || ratio <= 0 {
		return FlowBuckets[0]
	}
	i := int(ratio * float64(len(FlowBuckets)))
	if i >= len(FlowBuckets) {
		i = len(FlowBuckets) - 1
	}
	return FlowBuckets[i]
}

// FlowRatio is departures over total traffic, or 0 for an idle station.
func FlowRatio(st Station) float64 {
	if st.TotalTraffic == 0 {
		return 0
	}
	return float64(st.Departures) / float64(st.TotalTraffic)
}
