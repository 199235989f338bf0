package traffic

// Transform converts geographic coordinates into pixels of the current
// viewport.
type Transform interface {
	Project(lon, lat float64) (x, y float64)
}

// TransformFunc adapts a plain function to Transform.
type TransformFunc func(lon, lat float64) (x, y float64)

// Project calls f.
func (f TransformFunc) Project(lon, lat float64) (float64, float64) {
	return f(lon, lat)
}

// ScreenPoint is a position in viewport pixels.
type ScreenPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Project places st under the viewport transform t.
func Project(st Station, t Transform) ScreenPoint {
	x, y := t.Project(st.Lon, st.Lat)
	return ScreenPoint{X: x, Y: y}
}
