// Package mapview provides the Web Mercator viewport the map frontend renders
// with, so station positions can be computed server side.
package mapview

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

const (
	// TileSize is the pixel size of one web map tile at integer zoom levels.
	TileSize = 512
	// MinZoom and MaxZoom bound the zoom levels the map allows.
	MinZoom = 5.0
	MaxZoom = 18.0
	// MaxLatitude is the latitude limit of Web Mercator.
	MaxLatitude = 85.05112878

	earthRadius = 6378137.0
)

// Default view of the Boston area.
var (
	DefaultCenter = orb.Point{-71.09415, 42.36027}
	DefaultZoom   = 12.0
	DefaultWidth  = 1280
	DefaultHeight = 800
)

// ErrInvalidViewport is returned for viewports that cannot be projected.
var ErrInvalidViewport = errors.New("invalid viewport")

// Viewport is the visible map area: its centre, zoom level and pixel size.
type Viewport struct {
	Center orb.Point `json:"center"`
	Zoom   float64   `json:"zoom"`
	Width  int       `json:"width"`
	Height int       `json:"height"`

	centerMeters orb.Point
	scale        float64
}

// New validates the parameters and returns a viewport ready to project. The
// zoom level is clamped to [MinZoom, MaxZoom].
func New(center orb.Point, zoom float64, width, height int) (Viewport, error) {
	switch {
	case width <= 0 || height <= 0:
		return Viewport{}, fmt.Errorf("%w: size %dx%d", ErrInvalidViewport, width, height)
	case math.IsNaN(center.Lon()) || center.Lon() < -180 || center.Lon() > 180:
		return Viewport{}, fmt.Errorf("%w: longitude %f", ErrInvalidViewport, center.Lon())
	case math.IsNaN(center.Lat()) || math.Abs(center.Lat()) > MaxLatitude:
		return Viewport{}, fmt.Errorf("%w: latitude %f", ErrInvalidViewport, center.Lat())
	case math.IsNaN(zoom):
		return Viewport{}, fmt.Errorf("%w: zoom is NaN", ErrInvalidViewport)
	}

	zoom = math.Max(MinZoom, math.Min(MaxZoom, zoom))
	worldSize := TileSize * math.Exp2(zoom)

	return Viewport{
		Center:       center,
		Zoom:         zoom,
		Width:        width,
		Height:       height,
		centerMeters: project.Point(center, project.WGS84.ToMercator),
		scale:        worldSize / (2 * math.Pi * earthRadius),
	}, nil
}

// Default returns the initial view of the map.
func Default() Viewport {
	v, _ := New(DefaultCenter, DefaultZoom, DefaultWidth, DefaultHeight)
	return v
}

// Project converts a longitude/latitude pair into pixels, with the origin at
// the top left corner of the viewport.
func (v Viewport) Project(lon, lat float64) (float64, float64) {
	lat = math.Max(-MaxLatitude, math.Min(MaxLatitude, lat))
	p := project.Point(orb.Point{lon, lat}, project.WGS84.ToMercator)

	x := float64(v.Width)/2 + (p.X()-v.centerMeters.X())*v.scale
	y := float64(v.Height)/2 - (p.Y()-v.centerMeters.Y())*v.scale
	return x, y
}

// Unproject is the inverse of Project.
func (v Viewport) Unproject(x, y float64) orb.Point {
	mx := v.centerMeters.X() + (x-float64(v.Width)/2)/v.scale
	my := v.centerMeters.Y() - (y-float64(v.Height)/2)/v.scale
	return project.Point(orb.Point{mx, my}, project.Mercator.ToWGS84)
}

// Bound returns the geographic extent of the viewport.
func (v Viewport) Bound() orb.Bound {
	return orb.MultiPoint{
		v.Unproject(0, 0),
		v.Unproject(float64(v.Width), float64(v.Height)),
	}.Bound()
}

// Contains reports whether lon/lat falls inside the viewport.
func (v Viewport) Contains(lon, lat float64) bool {
	return v.Bound().Contains(orb.Point{lon, lat})
}

// With returns a copy of v with the non-nil fields replaced.
func (v Viewport) With(lon, lat, zoom *float64, width, height *int) (Viewport, error) {
	center, z, w, h := v.Center, v.Zoom, v.Width, v.Height
	if lon != nil {
		center[0] = *lon
	}
	if lat != nil {
		center[1] = *lat
	}
	if zoom != nil {
		z = *zoom
	}
	if width != nil {
		w = *width
	}
	if height != nil {
		h = *height
	}
	return New(center, z, w, h)
}
