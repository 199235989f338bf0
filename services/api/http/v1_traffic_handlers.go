package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/02loveslollipop/bluebikes-traffic-viewer/services/api/mapview"
	"github.com/02loveslollipop/bluebikes-traffic-viewer/services/api/traffic"
)

// handleV1Traffic returns per-station traffic for a time filter, projected
// under the requested viewport
// GET /api/v1/traffic?time=500&lon=-71.09&lat=42.36&zoom=12&width=1280&height=800
func (s *Server) handleV1Traffic(c *gin.Context) {
	filter, err := traffic.ParseTimeFilter(c.Query("time"))
	if err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}

	vp, err := viewportFromQuery(c, s.cfg.Viewport)
	if err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}

	snap, cached := s.data.Snapshot(filter)
	frame := snap.Frame(vp)

	visible := 0
	for _, r := range frame.Records {
		if vp.Contains(r.Lon, r.Lat) {
			visible++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"data": frame.Records,
		"meta": gin.H{
			"time_filter": frame.Filter,
			"label":       frame.Label,
			"count":       len(frame.Records),
			"visible":     visible,
			"bounds":      vp.Bound(),
			"trip_count":  frame.TripCount,
			"max_traffic": frame.MaxTraffic,
			"viewport":    vp,
			"cached":      cached,
		},
	})
}

// viewportFromQuery overrides base with lon, lat, zoom, width and height
// query parameters when present.
func viewportFromQuery(c *gin.Context, base mapview.Viewport) (mapview.Viewport, error) {
	floatParam := func(name string) (*float64, error) {
		raw := c.Query(name)
		if raw == "" {
			return nil, nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid %s %q", mapview.ErrInvalidViewport, name, raw)
		}
		return &v, nil
	}
	intParam := func(name string) (*int, error) {
		raw := c.Query(name)
		if raw == "" {
			return nil, nil
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid %s %q", mapview.ErrInvalidViewport, name, raw)
		}
		return &v, nil
	}

	lon, err := floatParam("lon")
	if err != nil {
		return mapview.Viewport{}, err
	}
	lat, err := floatParam("lat")
	if err != nil {
		return mapview.Viewport{}, err
	}
	zoom, err := floatParam("zoom")
	if err != nil {
		return mapview.Viewport{}, err
	}
	width, err := intParam("width")
	if err != nil {
		return mapview.Viewport{}, err
	}
	height, err := intParam("height")
	if err != nil {
		return mapview.Viewport{}, err
	}
	return base.With(lon, lat, zoom, width, height)
}
