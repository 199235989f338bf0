package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/02loveslollipop/bluebikes-traffic-viewer/services/api/traffic"
)

// handleV1ListStations returns the station roster
// GET /api/v1/core/stations
func (s *Server) handleV1ListStations(c *gin.Context) {
	stations := s.data.Dataset().Stations

	c.JSON(http.StatusOK, gin.H{
		"data": stations,
		"meta": gin.H{
			"count": len(stations),
		},
	})
}

// handleV1GetStation returns a station with its traffic for an optional
// time filter
// GET /api/v1/core/stations/:id?time=500
func (s *Server) handleV1GetStation(c *gin.Context) {
	stationID := c.Param("id")
	if stationID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "station id is required"})
		return
	}

	filter, err := traffic.ParseTimeFilter(c.Query("time"))
	if err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}

	snap, _ := s.data.Snapshot(filter)
	for _, st := range snap.Stations {
		if st.ID != stationID {
			continue
		}
		c.JSON(http.StatusOK, gin.H{
			"data": st,
			"meta": gin.H{
				"time_filter": filter,
				"label":       traffic.FormatTimeFilter(filter),
				"radius":      snap.Radius.Radius(st.TotalTraffic),
				"flow_ratio":  traffic.FlowRatio(st),
				"flow_bucket": snap.Flow.Bucket(traffic.FlowRatio(st)),
			},
		})
		return
	}

	writeError(c, http.StatusNotFound, errors.New("station not found"))
}
