package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/02loveslollipop/bluebikes-traffic-viewer/services/api/mapview"
	"github.com/02loveslollipop/bluebikes-traffic-viewer/services/api/traffic"
)

var errSessionNotFound = errors.New("session not found")

type viewportRequest struct {
	Lon    *float64 `json:"lon"`
	Lat    *float64 `json:"lat"`
	Zoom   *float64 `json:"zoom"`
	Width  *int     `json:"width"`
	Height *int     `json:"height"`
}

func (r viewportRequest) apply(base mapview.Viewport) (mapview.Viewport, error) {
	return base.With(r.Lon, r.Lat, r.Zoom, r.Width, r.Height)
}

type timeRequest struct {
	Time *int `json:"time"`
}

// handleV1CreateSession starts an interactive view on the current dataset
// and returns its unfiltered baseline frame
// POST /api/v1/sessions
func (s *Server) handleV1CreateSession(c *gin.Context) {
	var req viewportRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	vp, err := req.apply(s.cfg.Viewport)
	if err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}

	sess, err := newSession(s.data.Dataset(), vp)
	if err != nil {
		writeError(c, http.StatusInternalServerError, err)
		return
	}
	s.sessions.Touch(sess)
	log.Debug().Str("session_id", sess.ID).Msg("session created")

	sess.mu.Lock()
	defer sess.mu.Unlock()
	c.JSON(http.StatusCreated, gin.H{"data": sess.view()})
}

// handleV1GetSession returns the last frame of a session
// GET /api/v1/sessions/:id
func (s *Server) handleV1GetSession(c *gin.Context) {
	sess, ok := s.sessions.Get(c.Param("id"))
	if !ok {
		writeError(c, http.StatusNotFound, errSessionNotFound)
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"data": sess.view()})
}

// handleV1SetSessionTime applies a time filter change
// PUT /api/v1/sessions/:id/time {"time": 500}
func (s *Server) handleV1SetSessionTime(c *gin.Context) {
	sess, ok := s.sessions.Get(c.Param("id"))
	if !ok {
		writeError(c, http.StatusNotFound, errSessionNotFound)
		return
	}

	var req timeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	if req.Time == nil {
		writeError(c, http.StatusBadRequest, errors.New("time is required"))
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.coord.SetTimeFilter(traffic.TimeFilter(*req.Time)); err != nil {
		writeError(c, coordinatorStatus(err), err)
		return
	}
	s.sessions.Touch(sess)
	c.JSON(http.StatusOK, gin.H{"data": sess.view()})
}

// handleV1SetSessionViewport applies a pan, zoom or resize
// PUT /api/v1/sessions/:id/viewport {"lon": -71.06, "zoom": 14}
func (s *Server) handleV1SetSessionViewport(c *gin.Context) {
	sess, ok := s.sessions.Get(c.Param("id"))
	if !ok {
		writeError(c, http.StatusNotFound, errSessionNotFound)
		return
	}

	var req viewportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	vp, err := req.apply(sess.viewport)
	if err != nil {
		writeError(c, http.StatusBadRequest, err)
		return
	}
	if err := sess.coord.SetViewport(vp); err != nil {
		writeError(c, coordinatorStatus(err), err)
		return
	}
	sess.viewport = vp
	s.sessions.Touch(sess)
	c.JSON(http.StatusOK, gin.H{"data": sess.view()})
}

// handleV1DeleteSession drops a session
// DELETE /api/v1/sessions/:id
func (s *Server) handleV1DeleteSession(c *gin.Context) {
	if !s.sessions.Remove(c.Param("id")) {
		writeError(c, http.StatusNotFound, errSessionNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}

func coordinatorStatus(err error) int {
	switch {
	case errors.Is(err, traffic.ErrInvalidTimeFilter), errors.Is(err, traffic.ErrNoTransform):
		return http.StatusBadRequest
	case errors.Is(err, traffic.ErrNotReady):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
