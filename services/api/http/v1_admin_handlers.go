package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// handleV1Reload reloads the roster and trip log from the store. Existing
// sessions keep the dataset they were created with.
// POST /api/v1/admin/reload
func (s *Server) handleV1Reload(c *gin.Context) {
	if s.loader == nil {
		writeError(c, http.StatusConflict, errors.New("no dataset loader configured"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Minute)
	defer cancel()

	ds, err := s.loader.LoadDataset(ctx)
	if err != nil {
		log.Error().Err(err).Msg("dataset reload failed")
		writeError(c, http.StatusInternalServerError, err)
		return
	}
	s.data.Replace(ds)

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"stations":  len(ds.Stations),
			"trips":     len(ds.Trips),
			"loaded_at": ds.LoadedAt.Format(time.RFC3339),
		},
	})
}
