package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/02loveslollipop/bluebikes-traffic-viewer/services/api/config"
	"github.com/02loveslollipop/bluebikes-traffic-viewer/services/api/traffic"
)

// Server bundles router and dependencies for the REST API.
type Server struct {
	cfg      config.Config
	loader   DatasetLoader
	data     *datasetHolder
	sessions *sessionStore
	engine   *gin.Engine
}

// New constructs a server with routes and middleware around an already
// loaded dataset. loader is used by the reload endpoint.
func New(cfg config.Config, loader DatasetLoader, ds traffic.Dataset) (*Server, error) {
	data, err := newDatasetHolder(ds, cfg.CacheSize)
	if err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestIDMiddleware())
	engine.Use(requestLogger())
	engine.Use(corsMiddleware())

	if cfg.BearerToken != "" {
		engine.Use(bearerAuthMiddleware(cfg.BearerToken))
	}

	server := &Server{
		cfg:      cfg,
		loader:   loader,
		data:     data,
		sessions: newSessionStore(cfg.MaxSessions, cfg.SessionTTL),
		engine:   engine,
	}
	server.registerRoutes()
	return server, nil
}

// Engine exposes the underlying gin engine (for tests).
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run starts the HTTP server and blocks until shutdown.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.ListenAddr(),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", s.handleHealth)
	s.registerV1Routes()
}

func (s *Server) handleHealth(c *gin.Context) {
	ds := s.data.Dataset()
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"stations":  len(ds.Stations),
		"trips":     len(ds.Trips),
		"loaded_at": ds.LoadedAt.Format(time.RFC3339),
		"sessions":  s.sessions.Len(),
	})
}

func writeError(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"error": err.Error()})
}
