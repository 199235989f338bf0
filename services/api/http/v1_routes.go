package http

// registerV1Routes sets up the v1 API structure
// Groups: /api/v1/core, /api/v1/traffic, /api/v1/sessions, /api/v1/admin
func (s *Server) registerV1Routes() {
	v1 := s.engine.Group("/api/v1")
	v1.Use(apiVersionMiddleware()) // Add X-API-Version: v1 header

	// Core endpoints - station roster
	core := v1.Group("/core")
	{
		core.GET("/stations", s.handleV1ListStations)
		core.GET("/stations/:id", s.handleV1GetStation)
	}

	// Stateless traffic computation for a time filter and viewport
	v1.GET("/traffic", s.handleV1Traffic)

	// Interactive views driven by time filter and viewport events
	sessions := v1.Group("/sessions")
	{
		sessions.POST("", s.handleV1CreateSession)
		sessions.GET("/:id", s.handleV1GetSession)
		sessions.PUT("/:id/time", s.handleV1SetSessionTime)
		sessions.PUT("/:id/viewport", s.handleV1SetSessionViewport)
		sessions.DELETE("/:id", s.handleV1DeleteSession)
	}

	admin := v1.Group("/admin")
	{
		admin.POST("/reload", s.handleV1Reload)
	}
}
