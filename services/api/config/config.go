package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/paulmach/orb"

	"github.com/02loveslollipop/bluebikes-traffic-viewer/services/api/mapview"
	"github.com/02loveslollipop/bluebikes-traffic-viewer/services/internal/logging"
)

// Config holds environment-driven settings for the REST API.
type Config struct {
	DatabaseURL string
	Port        int
	BearerToken string
	CacheSize   int
	SessionTTL  time.Duration
	MaxSessions int
	Viewport    mapview.Viewport
	Log         logging.Options
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load() // ignore missing file

	cfg := Config{
		Port:        8080,
		CacheSize:   64,
		SessionTTL:  30 * time.Minute,
		MaxSessions: 1024,
		Log:         logging.FromEnv(),
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return cfg, errors.New("DATABASE_URL is required")
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid PORT: %s", portStr)
		}
	} else if portStr := os.Getenv("API_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid API_PORT: %s", portStr)
		}
	}

	if sizeStr := os.Getenv("API_CACHE_SIZE"); sizeStr != "" {
		if size, err := strconv.Atoi(sizeStr); err == nil && size > 0 {
			cfg.CacheSize = size
		} else {
			return cfg, fmt.Errorf("invalid API_CACHE_SIZE: %s", sizeStr)
		}
	}

	if ttlStr := os.Getenv("API_SESSION_TTL"); ttlStr != "" {
		ttl, err := time.ParseDuration(ttlStr)
		if err != nil || ttl <= 0 {
			return cfg, fmt.Errorf("invalid API_SESSION_TTL: %s", ttlStr)
		}
		cfg.SessionTTL = ttl
	}

	if maxStr := os.Getenv("API_MAX_SESSIONS"); maxStr != "" {
		if n, err := strconv.Atoi(maxStr); err == nil && n > 0 {
			cfg.MaxSessions = n
		} else {
			return cfg, fmt.Errorf("invalid API_MAX_SESSIONS: %s", maxStr)
		}
	}

	viewport, err := loadViewport()
	if err != nil {
		return cfg, err
	}
	cfg.Viewport = viewport

	cfg.BearerToken = os.Getenv("API_BEARER_TOKEN")

	return cfg, nil
}

func loadViewport() (mapview.Viewport, error) {
	lon, lat := mapview.DefaultCenter.Lon(), mapview.DefaultCenter.Lat()
	zoom := mapview.DefaultZoom
	width, height := mapview.DefaultWidth, mapview.DefaultHeight

	floats := []struct {
		name string
		dst  *float64
	}{
		{"MAP_CENTER_LON", &lon},
		{"MAP_CENTER_LAT", &lat},
		{"MAP_ZOOM", &zoom},
	}
	for _, f := range floats {
		if v := strings.TrimSpace(os.Getenv(f.name)); v != "" {
			parsed, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return mapview.Viewport{}, fmt.Errorf("invalid %s: %w", f.name, err)
			}
			*f.dst = parsed
		}
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"MAP_WIDTH", &width},
		{"MAP_HEIGHT", &height},
	}
	for _, f := range ints {
		if v := strings.TrimSpace(os.Getenv(f.name)); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil {
				return mapview.Viewport{}, fmt.Errorf("invalid %s: %w", f.name, err)
			}
			*f.dst = parsed
		}
	}

	vp, err := mapview.New(orb.Point{lon, lat}, zoom, width, height)
	if err != nil {
		return mapview.Viewport{}, fmt.Errorf("default viewport: %w", err)
	}
	return vp, nil
}

// ListenAddr returns the host:port string for the HTTP server.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
