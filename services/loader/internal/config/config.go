package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/02loveslollipop/bluebikes-traffic-viewer/services/internal/logging"
)

const (
	defaultStationsURL    = "https://dsc106.com/labs/lab07/data/bluebikes-stations.json"
	defaultRequestTimeout = 30 * time.Second
	defaultBatchSize      = 1000
)

// Config holds runtime configuration for the loader.
type Config struct {
	DatabaseURL    string
	StationsURL    string
	TripsSource    string
	RequestTimeout time.Duration
	BatchSize      int
	DryRun         bool
	Log            logging.Options
}

// Load reads configuration from environment variables (optionally .env).
// DATABASE_URL may be empty only for dry runs.
func Load() (Config, error) {
	_ = godotenv.Load(".env")

	cfg := Config{Log: logging.FromEnv()}

	dryRun := strings.TrimSpace(os.Getenv("DRY_RUN"))
	cfg.DryRun = dryRun == "1" || strings.EqualFold(dryRun, "true")

	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))

	cfg.StationsURL = strings.TrimSpace(os.Getenv("STATIONS_URL"))
	if cfg.StationsURL == "" {
		cfg.StationsURL = defaultStationsURL
	}

	cfg.TripsSource = strings.TrimSpace(os.Getenv("TRIPS_SOURCE"))

	cfg.RequestTimeout = defaultRequestTimeout
	if v := strings.TrimSpace(os.Getenv("LOADER_REQUEST_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid LOADER_REQUEST_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = d
	}

	cfg.BatchSize = defaultBatchSize
	if v := strings.TrimSpace(os.Getenv("LOADER_BATCH_SIZE")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("invalid LOADER_BATCH_SIZE: %s", v)
		}
		cfg.BatchSize = n
	}

	return cfg, nil
}

// Validate checks the settings that command line flags may have changed.
func (c Config) Validate() error {
	if c.DatabaseURL == "" && !c.DryRun {
		return errors.New("DATABASE_URL is required")
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("invalid batch size: %d", c.BatchSize)
	}
	return nil
}
