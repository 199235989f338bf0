package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/02loveslollipop/bluebikes-traffic-viewer/services/api/config"
	"github.com/02loveslollipop/bluebikes-traffic-viewer/services/api/db"
	httpserver "github.com/02loveslollipop/bluebikes-traffic-viewer/services/api/http"
	"github.com/02loveslollipop/bluebikes-traffic-viewer/services/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config error")
	}
	if err := logging.Setup(cfg.Log); err != nil {
		log.Fatal().Err(err).Msg("logging setup error")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db connection error")
	}
	defer store.Close()

	// The engine never starts without both the roster and the trip log.
	loadCtx, loadCancel := context.WithTimeout(ctx, 2*time.Minute)
	ds, err := store.LoadDataset(loadCtx)
	loadCancel()
	if err != nil {
		log.Fatal().Err(err).Msg("dataset load error")
	}

	srv, err := httpserver.New(cfg, store, ds)
	if err != nil {
		log.Fatal().Err(err).Msg("server setup error")
	}
	log.Info().Str("addr", cfg.ListenAddr()).Msg("REST API listening")

	if err := srv.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
