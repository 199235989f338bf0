package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/02loveslollipop/bluebikes-traffic-viewer/services/internal/logging"
	"github.com/02loveslollipop/bluebikes-traffic-viewer/services/loader/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	if err := logging.Setup(cfg.Log); err != nil {
		log.Fatal().Err(err).Msg("failed to set up logging")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.App{
		Name:  "loader",
		Usage: "Loads Bluebikes stations and trips into PostgreSQL",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "dry-run",
				Usage:   "parse and validate without writing to the database",
				EnvVars: []string{"DRY_RUN"},
				Value:   cfg.DryRun,
			},
			&cli.IntFlag{
				Name:  "batch-size",
				Usage: "rows per database batch",
				Value: cfg.BatchSize,
			},
		},
		Before: func(c *cli.Context) error {
			cfg.DryRun = c.Bool("dry-run")
			cfg.BatchSize = c.Int("batch-size")
			return cfg.Validate()
		},
		Commands: []*cli.Command{
			stationsCommand(&cfg),
			tripsCommand(&cfg),
			allCommand(&cfg),
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("loader failed")
	}
}
