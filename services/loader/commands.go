package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/urfave/cli/v2"

	"github.com/02loveslollipop/bluebikes-traffic-viewer/services/loader/internal/config"
	"github.com/02loveslollipop/bluebikes-traffic-viewer/services/loader/internal/db"
	"github.com/02loveslollipop/bluebikes-traffic-viewer/services/loader/internal/feed"
	"github.com/02loveslollipop/bluebikes-traffic-viewer/services/loader/internal/models"
	"github.com/02loveslollipop/bluebikes-traffic-viewer/services/loader/internal/utils"
)

var errNoTripsSource = errors.New("no trips source: set TRIPS_SOURCE or pass --source")

func stationsCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "stations",
		Usage: "fetch the station feed and upsert it",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Usage: "station feed URL or path", Value: cfg.StationsURL},
		},
		Action: func(c *cli.Context) error {
			cfg.StationsURL = c.String("url")
			return withPool(c.Context, cfg, func(ctx context.Context, p *pgxpool.Pool) error {
				rows, err := loadStations(ctx, cfg)
				if err != nil {
					return err
				}
				return writeStations(ctx, cfg, p, rows)
			})
		},
	}
}

func tripsCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "trips",
		Usage: "parse a trip CSV (.csv, .csv.gz or .csv.zst) and upsert it",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "source", Usage: "trip CSV URL or path", Value: cfg.TripsSource},
		},
		Action: func(c *cli.Context) error {
			cfg.TripsSource = c.String("source")
			if cfg.TripsSource == "" {
				return errNoTripsSource
			}
			return withPool(c.Context, cfg, func(ctx context.Context, p *pgxpool.Pool) error {
				rows, err := loadTrips(ctx, cfg)
				if err != nil {
					return err
				}
				return writeTrips(ctx, cfg, p, rows)
			})
		},
	}
}

func allCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "all",
		Usage: "load stations and trips together",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Usage: "station feed URL or path", Value: cfg.StationsURL},
			&cli.StringFlag{Name: "source", Usage: "trip CSV URL or path", Value: cfg.TripsSource},
		},
		Action: func(c *cli.Context) error {
			cfg.StationsURL = c.String("url")
			cfg.TripsSource = c.String("source")
			if cfg.TripsSource == "" {
				return errNoTripsSource
			}

			return withPool(c.Context, cfg, func(ctx context.Context, p *pgxpool.Pool) error {
				var (
					stations []models.StationRow
					trips    []models.TripRow
				)

				fetch := pool.New().WithContext(ctx).WithCancelOnError()
				fetch.Go(func(ctx context.Context) error {
					rows, err := loadStations(ctx, cfg)
					stations = rows
					return err
				})
				fetch.Go(func(ctx context.Context) error {
					rows, err := loadTrips(ctx, cfg)
					trips = rows
					return err
				})
				if err := fetch.Wait(); err != nil {
					return err
				}

				if missing := utils.UnknownStations(trips, utils.StationIDs(stations)); len(missing) > 0 {
					log.Warn().Int("count", len(missing)).Strs("sample", sample(missing, 10)).Msg("trips reference stations missing from the feed")
				}

				if err := writeStations(ctx, cfg, p, stations); err != nil {
					return err
				}
				return writeTrips(ctx, cfg, p, trips)
			})
		},
	}
}

// withPool runs fn with a database pool, or with nil on dry runs.
func withPool(ctx context.Context, cfg *config.Config, fn func(context.Context, *pgxpool.Pool) error) error {
	if cfg.DryRun {
		return fn(ctx, nil)
	}

	p, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer p.Close()

	return fn(ctx, p)
}

func httpClient(cfg *config.Config) *http.Client {
	return &http.Client{Timeout: cfg.RequestTimeout}
}

func loadStations(ctx context.Context, cfg *config.Config) ([]models.StationRow, error) {
	payload, err := feed.FetchStations(ctx, httpClient(cfg), cfg.StationsURL)
	if err != nil {
		return nil, err
	}
	rows := utils.BuildStationRows(payload.Data.Stations)
	log.Info().
		Int("fetched", len(payload.Data.Stations)).
		Int("usable", len(rows)).
		Str("source", cfg.StationsURL).
		Msg("fetched stations")
	return rows, nil
}

func loadTrips(ctx context.Context, cfg *config.Config) ([]models.TripRow, error) {
	// Trip exports can be large; ctx bounds the download instead of a client timeout.
	records, err := feed.FetchTrips(ctx, &http.Client{}, cfg.TripsSource)
	if err != nil {
		return nil, err
	}
	rows, stats := utils.BuildTripRows(records)
	log.Info().
		Int("total", stats.Total).
		Int("valid", stats.Valid).
		Int("invalid", stats.Invalid).
		Int("duplicates", stats.Duplicates).
		Str("source", cfg.TripsSource).
		Msg("parsed trips")
	return rows, nil
}

func writeStations(ctx context.Context, cfg *config.Config, p *pgxpool.Pool, rows []models.StationRow) error {
	if cfg.DryRun {
		log.Info().Int("candidates", len(rows)).Msg("dry-run: skipping station upsert")
		return nil
	}
	if err := db.UpsertStations(ctx, p, rows); err != nil {
		return err
	}
	log.Info().Int("count", len(rows)).Msg("upserted stations")
	return nil
}

func writeTrips(ctx context.Context, cfg *config.Config, p *pgxpool.Pool, rows []models.TripRow) error {
	if cfg.DryRun {
		log.Info().Int("candidates", len(rows)).Int("batches", len(db.Chunk(rows, cfg.BatchSize))).Msg("dry-run: skipping trip upsert")
		return nil
	}
	n, err := db.UpsertTrips(ctx, p, rows, cfg.BatchSize)
	if err != nil {
		return err
	}
	log.Info().Int("count", n).Msg("upserted trips")
	return nil
}

func sample(ids []string, n int) []string {
	if len(ids) <= n {
		return ids
	}
	return ids[:n]
}
