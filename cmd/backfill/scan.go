package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"place-backfill-service/internal/adapters/repositories"
	"place-backfill-service/internal/app"
	"place-backfill-service/internal/config"
	"place-backfill-service/internal/services"
	"syscall"

	"github.com/spf13/cobra"
)

func newScanCmd() *cobra.Command {
	var (
		rects   []string
		cities  []string
		dedupe  bool
		saveDB  bool
		csvPath string
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Run a backfill and report the places found",
		Long: `Searches around every center point of every selected rectangle.
Points whose retries are exhausted are skipped; any other search failure stops the scan.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			cfg = applyFlags(cfg)

			if cfg.PlacesAPIKey == "" {
				return errors.New("PLACES_API_KEY is required")
			}
			if !saveDB {
				cfg.DatabaseURL = ""
			} else if cfg.DatabaseURL == "" {
				return errors.New("--save-db needs DATABASE_URL")
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := app.New(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			selected, err := selectRectangles(rects, cities, a.Cities)
			if err != nil {
				return err
			}

			report, runErr := a.Backfiller.Run(ctx, services.BackfillRequest{
				Credential: cfg.PlacesAPIKey,
				PlaceType:  cfg.PlaceType,
				Rectangles: selected,
				MaxRadius:  cfg.MaxRadiusMeters,
				Verbose:    cfg.Verbose,
				Dedupe:     dedupe,
			})
			if report == nil {
				return runErr
			}

			log.Printf(
				"scan finished run_id=%s areas=%d center_points=%d searched=%d skipped=%d places=%d",
				report.RunID, len(report.Areas), report.TotalCenterPoints(),
				report.Searched(), report.Skipped(), len(report.Places),
			)

			if runErr != nil {
				// partial results are still exported below
				log.Printf("scan stopped early: %v", runErr)
			}

			if csvPath != "" {
				f, err := os.Create(csvPath)
				if err != nil {
					return fmt.Errorf("create csv: %w", err)
				}
				if err := repositories.WritePlacesCSV(f, report.Places); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return fmt.Errorf("close csv: %w", err)
				}
				log.Printf("csv written path=%s rows=%d", csvPath, len(report.Places))
			}

			if saveDB && runErr == nil {
				if err := a.Repo.SaveRun(ctx, report); err != nil {
					return err
				}
				if err := a.Repo.SavePlaces(ctx, report.RunID, report.Places); err != nil {
					return err
				}
				log.Printf("run saved run_id=%s", report.RunID)
			}

			return runErr
		},
	}

	cmd.Flags().StringArrayVar(&rects, "rect", nil, "Rectangle as ulLat,ulLng,lrLat,lrLng (repeatable)")
	cmd.Flags().StringArrayVar(&cities, "city", nil, "Configured city name (repeatable)")
	cmd.Flags().BoolVar(&dedupe, "dedupe", false, "Drop repeated place IDs from the result")
	cmd.Flags().BoolVar(&saveDB, "save-db", false, "Persist the run and its places to Postgres")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Write the places to this CSV file")

	return cmd
}
