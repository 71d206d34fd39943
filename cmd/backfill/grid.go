package main

import (
	"fmt"
	"os"
	"place-backfill-service/internal/adapters/repositories"
	"place-backfill-service/internal/config"
	"place-backfill-service/internal/services"

	"github.com/spf13/cobra"
)

func newGridCmd() *cobra.Command {
	var (
		rects   []string
		cities  []string
		audit   bool
		circles int
	)

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Print the search grid as GeoJSON without querying",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			cfg = applyFlags(cfg)

			known := repositories.CityBoundaries()
			if cfg.BoundariesPath != "" {
				if known, err = repositories.LoadBoundariesJSON(cfg.BoundariesPath); err != nil {
					return err
				}
			}

			selected, err := selectRectangles(rects, cities, known)
			if err != nil {
				return err
			}

			areas, err := services.BuildBackfillAreas(selected, cfg.MaxRadiusMeters)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, area := range areas {
				b, err := services.AreaGeoJSON(area, circles).MarshalJSON()
				if err != nil {
					return fmt.Errorf("encode area %d: %w", area.Index, err)
				}
				fmt.Fprintln(out, string(b))

				if !audit {
					continue
				}
				cov, err := services.AuditCoverage(area, 4)
				if err != nil {
					return err
				}
				fmt.Fprintf(os.Stderr,
					"area=%d center_points=%d radius=%.1fm max_gap=%.1fm covered=%t worst=%s\n",
					area.Index, len(area.CenterPoints), cov.Radius, cov.MaxGapMeters, cov.Covered(), cov.WorstPoint,
				)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&rects, "rect", nil, "Rectangle as ulLat,ulLng,lrLat,lrLng (repeatable)")
	cmd.Flags().StringArrayVar(&cities, "city", nil, "Configured city name (repeatable)")
	cmd.Flags().BoolVar(&audit, "audit", false, "Report the worst uncovered gap of every area on stderr")
	cmd.Flags().IntVar(&circles, "circles", 0, "Include search circles with this many segments")

	return cmd
}

func newCitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cities",
		Short: "List configured city boundaries",
		RunE: func(cmd *cobra.Command, args []string) error {
			known := repositories.CityBoundaries()
			if path := config.Get("BOUNDARIES_PATH", ""); path != "" {
				var err error
				if known, err = repositories.LoadBoundariesJSON(path); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			for _, c := range known {
				fmt.Fprintf(out, "%s\trectangles=%d\n", c.Name, len(c.Rectangles))
			}
			return nil
		},
	}
}
