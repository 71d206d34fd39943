package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	verbose   bool
	placeType string
	maxRadius float64
	workers   int
)

var rootCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Grid-based nearby place backfill",
	Long: `Covers boundary rectangles with a checkerboard of search circles and
collects every place of a type found around each center point.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every area, query and result")
	rootCmd.PersistentFlags().StringVarP(&placeType, "type", "t", "", "Place type to search (default PLACE_TYPE or restaurant)")
	rootCmd.PersistentFlags().Float64VarP(&maxRadius, "max-radius", "r", 0, "Maximum search radius in meters (default MAX_BACKFILL_RADIUS_METERS or 1000)")
	rootCmd.PersistentFlags().IntVarP(&workers, "workers", "w", 0, "Concurrent searches, 1 for the paced sequential scan (default BACKFILL_WORKERS or 1)")

	rootCmd.AddCommand(newScanCmd(), newGridCmd(), newCitiesCmd())
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
