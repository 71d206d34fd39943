package main

import (
	"context"
	"log"
	"net/http"
	"place-backfill-service/internal/api"
	"place-backfill-service/internal/app"
	"place-backfill-service/internal/config"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// main is the application composition root.
// It wires concrete adapters (Places API, Postgres, Redis) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.PlacesAPIKey == "" {
		log.Fatal("PLACES_API_KEY is required")
	}

	maxCenterPoints, err := strconv.Atoi(config.Get("MAX_CENTER_POINTS_PER_REQUEST", "500"))
	if err != nil {
		log.Fatalf("MAX_CENTER_POINTS_PER_REQUEST: %v", err)
	}

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close()

	rc := api.RouterConfig{
		Backfiller:       a.Backfiller,
		Cities:           a.Cities,
		Credential:       cfg.PlacesAPIKey,
		DefaultPlaceType: cfg.PlaceType,
		MaxRadius:        cfg.MaxRadiusMeters,
		MaxCenterPoints:  maxCenterPoints,
	}
	if a.Repo != nil {
		rc.Repo = a.Repo
	}
	router := api.NewRouter(rc)

	// A backfill holds the request open for one paced search per center point.
	log.Printf("Server listening addr=:%s", cfg.Port)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
