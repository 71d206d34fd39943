package api

import (
	"net/http"
	"place-backfill-service/internal/api/handlers"
	"place-backfill-service/internal/domain"
	"place-backfill-service/internal/ports"
	"place-backfill-service/internal/services"
)

// Dependencies for the HTTP surface. Repo may be nil when persistence is off.
type RouterConfig struct {
	Backfiller       *services.Backfiller
	Repo             ports.PlaceRepository
	Cities           []domain.CityBoundary
	Credential       string
	DefaultPlaceType string
	MaxRadius        float64
	MaxCenterPoints  int
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	gridHandler := &handlers.GridHandler{DefaultMaxRadius: cfg.MaxRadius, MaxCenterPoints: cfg.MaxCenterPoints}
	backfillHandler := &handlers.BackfillHandler{
		Backfiller:       cfg.Backfiller,
		Repo:             cfg.Repo,
		Cities:           cfg.Cities,
		Credential:       cfg.Credential,
		DefaultPlaceType: cfg.DefaultPlaceType,
		DefaultMaxRadius: cfg.MaxRadius,
		MaxCenterPoints:  cfg.MaxCenterPoints,
	}
	placesHandler := &handlers.PlacesHandler{Repo: cfg.Repo}
	healthHandler := &handlers.HealthHandler{Cities: len(cfg.Cities), Persistence: cfg.Repo != nil}

	mux.HandleFunc("/health", healthHandler.Check)
	mux.HandleFunc("/grids", gridHandler.Plan)
	mux.HandleFunc("/backfills", backfillHandler.Run)
	mux.HandleFunc("/places", placesHandler.List)

	return loggingMiddleware(mux)
}
