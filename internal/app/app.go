package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"place-backfill-service/internal/adapters/cache"
	"place-backfill-service/internal/adapters/places"
	"place-backfill-service/internal/adapters/repositories"
	"place-backfill-service/internal/config"
	"place-backfill-service/internal/domain"
	"place-backfill-service/internal/platform/db"
	"place-backfill-service/internal/ports"
	"place-backfill-service/internal/services"
	"strings"

	"github.com/redis/go-redis/v9"
)

// App holds the concrete adapters shared by the server and the CLI.
type App struct {
	Config     config.Config
	Searcher   ports.PlaceSearcher
	Backfiller *services.Backfiller
	Repo       ports.PlaceRepository // nil without DATABASE_URL
	Cities     []domain.CityBoundary

	db    *sql.DB
	redis *redis.Client
}

// New wires adapters from cfg. Postgres and Redis are optional; when both are
// configured Redis serves as the search cache.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	a := &App{Config: cfg}

	cities, err := loadCities(cfg.BoundariesPath)
	if err != nil {
		return nil, err
	}
	a.Cities = cities

	var searchCache ports.SearchCache

	if strings.TrimSpace(cfg.DatabaseURL) != "" {
		a.db, err = db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := repositories.InitSchema(a.db); err != nil {
			a.Close()
			return nil, fmt.Errorf("app: %w", err)
		}
		a.Repo = repositories.NewPostgresPlaceRepository(a.db)
		searchCache = cache.NewSQLSearchCache(a.db, cfg.SearchCacheTTL)
	}

	if strings.TrimSpace(cfg.RedisAddr) != "" {
		a.redis, err = db.OpenRedis(ctx, cfg.RedisAddr)
		if err != nil {
			a.Close()
			return nil, err
		}
		searchCache = cache.NewRedisSearchCache(a.redis, cfg.SearchCacheTTL)
	}

	client := places.NewGoogleNearbySearchClient(
		places.WithMaxAttempts(cfg.MaxSearchAttempts),
		places.WithMaxPages(cfg.MaxSearchPages),
	)

	a.Searcher = client
	if searchCache != nil {
		a.Searcher = places.NewCachingPlaceSearcher(client, searchCache)
	}

	a.Backfiller = services.NewBackfiller(a.Searcher)
	a.Backfiller.Pace = cfg.Pace
	a.Backfiller.Workers = cfg.Workers

	log.Printf(
		"app wired postgres=%t redis=%t cities=%d workers=%d pace=%s",
		a.db != nil, a.redis != nil, len(a.Cities), cfg.Workers, cfg.Pace,
	)

	return a, nil
}

func loadCities(path string) ([]domain.CityBoundary, error) {
	if strings.TrimSpace(path) == "" {
		return repositories.CityBoundaries(), nil
	}
	cities, err := repositories.LoadBoundariesJSON(path)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	return cities, nil
}

func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			log.Printf("close redis: %v", err)
		}
		a.redis = nil
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			log.Printf("close postgres: %v", err)
		}
		a.db = nil
	}
}
