package ports

import (
	"context"
	"place-backfill-service/internal/domain"
)

// Optional cache in front of a PlaceSearcher, keyed by the normalized request.
type SearchCache interface {
	// Return cached places and whether the key was present.
	Get(ctx context.Context, key string) ([]domain.Place, bool, error)
	Put(ctx context.Context, key string, places []domain.Place) error
}
