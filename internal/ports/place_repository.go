package ports

import (
	"context"
	"place-backfill-service/internal/domain"

	"github.com/google/uuid"
)

// Port: a sink for backfill runs and the places they collected.
type PlaceRepository interface {
	// Record run metadata (type, counters, timestamps).
	SaveRun(ctx context.Context, report *domain.BackfillReport) error
	// Store places for a run in aggregate order.
	SavePlaces(ctx context.Context, runID uuid.UUID, places []domain.Place) error
	// Return places for a run in the order they were stored.
	ListPlaces(ctx context.Context, runID uuid.UUID) ([]domain.Place, error)
}
