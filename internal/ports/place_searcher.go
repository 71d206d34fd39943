package ports

import (
	"context"
	"errors"
	"place-backfill-service/internal/domain"
)

var (
	// Returned when the searcher gave up after its own retry ceiling.
	// Callers may treat it as a per-query failure and move on.
	ErrRetryBudgetExhausted = errors.New("place search: retry budget exhausted")

	ErrRequestDenied  = errors.New("place search: request denied")
	ErrInvalidRequest = errors.New("place search: invalid request")
)

// Parameters for a single point-radius query.
type NearbySearchRequest struct {
	Credential   string
	Center       domain.Point
	PlaceType    string
	RadiusMeters int
}

// Contract for the external place lookup service.
type PlaceSearcher interface {
	// Return places of the given type within RadiusMeters of Center.
	// Retries, if any, happen inside the implementation.
	NearbySearch(ctx context.Context, req NearbySearchRequest) ([]domain.Place, error)
}
