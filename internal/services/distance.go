package services

import (
	"fmt"
	"place-backfill-service/internal/domain"

	"github.com/tidwall/geodesic"
)

// DistanceMeters returns the geodesic distance between two points on the
// WGS-84 ellipsoid. Karney's inverse solution converges for every pair,
// nearly antipodal ones included.
func DistanceMeters(a, b domain.Point) (float64, error) {
	if err := a.Validate(); err != nil {
		return 0, fmt.Errorf("distance: point a: %w", err)
	}
	if err := b.Validate(); err != nil {
		return 0, fmt.Errorf("distance: point b: %w", err)
	}

	if a == b {
		return 0, nil
	}

	var s12 float64
	geodesic.WGS84.Inverse(a.Lat, a.Lng, b.Lat, b.Lng, &s12, nil, nil)

	return s12, nil
}
