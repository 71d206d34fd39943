package services

import (
	"fmt"
	"math"
	"place-backfill-service/internal/domain"
)

// DefaultMaxBackfillRadius is the search radius ceiling used when none is configured.
const DefaultMaxBackfillRadius = 1000.0

// MaxGridCenterPoints bounds the centers a single rectangle may plan.
const MaxGridCenterPoints = 1 << 20

// GenerateGrid lays a checkerboard of search centers over the rectangle spanned by
// upperLeft and lowerRight and returns the radius that should be searched around
// each of them.
//
// The full lattice has ceil(width/maxRadius)+1 columns and ceil(height/maxRadius)+1
// rows, interpolated linearly in lat/lng between the two corners. Position (i, j)
// is kept when i and j have the same parity. Points are returned rows first,
// columns second. The radius is the larger of the two lattice steps.
//
// A zero width (or height) collapses the lattice to a single column (or row) at the
// upper-left coordinate and contributes nothing to the radius. Both zero, or any
// negative or non-finite dimension, is ErrDegenerateRectangle. A checkerboard of
// more than MaxGridCenterPoints centers is ErrLatticeTooLarge.
func GenerateGrid(
	upperLeft domain.Point,
	lowerRight domain.Point,
	width float64,
	height float64,
	maxRadius float64,
) (float64, []domain.Point, error) {
	return generateGrid(upperLeft, lowerRight, width, height, maxRadius, MaxGridCenterPoints)
}

func generateGrid(
	upperLeft domain.Point,
	lowerRight domain.Point,
	width float64,
	height float64,
	maxRadius float64,
	limit int,
) (float64, []domain.Point, error) {
	if !(maxRadius > 0) || math.IsInf(maxRadius, 0) {
		return 0, nil, fmt.Errorf("generate grid: %w: got %v", domain.ErrInvalidMaxRadius, maxRadius)
	}
	if !validDimension(width) || !validDimension(height) {
		return 0, nil, fmt.Errorf(
			"generate grid: %w: width=%v height=%v",
			domain.ErrDegenerateRectangle, width, height,
		)
	}
	if width == 0 && height == 0 {
		return 0, nil, fmt.Errorf("generate grid: %w: zero width and height", domain.ErrDegenerateRectangle)
	}

	// Sized in floating point so a tiny radius cannot overflow int.
	fx := latticeCount(width, maxRadius)
	fy := latticeCount(height, maxRadius)
	if need := math.Ceil(fx * fy / 2); need > float64(limit) {
		return 0, nil, fmt.Errorf(
			"generate grid: %w: needs %.0f center points, limit is %d",
			domain.ErrLatticeTooLarge, need, limit,
		)
	}
	nx, ny := int(fx), int(fy)

	points := make([]domain.Point, 0, (nx*ny+1)/2)
	for i := 0; i < ny; i++ {
		lat := interpolate(upperLeft.Lat, lowerRight.Lat, i, ny)
		for j := 0; j < nx; j++ {
			if i%2 != j%2 {
				continue
			}
			points = append(points, domain.Point{
				Lat: lat,
				Lng: interpolate(upperLeft.Lng, lowerRight.Lng, j, nx),
			})
		}
	}

	radius := math.Max(latticeStep(width, nx), latticeStep(height, ny))

	return radius, points, nil
}

// Number of lattice points along one side: segments no longer than maxRadius, plus one.
func latticeCount(length, maxRadius float64) float64 {
	return math.Ceil(length/maxRadius) + 1
}

func latticeStep(length float64, n int) float64 {
	if n <= 1 {
		return 0
	}
	return length / float64(n-1)
}

func interpolate(first, last float64, i, n int) float64 {
	if n <= 1 {
		return first
	}
	return first + (last-first)*float64(i)/float64(n-1)
}

func validDimension(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// BuildBackfillArea measures a rectangle and plans its search centers.
// Width is measured along the upper edge and height along the right edge.
func BuildBackfillArea(index int, rect domain.BoundaryRectangle, maxRadius float64) (domain.BackfillArea, error) {
	return buildBackfillArea(index, rect, maxRadius, MaxGridCenterPoints)
}

func buildBackfillArea(index int, rect domain.BoundaryRectangle, maxRadius float64, limit int) (domain.BackfillArea, error) {
	if err := rect.Validate(); err != nil {
		return domain.BackfillArea{}, fmt.Errorf("build backfill area %d: %w", index, err)
	}

	width, err := DistanceMeters(rect.UpperLeft, rect.UpperRight)
	if err != nil {
		return domain.BackfillArea{}, fmt.Errorf("build backfill area %d: width: %w", index, err)
	}

	height, err := DistanceMeters(rect.UpperRight, rect.LowerRight)
	if err != nil {
		return domain.BackfillArea{}, fmt.Errorf("build backfill area %d: height: %w", index, err)
	}

	radius, centers, err := generateGrid(rect.UpperLeft, rect.LowerRight, width, height, maxRadius, limit)
	if err != nil {
		return domain.BackfillArea{}, fmt.Errorf("build backfill area %d: %w", index, err)
	}

	return domain.BackfillArea{
		Index:        index,
		Rectangle:    rect,
		Width:        width,
		Height:       height,
		CenterPoints: centers,
		Radius:       radius,
	}, nil
}

// BuildBackfillAreas plans every rectangle in order. The first failure aborts.
func BuildBackfillAreas(rects []domain.BoundaryRectangle, maxRadius float64) ([]domain.BackfillArea, error) {
	return BuildBackfillAreasCapped(rects, maxRadius, 0)
}

// BuildBackfillAreasCapped is BuildBackfillAreas with a budget on the total number
// of center points across all rectangles. Each rectangle is checked against what
// remains of the budget before its lattice is allocated. maxCenters <= 0 applies
// only the per-rectangle MaxGridCenterPoints bound.
func BuildBackfillAreasCapped(rects []domain.BoundaryRectangle, maxRadius float64, maxCenters int) ([]domain.BackfillArea, error) {
	areas := make([]domain.BackfillArea, 0, len(rects))
	planned := 0
	for i, r := range rects {
		limit := MaxGridCenterPoints
		if maxCenters > 0 {
			limit = min(limit, maxCenters-planned)
		}

		area, err := buildBackfillArea(i+1, r, maxRadius, limit)
		if err != nil {
			return nil, err
		}
		planned += len(area.CenterPoints)
		areas = append(areas, area)
	}
	return areas, nil
}
