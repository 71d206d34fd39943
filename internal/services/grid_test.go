package services

import (
	"math"
	"place-backfill-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateGridSquareThreeByThree(t *testing.T) {
	ul := domain.Point{Lat: 1, Lng: 0}
	lr := domain.Point{Lat: 0, Lng: 1}

	radius, points, err := GenerateGrid(ul, lr, 2000, 2000, 1000)
	require.NoError(t, err)

	assert.Equal(t, 1000.0, radius)
	assert.Equal(t, []domain.Point{
		{Lat: 1, Lng: 0}, {Lat: 1, Lng: 1},
		{Lat: 0.5, Lng: 0.5},
		{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1},
	}, points)
}

func TestGenerateGridCheckerboardCounts(t *testing.T) {
	ul := domain.Point{Lat: 10, Lng: 20}
	lr := domain.Point{Lat: 9, Lng: 21}

	cases := []struct {
		name       string
		width      float64
		height     float64
		wantPoints int
		wantRadius float64
	}{
		// nx=4 ny=2: rows keep j=0,2 then j=1,3
		{"wide", 2500, 900, 4, 900},
		// nx=5 ny=4: 3+2+3+2
		{"five by four", 4000, 3000, 10, 1000},
		// nx=2 ny=2: (0,0) and (1,1)
		{"single cell", 800, 600, 2, 800},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			radius, points, err := GenerateGrid(ul, lr, tc.width, tc.height, 1000)
			require.NoError(t, err)
			assert.Len(t, points, tc.wantPoints)
			assert.InDelta(t, tc.wantRadius, radius, 1e-9)
		})
	}
}

func TestGenerateGridKeepsSameParityPositions(t *testing.T) {
	ul := domain.Point{Lat: 4, Lng: 0}
	lr := domain.Point{Lat: 0, Lng: 3}

	// width 3000 -> nx=4 (lng step 1), height 4000 -> ny=5 (lat step 1)
	_, points, err := GenerateGrid(ul, lr, 3000, 4000, 1000)
	require.NoError(t, err)

	var want []domain.Point
	for i := 0; i < 5; i++ {
		for j := 0; j < 4; j++ {
			if (i+j)%2 == 0 {
				want = append(want, domain.Point{Lat: 4 - float64(i), Lng: float64(j)})
			}
		}
	}
	assert.Equal(t, want, points)
}

func TestGenerateGridRadiusNeverExceedsMax(t *testing.T) {
	ul := domain.Point{Lat: 40.80, Lng: -74.00}
	lr := domain.Point{Lat: 40.70, Lng: -73.90}

	sizes := []float64{1, 250, 999.99, 1000, 1000.01, 1999, 5123.4, 20000}
	for _, w := range sizes {
		for _, h := range sizes {
			radius, points, err := GenerateGrid(ul, lr, w, h, 1000)
			require.NoError(t, err)
			assert.NotEmpty(t, points, "w=%v h=%v", w, h)
			assert.Greater(t, radius, 0.0, "w=%v h=%v", w, h)
			assert.LessOrEqual(t, radius, 1000.0, "w=%v h=%v", w, h)
		}
	}
}

func TestGenerateGridIsDeterministic(t *testing.T) {
	ul := domain.Point{Lat: 37.81, Lng: -122.52}
	lr := domain.Point{Lat: 37.70, Lng: -122.35}

	r1, p1, err := GenerateGrid(ul, lr, 14950.3, 12210.8, 1000)
	require.NoError(t, err)
	r2, p2, err := GenerateGrid(ul, lr, 14950.3, 12210.8, 1000)
	require.NoError(t, err)

	assert.Equal(t, r1, r2)
	assert.Equal(t, p1, p2)
}

func TestGenerateGridZeroWidthCollapsesToSingleColumn(t *testing.T) {
	ul := domain.Point{Lat: 1, Lng: 5}
	lr := domain.Point{Lat: 0, Lng: 5}

	radius, points, err := GenerateGrid(ul, lr, 0, 2000, 1000)
	require.NoError(t, err)

	// ny=3, nx=1: rows 0 and 2 keep column 0, row 1 keeps nothing.
	assert.Equal(t, []domain.Point{{Lat: 1, Lng: 5}, {Lat: 0, Lng: 5}}, points)
	assert.Equal(t, 1000.0, radius)
}

func TestGenerateGridZeroHeightCollapsesToSingleRow(t *testing.T) {
	ul := domain.Point{Lat: 3, Lng: 0}
	lr := domain.Point{Lat: 3, Lng: 2}

	radius, points, err := GenerateGrid(ul, lr, 1500, 0, 1000)
	require.NoError(t, err)

	assert.Equal(t, []domain.Point{{Lat: 3, Lng: 0}, {Lat: 3, Lng: 2}}, points)
	assert.Equal(t, 750.0, radius)
}

func TestGenerateGridRejectsDegenerateInput(t *testing.T) {
	ul := domain.Point{Lat: 1, Lng: 0}
	lr := domain.Point{Lat: 0, Lng: 1}

	cases := []struct {
		name          string
		width, height float64
	}{
		{"zero by zero", 0, 0},
		{"negative width", -1, 100},
		{"nan height", 100, math.NaN()},
		{"infinite width", math.Inf(1), 100},
	}
	for _, tc := range cases {
		_, _, err := GenerateGrid(ul, lr, tc.width, tc.height, 1000)
		assert.ErrorIs(t, err, domain.ErrDegenerateRectangle, tc.name)
	}

	_, _, err := GenerateGrid(ul, lr, 100, 100, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidMaxRadius)
}

func TestGenerateGridRejectsOversizedLattice(t *testing.T) {
	ul := domain.Point{Lat: 1, Lng: 0}
	lr := domain.Point{Lat: 0, Lng: 1}

	for _, radius := range []float64{1e-9, 0.05} {
		_, points, err := GenerateGrid(ul, lr, 15000, 12000, radius)
		assert.ErrorIs(t, err, domain.ErrLatticeTooLarge, "radius %v", radius)
		assert.Nil(t, points)
	}

	_, points, err := generateGrid(ul, lr, 2000, 2000, 1000, 5)
	require.NoError(t, err)
	assert.Len(t, points, 5)

	_, _, err = generateGrid(ul, lr, 2000, 2000, 1000, 4)
	assert.ErrorIs(t, err, domain.ErrLatticeTooLarge)
}

func TestBuildBackfillAreasCappedSharesBudget(t *testing.T) {
	rects := []domain.BoundaryRectangle{fiveCenterRect(), fiveCenterRect()}

	areas, err := BuildBackfillAreasCapped(rects, 1000, 10)
	require.NoError(t, err)
	assert.Len(t, areas, 2)

	_, err = BuildBackfillAreasCapped(rects, 1000, 9)
	assert.ErrorIs(t, err, domain.ErrLatticeTooLarge)
	assert.Contains(t, err.Error(), "build backfill area 2")

	areas, err = BuildBackfillAreasCapped(rects, 1000, 0)
	require.NoError(t, err)
	assert.Len(t, areas, 2)
}

func TestBuildBackfillAreaMeasuresEdges(t *testing.T) {
	rect := domain.NewBoundaryRectangle(
		domain.Point{Lat: 0, Lng: 0},
		domain.Point{Lat: -0.015, Lng: 0.015},
	)

	area, err := BuildBackfillArea(7, rect, 1000)
	require.NoError(t, err)

	wantWidth, err := DistanceMeters(rect.UpperLeft, rect.UpperRight)
	require.NoError(t, err)

	assert.Equal(t, 7, area.Index)
	assert.Equal(t, wantWidth, area.Width)
	assert.InDelta(t, 1669.8, area.Width, 0.5)
	assert.InDelta(t, 1658.6, area.Height, 0.5)
	assert.Len(t, area.CenterPoints, 5)
	assert.LessOrEqual(t, area.SearchRadius(), 1000)
}

func TestBuildBackfillAreasStopsOnInvalidRectangle(t *testing.T) {
	good := domain.NewBoundaryRectangle(domain.Point{Lat: 1, Lng: 1}, domain.Point{Lat: 0.99, Lng: 1.01})
	bad := domain.NewBoundaryRectangle(domain.Point{Lat: 95, Lng: 1}, domain.Point{Lat: 0.99, Lng: 1.01})

	_, err := BuildBackfillAreas([]domain.BoundaryRectangle{good, bad}, 1000)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidCoordinate)
	assert.Contains(t, err.Error(), "area 2")
}
