package services

import (
	"math"
	"place-backfill-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExcludedLatticePointsLieInsideSomeCircle(t *testing.T) {
	rect := domain.NewBoundaryRectangle(
		domain.Point{Lat: 0, Lng: 0},
		domain.Point{Lat: -0.018, Lng: 0.018},
	)
	area, err := BuildBackfillArea(1, rect, 1000)
	require.NoError(t, err)

	nx := int(latticeCount(area.Width, 1000))
	ny := int(latticeCount(area.Height, 1000))

	for i := 0; i < ny; i++ {
		for j := 0; j < nx; j++ {
			if i%2 == j%2 {
				continue
			}
			p := domain.Point{
				Lat: interpolate(rect.UpperLeft.Lat, rect.LowerRight.Lat, i, ny),
				Lng: interpolate(rect.UpperLeft.Lng, rect.LowerRight.Lng, j, nx),
			}

			nearest := math.Inf(1)
			for _, c := range area.CenterPoints {
				d, err := DistanceMeters(p, c)
				require.NoError(t, err)
				nearest = math.Min(nearest, d)
			}
			assert.LessOrEqualf(t, nearest, area.Radius+1, "excluded point (%d,%d) %s", i, j, p)
		}
	}
}

func TestAuditCoverage(t *testing.T) {
	rects := []domain.BoundaryRectangle{
		domain.NewBoundaryRectangle(domain.Point{Lat: 0, Lng: 0}, domain.Point{Lat: -0.018, Lng: 0.018}),
		domain.NewBoundaryRectangle(domain.Point{Lat: 37.81, Lng: -122.52}, domain.Point{Lat: 37.77, Lng: -122.46}),
		domain.NewBoundaryRectangle(domain.Point{Lat: 1.5, Lng: 103.8}, domain.Point{Lat: 1.5, Lng: 103.83}),
	}

	for i, rect := range rects {
		area, err := BuildBackfillArea(i+1, rect, 1000)
		require.NoError(t, err)

		report, err := AuditCoverage(area, 4)
		require.NoError(t, err)

		assert.Greater(t, report.Samples, len(area.CenterPoints))
		// Widths are measured on the upper edge; lower rows may be a little wider.
		assert.LessOrEqualf(t, report.MaxGapMeters, report.Radius+1,
			"area %d worst=%s gap=%.2f radius=%.2f", area.Index, report.WorstPoint, report.MaxGapMeters, report.Radius)
		assert.LessOrEqual(t, report.Excess(), 1.0)
	}
}

func TestAuditCoverageRejectsEmptyArea(t *testing.T) {
	_, err := AuditCoverage(domain.BackfillArea{Radius: 100}, 2)
	assert.Error(t, err)

	area := domain.BackfillArea{CenterPoints: []domain.Point{{Lat: 1, Lng: 1}}}
	_, err = AuditCoverage(area, 2)
	assert.ErrorIs(t, err, domain.ErrDegenerateRectangle)
}

func TestCoverageReportExcess(t *testing.T) {
	r := CoverageReport{Radius: 100, MaxGapMeters: 80}
	assert.True(t, r.Covered())
	assert.Zero(t, r.Excess())

	r.MaxGapMeters = 103.5
	assert.False(t, r.Covered())
	assert.InDelta(t, 3.5, r.Excess(), 1e-9)
}
