package services

import (
	"errors"
	"fmt"
	"math"
	"place-backfill-service/internal/domain"

	"github.com/dhconnelly/rtreego"
)

const (
	coverageMinChildren = 25
	coverageMaxChildren = 50
	coverageNeighbors   = 4
	pointTolerance      = 1e-9
)

// CoverageReport describes how well the search circles of an area cover its rectangle.
type CoverageReport struct {
	Radius       float64
	MaxGapMeters float64
	WorstPoint   domain.Point
	Samples      int
}

// Covered reports whether every sampled point lies inside some search circle.
func (c CoverageReport) Covered() bool { return c.MaxGapMeters <= c.Radius }

// Excess is how far the worst sample lies outside its nearest circle (0 if covered).
func (c CoverageReport) Excess() float64 { return math.Max(0, c.MaxGapMeters-c.Radius) }

// centerItem indexes a center point in a locally projected plane
// (lng scaled by cos(mid latitude)) so nearest lookups are roughly isotropic.
type centerItem struct {
	point domain.Point
	rect  *rtreego.Rect
}

func (c *centerItem) Bounds() *rtreego.Rect { return c.rect }

// AuditCoverage samples the rectangle of an area on a lattice samplesPerStep times
// finer than the search grid and measures the geodesic distance from every sample
// to its nearest center point.
func AuditCoverage(area domain.BackfillArea, samplesPerStep int) (CoverageReport, error) {
	if len(area.CenterPoints) == 0 {
		return CoverageReport{}, errors.New("audit coverage: area has no center points")
	}
	if !(area.Radius > 0) {
		return CoverageReport{}, fmt.Errorf("audit coverage: %w: radius %v", domain.ErrDegenerateRectangle, area.Radius)
	}
	if samplesPerStep < 1 {
		samplesPerStep = 1
	}

	ul, lr := area.Rectangle.UpperLeft, area.Rectangle.LowerRight
	scale := math.Cos(toRadians((ul.Lat + lr.Lat) / 2))

	tree := rtreego.NewTree(2, coverageMinChildren, coverageMaxChildren)
	for _, c := range area.CenterPoints {
		tree.Insert(&centerItem{point: c, rect: project(c, scale).ToRect(pointTolerance)})
	}

	k := coverageNeighbors
	if len(area.CenterPoints) < k {
		k = len(area.CenterPoints)
	}

	rows := int(math.Ceil(area.Height/area.Radius))*samplesPerStep + 1
	cols := int(math.Ceil(area.Width/area.Radius))*samplesPerStep + 1

	report := CoverageReport{Radius: area.Radius}
	for i := 0; i < rows; i++ {
		lat := interpolate(ul.Lat, lr.Lat, i, rows)
		for j := 0; j < cols; j++ {
			sample := domain.Point{Lat: lat, Lng: interpolate(ul.Lng, lr.Lng, j, cols)}

			gap := math.Inf(1)
			for _, n := range tree.NearestNeighbors(k, project(sample, scale)) {
				item, ok := n.(*centerItem)
				if !ok {
					continue
				}
				d, err := DistanceMeters(sample, item.point)
				if err != nil {
					return CoverageReport{}, fmt.Errorf("audit coverage: %w", err)
				}
				gap = math.Min(gap, d)
			}

			report.Samples++
			if gap > report.MaxGapMeters {
				report.MaxGapMeters = gap
				report.WorstPoint = sample
			}
		}
	}

	return report, nil
}

func project(p domain.Point, scale float64) rtreego.Point {
	return rtreego.Point{p.Lng * scale, p.Lat}
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }
