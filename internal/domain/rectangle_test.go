package domain

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestPointValidate(t *testing.T) {
	cases := []struct {
		name string
		p    Point
		ok   bool
	}{
		{"origin", Point{0, 0}, true},
		{"poles and antimeridian", Point{90, -180}, true},
		{"lat too high", Point{90.0001, 0}, false},
		{"lng too low", Point{0, -180.5}, false},
		{"nan", Point{math.NaN(), 0}, false},
		{"inf", Point{0, math.Inf(1)}, false},
	}

	for _, tc := range cases {
		err := tc.p.Validate()
		if tc.ok && err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidCoordinate) {
			t.Errorf("%s: err = %v, want ErrInvalidCoordinate", tc.name, err)
		}
	}
}

func TestNewBoundaryRectangle(t *testing.T) {
	r := NewBoundaryRectangle(Point{Lat: 37.80, Lng: -122.45}, Point{Lat: 37.75, Lng: -122.40})

	if r.UpperRight != (Point{Lat: 37.80, Lng: -122.40}) {
		t.Fatalf("upper right = %v", r.UpperRight)
	}
	if r.LowerLeft != (Point{Lat: 37.75, Lng: -122.45}) {
		t.Fatalf("lower left = %v", r.LowerLeft)
	}

	b := r.Bound()
	if b.Min.Lat() != 37.75 || b.Max.Lat() != 37.80 {
		t.Fatalf("bound lat = [%v, %v]", b.Min.Lat(), b.Max.Lat())
	}
	if b.Min.Lon() != -122.45 || b.Max.Lon() != -122.40 {
		t.Fatalf("bound lng = [%v, %v]", b.Min.Lon(), b.Max.Lon())
	}
}

func TestBoundaryRectangleValidateNamesCorner(t *testing.T) {
	r := NewBoundaryRectangle(Point{Lat: 10, Lng: 10}, Point{Lat: 9, Lng: 11})
	r.LowerRight = Point{Lat: -91, Lng: 11}

	err := r.Validate()
	if !errors.Is(err, ErrInvalidCoordinate) {
		t.Fatalf("err = %v, want ErrInvalidCoordinate", err)
	}
	if got := err.Error(); got[:len("lower_right")] != "lower_right" {
		t.Fatalf("error %q does not name the corner", got)
	}
}

func TestBackfillReportCounters(t *testing.T) {
	start := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	report := &BackfillReport{
		RunID:     uuid.New(),
		StartedAt: start,
		Areas: []BackfillArea{
			{CenterPoints: make([]Point, 5), Radius: 999.9},
			{CenterPoints: make([]Point, 2)},
		},
		Outcomes: []PointOutcome{
			SuccessOutcome([]Place{{PlaceID: "a"}}),
			SkippedOutcome(errors.New("budget")),
			SuccessOutcome(nil),
		},
	}

	if report.Searched() != 2 {
		t.Fatalf("searched = %d, want 2", report.Searched())
	}
	if report.Skipped() != 1 {
		t.Fatalf("skipped = %d, want 1", report.Skipped())
	}
	if report.TotalCenterPoints() != 7 {
		t.Fatalf("total center points = %d, want 7", report.TotalCenterPoints())
	}
	if report.Areas[0].SearchRadius() != 999 {
		t.Fatalf("search radius = %d, want 999", report.Areas[0].SearchRadius())
	}
}
