package domain

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
)

var (
	ErrDegenerateRectangle = errors.New("degenerate rectangle")
	ErrInvalidMaxRadius    = errors.New("max radius must be positive")
	ErrLatticeTooLarge     = errors.New("lattice too large")
)

// BoundaryRectangle is a region of interest given by its four corners.
// Corners are read-only input (static city configuration or caller supplied).
type BoundaryRectangle struct {
	UpperLeft  Point `json:"upper_left"`
	UpperRight Point `json:"upper_right"`
	LowerRight Point `json:"lower_right"`
	LowerLeft  Point `json:"lower_left"`
}

// NewBoundaryRectangle builds a lat/lng aligned rectangle from two opposite corners.
func NewBoundaryRectangle(upperLeft, lowerRight Point) BoundaryRectangle {
	return BoundaryRectangle{
		UpperLeft:  upperLeft,
		UpperRight: Point{Lat: upperLeft.Lat, Lng: lowerRight.Lng},
		LowerRight: lowerRight,
		LowerLeft:  Point{Lat: lowerRight.Lat, Lng: upperLeft.Lng},
	}
}

func (r BoundaryRectangle) Corners() []Point {
	return []Point{r.UpperLeft, r.UpperRight, r.LowerRight, r.LowerLeft}
}

// Validate checks every corner coordinate.
func (r BoundaryRectangle) Validate() error {
	names := []string{"upper_left", "upper_right", "lower_right", "lower_left"}
	for i, c := range r.Corners() {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("%s corner: %w", names[i], err)
		}
	}
	return nil
}

// Bound returns the smallest orb.Bound containing all four corners.
func (r BoundaryRectangle) Bound() orb.Bound {
	b := orb.Bound{Min: r.UpperLeft.OrbPoint(), Max: r.UpperLeft.OrbPoint()}
	for _, c := range r.Corners()[1:] {
		b = b.Extend(c.OrbPoint())
	}
	return b
}
