package domain

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Immutable geographic point in decimal degrees (latitude, longitude).
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Validate rejects NaN/Inf values and coordinates outside [-90,90] x [-180,180].
func (p Point) Validate() error {
	if math.IsNaN(p.Lat) || math.IsInf(p.Lat, 0) || p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("%w: latitude %v out of range [-90, 90]", ErrInvalidCoordinate, p.Lat)
	}
	if math.IsNaN(p.Lng) || math.IsInf(p.Lng, 0) || p.Lng < -180 || p.Lng > 180 {
		return fmt.Errorf("%w: longitude %v out of range [-180, 180]", ErrInvalidCoordinate, p.Lng)
	}
	return nil
}

// Return the point as an orb.Point ([lng, lat]).
func (p Point) OrbPoint() orb.Point { return orb.Point{p.Lng, p.Lat} }

// Format as "lat,lng" which is what the place search API expects for location.
func (p Point) String() string { return fmt.Sprintf("%.7f,%.7f", p.Lat, p.Lng) }

func PointFromOrb(p orb.Point) Point { return Point{Lat: p.Lat(), Lng: p.Lon()} }
