package repositories

import (
	"encoding/json"
	"fmt"
	"os"
	"place-backfill-service/internal/domain"
	"strings"
)

type boundaryFile struct {
	Cities []domain.CityBoundary `json:"cities"`
}

var builtinCities = []domain.CityBoundary{
	{
		Name: "san_francisco",
		Rectangles: []domain.BoundaryRectangle{
			domain.NewBoundaryRectangle(
				domain.Point{Lat: 37.8120, Lng: -122.4700},
				domain.Point{Lat: 37.7550, Lng: -122.3850},
			),
			domain.NewBoundaryRectangle(
				domain.Point{Lat: 37.7550, Lng: -122.5130},
				domain.Point{Lat: 37.7080, Lng: -122.3850},
			),
		},
	},
	{
		Name: "palo_alto",
		Rectangles: []domain.BoundaryRectangle{
			domain.NewBoundaryRectangle(
				domain.Point{Lat: 37.4650, Lng: -122.1900},
				domain.Point{Lat: 37.3950, Lng: -122.0950},
			),
		},
	},
	{
		Name: "mountain_view",
		Rectangles: []domain.BoundaryRectangle{
			domain.NewBoundaryRectangle(
				domain.Point{Lat: 37.4250, Lng: -122.1100},
				domain.Point{Lat: 37.3550, Lng: -122.0350},
			),
		},
	},
}

// CityBoundaries returns a copy of the built-in city boundaries.
func CityBoundaries() []domain.CityBoundary {
	out := make([]domain.CityBoundary, len(builtinCities))
	for i, c := range builtinCities {
		rects := make([]domain.BoundaryRectangle, len(c.Rectangles))
		copy(rects, c.Rectangles)
		out[i] = domain.CityBoundary{Name: c.Name, Rectangles: rects}
	}
	return out
}

// Load city boundaries from a JSON file of the form
// {"cities": [{"name": "...", "rectangles": [{"upper_left": {...}, ...}]}]}.
// Rectangles that only give upper_left and lower_right get the other two corners filled in.
func LoadBoundariesJSON(jsonPath string) ([]domain.CityBoundary, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("load boundaries: read %q: %w", jsonPath, err)
	}

	cities, err := ParseBoundariesJSON(bytes)
	if err != nil {
		return nil, fmt.Errorf("load boundaries %q: %w", jsonPath, err)
	}

	return cities, nil
}

func ParseBoundariesJSON(data []byte) ([]domain.CityBoundary, error) {
	var file boundaryFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}

	if len(file.Cities) == 0 {
		return nil, fmt.Errorf("no cities defined")
	}

	seen := make(map[string]struct{}, len(file.Cities))
	out := make([]domain.CityBoundary, 0, len(file.Cities))
	for i, c := range file.Cities {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, fmt.Errorf("city at index %d: name cannot be empty", i+1)
		}

		key := domain.NormalizeCityName(name)
		if _, ok := seen[key]; ok {
			return nil, fmt.Errorf("city at index %d: duplicate name %q", i+1, name)
		}
		seen[key] = struct{}{}

		if len(c.Rectangles) == 0 {
			return nil, fmt.Errorf("city %q: at least one rectangle is required", name)
		}

		rects := make([]domain.BoundaryRectangle, 0, len(c.Rectangles))
		for j, r := range c.Rectangles {
			if r.UpperRight == (domain.Point{}) && r.LowerLeft == (domain.Point{}) {
				r = domain.NewBoundaryRectangle(r.UpperLeft, r.LowerRight)
			}
			if err := r.Validate(); err != nil {
				return nil, fmt.Errorf("city %q rectangle at index %d: %w", name, j+1, err)
			}
			rects = append(rects, r)
		}

		out = append(out, domain.CityBoundary{Name: name, Rectangles: rects})
	}

	return out, nil
}
