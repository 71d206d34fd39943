package main

import (
	"fmt"
	"place-backfill-service/internal/config"
	"place-backfill-service/internal/domain"
	"strconv"
	"strings"
)

// parseRect reads "ulLat,ulLng,lrLat,lrLng".
func parseRect(s string) (domain.BoundaryRectangle, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return domain.BoundaryRectangle{}, fmt.Errorf("rect %q: want ulLat,ulLng,lrLat,lrLng", s)
	}

	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return domain.BoundaryRectangle{}, fmt.Errorf("rect %q: value %d: %w", s, i+1, err)
		}
		v[i] = f
	}

	rect := domain.NewBoundaryRectangle(
		domain.Point{Lat: v[0], Lng: v[1]},
		domain.Point{Lat: v[2], Lng: v[3]},
	)
	if err := rect.Validate(); err != nil {
		return domain.BoundaryRectangle{}, fmt.Errorf("rect %q: %w", s, err)
	}
	return rect, nil
}

// selectRectangles resolves --rect and --city flags. With neither, every city is used.
func selectRectangles(rects, cities []string, known []domain.CityBoundary) ([]domain.BoundaryRectangle, error) {
	var out []domain.BoundaryRectangle

	for _, r := range rects {
		rect, err := parseRect(r)
		if err != nil {
			return nil, err
		}
		out = append(out, rect)
	}

	for _, name := range cities {
		c, ok := domain.FindCity(known, name)
		if !ok {
			return nil, fmt.Errorf("unknown city %q", name)
		}
		out = append(out, c.Rectangles...)
	}

	if len(rects) == 0 && len(cities) == 0 {
		out = domain.AllRectangles(known)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no rectangles to process")
	}

	return out, nil
}

// applyFlags overrides environment config with explicitly set root flags.
func applyFlags(cfg config.Config) config.Config {
	if placeType != "" {
		cfg.PlaceType = placeType
	}
	if maxRadius != 0 {
		cfg.MaxRadiusMeters = maxRadius
	}
	if workers != 0 {
		cfg.Workers = workers
	}
	if verbose {
		cfg.Verbose = true
	}
	return cfg
}
