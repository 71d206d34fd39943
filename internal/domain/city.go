package domain

import "strings"

// CityBoundary is a named set of rectangles that together cover a city.
type CityBoundary struct {
	Name       string              `json:"name"`
	Rectangles []BoundaryRectangle `json:"rectangles"`
}

// NormalizeCityName makes "San Francisco", "san-francisco" and "san_francisco" equal.
func NormalizeCityName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	return strings.Join(strings.Fields(s), "_")
}

func FindCity(cities []CityBoundary, name string) (CityBoundary, bool) {
	want := NormalizeCityName(name)
	for _, c := range cities {
		if NormalizeCityName(c.Name) == want {
			return c, true
		}
	}
	return CityBoundary{}, false
}

// AllRectangles flattens cities into one rectangle list, cities first, rectangles second.
func AllRectangles(cities []CityBoundary) []BoundaryRectangle {
	var out []BoundaryRectangle
	for _, c := range cities {
		out = append(out, c.Rectangles...)
	}
	return out
}
