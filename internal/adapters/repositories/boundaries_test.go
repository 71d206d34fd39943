package repositories

import (
	"os"
	"path/filepath"
	"place-backfill-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCityBoundariesAreValid(t *testing.T) {
	cities := CityBoundaries()
	require.NotEmpty(t, cities)

	for _, c := range cities {
		require.NotEmpty(t, c.Rectangles, c.Name)
		for _, r := range c.Rectangles {
			assert.NoError(t, r.Validate(), c.Name)
			assert.Greater(t, r.UpperLeft.Lat, r.LowerRight.Lat, c.Name)
			assert.Less(t, r.UpperLeft.Lng, r.LowerRight.Lng, c.Name)
		}
	}
}

func TestCityBoundariesReturnsCopy(t *testing.T) {
	a := CityBoundaries()
	a[0].Rectangles[0].UpperLeft.Lat = 0

	b := CityBoundaries()
	assert.NotEqual(t, 0.0, b[0].Rectangles[0].UpperLeft.Lat)
}

func TestFindBuiltinCityByLooseName(t *testing.T) {
	cities := CityBoundaries()

	for _, name := range []string{"san_francisco", "San Francisco", " san-francisco "} {
		c, ok := domain.FindCity(cities, name)
		assert.True(t, ok, name)
		assert.Equal(t, "san_francisco", c.Name)
	}

	_, ok := domain.FindCity(cities, "atlantis")
	assert.False(t, ok)
}

func TestAllBuiltinRectanglesKeepCityOrder(t *testing.T) {
	cities := CityBoundaries()
	rects := domain.AllRectangles(cities)

	total := 0
	for _, c := range cities {
		total += len(c.Rectangles)
	}
	require.Len(t, rects, total)
	assert.Equal(t, cities[0].Rectangles[0], rects[0])
	last := cities[len(cities)-1]
	assert.Equal(t, last.Rectangles[len(last.Rectangles)-1], rects[len(rects)-1])
}

func TestLoadBoundariesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cities.json")
	data := `{
		"cities": [
			{
				"name": "Oakland",
				"rectangles": [
					{"upper_left": {"lat": 37.85, "lng": -122.30}, "lower_right": {"lat": 37.76, "lng": -122.18}}
				]
			}
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cities, err := LoadBoundariesJSON(path)
	require.NoError(t, err)
	require.Len(t, cities, 1)

	r := cities[0].Rectangles[0]
	assert.Equal(t, "Oakland", cities[0].Name)
	assert.Equal(t, domain.Point{Lat: 37.85, Lng: -122.18}, r.UpperRight)
	assert.Equal(t, domain.Point{Lat: 37.76, Lng: -122.30}, r.LowerLeft)
}

func TestParseBoundariesJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"bad json", `{`, "parse json"},
		{"no cities", `{"cities": []}`, "no cities"},
		{"empty name", `{"cities": [{"name": " ", "rectangles": []}]}`, "name cannot be empty"},
		{"no rectangles", `{"cities": [{"name": "x", "rectangles": []}]}`, "at least one rectangle"},
		{
			"duplicate",
			`{"cities": [
				{"name": "A b", "rectangles": [{"upper_left": {"lat": 1, "lng": 1}, "lower_right": {"lat": 0, "lng": 2}}]},
				{"name": "a_b", "rectangles": [{"upper_left": {"lat": 1, "lng": 1}, "lower_right": {"lat": 0, "lng": 2}}]}
			]}`,
			"duplicate name",
		},
		{
			"bad corner",
			`{"cities": [{"name": "x", "rectangles": [{"upper_left": {"lat": 95, "lng": 1}, "lower_right": {"lat": 0, "lng": 2}}]}]}`,
			"rectangle at index 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBoundariesJSON([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadBoundariesJSONMissingFile(t *testing.T) {
	_, err := LoadBoundariesJSON(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
