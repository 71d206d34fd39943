package repositories

import (
	"bytes"
	"context"
	"encoding/csv"
	"place-backfill-service/internal/domain"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWritePlacesCSV(t *testing.T) {
	rating := 4.25
	places := []domain.Place{
		{
			PlaceID:  "p1",
			Name:     "Café, Bar",
			Location: domain.Point{Lat: 37.7749, Lng: -122.4194},
			Types:    []string{"cafe", "bar"},
			Rating:   &rating,
		},
		{PlaceID: "p1", Name: "Café, Bar"},
	}

	var buf bytes.Buffer
	require.NoError(t, WritePlacesCSV(&buf, places))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, placesCSVHeader, records[0])
	assert.Equal(t, []string{"1", "p1", "Café, Bar", "37.7749000", "-122.4194000", "", "cafe|bar", "4.25", ""}, records[1])
	assert.Equal(t, "2", records[2][0])
	assert.Equal(t, "", records[2][7])
}

func TestWritePlacesCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePlacesCSV(&buf, nil))
	assert.Equal(t, "index,place_id,name,lat,lng,vicinity,types,rating,icon\n", buf.String())
}

func TestPostgresPlaceRepositoryRequiresDB(t *testing.T) {
	repo := NewPostgresPlaceRepository(nil)
	ctx := context.Background()

	assert.Error(t, repo.SaveRun(ctx, &domain.BackfillReport{}))
	assert.Error(t, repo.SavePlaces(ctx, uuid.New(), nil))
	_, err := repo.ListPlaces(ctx, uuid.New())
	assert.Error(t, err)
	assert.Error(t, InitSchema(nil))
}
