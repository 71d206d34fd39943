package repositories

import (
	"encoding/csv"
	"fmt"
	"io"
	"place-backfill-service/internal/domain"
	"strconv"
	"strings"
)

var placesCSVHeader = []string{"index", "place_id", "name", "lat", "lng", "vicinity", "types", "rating", "icon"}

// Write places as CSV in aggregate order with a 1-based index column.
func WritePlacesCSV(w io.Writer, places []domain.Place) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(placesCSVHeader); err != nil {
		return fmt.Errorf("write places csv: header: %w", err)
	}

	for i, p := range places {
		rating := ""
		if p.Rating != nil {
			rating = strconv.FormatFloat(*p.Rating, 'f', -1, 64)
		}

		record := []string{
			strconv.Itoa(i + 1),
			p.PlaceID,
			p.Name,
			strconv.FormatFloat(p.Location.Lat, 'f', 7, 64),
			strconv.FormatFloat(p.Location.Lng, 'f', 7, 64),
			p.Vicinity,
			strings.Join(p.Types, "|"),
			rating,
			p.Icon,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write places csv: row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write places csv: flush: %w", err)
	}

	return nil
}
