package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"place-backfill-service/internal/api/dto"
	"place-backfill-service/internal/domain"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// decodeBody reads exactly one JSON object with no unknown fields.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return errors.New("invalid json body")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must contain only one JSON object")
	}
	return nil
}

func toPoint(p dto.PointRequest, field string) (domain.Point, error) {
	if p.Lat == nil || p.Lng == nil {
		return domain.Point{}, errors.New(field + " requires lat and lng")
	}
	pt := domain.Point{Lat: *p.Lat, Lng: *p.Lng}
	if err := pt.Validate(); err != nil {
		return domain.Point{}, errors.New(field + ": " + err.Error())
	}
	return pt, nil
}

func toRectangle(r dto.RectangleRequest) (domain.BoundaryRectangle, error) {
	ul, err := toPoint(r.UpperLeft, "upper_left")
	if err != nil {
		return domain.BoundaryRectangle{}, err
	}
	lr, err := toPoint(r.LowerRight, "lower_right")
	if err != nil {
		return domain.BoundaryRectangle{}, err
	}
	return domain.NewBoundaryRectangle(ul, lr), nil
}

func toPointResponse(p domain.Point) dto.PointResponse {
	return dto.PointResponse{Lat: p.Lat, Lng: p.Lng}
}

func toPlaceResponses(places []domain.Place) []dto.PlaceResponse {
	out := make([]dto.PlaceResponse, 0, len(places))
	for _, p := range places {
		out = append(out, dto.PlaceResponse{
			PlaceID:  p.PlaceID,
			Name:     p.Name,
			Location: toPointResponse(p.Location),
			Icon:     p.Icon,
			Types:    p.Types,
			Vicinity: p.Vicinity,
			Rating:   p.Rating,
		})
	}
	return out
}

// isInputError reports whether err was caused by the request's geometry.
func isInputError(err error) bool {
	return errors.Is(err, domain.ErrInvalidCoordinate) ||
		errors.Is(err, domain.ErrDegenerateRectangle) ||
		errors.Is(err, domain.ErrInvalidMaxRadius) ||
		errors.Is(err, domain.ErrLatticeTooLarge)
}
