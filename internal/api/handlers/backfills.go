package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"place-backfill-service/internal/api/dto"
	"place-backfill-service/internal/domain"
	"place-backfill-service/internal/ports"
	"place-backfill-service/internal/services"
	"strings"
)

type BackfillHandler struct {
	Backfiller       *services.Backfiller
	Repo             ports.PlaceRepository // optional
	Cities           []domain.CityBoundary
	Credential       string
	DefaultPlaceType string
	DefaultMaxRadius float64
	// MaxCenterPoints caps the queries a single request may issue. 0 disables the cap.
	MaxCenterPoints int
}

// Run executes a backfill over the requested rectangles, a named city, or
// every configured city when neither is given. The response is written once
// the whole scan has finished.
func (h *BackfillHandler) Run(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.BackfillRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	rects, err := h.resolveRectangles(req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	placeType := strings.TrimSpace(req.PlaceType)
	if placeType == "" {
		placeType = h.DefaultPlaceType
	}
	if placeType == "" {
		writeError(w, r, http.StatusBadRequest, "place_type is required")
		return
	}

	maxRadius := req.MaxRadiusMeters
	if maxRadius == 0 {
		maxRadius = h.DefaultMaxRadius
	}
	if maxRadius < 0 {
		writeError(w, r, http.StatusBadRequest, "max_radius_meters must be positive")
		return
	}

	report, err := h.Backfiller.Run(r.Context(), services.BackfillRequest{
		Credential: h.Credential,
		PlaceType:  placeType,
		Rectangles: rects,
		MaxRadius:  maxRadius,
		Dedupe:     req.Dedupe,
		// Checked while planning, before any lattice is allocated or query issued.
		MaxCenterPoints: h.MaxCenterPoints,
	})
	if err != nil {
		var scanErr *services.ScanError
		switch {
		case isInputError(err):
			writeError(w, r, http.StatusBadRequest, err.Error())
		case errors.As(err, &scanErr):
			log.Printf("backfill aborted: %v", err)
			writeError(w, r, http.StatusBadGateway, fmt.Sprintf(
				"place search failed at area %d point %d", scanErr.AreaIndex, scanErr.PointIndex,
			))
		default:
			log.Printf("backfill failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	persisted := false
	if h.Repo != nil {
		if err := h.Repo.SaveRun(r.Context(), report); err != nil {
			log.Printf("save run failed run_id=%s: %v", report.RunID, err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
		if err := h.Repo.SavePlaces(r.Context(), report.RunID, report.Places); err != nil {
			log.Printf("save places failed run_id=%s: %v", report.RunID, err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
		persisted = true
	}

	res := dto.BackfillResponse{
		RunID:      report.RunID.String(),
		PlaceType:  report.PlaceType,
		Areas:      make([]dto.AreaResponse, 0, len(report.Areas)),
		Searched:   report.Searched(),
		Skipped:    report.Skipped(),
		Places:     toPlaceResponses(report.Places),
		StartedAt:  report.StartedAt,
		FinishedAt: report.FinishedAt,
		Persisted:  persisted,
	}
	for _, a := range report.Areas {
		res.Areas = append(res.Areas, dto.AreaResponse{
			Index:        a.Index,
			WidthMeters:  a.Width,
			HeightMeters: a.Height,
			CenterPoints: len(a.CenterPoints),
			RadiusMeters: a.Radius,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *BackfillHandler) resolveRectangles(req dto.BackfillRequest) ([]domain.BoundaryRectangle, error) {
	city := strings.TrimSpace(req.City)

	switch {
	case len(req.Rectangles) > 0 && city != "":
		return nil, errors.New("rectangles and city are mutually exclusive")
	case len(req.Rectangles) > 0:
		rects := make([]domain.BoundaryRectangle, 0, len(req.Rectangles))
		for i, rr := range req.Rectangles {
			rect, err := toRectangle(rr)
			if err != nil {
				return nil, fmt.Errorf("rectangle %d: %w", i+1, err)
			}
			rects = append(rects, rect)
		}
		return rects, nil
	case city != "":
		c, ok := domain.FindCity(h.Cities, city)
		if !ok {
			return nil, fmt.Errorf("unknown city %q", city)
		}
		return c.Rectangles, nil
	default:
		rects := domain.AllRectangles(h.Cities)
		if len(rects) == 0 {
			return nil, errors.New("no rectangles given and no cities configured")
		}
		return rects, nil
	}
}
