package handlers

import (
	"log"
	"net/http"
	"place-backfill-service/internal/api/dto"
	"place-backfill-service/internal/domain"
	"place-backfill-service/internal/services"
)

const maxCircleSegments = 128

type GridHandler struct {
	DefaultMaxRadius float64
	// MaxCenterPoints caps the centers a single plan may return. 0 leaves only the per-rectangle bound.
	MaxCenterPoints int
}

// Plan measures one rectangle and returns its search centers, radius and a
// GeoJSON rendering, optionally with a coverage audit. No searches are issued.
func (h *GridHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.GridRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	rect, err := toRectangle(req.Rectangle)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	maxRadius := req.MaxRadiusMeters
	if maxRadius == 0 {
		maxRadius = h.DefaultMaxRadius
	}
	if maxRadius == 0 {
		maxRadius = services.DefaultMaxBackfillRadius
	}

	if req.CircleSegments < 0 || req.CircleSegments > maxCircleSegments {
		writeError(w, r, http.StatusBadRequest, "circle_segments must be between 0 and 128")
		return
	}

	areas, err := services.BuildBackfillAreasCapped([]domain.BoundaryRectangle{rect}, maxRadius, h.MaxCenterPoints)
	if err != nil {
		if isInputError(err) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("build grid failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	area := areas[0]

	geo, err := services.AreaGeoJSON(area, req.CircleSegments).MarshalJSON()
	if err != nil {
		log.Printf("encode grid geojson failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.GridResponse{
		WidthMeters:  area.Width,
		HeightMeters: area.Height,
		RadiusMeters: area.Radius,
		SearchRadius: area.SearchRadius(),
		CenterPoints: make([]dto.PointResponse, 0, len(area.CenterPoints)),
		GeoJSON:      geo,
	}
	for _, c := range area.CenterPoints {
		res.CenterPoints = append(res.CenterPoints, toPointResponse(c))
	}

	if req.Audit {
		cov, err := services.AuditCoverage(area, 4)
		if err != nil {
			log.Printf("audit coverage failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
		res.Coverage = &dto.CoverageResponse{
			Covered:      cov.Covered(),
			MaxGapMeters: cov.MaxGapMeters,
			ExcessMeters: cov.Excess(),
			WorstPoint:   toPointResponse(cov.WorstPoint),
			Samples:      cov.Samples,
		}
	}

	writeJSON(w, r, http.StatusOK, res)
}
