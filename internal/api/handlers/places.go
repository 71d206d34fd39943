package handlers

import (
	"log"
	"net/http"
	"place-backfill-service/internal/api/dto"
	"place-backfill-service/internal/ports"
	"strings"

	"github.com/google/uuid"
)

// PlacesHandler exposes the places persisted for a backfill run.
type PlacesHandler struct {
	Repo ports.PlaceRepository
}

func (h *PlacesHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if h.Repo == nil {
		writeError(w, r, http.StatusServiceUnavailable, "persistence is not configured")
		return
	}

	raw := strings.TrimSpace(r.URL.Query().Get("run_id"))
	if raw == "" {
		writeError(w, r, http.StatusBadRequest, "run_id is required")
		return
	}
	runID, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "run_id must be a UUID")
		return
	}

	places, err := h.Repo.ListPlaces(r.Context(), runID)
	if err != nil {
		log.Printf("list places failed run_id=%s: %v", runID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ListPlacesResponse{
		RunID:  runID.String(),
		Places: toPlaceResponses(places),
	})
}
