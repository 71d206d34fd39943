package handlers

import (
	"net/http"
)

// HealthHandler reports liveness plus what this instance can serve.
type HealthHandler struct {
	Cities      int
	Persistence bool
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"status":      "ok",
		"cities":      h.Cities,
		"persistence": h.Persistence,
	})
}
