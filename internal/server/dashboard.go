package server

import (
	"net/http"
	"strconv"

	"github.com/artefact/buzz-dashboard/internal/models"
)

// dashboardSummary handles GET /api/dashboard/summary
func (s *Server) dashboardSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Summary)
}

// dashboardTags handles GET /api/dashboard/tags, optionally narrowed with ?id=
func (s *Server) dashboardTags(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("id")
	if raw == "" {
		writeJSON(w, http.StatusOK, s.deps.Breakdowns)
		return
	}

	id, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	matched := []models.TagBreakdown{}
	for _, b := range s.deps.Breakdowns {
		if b.ID == id {
			matched = append(matched, b)
		}
	}
	writeJSON(w, http.StatusOK, matched)
}
