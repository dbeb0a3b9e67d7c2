package server

import (
	"encoding/json"
	"net/http"

	"github.com/artefact/buzz-dashboard/internal/library"
)

type criteriaAction struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// libraryOptions handles GET /api/library/options?theme=
func (s *Server) libraryOptions(w http.ResponseWriter, r *http.Request) {
	theme := r.URL.Query().Get("theme")
	if theme == "" {
		theme = library.All
	}
	writeJSON(w, http.StatusOK, library.Options(theme))
}

// libraryComments handles GET /api/library/comments. The query string is the criteria.
func (s *Server) libraryComments(w http.ResponseWriter, r *http.Request) {
	criteria := library.CriteriaFromQuery(r.URL.Query())
	writeJSON(w, http.StatusOK, s.deps.Library.Search(criteria))
}

// getCriteria handles GET /api/library/criteria
func (s *Server) getCriteria(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}

	ws := s.view(sess.ID)
	writeJSON(w, http.StatusOK, s.deps.Library.Search(ws.criteria))
}

// updateCriteria handles POST /api/library/criteria with a single criteria action
func (s *Server) updateCriteria(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}

	var req criteriaAction
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	action, err := library.ParseAction(req.Type, req.Value)
	if err != nil {
		writeFailure(w, err)
		return
	}

	var criteria library.Criteria
	_ = s.update(sess.ID, func(ws *workspace) error {
		ws.criteria = library.Reduce(ws.criteria, action)
		criteria = ws.criteria
		return nil
	})

	writeJSON(w, http.StatusOK, s.deps.Library.Search(criteria))
}

// refreshLibrary handles POST /api/library/refresh
func (s *Server) refreshLibrary(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Library.Load(r.Context()); err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Library refreshed",
		"total":   len(s.deps.Library.Comments()),
	})
}

// libraryMetrics handles GET /api/library/metrics
func (s *Server) libraryMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(s.deps.Library.GetMetrics()))
}
