package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/artefact/buzz-dashboard/internal/auth"
	"github.com/artefact/buzz-dashboard/internal/tasks"
	"github.com/sirupsen/logrus"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logrus.Errorf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeFailure maps a service error to its HTTP status
func writeFailure(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		status = http.StatusUnauthorized
	case errors.Is(err, tasks.ErrTaskNotFound):
		status = http.StatusNotFound
	}
	writeError(w, status, err.Error())
}

// session returns the request's session, writing 401 when there is none
func session(w http.ResponseWriter, r *http.Request) (auth.Session, bool) {
	sess, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, auth.ErrInvalidToken.Error())
	}
	return sess, ok
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": s.now().Format(time.RFC3339),
	})
}
