package server

import (
	"encoding/json"
	"net/http"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// login handles POST /api/auth/login
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess, err := s.deps.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, sess)
}

// logout handles POST /api/auth/logout
func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}

	s.deps.Auth.Logout(sess.ID)
	s.dropWorkspace(sess.ID)

	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// me handles GET /api/auth/me
func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	sess, ok := session(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, sess.User)
}
