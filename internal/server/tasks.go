package server

import (
	"net/http"
	"strconv"

	"github.com/artefact/buzz-dashboard/internal/notifications"
	"github.com/gorilla/mux"
)

// listTasks handles GET /api/tasks
func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Tasks.List())
}

// getTask handles GET /api/tasks/{id}
func (s *Server) getTask(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}

	task, err := s.deps.Tasks.Get(id)
	if err != nil {
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

// updateTask handles POST /api/tasks/{id}/{action}
func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}

	task, err := s.deps.Tasks.Apply(id, mux.Vars(r)["action"])
	if err != nil {
		writeFailure(w, err)
		return
	}

	s.notify("status change", func(n notifications.NotificationInterface) error {
		return n.SendStatusChange(&task)
	})

	writeJSON(w, http.StatusOK, task)
}

func taskID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid task id")
		return 0, false
	}
	return id, true
}
