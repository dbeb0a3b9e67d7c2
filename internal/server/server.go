package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/artefact/buzz-dashboard/internal/auth"
	"github.com/artefact/buzz-dashboard/internal/library"
	"github.com/artefact/buzz-dashboard/internal/models"
	"github.com/artefact/buzz-dashboard/internal/notifications"
	"github.com/artefact/buzz-dashboard/internal/tagging"
	"github.com/artefact/buzz-dashboard/internal/tasks"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Container holds all dependencies for the router
type Container struct {
	Auth       *auth.Service
	Library    *library.Service
	Tasks      *tasks.Service
	Notifier   notifications.NotificationInterface // optional
	Summary    []models.SummaryRow
	Breakdowns []models.TagBreakdown
}

// workspace is the page state owned by one session
type workspace struct {
	criteria library.Criteria
	draft    tagging.Draft
}

// Server serves the dashboard API
type Server struct {
	deps       *Container
	workspaces map[string]*workspace
	now        func() time.Time
	mu         sync.Mutex
}

// New creates a new API server
func New(c *Container) *Server {
	s := &Server{
		deps:       c,
		workspaces: make(map[string]*workspace),
		now:        time.Now,
	}
	if c.Auth != nil {
		c.Auth.OnExpire(s.dropWorkspace)
	}
	return s
}

// Router creates the API router with all endpoints
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(corsMiddleware)

	// Health check
	r.HandleFunc("/health", s.health).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Public routes
	api.HandleFunc("/auth/login", s.login).Methods("POST", "OPTIONS")

	// Session routes
	protected := api.NewRoute().Subrouter()
	protected.Use(s.deps.Auth.RequireSession)

	protected.HandleFunc("/auth/logout", s.logout).Methods("POST", "OPTIONS")
	protected.HandleFunc("/auth/me", s.me).Methods("GET", "OPTIONS")

	protected.HandleFunc("/dashboard/summary", s.dashboardSummary).Methods("GET", "OPTIONS")
	protected.HandleFunc("/dashboard/tags", s.dashboardTags).Methods("GET", "OPTIONS")

	protected.HandleFunc("/library/options", s.libraryOptions).Methods("GET", "OPTIONS")
	protected.HandleFunc("/library/comments", s.libraryComments).Methods("GET", "OPTIONS")
	protected.HandleFunc("/library/criteria", s.getCriteria).Methods("GET", "OPTIONS")
	protected.HandleFunc("/library/criteria", s.updateCriteria).Methods("POST", "OPTIONS")
	protected.HandleFunc("/library/refresh", s.refreshLibrary).Methods("POST", "OPTIONS")
	protected.HandleFunc("/library/metrics", s.libraryMetrics).Methods("GET", "OPTIONS")

	protected.HandleFunc("/tagging/catalog", s.taggingCatalog).Methods("GET", "OPTIONS")
	protected.HandleFunc("/tagging/draft", s.getDraft).Methods("GET", "OPTIONS")
	protected.HandleFunc("/tagging/draft/actions", s.applyDraftAction).Methods("POST", "OPTIONS")
	protected.HandleFunc("/tagging/draft/submit", s.submitDraft).Methods("POST", "OPTIONS")

	protected.HandleFunc("/tasks", s.listTasks).Methods("GET", "OPTIONS")
	protected.HandleFunc("/tasks/{id}", s.getTask).Methods("GET", "OPTIONS")
	protected.HandleFunc("/tasks/{id}/{action:approve|reject|pause|resume}", s.updateTask).Methods("POST", "OPTIONS")

	return r
}

// workspaceFor returns the session's workspace, creating it on first use
func (s *Server) workspaceFor(sessionID string) *workspace {
	s.mu.Lock()
	defer s.mu.Unlock()

	ws, ok := s.workspaces[sessionID]
	if !ok {
		ws = &workspace{
			criteria: library.DefaultCriteria(),
			draft:    tagging.NewDraft(),
		}
		s.workspaces[sessionID] = ws
	}
	return ws
}

// update runs fn on the session's workspace under the server lock
func (s *Server) update(sessionID string, fn func(ws *workspace) error) error {
	ws := s.workspaceFor(sessionID)

	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ws)
}

// view returns a copy of the session's workspace
func (s *Server) view(sessionID string) workspace {
	ws := s.workspaceFor(sessionID)

	s.mu.Lock()
	defer s.mu.Unlock()
	return *ws
}

func (s *Server) dropWorkspace(sessionID string) {
	s.mu.Lock()
	delete(s.workspaces, sessionID)
	s.mu.Unlock()
}

// notify sends a reviewer notification in the background. Failures are logged only.
func (s *Server) notify(kind string, send func(n notifications.NotificationInterface) error) {
	if s.deps.Notifier == nil {
		return
	}
	go func() {
		if err := send(s.deps.Notifier); err != nil {
			logrus.Errorf("Failed to send %s notification: %v", kind, err)
		}
	}()
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
