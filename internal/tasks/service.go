package tasks

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/artefact/buzz-dashboard/internal/models"
	"github.com/sirupsen/logrus"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrInvalidTransition = errors.New("invalid task status transition")
)

// Task statuses
const (
	StatusPending   = "pending"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusRejected  = "rejected"
	StatusPaused    = "paused"
)

// transition is a status change the review queue allows
type transition struct {
	from string
	to   string
}

var transitions = map[string]transition{
	"approve": {from: StatusPending, to: StatusRunning},
	"reject":  {from: StatusPending, to: StatusRejected},
	"pause":   {from: StatusRunning, to: StatusPaused},
	"resume":  {from: StatusPaused, to: StatusRunning},
}

// Service is the in-memory auto tagging task queue. Status changes stay in process.
type Service struct {
	tasks map[int]models.Task
	now   func() time.Time
	mu    sync.RWMutex
}

// NewService creates a task queue seeded with tasks
func NewService(seed []models.Task) *Service {
	s := &Service{
		tasks: make(map[int]models.Task, len(seed)),
		now:   time.Now,
	}
	for _, t := range seed {
		s.tasks[t.ID] = t
	}
	return s
}

// List returns every task ordered by ID
func (s *Service) List() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Get returns a task by ID
func (s *Service) Get(id int) (models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return models.Task{}, fmt.Errorf("%w: %d", ErrTaskNotFound, id)
	}
	return t, nil
}

// Apply runs a named status action ("approve", "reject", "pause", "resume") on a task
func (s *Service) Apply(id int, action string) (models.Task, error) {
	tr, ok := transitions[action]
	if !ok {
		return models.Task{}, fmt.Errorf("%w: unknown action %q", ErrInvalidTransition, action)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return models.Task{}, fmt.Errorf("%w: %d", ErrTaskNotFound, id)
	}

	if t.Status != tr.from {
		return t, fmt.Errorf("%w: cannot %s a %s task", ErrInvalidTransition, action, t.Status)
	}

	t.Status = tr.to
	t.UpdatedAt = s.now()
	s.tasks[id] = t

	logrus.Infof("Task %d (%s) moved to %s", t.ID, t.Name, t.Status)
	return t, nil
}

// Approve starts a pending task
func (s *Service) Approve(id int) (models.Task, error) { return s.Apply(id, "approve") }

// Reject declines a pending task
func (s *Service) Reject(id int) (models.Task, error) { return s.Apply(id, "reject") }

// Pause stops a running task
func (s *Service) Pause(id int) (models.Task, error) { return s.Apply(id, "pause") }

// Resume restarts a paused task
func (s *Service) Resume(id int) (models.Task, error) { return s.Apply(id, "resume") }
