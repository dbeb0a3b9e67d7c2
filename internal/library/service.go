package library

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/artefact/buzz-dashboard/internal/models"
	"github.com/artefact/buzz-dashboard/internal/storage"
	"github.com/sirupsen/logrus"
)

// Service owns the comment collection behind the data library
type Service struct {
	storage  storage.StorageInterface
	fixture  string
	comments []models.Comment
	loading  bool
	metrics  *Metrics
	now      func() time.Time
	mu       sync.RWMutex
}

// Metrics holds data library metrics
type Metrics struct {
	Source             string         `json:"source"`
	TotalComments      int            `json:"total_comments"`
	LastLoad           time.Time      `json:"last_load"`
	LastLoadDuration   string         `json:"last_load_duration"`
	GameBreakdown      map[string]int `json:"game_breakdown"`
	SentimentBreakdown map[string]int `json:"sentiment_breakdown"`
	ErrorCount         int            `json:"error_count"`
}

// Result is a filtered view of the library
type Result struct {
	Criteria      Criteria         `json:"criteria"`
	ActiveFilters []ActiveFilter   `json:"active_filters"`
	Total         int              `json:"total"`
	Comments      []models.Comment `json:"comments"`
	Loading       bool             `json:"loading"`
	Message       string           `json:"message,omitempty"`
}

// NewService creates a new data library service reading fixture from store
func NewService(store storage.StorageInterface, fixture string) *Service {
	return &Service{
		storage: store,
		fixture: fixture,
		metrics: &Metrics{
			Source:             store.Name(),
			GameBreakdown:      make(map[string]int),
			SentimentBreakdown: make(map[string]int),
		},
		now: time.Now,
	}
}

// Load fetches the comments fixture once. There is no retry: on failure the error is
// logged, the previous comments stay in place and the error is returned.
func (s *Service) Load(ctx context.Context) error {
	start := time.Now()
	s.setLoading(true)
	defer s.setLoading(false)

	logrus.Infof("Loading %s from %s storage", s.fixture, s.storage.Name())

	comments, err := s.fetch(ctx)
	if err != nil {
		logrus.Errorf("Error loading comments: %v", err)
		s.mu.Lock()
		s.metrics.ErrorCount++
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.comments = comments
	s.updateMetrics(time.Since(start))
	s.mu.Unlock()

	logrus.Infof("Loaded %d comments in %v", len(comments), time.Since(start))
	return nil
}

func (s *Service) fetch(ctx context.Context) ([]models.Comment, error) {
	data, err := s.storage.Retrieve(ctx, s.fixture)
	if err != nil {
		return nil, err
	}

	var comments []models.Comment
	if err := json.Unmarshal(data, &comments); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", s.fixture, err)
	}

	return comments, nil
}

// NormalizeComments decodes a comments fixture in either tag_details shape and
// re-encodes it, indented, with every comment in the theme -> tag -> metrics tree.
func NormalizeComments(data []byte) ([]byte, int, error) {
	var comments []models.Comment
	if err := json.Unmarshal(data, &comments); err != nil {
		return nil, 0, fmt.Errorf("failed to decode comments: %w", err)
	}

	out, err := json.MarshalIndent(comments, "", "  ")
	if err != nil {
		return nil, 0, err
	}
	return out, len(comments), nil
}

func (s *Service) setLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
}

// Comments returns a copy of every loaded comment
func (s *Service) Comments() []models.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Comment, len(s.comments))
	copy(out, s.comments)
	return out
}

// Search filters the whole collection against criteria
func (s *Service) Search(criteria Criteria) *Result {
	s.mu.RLock()
	comments := s.comments
	loading := s.loading
	s.mu.RUnlock()

	filtered := Filter(comments, criteria, s.now())

	result := &Result{
		Criteria:      criteria,
		ActiveFilters: criteria.ActiveFilters(),
		Total:         len(filtered),
		Comments:      filtered,
		Loading:       loading,
	}
	if len(filtered) == 0 {
		result.Message = "No comments found"
	}

	return result
}

func (s *Service) updateMetrics(duration time.Duration) {
	s.metrics.TotalComments = len(s.comments)
	s.metrics.LastLoad = time.Now()
	s.metrics.LastLoadDuration = duration.String()

	// Reset counters
	s.metrics.GameBreakdown = make(map[string]int)
	s.metrics.SentimentBreakdown = make(map[string]int)

	for _, comment := range s.comments {
		s.metrics.GameBreakdown[comment.Game]++
		for _, theme := range comment.TagDetails {
			for _, tag := range theme.Tags {
				s.metrics.SentimentBreakdown[tag.Metrics.SentimentLabel]++
			}
		}
	}
}

// GetMetrics returns current metrics as JSON
func (s *Service) GetMetrics() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, _ := json.MarshalIndent(s.metrics, "", "  ")
	return string(data)
}
