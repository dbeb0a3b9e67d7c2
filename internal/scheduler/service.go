package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/artefact/buzz-dashboard/internal/config"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// loadTimeout bounds a single scheduled fixture reload
const loadTimeout = 30 * time.Second

// Loader reloads a fixture-backed collection
type Loader interface {
	Load(ctx context.Context) error
}

// Service handles scheduled fixture reloads
type Service struct {
	config *config.Config
	loader Loader
	cron   *cron.Cron
}

// NewService creates a new scheduler service
func NewService(cfg *config.Config, loader Loader) *Service {
	return &Service{
		config: cfg,
		loader: loader,
		cron:   cron.New(cron.WithSeconds()),
	}
}

// Start registers the refresh job and starts the cron runner. An empty schedule disables it.
func (s *Service) Start() error {
	schedule := s.config.FixtureRefreshSchedule
	if schedule == "" {
		logrus.Info("Fixture refresh schedule not set, scheduler disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(schedule, s.reload); err != nil {
		return fmt.Errorf("invalid fixture refresh schedule %q: %w", schedule, err)
	}

	s.cron.Start()
	logrus.Infof("Scheduler started with %q fixture refresh schedule", schedule)
	return nil
}

func (s *Service) reload() {
	logrus.Info("Starting scheduled fixture reload")

	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()

	if err := s.loader.Load(ctx); err != nil {
		logrus.Errorf("Scheduled fixture reload failed: %v", err)
	}
}

// Entries returns the number of registered jobs
func (s *Service) Entries() int {
	return len(s.cron.Entries())
}

// Stop stops the scheduler and waits for a running reload to finish
func (s *Service) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
		logrus.Info("Scheduler stopped")
	}
}
