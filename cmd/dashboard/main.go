package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/artefact/buzz-dashboard/internal/auth"
	"github.com/artefact/buzz-dashboard/internal/config"
	"github.com/artefact/buzz-dashboard/internal/fixtures"
	"github.com/artefact/buzz-dashboard/internal/library"
	"github.com/artefact/buzz-dashboard/internal/notifications"
	"github.com/artefact/buzz-dashboard/internal/scheduler"
	"github.com/artefact/buzz-dashboard/internal/server"
	"github.com/artefact/buzz-dashboard/internal/storage"
	"github.com/artefact/buzz-dashboard/internal/tasks"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up logging
	logrus.SetLevel(logrus.InfoLevel)
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})

	logrus.Info("Starting Buzz Dashboard")

	// Initialize fixture storage
	store, err := storage.FromConfig(cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize storage: %v", err)
	}

	// Initialize data library. A failed first load leaves the library empty.
	librarySvc := library.NewService(store, cfg.CommentsFixture)
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	if err := librarySvc.Load(loadCtx); err != nil {
		logrus.Warnf("Starting with an empty data library: %v", err)
	}
	cancelLoad()

	summary, err := fixtures.SummaryRows()
	if err != nil {
		logrus.Fatalf("Failed to load dashboard summary: %v", err)
	}
	breakdowns, err := fixtures.TagBreakdowns()
	if err != nil {
		logrus.Fatalf("Failed to load tag breakdowns: %v", err)
	}

	// Initialize scheduler
	schedulerService := scheduler.NewService(cfg, librarySvc)
	if err := schedulerService.Start(); err != nil {
		logrus.Fatalf("Failed to start scheduler: %v", err)
	}
	defer schedulerService.Stop()

	container := &server.Container{
		Auth:       auth.NewService(cfg),
		Library:    librarySvc,
		Tasks:      tasks.NewService(tasks.MockTasks()),
		Summary:    summary,
		Breakdowns: breakdowns,
	}

	// Initialize reviewer notifications
	if notificationService := notifications.NewService(cfg); notificationService.Enabled() {
		container.Notifier = notificationService
	} else {
		logrus.Info("No notification channel configured, reviewer notifications disabled")
	}

	api := server.New(container)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      api.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server in a goroutine
	go func() {
		logrus.Infof("HTTP server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}
