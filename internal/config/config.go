package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port  string
	Debug bool

	// Fixture configuration
	FixtureSource   string // "embedded", "file", "http" or "azure"
	FixtureDir      string
	FixtureBaseURL  string
	CommentsFixture string

	// Azure Storage configuration
	StorageAccount   string
	StorageContainer string

	// Cron expression (with seconds) for reloading the comments fixture, empty disables
	FixtureRefreshSchedule string

	// Login configuration
	LoginEmail    string
	LoginPassword string
	LoginName     string
	LoginDelay    time.Duration

	// Session configuration
	JWTSecret  string
	SessionTTL time.Duration

	// Reviewer notification configuration, all channels optional
	TeamsWebhookURL   string
	NotificationEmail string
	SMTPHost          string
	SMTPPort          int
	SMTPUsername      string
	SMTPPassword      string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:  getEnv("PORT", "8080"),
		Debug: getBoolEnv("DEBUG", false),

		FixtureSource:   strings.ToLower(getEnv("FIXTURE_SOURCE", "embedded")),
		FixtureDir:      getEnv("FIXTURE_DIR", "public"),
		FixtureBaseURL:  getEnv("FIXTURE_BASE_URL", ""),
		CommentsFixture: getEnv("COMMENTS_FIXTURE", "comments.json"),

		StorageAccount:   getEnv("AZURE_STORAGE_ACCOUNT", ""),
		StorageContainer: getEnv("AZURE_STORAGE_CONTAINER", "fixtures"),

		FixtureRefreshSchedule: getEnv("FIXTURE_REFRESH_SCHEDULE", ""),

		LoginEmail:    getEnv("LOGIN_EMAIL", "jiaoliang.chen@artefact.com"),
		LoginPassword: getEnv("LOGIN_PASSWORD", "cjl@2025"),
		LoginName:     getEnv("LOGIN_NAME", "Jiaoliang Chen"),
		LoginDelay:    getDurationEnv("LOGIN_DELAY", time.Second),

		JWTSecret:  getEnv("JWT_SECRET", "buzz-dashboard-dev-secret"),
		SessionTTL: getDurationEnv("SESSION_TTL", 12*time.Hour),

		TeamsWebhookURL:   getEnv("TEAMS_WEBHOOK_URL", ""),
		NotificationEmail: getEnv("NOTIFICATION_EMAIL", ""),
		SMTPHost:          getEnv("SMTP_HOST", ""),
		SMTPPort:          getIntEnv("SMTP_PORT", 587),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),
	}

	// Validate required configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.FixtureSource {
	case "embedded":
	case "file":
		if c.FixtureDir == "" {
			return fmt.Errorf("FIXTURE_DIR is required when FIXTURE_SOURCE is 'file'")
		}
	case "http":
		if c.FixtureBaseURL == "" {
			return fmt.Errorf("FIXTURE_BASE_URL is required when FIXTURE_SOURCE is 'http'")
		}
	case "azure":
		if c.StorageAccount == "" {
			return fmt.Errorf("AZURE_STORAGE_ACCOUNT is required when FIXTURE_SOURCE is 'azure'")
		}
	default:
		return fmt.Errorf("FIXTURE_SOURCE must be one of 'embedded', 'file', 'http' or 'azure'")
	}

	if c.CommentsFixture == "" {
		return fmt.Errorf("COMMENTS_FIXTURE must not be empty")
	}

	if c.LoginEmail == "" || c.LoginPassword == "" {
		return fmt.Errorf("LOGIN_EMAIL and LOGIN_PASSWORD are required")
	}

	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}

	if c.NotificationEmail != "" {
		if c.SMTPHost == "" || c.SMTPUsername == "" || c.SMTPPassword == "" {
			return fmt.Errorf("SMTP configuration is required when NOTIFICATION_EMAIL is set")
		}
	}

	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
