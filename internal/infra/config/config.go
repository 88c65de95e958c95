package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application. It is built once at
// startup and passed by reference into every component; nothing reads the
// environment after Load returns.
type AppConfig struct {
	DatabaseURL string

	// SMTP / email channel
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	EmailFrom    string

	// Slack channel
	SlackWebhookURL      string
	NotificationsEnabled bool

	// Task tracker (Monday.com) channel
	MondayAPIKey  string
	MondayBoardID string
	MondayAPIURL  string

	// FrontendURL is only used to render links inside messages.
	FrontendURL string

	// SendTimeout bounds every outbound delivery attempt.
	SendTimeout time.Duration

	LogLevel    string
	Environment string

	CronSpecWeeklyDigest     string
	CronSpecUtilizationCheck string
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	// Channel credentials are all optional: a channel with missing credentials
	// reports itself unconfigured and is skipped at send time.
	cfg.SMTPHost = os.Getenv("SMTP_HOST")
	cfg.SMTPUser = os.Getenv("SMTP_USER")
	cfg.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	cfg.SMTPPort = 587
	if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
		}
		cfg.SMTPPort = port
	}
	cfg.EmailFrom = os.Getenv("EMAIL_FROM")
	if cfg.EmailFrom == "" {
		cfg.EmailFrom = cfg.SMTPUser
	}

	cfg.SlackWebhookURL = os.Getenv("SLACK_WEBHOOK_URL")
	cfg.NotificationsEnabled = true
	if enabledStr := os.Getenv("NOTIFICATIONS_ENABLED"); enabledStr != "" {
		enabled, err := strconv.ParseBool(enabledStr)
		if err != nil {
			return nil, fmt.Errorf("invalid NOTIFICATIONS_ENABLED: %w", err)
		}
		cfg.NotificationsEnabled = enabled
	}

	cfg.MondayAPIKey = os.Getenv("MONDAY_API_KEY")
	cfg.MondayBoardID = os.Getenv("MONDAY_BOARD_ID")
	cfg.MondayAPIURL = os.Getenv("MONDAY_API_URL")
	if cfg.MondayAPIURL == "" {
		cfg.MondayAPIURL = "https://api.monday.com/v2"
	}

	cfg.FrontendURL = os.Getenv("FRONTEND_URL")
	if cfg.FrontendURL == "" {
		cfg.FrontendURL = "http://localhost:8080"
	}

	cfg.SendTimeout = 30 * time.Second
	if timeoutStr := os.Getenv("SEND_TIMEOUT"); timeoutStr != "" {
		timeout, err := time.ParseDuration(timeoutStr)
		if err != nil {
			return nil, fmt.Errorf("invalid SEND_TIMEOUT: %w", err)
		}
		cfg.SendTimeout = timeout
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	cfg.CronSpecWeeklyDigest = os.Getenv("CRON_SPEC_WEEKLY_DIGEST")
	if cfg.CronSpecWeeklyDigest == "" {
		cfg.CronSpecWeeklyDigest = "0 9 * * 1" // Default: 9:00 AM on Mondays
	}

	cfg.CronSpecUtilizationCheck = os.Getenv("CRON_SPEC_UTILIZATION_CHECK")
	if cfg.CronSpecUtilizationCheck == "" {
		cfg.CronSpecUtilizationCheck = "0 18 * * *" // Default: 6:00 PM daily
	}

	return cfg, nil
}

// EmailConfigured reports whether the SMTP credentials required by the email
// channel are all present.
func (c *AppConfig) EmailConfigured() bool {
	return c.SMTPHost != "" && c.SMTPUser != "" && c.SMTPPassword != ""
}

// TaskTrackerConfigured reports whether the task tracker credentials are present.
func (c *AppConfig) TaskTrackerConfigured() bool {
	return c.MondayAPIKey != "" && c.MondayBoardID != ""
}
