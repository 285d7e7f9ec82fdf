package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the report pipeline.
type AppConfig struct {
	DatabaseURL string
	LogLevel    string
	Environment string

	// ScanCronSpec drives the due-schedule scan tick.
	ScanCronSpec string
	// RecordTimeout bounds one schedule's full pipeline run.
	RecordTimeout time.Duration
	// FailureBackoff is how far a failed schedule's next run is pushed out.
	FailureBackoff time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	EmailFrom    string

	AnalyticsAPIURL string
	AnalyticsAPIKey string
	KeywordAPIURL   string
	KeywordAPIKey   string
	TrafficAPIURL   string
	TrafficAPIKey   string

	ShareLinkSecret  string
	DashboardBaseURL string
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	cfg.SMTPHost = os.Getenv("SMTP_HOST")
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("SMTP_HOST is not set")
	}
	portStr := os.Getenv("SMTP_PORT")
	if portStr == "" {
		portStr = "587"
	}
	cfg.SMTPPort, err = strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}
	cfg.SMTPUsername = os.Getenv("SMTP_USERNAME")
	cfg.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	cfg.EmailFrom = os.Getenv("EMAIL_FROM")
	if cfg.EmailFrom == "" {
		return nil, fmt.Errorf("EMAIL_FROM is not set")
	}

	cfg.AnalyticsAPIURL = os.Getenv("ANALYTICS_API_URL")
	cfg.AnalyticsAPIKey = os.Getenv("ANALYTICS_API_KEY")
	cfg.KeywordAPIURL = os.Getenv("KEYWORD_API_URL")
	cfg.KeywordAPIKey = os.Getenv("KEYWORD_API_KEY")
	cfg.TrafficAPIURL = os.Getenv("TRAFFIC_API_URL")
	cfg.TrafficAPIKey = os.Getenv("TRAFFIC_API_KEY")

	cfg.ShareLinkSecret = os.Getenv("SHARE_LINK_SECRET")
	if cfg.ShareLinkSecret == "" {
		return nil, fmt.Errorf("SHARE_LINK_SECRET is not set")
	}
	cfg.DashboardBaseURL = os.Getenv("DASHBOARD_BASE_URL")
	if cfg.DashboardBaseURL == "" {
		return nil, fmt.Errorf("DASHBOARD_BASE_URL is not set")
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	cfg.ScanCronSpec = os.Getenv("SCAN_CRON_SPEC")
	if cfg.ScanCronSpec == "" {
		cfg.ScanCronSpec = "*/5 * * * *" // Default: every 5 minutes
	}

	cfg.RecordTimeout, err = durationEnv("RECORD_TIMEOUT", 2*time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.FailureBackoff, err = durationEnv("FAILURE_BACKOFF", time.Hour)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
