package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server    ServerConfig
	Firestore FirestoreConfig
	Firebase  FirebaseConfig
	Scheduler SchedulerConfig
	Jobs      JobsConfig
	Telemetry TelemetryConfig
}

type ServerConfig struct {
	MetricsPort string
}

type FirestoreConfig struct {
	ProjectID       string
	CredentialsFile string
}

type FirebaseConfig struct {
	CredentialsFile string
}

type SchedulerConfig struct {
	Timezone     string
	WorkerCount  int
	JobDelay     time.Duration
	JobTimeout   time.Duration
	RunTimeout   time.Duration
	RunOnStartup bool
}

// JobsConfig holds the daily trigger times ("HH:MM", evaluated in the
// scheduler timezone) for each automation.
type JobsConfig struct {
	RecurringAt        string
	BudgetAlertAt      string
	DailySummaryAt     string
	BillReminderAt     string
	MonthlyReportAt    string
	MonthlyReportOnDay int
}

type TelemetryConfig struct {
	Enabled      bool
	ServiceName  string
	OTLPEndpoint string
}

func Load() (*Config, error) {

	workerCount, err := strconv.Atoi(getEnv("WORKER_COUNT", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid WORKER_COUNT: %w", err)
	}
	jobDelay, err := time.ParseDuration(getEnv("JOB_DELAY", "100ms"))
	if err != nil {
		return nil, fmt.Errorf("invalid JOB_DELAY: %w", err)
	}
	jobTimeout, err := time.ParseDuration(getEnv("JOB_TIMEOUT", "120s"))
	if err != nil {
		return nil, fmt.Errorf("invalid JOB_TIMEOUT: %w", err)
	}
	runTimeout, err := time.ParseDuration(getEnv("RUN_TIMEOUT", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid RUN_TIMEOUT: %w", err)
	}
	reportDay, err := strconv.Atoi(getEnv("MONTHLY_REPORT_DAY", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid MONTHLY_REPORT_DAY: %w", err)
	}
	if reportDay < 1 || reportDay > 28 {
		return nil, fmt.Errorf("MONTHLY_REPORT_DAY must be between 1 and 28, got %d", reportDay)
	}

	cfg := &Config{
		Server: ServerConfig{
			MetricsPort: getEnv("METRICS_PORT", "9090"),
		},
		Firestore: FirestoreConfig{
			ProjectID:       getEnv("GOOGLE_CLOUD_PROJECT", ""),
			CredentialsFile: getEnv("FIRESTORE_CREDENTIALS_FILE", getEnv("FIREBASE_CREDENTIALS_FILE", "")),
		},
		Firebase: FirebaseConfig{
			CredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", ""),
		},
		Scheduler: SchedulerConfig{
			Timezone:     getEnv("TIMEZONE", "Asia/Jakarta"),
			WorkerCount:  workerCount,
			JobDelay:     jobDelay,
			JobTimeout:   jobTimeout,
			RunTimeout:   runTimeout,
			RunOnStartup: getBoolEnv("RUN_ON_STARTUP", false),
		},
		Jobs: JobsConfig{
			RecurringAt:        getEnv("RECURRING_SCHEDULE", "06:00"),
			BudgetAlertAt:      getEnv("BUDGET_ALERT_SCHEDULE", "07:00"),
			DailySummaryAt:     getEnv("DAILY_SUMMARY_SCHEDULE", "08:00"),
			BillReminderAt:     getEnv("BILL_REMINDER_SCHEDULE", "09:00"),
			MonthlyReportAt:    getEnv("MONTHLY_REPORT_SCHEDULE", "08:00"),
			MonthlyReportOnDay: reportDay,
		},
		Telemetry: TelemetryConfig{
			Enabled:      getBoolEnv("OTEL_ENABLED", false),
			ServiceName:  getEnv("OTEL_SERVICE_NAME", "duit-worker"),
			OTLPEndpoint: getEnv("OTEL_EXPORTER_ENDPOINT", "localhost:4317"),
		},
	}

	// Validate required fields
	if cfg.Firestore.ProjectID == "" {
		return nil, fmt.Errorf("GOOGLE_CLOUD_PROJECT is required")
	}

	return cfg, nil
}

// Location resolves the configured timezone.
func (c *SchedulerConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept: true, false, 1, 0, yes, no (case-insensitive)
	switch strings.ToLower(value) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return defaultValue
	}
}
