package config

import (
	"os"
	"testing"
	"time"
)

func setRequiredEnvVars(t *testing.T) {
	t.Helper()
	t.Setenv("GOOGLE_CLOUD_PROJECT", "duit-test")
}

func TestLoad_Success(t *testing.T) {
	setRequiredEnvVars(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Firestore.ProjectID != "duit-test" {
		t.Errorf("Firestore.ProjectID = %q, want %q", cfg.Firestore.ProjectID, "duit-test")
	}
	if cfg.Scheduler.Timezone != "Asia/Jakarta" {
		t.Errorf("Scheduler.Timezone = %q, want %q", cfg.Scheduler.Timezone, "Asia/Jakarta")
	}
	if cfg.Scheduler.WorkerCount != 5 {
		t.Errorf("Scheduler.WorkerCount = %d, want 5", cfg.Scheduler.WorkerCount)
	}
	if cfg.Server.MetricsPort != "9090" {
		t.Errorf("Server.MetricsPort = %q, want %q", cfg.Server.MetricsPort, "9090")
	}
}

func TestLoad_DefaultSchedules(t *testing.T) {
	setRequiredEnvVars(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Jobs.RecurringAt != "06:00" {
		t.Errorf("RecurringAt = %q, want 06:00", cfg.Jobs.RecurringAt)
	}
	if cfg.Jobs.BudgetAlertAt != "07:00" {
		t.Errorf("BudgetAlertAt = %q, want 07:00", cfg.Jobs.BudgetAlertAt)
	}
	if cfg.Jobs.DailySummaryAt != "08:00" {
		t.Errorf("DailySummaryAt = %q, want 08:00", cfg.Jobs.DailySummaryAt)
	}
	if cfg.Jobs.BillReminderAt != "09:00" {
		t.Errorf("BillReminderAt = %q, want 09:00", cfg.Jobs.BillReminderAt)
	}
	if cfg.Jobs.MonthlyReportAt != "08:00" || cfg.Jobs.MonthlyReportOnDay != 1 {
		t.Errorf("monthly report schedule = %q day %d, want 08:00 day 1",
			cfg.Jobs.MonthlyReportAt, cfg.Jobs.MonthlyReportOnDay)
	}
}

func TestLoad_MissingProjectID(t *testing.T) {
	t.Setenv("GOOGLE_CLOUD_PROJECT", "")
	os.Unsetenv("GOOGLE_CLOUD_PROJECT")

	_, err := Load()
	if err == nil {
		t.Error("Load() expected error for missing GOOGLE_CLOUD_PROJECT, got nil")
	}
}

func TestLoad_InvalidWorkerCount(t *testing.T) {
	setRequiredEnvVars(t)
	t.Setenv("WORKER_COUNT", "not-a-number")

	_, err := Load()
	if err == nil {
		t.Error("Load() expected error for invalid WORKER_COUNT, got nil")
	}
}

func TestLoad_InvalidJobDelay(t *testing.T) {
	setRequiredEnvVars(t)
	t.Setenv("JOB_DELAY", "fast")

	_, err := Load()
	if err == nil {
		t.Error("Load() expected error for invalid JOB_DELAY, got nil")
	}
}

func TestLoad_MonthlyReportDayOutOfRange(t *testing.T) {
	tests := []string{"0", "29", "31", "-1"}
	for _, day := range tests {
		t.Run(day, func(t *testing.T) {
			setRequiredEnvVars(t)
			t.Setenv("MONTHLY_REPORT_DAY", day)

			_, err := Load()
			if err == nil {
				t.Errorf("Load() expected error for MONTHLY_REPORT_DAY=%s, got nil", day)
			}
		})
	}
}

func TestLoad_SchedulerOverrides(t *testing.T) {
	setRequiredEnvVars(t)
	t.Setenv("WORKER_COUNT", "10")
	t.Setenv("JOB_DELAY", "250ms")
	t.Setenv("RUN_TIMEOUT", "10m")
	t.Setenv("RUN_ON_STARTUP", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Scheduler.WorkerCount != 10 {
		t.Errorf("WorkerCount = %d, want 10", cfg.Scheduler.WorkerCount)
	}
	if cfg.Scheduler.JobDelay != 250*time.Millisecond {
		t.Errorf("JobDelay = %v, want 250ms", cfg.Scheduler.JobDelay)
	}
	if cfg.Scheduler.RunTimeout != 10*time.Minute {
		t.Errorf("RunTimeout = %v, want 10m", cfg.Scheduler.RunTimeout)
	}
	if !cfg.Scheduler.RunOnStartup {
		t.Error("RunOnStartup should be true")
	}
}

func TestSchedulerConfig_Location(t *testing.T) {
	c := SchedulerConfig{Timezone: "Asia/Jakarta"}
	loc, err := c.Location()
	if err != nil {
		t.Fatalf("Location() failed: %v", err)
	}
	if loc.String() != "Asia/Jakarta" {
		t.Errorf("Location() = %v, want Asia/Jakarta", loc)
	}

	c.Timezone = "Not/AZone"
	if _, err := c.Location(); err == nil {
		t.Error("Location() expected error for unknown timezone, got nil")
	}
}

func TestGetBoolEnv(t *testing.T) {
	tests := []struct {
		value    string
		defVal   bool
		expected bool
	}{
		{"true", false, true},
		{"TRUE", false, true},
		{"1", false, true},
		{"yes", false, true},
		{"false", true, false},
		{"0", true, false},
		{"no", true, false},
		{"invalid", true, true},   // returns default
		{"invalid", false, false}, // returns default
		{"", true, true},          // empty returns default
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			key := "TEST_BOOL_ENV"
			if tt.value == "" {
				os.Unsetenv(key)
			} else {
				t.Setenv(key, tt.value)
			}

			got := getBoolEnv(key, tt.defVal)
			if got != tt.expected {
				t.Errorf("getBoolEnv(%q, %v) = %v, want %v", tt.value, tt.defVal, got, tt.expected)
			}
		})
	}
}
