package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"duit/internal/app"
	"duit/internal/jobs"
	"duit/internal/scheduler"
	"duit/internal/shared/config"
	"duit/internal/shared/telemetry"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	loc, err := cfg.Scheduler.Location()
	if err != nil {
		return err
	}

	ctx := context.Background()

	// Initialize telemetry (if enabled); the health/metrics listener runs
	// either way
	if cfg.Telemetry.Enabled {
		shutdownTelemetry, err := telemetry.Init(ctx, telemetry.Config{
			ServiceName:  cfg.Telemetry.ServiceName,
			OTLPEndpoint: cfg.Telemetry.OTLPEndpoint,
			MetricsPort:  cfg.Server.MetricsPort,
		})
		if err != nil {
			log.Printf("Warning: telemetry init failed: %v", err)
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := shutdownTelemetry(shutdownCtx); err != nil {
					log.Printf("Error shutting down telemetry: %v", err)
				}
			}()
		}
	} else {
		go telemetry.ServeMetrics(cfg.Server.MetricsPort)
	}

	// Initialize dependencies
	deps, err := app.NewDependencies(ctx, cfg)
	if err != nil {
		return err
	}
	defer deps.Close()

	// Build schedule entries
	entries, err := buildEntries(cfg, deps)
	if err != nil {
		return err
	}

	sched := scheduler.New(entries, loc, cfg.Scheduler.RunTimeout)
	sched.Start()

	if cfg.Scheduler.RunOnStartup {
		sched.TriggerAll()
	}

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Worker shutting down...")
	sched.Shutdown(30 * time.Second)
	log.Println("Worker stopped")
	return nil
}

func buildEntries(cfg *config.Config, deps *app.Dependencies) ([]scheduler.Entry, error) {
	schedule := []struct {
		runner     jobs.Runner
		at         string
		dayOfMonth int
	}{
		{deps.Recurring, cfg.Jobs.RecurringAt, 0},
		{deps.BudgetAlert, cfg.Jobs.BudgetAlertAt, 0},
		{deps.DailySummary, cfg.Jobs.DailySummaryAt, 0},
		{deps.BillReminder, cfg.Jobs.BillReminderAt, 0},
		{deps.MonthlyReport, cfg.Jobs.MonthlyReportAt, cfg.Jobs.MonthlyReportOnDay},
	}

	entries := make([]scheduler.Entry, 0, len(schedule))
	for _, s := range schedule {
		at, err := scheduler.ParseScheduleTime(s.at)
		if err != nil {
			return nil, err
		}
		entries = append(entries, jobs.AsEntry(s.runner, at, s.dayOfMonth))
	}
	return entries, nil
}
