// Package app wires repositories, services and jobs into a running
// application. Shared by the worker and admin binaries.
package app

import (
	"context"
	"log"

	cloudfirestore "cloud.google.com/go/firestore"

	"duit/internal/domain/notification"
	"duit/internal/domain/recurring"
	"duit/internal/infrastructure/firebase"
	"duit/internal/infrastructure/firestore"
	"duit/internal/jobs"
	"duit/internal/scheduler"
	"duit/internal/shared/config"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	Store *cloudfirestore.Client

	// Jobs, in daily trigger order
	Recurring     *jobs.RecurringJob
	BudgetAlert   *jobs.BudgetAlertJob
	DailySummary  *jobs.DailySummaryJob
	BillReminder  *jobs.BillReminderJob
	MonthlyReport *jobs.MonthlyReportJob
}

// NewDependencies initializes all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	loc, err := cfg.Scheduler.Location()
	if err != nil {
		return nil, err
	}

	store, err := firestore.NewClient(ctx, cfg.Firestore.ProjectID, cfg.Firestore.CredentialsFile)
	if err != nil {
		return nil, err
	}
	log.Printf("Connected to Firestore (project=%s)", cfg.Firestore.ProjectID)

	// Initialize repositories
	userRepo := firestore.NewUserRepository(store)
	transactionRepo := firestore.NewTransactionRepository(store)
	recurringRepo := firestore.NewRecurringRepository(store)
	budgetRepo := firestore.NewBudgetRepository(store)
	billRepo := firestore.NewBillRepository(store)

	// Initialize push delivery
	messenger, err := firebase.NewClient(ctx, cfg.Firebase.CredentialsFile)
	if err != nil {
		store.Close()
		return nil, err
	}
	dispatcher := notification.NewDispatcher(messenger)

	// Per-owner fan-out pool shared by all notification jobs
	pool := scheduler.NewWorkerPool(cfg.Scheduler.WorkerCount, cfg.Scheduler.JobDelay, cfg.Scheduler.JobTimeout)

	materializer := recurring.NewService(recurringRepo, transactionRepo)

	return &Dependencies{
		Store:         store,
		Recurring:     jobs.NewRecurringJob(materializer, loc),
		BudgetAlert:   jobs.NewBudgetAlertJob(budgetRepo, transactionRepo, userRepo, dispatcher, pool, loc),
		DailySummary:  jobs.NewDailySummaryJob(userRepo, transactionRepo, dispatcher, pool, loc),
		BillReminder:  jobs.NewBillReminderJob(billRepo, userRepo, dispatcher, pool, loc),
		MonthlyReport: jobs.NewMonthlyReportJob(userRepo, transactionRepo, dispatcher, pool, loc),
	}, nil
}

// Runners returns every job as a Runner, in daily trigger order.
func (d *Dependencies) Runners() []jobs.Runner {
	return []jobs.Runner{d.Recurring, d.BudgetAlert, d.DailySummary, d.BillReminder, d.MonthlyReport}
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.Store != nil {
		d.Store.Close()
	}
}
