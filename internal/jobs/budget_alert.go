package jobs

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"duit/internal/domain/budget"
	"duit/internal/domain/notification"
	"duit/internal/domain/summary"
	"duit/internal/domain/transaction"
	"duit/internal/domain/user"
	"duit/internal/scheduler"
)

// BudgetAlertJob checks every user's current-month budgets against their
// expenses and notifies users whose budgets are near or over the limit.
// Scheduled daily at 07:00.
type BudgetAlertJob struct {
	budgets      budget.Repository
	transactions transaction.Repository
	users        user.Repository
	dispatcher   *notification.Dispatcher
	pool         *scheduler.WorkerPool
	loc          *time.Location
	now          func() time.Time
}

// NewBudgetAlertJob creates the budget alert job
func NewBudgetAlertJob(
	budgets budget.Repository,
	transactions transaction.Repository,
	users user.Repository,
	dispatcher *notification.Dispatcher,
	pool *scheduler.WorkerPool,
	loc *time.Location,
) *BudgetAlertJob {
	return &BudgetAlertJob{
		budgets:      budgets,
		transactions: transactions,
		users:        users,
		dispatcher:   dispatcher,
		pool:         pool,
		loc:          loc,
		now:          time.Now,
	}
}

func (j *BudgetAlertJob) Name() string { return "budget-alerts" }

func (j *BudgetAlertJob) Run(ctx context.Context) (RunSummary, error) {
	month := summary.CurrentMonth(j.now(), j.loc)

	budgets, err := j.budgets.ListStartingIn(ctx, month.Start, month.End)
	if err != nil {
		return RunSummary{}, fmt.Errorf("failed to list budgets: %w", err)
	}

	byOwner := budget.GroupByOwner(budgets)
	collector := &Collector{}

	batch := make([]scheduler.Job, 0, len(byOwner))
	for ownerID, owned := range byOwner {
		batch = append(batch, j.ownerJob(ownerID, owned, month, collector))
	}
	j.pool.Process(ctx, batch)

	s := collector.Summary()
	s.Owners = len(byOwner)
	log.Printf("Budget alerts processed: %s", s)
	return s, nil
}

func (j *BudgetAlertJob) ownerJob(ownerID string, owned []*budget.Budget, month summary.Window, collector *Collector) scheduler.Job {
	return &notifyJob{
		ownerID:     ownerID,
		description: "budget alert",
		users:       j.users,
		dispatcher:  j.dispatcher,
		collector:   collector,
		compose: func(ctx context.Context) (notification.Message, bool, error) {
			expenses, err := j.transactions.ListExpensesByOwnerInWindow(ctx, ownerID, month.Start, month.End)
			if err != nil {
				return notification.Message{}, false, fmt.Errorf("failed to list expenses for user %s: %w", ownerID, err)
			}

			alert := budget.Evaluate(owned, expenses)
			if alert.Empty() {
				return notification.Message{}, false, nil
			}
			return composeBudgetAlert(alert), true, nil
		},
	}
}

func composeBudgetAlert(alert budget.Alert) notification.Message {
	driving := alert.Driving()
	parts := make([]string, len(driving))
	for i, st := range driving {
		parts[i] = fmt.Sprintf("%s: %.1f%%", st.CategoryName, st.Utilization)
	}

	title := fmt.Sprintf("⚠️ %d Budget Mendekati Limit", len(alert.Warnings))
	action := "warning"
	if len(alert.Exceeded) > 0 {
		title = fmt.Sprintf("🚨 %d Budget Melebihi Limit!", len(alert.Exceeded))
		action = "exceeded"
	}

	return notification.Message{
		Title: title,
		Body:  strings.Join(parts, ", "),
		Data: map[string]string{
			"type":          "budget",
			"action":        action,
			"exceededCount": strconv.Itoa(len(alert.Exceeded)),
			"warningCount":  strconv.Itoa(len(alert.Warnings)),
		},
		Priority: alert.Severity(),
	}
}
