package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"duit/internal/domain/notification"
	"duit/internal/domain/summary"
	"duit/internal/domain/transaction"
	"duit/internal/domain/user"
	"duit/internal/scheduler"
)

// DailySummaryJob sends every user their income/expense totals for the
// current day. Users with no transactions still receive a zero summary.
// Scheduled daily at 08:00.
type DailySummaryJob struct {
	users        user.Repository
	transactions transaction.Repository
	dispatcher   *notification.Dispatcher
	pool         *scheduler.WorkerPool
	loc          *time.Location
	now          func() time.Time
}

// NewDailySummaryJob creates the daily summary job
func NewDailySummaryJob(
	users user.Repository,
	transactions transaction.Repository,
	dispatcher *notification.Dispatcher,
	pool *scheduler.WorkerPool,
	loc *time.Location,
) *DailySummaryJob {
	return &DailySummaryJob{
		users:        users,
		transactions: transactions,
		dispatcher:   dispatcher,
		pool:         pool,
		loc:          loc,
		now:          time.Now,
	}
}

func (j *DailySummaryJob) Name() string { return "daily-summary" }

func (j *DailySummaryJob) Run(ctx context.Context) (RunSummary, error) {
	window := summary.Today(j.now(), j.loc)

	users, err := j.users.ListAll(ctx)
	if err != nil {
		return RunSummary{}, fmt.Errorf("failed to list users: %w", err)
	}

	collector := &Collector{}
	batch := make([]scheduler.Job, 0, len(users))
	for _, u := range users {
		ownerID := u.ID
		batch = append(batch, &notifyJob{
			ownerID:     ownerID,
			description: "daily summary",
			tokens:      u.DeviceTokens,
			dispatcher:  j.dispatcher,
			collector:   collector,
			compose: func(ctx context.Context) (notification.Message, bool, error) {
				txs, err := j.transactions.ListByOwnerInWindow(ctx, ownerID, window.Start, window.End)
				if err != nil {
					return notification.Message{}, false, fmt.Errorf("failed to list transactions for user %s: %w", ownerID, err)
				}
				return composeDailySummary(summary.ActivityOf(txs)), true, nil
			},
		})
	}
	j.pool.Process(ctx, batch)

	s := collector.Summary()
	s.Owners = len(users)
	log.Printf("Daily summaries processed: %s", s)
	return s, nil
}

func composeDailySummary(activity summary.Activity) notification.Message {
	return notification.Message{
		Title: "📊 Ringkasan Finansial Hari Ini",
		Body: fmt.Sprintf("Pemasukan: %s | Pengeluaran: %s | Saldo: %s",
			formatRupiah(activity.Income), formatRupiah(activity.Expense), formatRupiah(activity.Net())),
		Data: map[string]string{
			"type":         "daily_summary",
			"action":       "view",
			"totalIncome":  activity.Income.String(),
			"totalExpense": activity.Expense.String(),
			"netIncome":    activity.Net().String(),
		},
		Priority: "medium",
	}
}
