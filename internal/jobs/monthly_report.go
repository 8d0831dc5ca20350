package jobs

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"duit/internal/domain/notification"
	"duit/internal/domain/summary"
	"duit/internal/domain/transaction"
	"duit/internal/domain/user"
	"duit/internal/scheduler"
)

// MonthlyReportJob sends every user a report over the last full calendar
// month. Scheduled at 08:00 on the first day of each month.
type MonthlyReportJob struct {
	users        user.Repository
	transactions transaction.Repository
	dispatcher   *notification.Dispatcher
	pool         *scheduler.WorkerPool
	loc          *time.Location
	now          func() time.Time
}

// NewMonthlyReportJob creates the monthly report job
func NewMonthlyReportJob(
	users user.Repository,
	transactions transaction.Repository,
	dispatcher *notification.Dispatcher,
	pool *scheduler.WorkerPool,
	loc *time.Location,
) *MonthlyReportJob {
	return &MonthlyReportJob{
		users:        users,
		transactions: transactions,
		dispatcher:   dispatcher,
		pool:         pool,
		loc:          loc,
		now:          time.Now,
	}
}

func (j *MonthlyReportJob) Name() string { return "monthly-report" }

func (j *MonthlyReportJob) Run(ctx context.Context) (RunSummary, error) {
	window := summary.PreviousMonth(j.now(), j.loc)
	month := monthName(window.Start.Month())

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
			description: "monthly report",
			tokens:      u.DeviceTokens,
			dispatcher:  j.dispatcher,
			collector:   collector,
			compose: func(ctx context.Context) (notification.Message, bool, error) {
				txs, err := j.transactions.ListByOwnerInWindow(ctx, ownerID, window.Start, window.End)
				if err != nil {
					return notification.Message{}, false, fmt.Errorf("failed to list transactions for user %s: %w", ownerID, err)
				}
				return composeMonthlyReport(summary.ActivityOf(txs), month), true, nil
			},
		})
	}
	j.pool.Process(ctx, batch)

	s := collector.Summary()
	s.Owners = len(users)
	log.Printf("Monthly reports processed for %s: %s", month, s)
	return s, nil
}

func composeMonthlyReport(activity summary.Activity, month string) notification.Message {
	return notification.Message{
		Title: fmt.Sprintf("📈 Laporan Finansial Bulan %s", month),
		Body: fmt.Sprintf("Pemasukan: %s | Pengeluaran: %s | Saldo: %s | Transaksi: %d",
			formatRupiah(activity.Income), formatRupiah(activity.Expense), formatRupiah(activity.Net()), activity.Count),
		Data: map[string]string{
			"type":             "report",
			"action":           "monthly",
			"totalIncome":      activity.Income.String(),
			"totalExpense":     activity.Expense.String(),
			"netIncome":        activity.Net().String(),
			"transactionCount": strconv.Itoa(activity.Count),
			"month":            month,
		},
		Priority: "medium",
	}
}
