package jobs

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"duit/internal/domain/bill"
	"duit/internal/domain/notification"
	"duit/internal/domain/summary"
	"duit/internal/domain/user"
	"duit/internal/scheduler"
)

// BillReminderJob reminds users about pending bills due tomorrow.
// Scheduled daily at 09:00.
type BillReminderJob struct {
	bills      bill.Repository
	users      user.Repository
	dispatcher *notification.Dispatcher
	pool       *scheduler.WorkerPool
	loc        *time.Location
	now        func() time.Time
}

// NewBillReminderJob creates the bill reminder job
func NewBillReminderJob(
	bills bill.Repository,
	users user.Repository,
	dispatcher *notification.Dispatcher,
	pool *scheduler.WorkerPool,
	loc *time.Location,
) *BillReminderJob {
	return &BillReminderJob{
		bills:      bills,
		users:      users,
		dispatcher: dispatcher,
		pool:       pool,
		loc:        loc,
		now:        time.Now,
	}
}

func (j *BillReminderJob) Name() string { return "bill-reminders" }

func (j *BillReminderJob) Run(ctx context.Context) (RunSummary, error) {
	window := summary.Tomorrow(j.now(), j.loc)

	due, err := j.bills.ListPendingDueIn(ctx, window.Start, window.End)
	if err != nil {
		return RunSummary{}, fmt.Errorf("failed to list due bills: %w", err)
	}

	byOwner := summary.BillsByOwner(due)
	collector := &Collector{}

	batch := make([]scheduler.Job, 0, len(byOwner))
	for ownerID, totals := range byOwner {
		msg := composeBillReminder(totals)
		batch = append(batch, &notifyJob{
			ownerID:     ownerID,
			description: "bill reminder",
			users:       j.users,
			dispatcher:  j.dispatcher,
			collector:   collector,
			compose: func(ctx context.Context) (notification.Message, bool, error) {
				return msg, true, nil
			},
		})
	}
	j.pool.Process(ctx, batch)

	s := collector.Summary()
	s.Owners = len(byOwner)
	log.Printf("Bill reminders processed: %s", s)
	return s, nil
}

func composeBillReminder(totals summary.Totals) notification.Message {
	return notification.Message{
		Title: fmt.Sprintf("⏰ %d Tagihan Jatuh Tempo Besok", totals.Count),
		Body:  "Total: " + formatRupiah(totals.Total),
		Data: map[string]string{
			"type":        "bill",
			"action":      "due_soon",
			"billsCount":  strconv.Itoa(totals.Count),
			"totalAmount": totals.Total.String(),
		},
		Priority: "high",
	}
}
