package jobs

import (
	"context"
	"time"

	"duit/internal/domain/recurring"
	"duit/internal/domain/summary"
)

// RecurringJob materializes due recurring rules into ledger transactions.
// Scheduled daily at 06:00.
type RecurringJob struct {
	service *recurring.Service
	loc     *time.Location
	now     func() time.Time
}

// NewRecurringJob creates the recurring materialization job
func NewRecurringJob(service *recurring.Service, loc *time.Location) *RecurringJob {
	return &RecurringJob{service: service, loc: loc, now: time.Now}
}

func (j *RecurringJob) Name() string { return "recurring-materialization" }

func (j *RecurringJob) Run(ctx context.Context) (RunSummary, error) {
	today := summary.Midnight(j.now(), j.loc)

	result, err := j.service.ProcessDue(ctx, today)
	if err != nil {
		return RunSummary{}, err
	}

	return RunSummary{Created: result.Created, Errors: result.Errors}, nil
}
