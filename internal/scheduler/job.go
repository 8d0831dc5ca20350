package scheduler

import "context"

// Job is one owner's unit of work within a scheduled run. Jobs in a batch
// are independent: one job's failure must never prevent the others from
// executing.
type Job interface {
	// Execute runs the job. The context carries the per-job timeout and the
	// run's deadline.
	Execute(ctx context.Context) error

	// OwnerID returns the user this job processes, for logging and tracing.
	OwnerID() string

	// Description returns a human-readable description of the job.
	Description() string
}
