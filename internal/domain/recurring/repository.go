package recurring

import (
	"context"
	"time"
)

// Repository defines the interface for recurring rule data access
type Repository interface {
	ListActive(ctx context.Context) ([]*Rule, error)

	// AdvanceSchedule moves a rule's next due date forward and stamps the
	// time of the last materialization.
	AdvanceSchedule(ctx context.Context, id string, nextDue time.Time) error
}
