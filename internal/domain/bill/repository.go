package bill

import (
	"context"
	"time"
)

// Repository defines the interface for bill data access.
// The due-date window is half-open: [start, end).
type Repository interface {
	ListPendingDueIn(ctx context.Context, start, end time.Time) ([]*Bill, error)
}
