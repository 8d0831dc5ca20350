package budget

import (
	"context"
	"time"
)

// Repository defines the interface for budget data access.
// The window on PeriodStart is half-open: [start, end).
type Repository interface {
	ListStartingIn(ctx context.Context, start, end time.Time) ([]*Budget, error)
}
