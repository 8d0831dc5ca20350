package transaction

import (
	"context"
	"time"
)

// Repository defines the interface for transaction data access.
// Window queries are half-open: a record dated exactly at start is included,
// a record dated exactly at end is excluded.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (string, error)
	ListByOwnerInWindow(ctx context.Context, ownerID string, start, end time.Time) ([]*Transaction, error)
	ListExpensesByOwnerInWindow(ctx context.Context, ownerID string, start, end time.Time) ([]*Transaction, error)
}
