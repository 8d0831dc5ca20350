package bill

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill status values. Status transitions happen in external flows; this core
// only reads pending bills.
const (
	StatusPending = "pending"
	StatusPaid    = "paid"
	StatusOverdue = "overdue"
)

var validStatuses = map[string]struct{}{
	StatusPending: {},
	StatusPaid:    {},
	StatusOverdue: {},
}

// Bill represents a payable item with a due date
type Bill struct {
	ID      string
	OwnerID string
	Amount  decimal.Decimal
	DueDate time.Time
	Status  string
}

// IsValidStatus checks if the provided status is valid
func IsValidStatus(s string) bool {
	_, ok := validStatuses[s]
	return ok
}
