package budget

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a per-category spending limit for one period. Read-only to this
// core; budgets are created and edited by external flows.
type Budget struct {
	ID           string
	OwnerID      string
	CategoryID   string
	CategoryName string
	Amount       decimal.Decimal
	PeriodStart  time.Time
}

// GroupByOwner buckets budgets by their owning user.
func GroupByOwner(budgets []*Budget) map[string][]*Budget {
	grouped := make(map[string][]*Budget)
	for _, b := range budgets {
		grouped[b.OwnerID] = append(grouped[b.OwnerID], b)
	}
	return grouped
}
