package budget

import (
	"github.com/shopspring/decimal"

	"duit/internal/domain/transaction"
)

// Classification thresholds, in percent of the budget limit.
const (
	warningThreshold  = 80.0
	exceededThreshold = 100.0
)

// Severity values carried in notification payloads.
const (
	SeverityUrgent = "urgent"
	SeverityHigh   = "high"
)

// Status describes one budget's spend against its limit.
type Status struct {
	CategoryID   string
	CategoryName string
	Limit        decimal.Decimal
	Spent        decimal.Decimal
	Utilization  float64 // percent
}

// Alert is a user's overall budget alert for one run: the union of exceeded
// and warning budgets.
type Alert struct {
	Exceeded []Status
	Warnings []Status
}

// Empty reports whether the user has nothing to be alerted about.
func (a Alert) Empty() bool {
	return len(a.Exceeded) == 0 && len(a.Warnings) == 0
}

// Severity returns the overall alert severity. Any exceeded budget outranks
// all warnings; an empty alert has no severity.
func (a Alert) Severity() string {
	switch {
	case len(a.Exceeded) > 0:
		return SeverityUrgent
	case len(a.Warnings) > 0:
		return SeverityHigh
	default:
		return ""
	}
}

// Driving returns the statuses that drive the alert message: the exceeded
// set when present, otherwise the warnings.
func (a Alert) Driving() []Status {
	if len(a.Exceeded) > 0 {
		return a.Exceeded
	}
	return a.Warnings
}

// Utilization returns spend as a percentage of the limit. A non-positive
// limit yields 0 so the result is never NaN or infinite.
func Utilization(spent, limit decimal.Decimal) float64 {
	if limit.Sign() <= 0 {
		return 0
	}
	pct, _ := spent.Mul(decimal.NewFromInt(100)).Div(limit).Float64()
	return pct
}

// Evaluate classifies each budget against the owner's expense transactions
// for the same period. Utilization of 100% or more is exceeded, 80% to just
// under 100% is a warning, anything below raises no alert for that budget.
// Expenses are matched to budgets by CategoryID; entries without one, such
// as those materialized from recurring rules, never count toward a budget.
func Evaluate(budgets []*Budget, expenses []*transaction.Transaction) Alert {
	spentByCategory := make(map[string]decimal.Decimal)
	for _, tx := range expenses {
		if tx.Type != transaction.TypeExpense {
			continue
		}
		spentByCategory[tx.CategoryID] = spentByCategory[tx.CategoryID].Add(tx.Amount)
	}

	var alert Alert
	for _, b := range budgets {
		status := Status{
			CategoryID:   b.CategoryID,
			CategoryName: b.CategoryName,
			Limit:        b.Amount,
			Spent:        spentByCategory[b.CategoryID],
		}
		status.Utilization = Utilization(status.Spent, status.Limit)

		switch {
		case status.Utilization >= exceededThreshold:
			alert.Exceeded = append(alert.Exceeded, status)
		case status.Utilization >= warningThreshold:
			alert.Warnings = append(alert.Warnings, status)
		}
	}

	return alert
}
