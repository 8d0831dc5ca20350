package recurring

import (
	"time"

	"github.com/shopspring/decimal"
)

// Frequency is the closed set of recurrence periods a rule can carry.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// ParseFrequency maps a raw frequency value to its enum. Unknown values fall
// back to monthly instead of failing the rule.
func ParseFrequency(s string) Frequency {
	switch f := Frequency(s); f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return f
	default:
		return FrequencyMonthly
	}
}

// NextAfter returns the due date exactly one period after prev. Monthly and
// yearly advancement preserves the day-of-month anchor where the calendar
// permits, clamping to the last day of the target month otherwise
// (Jan 31 + 1 month = Feb 28, or Feb 29 in leap years).
func (f Frequency) NextAfter(prev time.Time) time.Time {
	switch f {
	case FrequencyDaily:
		return prev.AddDate(0, 0, 1)
	case FrequencyWeekly:
		return prev.AddDate(0, 0, 7)
	case FrequencyYearly:
		return addMonthsClamped(prev, 12)
	default:
		// Monthly, and the explicit fallback for anything unrecognized.
		return addMonthsClamped(prev, 1)
	}
}

// addMonthsClamped adds n calendar months without day overflow: the stdlib
// AddDate would roll Jan 31 + 1 month over to Mar 3.
func addMonthsClamped(t time.Time, n int) time.Time {
	firstOfTarget := time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	day := t.Day()
	if last := firstOfTarget.AddDate(0, 1, -1).Day(); day > last {
		day = last
	}
	h, m, s := t.Clock()
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, h, m, s, t.Nanosecond(), t.Location())
}

// Rule is a template describing a periodically repeating financial
// transaction. This core only ever moves NextDueDate forward; the financial
// fields are edited by external flows.
type Rule struct {
	ID              string
	OwnerID         string
	Type            string // transaction.TypeIncome or transaction.TypeExpense
	Amount          decimal.Decimal
	Category        string
	Account         string
	Description     string
	Frequency       Frequency
	NextDueDate     time.Time
	IsActive        bool
	LastGeneratedAt time.Time // zero if the rule has never been materialized
}

// DueOn reports whether the rule is due on the given day (date comparison,
// inclusive).
func (r *Rule) DueOn(today time.Time) bool {
	return !r.NextDueDate.After(today)
}
