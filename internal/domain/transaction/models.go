package transaction

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

var validTypes = map[string]struct{}{
	TypeIncome:  {},
	TypeExpense: {},
}

// Domain errors
var (
	ErrInvalidType    = errors.New("transaction type must be 'income' or 'expense'")
	ErrNegativeAmount = errors.New("transaction amount must not be negative")
)

// Transaction represents a single ledger entry. Entries materialized from a
// recurring rule carry SourceRuleID linking back to the originating rule;
// this core never edits or deletes a transaction once created.
type Transaction struct {
	ID           string
	OwnerID      string
	Type         string // TypeIncome or TypeExpense
	Amount       decimal.Decimal
	Category     string // free-form label; the only category field on materialized entries
	CategoryID   string // set on user-entered entries, matched against budget categories
	Account      string
	Description  string
	Date         time.Time
	SourceRuleID string // empty for manually entered transactions
	CreatedAt    time.Time
}

// CreateParams contains parameters for creating a new transaction
type CreateParams struct {
	OwnerID      string
	Type         string
	Amount       decimal.Decimal
	Category     string
	CategoryID   string
	Account      string
	Description  string
	Date         time.Time
	SourceRuleID string
}

// Validate validates the create parameters
func (p CreateParams) Validate() error {
	if p.OwnerID == "" {
		return errors.New("owner ID is required")
	}
	if !IsValidType(p.Type) {
		return ErrInvalidType
	}
	if p.Amount.Sign() < 0 {
		return ErrNegativeAmount
	}
	if p.Date.IsZero() {
		return errors.New("transaction date is required")
	}
	return nil
}

// IsValidType checks if the provided transaction type is valid
func IsValidType(t string) bool {
	_, ok := validTypes[t]
	return ok
}
