package summary

import (
	"github.com/shopspring/decimal"

	"duit/internal/domain/bill"
	"duit/internal/domain/transaction"
)

// Totals is a per-owner count and amount aggregate.
type Totals struct {
	Count int
	Total decimal.Decimal
}

// BillsByOwner groups bills by their owner, counting items and summing
// amounts per owner.
func BillsByOwner(bills []*bill.Bill) map[string]Totals {
	grouped := make(map[string]Totals)
	for _, b := range bills {
		t := grouped[b.OwnerID]
		t.Count++
		t.Total = t.Total.Add(b.Amount)
		grouped[b.OwnerID] = t
	}
	return grouped
}

// Activity sums one user's transactions into income and expense totals.
type Activity struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Count   int
}

// Net returns income minus expense.
func (a Activity) Net() decimal.Decimal {
	return a.Income.Sub(a.Expense)
}

// ActivityOf aggregates a transaction list. Count covers every transaction;
// the totals only accumulate the recognized income and expense types.
func ActivityOf(txs []*transaction.Transaction) Activity {
	var a Activity
	for _, tx := range txs {
		switch tx.Type {
		case transaction.TypeIncome:
			a.Income = a.Income.Add(tx.Amount)
		case transaction.TypeExpense:
			a.Expense = a.Expense.Add(tx.Amount)
		}
		a.Count++
	}
	return a
}
