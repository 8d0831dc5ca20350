package budget

import (
	"testing"

	"github.com/shopspring/decimal"

	"duit/internal/domain/transaction"
)

func money(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func expense(categoryID string, amount int64) *transaction.Transaction {
	return &transaction.Transaction{
		OwnerID:    "user-1",
		Type:       transaction.TypeExpense,
		Amount:     money(amount),
		CategoryID: categoryID,
	}
}

func TestUtilization(t *testing.T) {
	tests := []struct {
		name     string
		spent    int64
		limit    int64
		expected float64
	}{
		{"under budget", 500000, 1000000, 50},
		{"at warning threshold", 800000, 1000000, 80},
		{"at limit", 1000000, 1000000, 100},
		{"over limit", 1500000, 1000000, 150},
		{"zero limit", 500000, 0, 0},
		{"no spend", 0, 1000000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Utilization(money(tt.spent), money(tt.limit))
			if got != tt.expected {
				t.Errorf("Utilization(%d, %d) = %v, want %v", tt.spent, tt.limit, got, tt.expected)
			}
		})
	}
}

func TestUtilization_NegativeLimit(t *testing.T) {
	if got := Utilization(money(100), money(-1)); got != 0 {
		t.Errorf("Utilization with negative limit = %v, want 0", got)
	}
}

func TestEvaluate_Classification(t *testing.T) {
	budgets := []*Budget{
		{CategoryID: "food", CategoryName: "Makanan", Amount: money(1000000)},
		{CategoryID: "transport", CategoryName: "Transportasi", Amount: money(500000)},
		{CategoryID: "fun", CategoryName: "Hiburan", Amount: money(300000)},
	}
	expenses := []*transaction.Transaction{
		expense("food", 1200000),    // 120% -> exceeded
		expense("transport", 475000), // 95% -> warning
		expense("fun", 100000),       // 33% -> fine
	}

	alert := Evaluate(budgets, expenses)

	if len(alert.Exceeded) != 1 || alert.Exceeded[0].CategoryID != "food" {
		t.Errorf("Exceeded = %+v, want exactly [food]", alert.Exceeded)
	}
	if len(alert.Warnings) != 1 || alert.Warnings[0].CategoryID != "transport" {
		t.Errorf("Warnings = %+v, want exactly [transport]", alert.Warnings)
	}
	if alert.Severity() != SeverityUrgent {
		t.Errorf("Severity() = %q, want %q", alert.Severity(), SeverityUrgent)
	}
	if got := alert.Driving(); len(got) != 1 || got[0].CategoryID != "food" {
		t.Errorf("Driving() = %+v, want the exceeded set", got)
	}
}

func TestEvaluate_Thresholds(t *testing.T) {
	tests := []struct {
		name     string
		spent    int64
		exceeded bool
		warning  bool
	}{
		{"just under warning", 799999, false, false},
		{"exactly 80 percent", 800000, false, true},
		{"just under limit", 999999, false, true},
		{"exactly 100 percent", 1000000, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			budgets := []*Budget{{CategoryID: "food", Amount: money(1000000)}}
			alert := Evaluate(budgets, []*transaction.Transaction{expense("food", tt.spent)})

			if got := len(alert.Exceeded) == 1; got != tt.exceeded {
				t.Errorf("exceeded = %v, want %v", got, tt.exceeded)
			}
			if got := len(alert.Warnings) == 1; got != tt.warning {
				t.Errorf("warning = %v, want %v", got, tt.warning)
			}
		})
	}
}

func TestEvaluate_SumsMultipleExpensesPerCategory(t *testing.T) {
	budgets := []*Budget{{CategoryID: "food", Amount: money(1000000)}}
	expenses := []*transaction.Transaction{
		expense("food", 400000),
		expense("food", 450000),
	}

	alert := Evaluate(budgets, expenses)
	if len(alert.Warnings) != 1 {
		t.Fatalf("Warnings = %+v, want one entry", alert.Warnings)
	}
	if !alert.Warnings[0].Spent.Equal(money(850000)) {
		t.Errorf("Spent = %s, want 850000", alert.Warnings[0].Spent)
	}
}

func TestEvaluate_IgnoresIncomeTransactions(t *testing.T) {
	budgets := []*Budget{{CategoryID: "food", Amount: money(1000000)}}
	income := &transaction.Transaction{
		Type:       transaction.TypeIncome,
		Amount:     money(2000000),
		CategoryID: "food",
	}

	alert := Evaluate(budgets, []*transaction.Transaction{income})
	if !alert.Empty() {
		t.Errorf("alert = %+v, want empty when only income exists", alert)
	}
}

func TestEvaluate_IgnoresEntriesWithoutCategoryID(t *testing.T) {
	budgets := []*Budget{{CategoryID: "food", Amount: money(1000000)}}
	materialized := &transaction.Transaction{
		Type:     transaction.TypeExpense,
		Amount:   money(2000000),
		Category: "food", // label only, as written by the recurring materializer
	}

	alert := Evaluate(budgets, []*transaction.Transaction{materialized})
	if !alert.Empty() {
		t.Errorf("alert = %+v, want empty when expenses carry only a category label", alert)
	}
}

func TestEvaluate_NoBudgets(t *testing.T) {
	alert := Evaluate(nil, []*transaction.Transaction{expense("food", 100000)})
	if !alert.Empty() {
		t.Errorf("alert = %+v, want empty with no budgets", alert)
	}
	if alert.Severity() != "" {
		t.Errorf("Severity() = %q, want empty string", alert.Severity())
	}
}

func TestGroupByOwner(t *testing.T) {
	budgets := []*Budget{
		{ID: "b1", OwnerID: "user-1"},
		{ID: "b2", OwnerID: "user-2"},
		{ID: "b3", OwnerID: "user-1"},
	}

	grouped := GroupByOwner(budgets)
	if len(grouped) != 2 {
		t.Fatalf("grouped into %d owners, want 2", len(grouped))
	}
	if len(grouped["user-1"]) != 2 {
		t.Errorf("user-1 has %d budgets, want 2", len(grouped["user-1"]))
	}
	if len(grouped["user-2"]) != 1 {
		t.Errorf("user-2 has %d budgets, want 1", len(grouped["user-2"]))
	}
}
