package firestore

import (
	"context"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/shopspring/decimal"
	"google.golang.org/api/iterator"

	"duit/internal/domain/budget"
)

// BudgetRepository implements budget.Repository over Firestore
type BudgetRepository struct {
	client *firestore.Client
}

// NewBudgetRepository creates a new budget repository
func NewBudgetRepository(client *firestore.Client) *BudgetRepository {
	return &BudgetRepository{client: client}
}

type budgetDoc struct {
	UserID       string    `firestore:"userId"`
	CategoryID   string    `firestore:"categoryId"`
	CategoryName string    `firestore:"categoryName"`
	Amount       float64   `firestore:"amount"`
	StartDate    time.Time `firestore:"startDate"`
}

func (d *budgetDoc) toDomain(id string) (*budget.Budget, error) {
	if d.UserID == "" {
		return nil, fmt.Errorf("budget %s has no owner", id)
	}
	if d.Amount < 0 {
		return nil, fmt.Errorf("budget %s has negative amount %f", id, d.Amount)
	}

	name := d.CategoryName
	if name == "" {
		name = "Unknown"
	}

	return &budget.Budget{
		ID:           id,
		OwnerID:      d.UserID,
		CategoryID:   d.CategoryID,
		CategoryName: name,
		Amount:       decimal.NewFromFloat(d.Amount),
		PeriodStart:  d.StartDate,
	}, nil
}

// ListStartingIn returns every budget whose period starts in [start, end).
func (r *BudgetRepository) ListStartingIn(ctx context.Context, start, end time.Time) ([]*budget.Budget, error) {
	iter := r.client.Collection(collectionBudgets).
		Where("startDate", ">=", start).
		Where("startDate", "<", end).
		Documents(ctx)
	defer iter.Stop()

	var budgets []*budget.Budget
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate budgets: %w", err)
		}

		var doc budgetDoc
		if err := snap.DataTo(&doc); err != nil {
			log.Printf("Skipping malformed budget %s: %v", snap.Ref.ID, err)
			continue
		}
		b, err := doc.toDomain(snap.Ref.ID)
		if err != nil {
			log.Printf("Skipping budget: %v", err)
			continue
		}
		budgets = append(budgets, b)
	}

	return budgets, nil
}
