package firestore

import (
	"context"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/shopspring/decimal"
	"google.golang.org/api/iterator"

	"duit/internal/domain/recurring"
)

// RecurringRepository implements recurring.Repository over Firestore
type RecurringRepository struct {
	client *firestore.Client
}

// NewRecurringRepository creates a new recurring rule repository
func NewRecurringRepository(client *firestore.Client) *RecurringRepository {
	return &RecurringRepository{client: client}
}

type recurringDoc struct {
	UserID        string    `firestore:"userId"`
	Type          string    `firestore:"type"`
	Amount        float64   `firestore:"amount"`
	Category      string    `firestore:"category"`
	Account       string    `firestore:"account"`
	Description   string    `firestore:"description"`
	Frequency     string    `firestore:"frequency"`
	NextDueDate   time.Time `firestore:"nextDueDate"`
	IsActive      bool      `firestore:"isActive"`
	LastCreatedAt time.Time `firestore:"lastCreatedAt"`
}

func (d *recurringDoc) toDomain(id string) (*recurring.Rule, error) {
	if d.UserID == "" {
		return nil, fmt.Errorf("recurring rule %s has no owner", id)
	}
	if d.NextDueDate.IsZero() {
		return nil, fmt.Errorf("recurring rule %s has no next due date", id)
	}
	if d.Amount < 0 {
		return nil, fmt.Errorf("recurring rule %s has negative amount %f", id, d.Amount)
	}

	return &recurring.Rule{
		ID:              id,
		OwnerID:         d.UserID,
		Type:            d.Type,
		Amount:          decimal.NewFromFloat(d.Amount),
		Category:        d.Category,
		Account:         d.Account,
		Description:     d.Description,
		Frequency:       recurring.ParseFrequency(d.Frequency),
		NextDueDate:     d.NextDueDate,
		IsActive:        d.IsActive,
		LastGeneratedAt: d.LastCreatedAt,
	}, nil
}

// ListActive returns every active recurring rule. Malformed documents are
// skipped with a log line rather than failing the whole listing.
func (r *RecurringRepository) ListActive(ctx context.Context) ([]*recurring.Rule, error) {
	iter := r.client.Collection(collectionRecurring).
		Where("isActive", "==", true).
		Documents(ctx)
	defer iter.Stop()

	var rules []*recurring.Rule
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate recurring rules: %w", err)
		}

		var doc recurringDoc
		if err := snap.DataTo(&doc); err != nil {
			log.Printf("Skipping malformed recurring rule %s: %v", snap.Ref.ID, err)
			continue
		}
		rule, err := doc.toDomain(snap.Ref.ID)
		if err != nil {
			log.Printf("Skipping recurring rule: %v", err)
			continue
		}
		rules = append(rules, rule)
	}

	return rules, nil
}

// AdvanceSchedule moves the rule's next due date forward and stamps the
// materialization time server-side.
func (r *RecurringRepository) AdvanceSchedule(ctx context.Context, id string, nextDue time.Time) error {
	_, err := r.client.Collection(collectionRecurring).Doc(id).Update(ctx, []firestore.Update{
		{Path: "nextDueDate", Value: nextDue},
		{Path: "lastCreatedAt", Value: firestore.ServerTimestamp},
	})
	if err != nil {
		return fmt.Errorf("failed to advance recurring rule %s: %w", id, err)
	}
	return nil
}
