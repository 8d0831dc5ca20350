package firestore

import (
	"context"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/shopspring/decimal"
	"google.golang.org/api/iterator"

	"duit/internal/domain/bill"
)

// BillRepository implements bill.Repository over Firestore
type BillRepository struct {
	client *firestore.Client
}

// NewBillRepository creates a new bill repository
func NewBillRepository(client *firestore.Client) *BillRepository {
	return &BillRepository{client: client}
}

type billDoc struct {
	UserID  string    `firestore:"userId"`
	Amount  float64   `firestore:"amount"`
	DueDate time.Time `firestore:"dueDate"`
	Status  string    `firestore:"status"`
}

func (d *billDoc) toDomain(id string) (*bill.Bill, error) {
	if d.UserID == "" {
		return nil, fmt.Errorf("bill %s has no owner", id)
	}
	if d.Amount < 0 {
		return nil, fmt.Errorf("bill %s has negative amount %f", id, d.Amount)
	}

	return &bill.Bill{
		ID:      id,
		OwnerID: d.UserID,
		Amount:  decimal.NewFromFloat(d.Amount),
		DueDate: d.DueDate,
		Status:  d.Status,
	}, nil
}

// ListPendingDueIn returns pending bills due in [start, end).
func (r *BillRepository) ListPendingDueIn(ctx context.Context, start, end time.Time) ([]*bill.Bill, error) {
	iter := r.client.Collection(collectionBills).
		Where("status", "==", bill.StatusPending).
		Where("dueDate", ">=", start).
		Where("dueDate", "<", end).
		Documents(ctx)
	defer iter.Stop()

	var bills []*bill.Bill
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate bills: %w", err)
		}

		var doc billDoc
		if err := snap.DataTo(&doc); err != nil {
			log.Printf("Skipping malformed bill %s: %v", snap.Ref.ID, err)
			continue
		}
		b, err := doc.toDomain(snap.Ref.ID)
		if err != nil {
			log.Printf("Skipping bill: %v", err)
			continue
		}
		bills = append(bills, b)
	}

	return bills, nil
}
