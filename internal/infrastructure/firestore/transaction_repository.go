package firestore

import (
	"context"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/shopspring/decimal"
	"google.golang.org/api/iterator"

	"duit/internal/domain/transaction"
)

// TransactionRepository implements transaction.Repository over Firestore
type TransactionRepository struct {
	client *firestore.Client
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(client *firestore.Client) *TransactionRepository {
	return &TransactionRepository{client: client}
}

// The mobile client stores categories on transactions under two names:
// user-entered entries carry a categoryId (which budgets match against),
// while entries created from recurring rules carry only the rule's category
// label. Both are decoded so either kind round-trips intact.
type transactionDoc struct {
	UserID       string    `firestore:"userId"`
	Type         string    `firestore:"type"`
	Amount       float64   `firestore:"amount"`
	Category     string    `firestore:"category"`
	CategoryID   string    `firestore:"categoryId"`
	Account      string    `firestore:"account"`
	Description  string    `firestore:"description"`
	Date         time.Time `firestore:"date"`
	IsRecurring  bool      `firestore:"isRecurring"`
	SourceRuleID string    `firestore:"recurringTransactionId"`
	CreatedAt    time.Time `firestore:"createdAt,serverTimestamp"`
	UpdatedAt    time.Time `firestore:"updatedAt,serverTimestamp"`
}

func (d *transactionDoc) toDomain(id string) (*transaction.Transaction, error) {
	if d.UserID == "" {
		return nil, fmt.Errorf("transaction %s has no owner", id)
	}
	if d.Amount < 0 {
		return nil, fmt.Errorf("transaction %s has negative amount %f", id, d.Amount)
	}

	return &transaction.Transaction{
		ID:           id,
		OwnerID:      d.UserID,
		Type:         d.Type,
		Amount:       decimal.NewFromFloat(d.Amount),
		Category:     d.Category,
		CategoryID:   d.CategoryID,
		Account:      d.Account,
		Description:  d.Description,
		Date:         d.Date,
		SourceRuleID: d.SourceRuleID,
		CreatedAt:    d.CreatedAt,
	}, nil
}

func newTransactionDoc(params transaction.CreateParams) transactionDoc {
	// The stored document schema uses float64 amounts, so the decimal is
	// narrowed here; a lossy conversion only matters beyond 2^53 rupiah.
	amount, _ := params.Amount.Float64()
	return transactionDoc{
		UserID:       params.OwnerID,
		Type:         params.Type,
		Amount:       amount,
		Category:     params.Category,
		CategoryID:   params.CategoryID,
		Account:      params.Account,
		Description:  params.Description,
		Date:         params.Date,
		IsRecurring:  params.SourceRuleID != "",
		SourceRuleID: params.SourceRuleID,
	}
}

// Create writes a new transaction and returns its generated document ID.
func (r *TransactionRepository) Create(ctx context.Context, params transaction.CreateParams) (string, error) {
	if err := params.Validate(); err != nil {
		return "", err
	}

	ref, _, err := r.client.Collection(collectionTransactions).Add(ctx, newTransactionDoc(params))
	if err != nil {
		return "", fmt.Errorf("failed to create transaction: %w", err)
	}
	return ref.ID, nil
}

// ListByOwnerInWindow returns the owner's transactions dated in [start, end).
func (r *TransactionRepository) ListByOwnerInWindow(ctx context.Context, ownerID string, start, end time.Time) ([]*transaction.Transaction, error) {
	q := r.client.Collection(collectionTransactions).
		Where("userId", "==", ownerID).
		Where("date", ">=", start).
		Where("date", "<", end)
	return r.list(ctx, q)
}

// ListExpensesByOwnerInWindow returns the owner's expense transactions dated
// in [start, end).
func (r *TransactionRepository) ListExpensesByOwnerInWindow(ctx context.Context, ownerID string, start, end time.Time) ([]*transaction.Transaction, error) {
	q := r.client.Collection(collectionTransactions).
		Where("userId", "==", ownerID).
		Where("date", ">=", start).
		Where("date", "<", end).
		Where("type", "==", transaction.TypeExpense)
	return r.list(ctx, q)
}

func (r *TransactionRepository) list(ctx context.Context, q firestore.Query) ([]*transaction.Transaction, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	var txs []*transaction.Transaction
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate transactions: %w", err)
		}

		var doc transactionDoc
		if err := snap.DataTo(&doc); err != nil {
			log.Printf("Skipping malformed transaction %s: %v", snap.Ref.ID, err)
			continue
		}
		tx, err := doc.toDomain(snap.Ref.ID)
		if err != nil {
			log.Printf("Skipping transaction: %v", err)
			continue
		}
		txs = append(txs, tx)
	}

	return txs, nil
}
