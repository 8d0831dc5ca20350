package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

// Firestore collection names, kept in sync with the mobile client.
const (
	collectionUsers        = "users"
	collectionTransactions = "transactions"
	collectionBudgets      = "budgets"
	collectionBills        = "bills"
	collectionRecurring    = "recurring_transactions"
)

// NewClient creates the Firestore client backing the ledger repositories.
// With an empty credentialsFile the client falls back to application
// default credentials.
func NewClient(ctx context.Context, projectID, credentialsFile string) (*firestore.Client, error) {
	if projectID == "" {
		return nil, fmt.Errorf("firestore project ID is required")
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return client, nil
}
