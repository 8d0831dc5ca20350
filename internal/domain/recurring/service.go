package recurring

import (
	"context"
	"fmt"
	"log"
	"time"

	"duit/internal/domain/transaction"
)

// Summary reports the outcome of one materialization run.
type Summary struct {
	Created int
	Errors  int
}

// Service materializes due recurring rules into ledger transactions.
type Service struct {
	rules        Repository
	transactions transaction.Repository
}

// NewService creates a new recurring rule service
func NewService(rules Repository, transactions transaction.Repository) *Service {
	return &Service{rules: rules, transactions: transactions}
}

// ProcessDue creates exactly one transaction for every active rule whose next
// due date is on or before today, then advances each rule by one period from
// its previous due date. Rules more than one period behind are not
// back-filled. A failure on one rule is counted and never stops the rest.
func (s *Service) ProcessDue(ctx context.Context, today time.Time) (Summary, error) {
	rules, err := s.rules.ListActive(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to list active recurring rules: %w", err)
	}

	var summary Summary
	for _, rule := range rules {
		if !rule.DueOn(today) {
			continue
		}

		if err := s.materialize(ctx, rule, today); err != nil {
			summary.Errors++
			log.Printf("Error materializing recurring rule %s: %v", rule.ID, err)
			continue
		}

		summary.Created++
		log.Printf("Created transaction from recurring rule: %s", rule.ID)
	}

	log.Printf("Recurring rules processed: %d created, %d errors", summary.Created, summary.Errors)
	return summary, nil
}

func (s *Service) materialize(ctx context.Context, rule *Rule, today time.Time) error {
	_, err := s.transactions.Create(ctx, transaction.CreateParams{
		OwnerID:      rule.OwnerID,
		Type:         rule.Type,
		Amount:       rule.Amount,
		Category:     rule.Category,
		Account:      rule.Account,
		Description:  rule.Description,
		Date:         today,
		SourceRuleID: rule.ID,
	})
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	// Advance from the previous due date, not from today, so the original
	// due-day anchor survives skipped runs.
	next := rule.Frequency.NextAfter(rule.NextDueDate)
	if err := s.rules.AdvanceSchedule(ctx, rule.ID, next); err != nil {
		// The transaction exists but the rule still looks due, so the next
		// run may create a duplicate. Accepted at-least-once behavior.
		return fmt.Errorf("failed to advance rule schedule: %w", err)
	}

	return nil
}
