package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"duit/internal/domain/bill"
	"duit/internal/domain/budget"
	"duit/internal/domain/notification"
	"duit/internal/domain/transaction"
	"duit/internal/domain/user"
	"duit/internal/scheduler"
)

func money(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// fixedNow pins a job's clock for deterministic windows.
func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// testPool returns a pool suitable for tests: small, no delay.
func testPool() *scheduler.WorkerPool {
	return scheduler.NewWorkerPool(2, 0, 5*time.Second)
}

// MockUserRepo implements user.Repository for testing
type MockUserRepo struct {
	GetByIDFunc func(ctx context.Context, id string) (*user.User, error)
	ListAllFunc func(ctx context.Context) ([]*user.User, error)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, user.ErrUserNotFound
}
func (m *MockUserRepo) ListAll(ctx context.Context) ([]*user.User, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return nil, nil
}

// MockTransactionRepo implements transaction.Repository for testing
type MockTransactionRepo struct {
	CreateFunc       func(ctx context.Context, params transaction.CreateParams) (string, error)
	ListFunc         func(ctx context.Context, ownerID string, start, end time.Time) ([]*transaction.Transaction, error)
	ListExpensesFunc func(ctx context.Context, ownerID string, start, end time.Time) ([]*transaction.Transaction, error)
}

func (m *MockTransactionRepo) Create(ctx context.Context, params transaction.CreateParams) (string, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return "tx-1", nil
}
func (m *MockTransactionRepo) ListByOwnerInWindow(ctx context.Context, ownerID string, start, end time.Time) ([]*transaction.Transaction, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, ownerID, start, end)
	}
	return nil, nil
}
func (m *MockTransactionRepo) ListExpensesByOwnerInWindow(ctx context.Context, ownerID string, start, end time.Time) ([]*transaction.Transaction, error) {
	if m.ListExpensesFunc != nil {
		return m.ListExpensesFunc(ctx, ownerID, start, end)
	}
	return nil, nil
}

// MockBudgetRepo implements budget.Repository for testing
type MockBudgetRepo struct {
	ListStartingInFunc func(ctx context.Context, start, end time.Time) ([]*budget.Budget, error)
}

func (m *MockBudgetRepo) ListStartingIn(ctx context.Context, start, end time.Time) ([]*budget.Budget, error) {
	if m.ListStartingInFunc != nil {
		return m.ListStartingInFunc(ctx, start, end)
	}
	return nil, nil
}

// MockBillRepo implements bill.Repository for testing
type MockBillRepo struct {
	ListPendingDueInFunc func(ctx context.Context, start, end time.Time) ([]*bill.Bill, error)
}

func (m *MockBillRepo) ListPendingDueIn(ctx context.Context, start, end time.Time) ([]*bill.Bill, error) {
	if m.ListPendingDueInFunc != nil {
		return m.ListPendingDueInFunc(ctx, start, end)
	}
	return nil, nil
}

// RecordingMessenger implements notification.Messenger and records every
// multicast, safe for concurrent workers.
type RecordingMessenger struct {
	mu    sync.Mutex
	sends []recordedSend

	// SendFunc overrides the default always-succeed behavior.
	SendFunc func(ctx context.Context, tokens []string, msg notification.Message) (*notification.DispatchResult, error)
}

type recordedSend struct {
	tokens []string
	msg    notification.Message
}

func (m *RecordingMessenger) SendMulticast(ctx context.Context, tokens []string, msg notification.Message) (*notification.DispatchResult, error) {
	if m.SendFunc != nil {
		result, err := m.SendFunc(ctx, tokens, msg)
		if err != nil {
			return nil, err
		}
		m.record(tokens, msg)
		return result, nil
	}
	m.record(tokens, msg)
	return &notification.DispatchResult{SuccessCount: len(tokens)}, nil
}

func (m *RecordingMessenger) record(tokens []string, msg notification.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sends = append(m.sends, recordedSend{tokens: tokens, msg: msg})
}

func (m *RecordingMessenger) Sends() []recordedSend {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]recordedSend(nil), m.sends...)
}

// SendTo returns the recorded message delivered to a token, if any.
func (m *RecordingMessenger) SendTo(token string) (notification.Message, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sends {
		for _, t := range s.tokens {
			if t == token {
				return s.msg, true
			}
		}
	}
	return notification.Message{}, false
}
