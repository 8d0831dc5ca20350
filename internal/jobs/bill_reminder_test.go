package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"duit/internal/domain/bill"
	"duit/internal/domain/notification"
	"duit/internal/domain/user"
)

func TestBillReminderJob_AggregatesPerOwner(t *testing.T) {
	bills := &MockBillRepo{
		ListPendingDueInFunc: func(ctx context.Context, start, end time.Time) ([]*bill.Bill, error) {
			// Triggered on March 15: tomorrow's window.
			if !start.Equal(date(2026, time.March, 16)) || !end.Equal(date(2026, time.March, 17)) {
				t.Errorf("window = [%v, %v), want March 16", start, end)
			}
			return []*bill.Bill{
				{ID: "b1", OwnerID: "user-1", Amount: money(100000), Status: bill.StatusPending},
				{ID: "b2", OwnerID: "user-1", Amount: money(250000), Status: bill.StatusPending},
				{ID: "b3", OwnerID: "user-2", Amount: money(75000), Status: bill.StatusPending},
			}, nil
		},
	}
	users := &MockUserRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*user.User, error) {
			return &user.User{ID: id, DeviceTokens: []string{"tok-" + id}}, nil
		},
	}
	messenger := &RecordingMessenger{}

	j := NewBillReminderJob(bills, users, notification.NewDispatcher(messenger), testPool(), time.UTC)
	j.now = fixedNow(date(2026, time.March, 15))

	s, err := j.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if s.Owners != 2 || s.Sent != 2 {
		t.Errorf("summary = %s, want 2 owners, 2 sent", s)
	}

	msg, ok := messenger.SendTo("tok-user-1")
	if !ok {
		t.Fatal("no notification delivered to user-1")
	}
	if msg.Title != "⏰ 2 Tagihan Jatuh Tempo Besok" {
		t.Errorf("title = %q", msg.Title)
	}
	if msg.Body != "Total: Rp 350.000" {
		t.Errorf("body = %q", msg.Body)
	}
	if msg.Data["billsCount"] != "2" || msg.Data["totalAmount"] != "350000" {
		t.Errorf("data = %v", msg.Data)
	}
	if msg.Data["priority"] != "high" {
		t.Errorf("priority = %q, want high", msg.Data["priority"])
	}

	msg2, ok := messenger.SendTo("tok-user-2")
	if !ok {
		t.Fatal("no notification delivered to user-2")
	}
	if msg2.Title != "⏰ 1 Tagihan Jatuh Tempo Besok" {
		t.Errorf("user-2 title = %q", msg2.Title)
	}
}

func TestBillReminderJob_NoDueBills(t *testing.T) {
	messenger := &RecordingMessenger{}
	j := NewBillReminderJob(&MockBillRepo{}, &MockUserRepo{}, notification.NewDispatcher(messenger), testPool(), time.UTC)
	j.now = fixedNow(date(2026, time.March, 15))

	s, err := j.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if s.Owners != 0 || s.Sent != 0 {
		t.Errorf("summary = %s, want nothing processed", s)
	}
	if len(messenger.Sends()) != 0 {
		t.Errorf("messenger was called %d times, want 0", len(messenger.Sends()))
	}
}

func TestBillReminderJob_OwnerWithoutTokensSkipped(t *testing.T) {
	bills := &MockBillRepo{
		ListPendingDueInFunc: func(ctx context.Context, start, end time.Time) ([]*bill.Bill, error) {
			return []*bill.Bill{
				{ID: "b1", OwnerID: "user-1", Amount: money(100000), Status: bill.StatusPending},
			}, nil
		},
	}
	users := &MockUserRepo{
		GetByIDFunc: func(ctx context.Context, id string) (*user.User, error) {
			return &user.User{ID: id}, nil
		},
	}
	messenger := &RecordingMessenger{}

	j := NewBillReminderJob(bills, users, notification.NewDispatcher(messenger), testPool(), time.UTC)
	j.now = fixedNow(date(2026, time.March, 15))

	s, err := j.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if s.Skipped != 1 || s.Sent != 0 {
		t.Errorf("summary = %s, want 1 skipped", s)
	}
}

func TestBillReminderJob_ListFailure(t *testing.T) {
	bills := &MockBillRepo{
		ListPendingDueInFunc: func(ctx context.Context, start, end time.Time) ([]*bill.Bill, error) {
			return nil, errors.New("firestore unavailable")
		},
	}
	j := NewBillReminderJob(bills, &MockUserRepo{}, notification.NewDispatcher(&RecordingMessenger{}), testPool(), time.UTC)
	j.now = fixedNow(date(2026, time.March, 15))

	if _, err := j.Run(context.Background()); err == nil {
		t.Error("Run() expected error when bill listing fails, got nil")
	}
}
