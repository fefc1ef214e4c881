package txlog

import (
	"context"
	"errors"
	"testing"
	"time"
)

func appendAt(t *testing.T, log Log, chatID string, ts time.Time, meta map[string]string) string {
	t.Helper()
	id, err := log.Append(context.Background(), Transaction{
		ChatID:      chatID,
		Type:        TypeDebit,
		Amount:      100,
		Description: "Withdrawal Requested",
		Status:      StatusPending,
		Timestamp:   ts,
		Metadata:    meta,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	return id
}

func TestListNewestFirstWithPagination(t *testing.T) {
	log := NewMemoryLog()
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		appendAt(t, log, "chat-1", base.Add(time.Duration(i)*time.Minute), nil)
	}
	appendAt(t, log, "chat-2", base, nil)

	entries, total, err := log.List(context.Background(), "chat-1", 2, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 5 {
		t.Fatalf("expected total 5, got %d", total)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if !entries[0].Timestamp.Equal(base.Add(4 * time.Minute)) {
		t.Fatalf("expected most recent entry first, got %v", entries[0].Timestamp)
	}
	if !entries[1].Timestamp.Equal(base.Add(3 * time.Minute)) {
		t.Fatalf("expected second most recent entry, got %v", entries[1].Timestamp)
	}
}

func TestListOffsetBeyondTotal(t *testing.T) {
	log := NewMemoryLog()
	appendAt(t, log, "chat-1", time.Now().UTC(), nil)

	entries, total, err := log.List(context.Background(), "chat-1", 10, 5)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(entries) != 0 {
		t.Fatalf("expected empty page with total 1, got %d entries total %d", len(entries), total)
	}
}

func TestResolveWithdrawalOnlyOnce(t *testing.T) {
	log := NewMemoryLog()
	ctx := context.Background()

	appendAt(t, log, "chat-1", time.Now().UTC(), map[string]string{MetaWithdrawalID: "wd-1"})

	if err := log.ResolveWithdrawal(ctx, "wd-1", StatusSuccess); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	entries, _, err := log.List(ctx, "chat-1", 10, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if entries[0].Status != StatusSuccess {
		t.Fatalf("expected success status, got %s", entries[0].Status)
	}

	if err := log.ResolveWithdrawal(ctx, "wd-1", StatusFailed); !errors.Is(err, ErrNotResolved) {
		t.Fatalf("second resolve must not match, got %v", err)
	}
	entries, _, _ = log.List(ctx, "chat-1", 10, 0)
	if entries[0].Status != StatusSuccess {
		t.Fatalf("status must transition exactly once, got %s", entries[0].Status)
	}
}

func TestResolveUnknownCorrelation(t *testing.T) {
	log := NewMemoryLog()
	if err := log.ResolveWithdrawal(context.Background(), "missing", StatusSuccess); !errors.Is(err, ErrNotResolved) {
		t.Fatalf("expected ErrNotResolved, got %v", err)
	}
}
