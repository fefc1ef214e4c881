package wallet

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestEnsureCreatesZeroBalance(t *testing.T) {
	store := NewMemoryStore("INR")
	ctx := context.Background()

	w, err := store.Ensure(ctx, "chat-1")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if w.Balance != 0 || w.Currency != "INR" {
		t.Fatalf("unexpected wallet: %+v", w)
	}
}

func TestCreditDebitSequence(t *testing.T) {
	store := NewMemoryStore("INR")
	ctx := context.Background()

	credits := []int64{500, 1_200, 300}
	debits := []int64{400, 600}

	for _, amount := range credits {
		if err := store.Credit(ctx, "chat-1", amount); err != nil {
			t.Fatalf("credit %d: %v", amount, err)
		}
	}
	for _, amount := range debits {
		if err := store.Debit(ctx, "chat-1", amount); err != nil {
			t.Fatalf("debit %d: %v", amount, err)
		}
	}

	w, err := store.Ensure(ctx, "chat-1")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if w.Balance != 1_000 {
		t.Fatalf("expected balance 1000, got %d", w.Balance)
	}
}

func TestDebitInsufficientFunds(t *testing.T) {
	store := NewMemoryStore("INR")
	ctx := context.Background()

	if err := store.Credit(ctx, "chat-1", 100); err != nil {
		t.Fatalf("credit: %v", err)
	}

	if err := store.Debit(ctx, "chat-1", 101); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}

	w, _ := store.Ensure(ctx, "chat-1")
	if w.Balance != 100 {
		t.Fatalf("failed debit must not change balance, got %d", w.Balance)
	}
}

func TestDebitUnknownWallet(t *testing.T) {
	store := NewMemoryStore("INR")

	if err := store.Debit(context.Background(), "nobody", 50); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}
}

func TestMutationsRejectNonPositiveAmounts(t *testing.T) {
	store := NewMemoryStore("INR")
	ctx := context.Background()

	if err := store.Credit(ctx, "chat-1", 0); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected invalid amount for zero credit, got %v", err)
	}
	if err := store.Debit(ctx, "chat-1", -5); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected invalid amount for negative debit, got %v", err)
	}
}

func TestConcurrentMutationsKeepBalanceConsistent(t *testing.T) {
	store := NewMemoryStore("INR")
	ctx := context.Background()

	if err := store.Credit(ctx, "chat-1", 10_000); err != nil {
		t.Fatalf("seed credit: %v", err)
	}

	const workers = 20
	var wg sync.WaitGroup
	wg.Add(workers * 2)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_ = store.Credit(ctx, "chat-1", 100)
		}()
		go func() {
			defer wg.Done()
			_ = store.Debit(ctx, "chat-1", 100)
		}()
	}
	wg.Wait()

	w, err := store.Ensure(ctx, "chat-1")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	// Every debit is matched by a credit, so the seed amount must survive.
	if w.Balance != 10_000 {
		t.Fatalf("expected balance 10000 after paired mutations, got %d", w.Balance)
	}
	if w.Balance < 0 {
		t.Fatalf("balance must never be negative")
	}
}
