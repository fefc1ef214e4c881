package withdrawal

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/rupee-pay/rupee_pay/internal/notification"
	"github.com/rupee-pay/rupee_pay/internal/txlog"
	"github.com/rupee-pay/rupee_pay/internal/wallet"
)

type captured struct {
	chatID  string
	text    string
	actions []notification.Action
}

type testSink struct {
	mu   sync.Mutex
	sent []captured
}

func (s *testSink) Notify(chatID, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, captured{chatID: chatID, text: text})
}

func (s *testSink) NotifyWithActions(chatID, text string, actions []notification.Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, captured{chatID: chatID, text: text, actions: actions})
}

type fixture struct {
	wallets wallet.Store
	log     txlog.Log
	sink    *testSink
	svc     *Service
}

func newFixture(t *testing.T, seedBalance int64) *fixture {
	t.Helper()
	wallets := wallet.NewMemoryStore("INR")
	if seedBalance > 0 {
		if err := wallets.Credit(context.Background(), "chat-1", seedBalance); err != nil {
			t.Fatalf("seed balance: %v", err)
		}
	}
	log := txlog.NewMemoryLog()
	sink := &testSink{}
	svc := NewService(NewMemoryRepository(), wallets, log, sink, 300,
		"http://localhost:8080/api/v1/withdrawals/resolve", "operator-chat")
	return &fixture{wallets: wallets, log: log, sink: sink, svc: svc}
}

func (f *fixture) balance(t *testing.T) int64 {
	t.Helper()
	w, err := f.wallets.Ensure(context.Background(), "chat-1")
	if err != nil {
		t.Fatalf("ensure wallet: %v", err)
	}
	return w.Balance
}

func TestInitiateDebitsUpFront(t *testing.T) {
	f := newFixture(t, 10_000)
	ctx := context.Background()

	result, err := f.svc.Initiate(ctx, InitiateInput{ChatID: "chat-1", Amount: 2_000, VPA: "user@upi"})
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}

	if result.Status != StatusPending {
		t.Fatalf("expected pending status, got %s", result.Status)
	}
	if result.Fee != 300 || result.NetAmount != 1_700 {
		t.Fatalf("unexpected fee/net: %d/%d", result.Fee, result.NetAmount)
	}
	if got := f.balance(t); got != 8_000 {
		t.Fatalf("expected balance 8000 after debit, got %d", got)
	}

	entries, total, err := f.log.List(ctx, "chat-1", 10, 0)
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	if total != 1 || entries[0].Type != txlog.TypeDebit || entries[0].Status != txlog.StatusPending {
		t.Fatalf("expected one pending debit entry, got %+v", entries)
	}
	if entries[0].Metadata[txlog.MetaWithdrawalID] != result.ID {
		t.Fatalf("transaction not correlated with withdrawal")
	}
}

func TestInitiateNotifiesUserAndOperator(t *testing.T) {
	f := newFixture(t, 10_000)

	result, err := f.svc.Initiate(context.Background(), InitiateInput{ChatID: "chat-1", Amount: 2_000, VPA: "user@upi"})
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}

	if len(f.sink.sent) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(f.sink.sent))
	}
	operator := f.sink.sent[1]
	if operator.chatID != "operator-chat" || len(operator.actions) != 2 {
		t.Fatalf("expected operator message with approve/reject actions, got %+v", operator)
	}
	for _, action := range operator.actions {
		if !strings.Contains(action.URL, "id="+result.ID) {
			t.Fatalf("action link must carry the withdrawal id: %s", action.URL)
		}
	}
	if !strings.Contains(operator.actions[0].URL, "status=completed") ||
		!strings.Contains(operator.actions[1].URL, "status=rejected") {
		t.Fatalf("actions must be mutually exclusive resolutions: %+v", operator.actions)
	}
}

func TestInitiateInsufficientFunds(t *testing.T) {
	f := newFixture(t, 1_000)
	ctx := context.Background()

	_, err := f.svc.Initiate(ctx, InitiateInput{ChatID: "chat-1", Amount: 2_000, VPA: "user@upi"})
	if !errors.Is(err, wallet.ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}

	if got := f.balance(t); got != 1_000 {
		t.Fatalf("failed initiation must not change balance, got %d", got)
	}
	if _, total, _ := f.log.List(ctx, "chat-1", 10, 0); total != 0 {
		t.Fatalf("failed initiation must not create transactions, got %d", total)
	}
	if _, total, _ := f.svc.History(ctx, "chat-1", 10, 0); total != 0 {
		t.Fatalf("failed initiation must not create withdrawals, got %d", total)
	}
}

func TestInitiateAmountMustExceedFee(t *testing.T) {
	f := newFixture(t, 10_000)

	_, err := f.svc.Initiate(context.Background(), InitiateInput{ChatID: "chat-1", Amount: 300, VPA: "user@upi"})
	if !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected invalid amount, got %v", err)
	}
	if got := f.balance(t); got != 10_000 {
		t.Fatalf("balance must stay untouched, got %d", got)
	}
}

func TestResolveCompleted(t *testing.T) {
	f := newFixture(t, 10_000)
	ctx := context.Background()

	result, err := f.svc.Initiate(ctx, InitiateInput{ChatID: "chat-1", Amount: 2_000, VPA: "user@upi"})
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}

	w, err := f.svc.Resolve(ctx, ResolveInput{ID: result.ID, Status: StatusCompleted, TransactionID: "TXN_1"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if w.Status != StatusCompleted || w.TransactionID != "TXN_1" || w.CompletedAt == nil {
		t.Fatalf("unexpected resolved withdrawal: %+v", w)
	}
	// Completion must not touch the balance again.
	if got := f.balance(t); got != 8_000 {
		t.Fatalf("expected balance 8000, got %d", got)
	}

	entries, _, _ := f.log.List(ctx, "chat-1", 10, 0)
	if entries[0].Status != txlog.StatusSuccess {
		t.Fatalf("expected linked transaction success, got %s", entries[0].Status)
	}
}

func TestResolveRejectedRefundsFullAmount(t *testing.T) {
	f := newFixture(t, 10_000)
	ctx := context.Background()

	result, err := f.svc.Initiate(ctx, InitiateInput{ChatID: "chat-1", Amount: 2_000, VPA: "user@upi"})
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}

	w, err := f.svc.Resolve(ctx, ResolveInput{ID: result.ID, Status: StatusRejected, FailureReason: "bad destination"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if w.Status != StatusRejected || w.FailureReason != "bad destination" {
		t.Fatalf("unexpected rejected withdrawal: %+v", w)
	}
	// The full debited amount comes back, not the net.
	if got := f.balance(t); got != 10_000 {
		t.Fatalf("expected refund to restore balance 10000, got %d", got)
	}

	entries, _, _ := f.log.List(ctx, "chat-1", 10, 0)
	if entries[0].Status != txlog.StatusFailed {
		t.Fatalf("expected linked transaction failed, got %s", entries[0].Status)
	}
}

func TestResolveTwiceIsNoOp(t *testing.T) {
	f := newFixture(t, 10_000)
	ctx := context.Background()

	result, err := f.svc.Initiate(ctx, InitiateInput{ChatID: "chat-1", Amount: 2_000, VPA: "user@upi"})
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}

	if _, err := f.svc.Resolve(ctx, ResolveInput{ID: result.ID, Status: StatusCompleted}); err != nil {
		t.Fatalf("first resolve: %v", err)
	}

	if _, err := f.svc.Resolve(ctx, ResolveInput{ID: result.ID, Status: StatusRejected}); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("second resolve must surface invalid state, got %v", err)
	}

	// The rejected branch never ran: no refund happened.
	if got := f.balance(t); got != 8_000 {
		t.Fatalf("expected balance 8000 after no-op second resolve, got %d", got)
	}
}

func TestResolveUnknownWithdrawal(t *testing.T) {
	f := newFixture(t, 0)

	_, err := f.svc.Resolve(context.Background(), ResolveInput{ID: "2c6d0d8e-54a5-4f1c-a14f-16ae4a5b47a2", Status: StatusCompleted})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestHistoryNewestFirst(t *testing.T) {
	f := newFixture(t, 50_000)
	ctx := context.Background()

	var last string
	for i := 0; i < 3; i++ {
		result, err := f.svc.Initiate(ctx, InitiateInput{ChatID: "chat-1", Amount: 1_000, VPA: "user@upi"})
		if err != nil {
			t.Fatalf("initiate %d: %v", i, err)
		}
		last = result.ID
	}

	withdrawals, total, err := f.svc.History(ctx, "chat-1", 2, 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if total != 3 || len(withdrawals) != 2 {
		t.Fatalf("expected page of 2 with total 3, got %d/%d", len(withdrawals), total)
	}
	if withdrawals[0].ID != last {
		t.Fatalf("expected most recent withdrawal first")
	}
}
