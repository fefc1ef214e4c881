package withdrawal

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/rupee-pay/rupee_pay/internal/money"
	"github.com/rupee-pay/rupee_pay/internal/notification"
	"github.com/rupee-pay/rupee_pay/internal/txlog"
	"github.com/rupee-pay/rupee_pay/internal/wallet"
)

const (
	estimatedWindow      = "2-4 hours"
	requestedDescription = "Withdrawal Requested"
	defaultRejectReason  = "Rejected by admin"
	suggestedReason      = "Invalid UPI ID"
)

// Service owns the withdrawal lifecycle: it debits the wallet at initiation,
// records the pending transaction and resolves the request on an operator
// decision.
type Service struct {
	repo           Repository
	wallets        wallet.Store
	log            txlog.Log
	sink           notification.Sink
	fee            int64
	resolveBase    string
	operatorChatID string
}

// NewService constructs a withdrawal service. fee is the fixed charge in
// paise; resolveBase is the URL the operator action links point at.
func NewService(repo Repository, wallets wallet.Store, log txlog.Log, sink notification.Sink, fee int64, resolveBase, operatorChatID string) *Service {
	return &Service{
		repo:           repo,
		wallets:        wallets,
		log:            log,
		sink:           sink,
		fee:            fee,
		resolveBase:    resolveBase,
		operatorChatID: operatorChatID,
	}
}

// InitiateInput captures a payout request. Amount is paise.
type InitiateInput struct {
	ChatID string
	Amount int64
	VPA    string
}

// InitiateResult reports the accepted request back to the caller.
type InitiateResult struct {
	ID            string
	Amount        int64
	Fee           int64
	NetAmount     int64
	Status        string
	EstimatedTime string
}

// Initiate validates the request, debits the full amount up front and creates
// the pending withdrawal with its correlated transaction entry. The up-front
// debit stops a user double-spending the same balance across simultaneous
// requests; the fee is only realized when the payout succeeds.
func (s *Service) Initiate(ctx context.Context, input InitiateInput) (InitiateResult, error) {
	if input.ChatID == "" {
		return InitiateResult{}, fmt.Errorf("chat id is required")
	}
	if input.VPA == "" {
		return InitiateResult{}, fmt.Errorf("destination vpa is required")
	}
	if input.Amount <= s.fee {
		return InitiateResult{}, ErrInvalidAmount
	}

	if err := s.wallets.Debit(ctx, input.ChatID, input.Amount); err != nil {
		return InitiateResult{}, err
	}

	w := Withdrawal{
		ID:          uuid.NewString(),
		ChatID:      input.ChatID,
		Amount:      input.Amount,
		Fee:         s.fee,
		NetAmount:   input.Amount - s.fee,
		VPA:         input.VPA,
		Status:      StatusPending,
		InitiatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, w); err != nil {
		// Undo the debit so a storage failure cannot strand funds.
		if cerr := s.wallets.Credit(ctx, input.ChatID, input.Amount); cerr != nil {
			return InitiateResult{}, fmt.Errorf("create withdrawal: %w (refund failed: %v)", err, cerr)
		}
		return InitiateResult{}, fmt.Errorf("create withdrawal: %w", err)
	}

	if _, err := s.log.Append(ctx, txlog.Transaction{
		ChatID:      w.ChatID,
		Type:        txlog.TypeDebit,
		Amount:      w.Amount,
		Description: requestedDescription,
		Status:      txlog.StatusPending,
		Metadata:    map[string]string{txlog.MetaWithdrawalID: w.ID},
	}); err != nil {
		return InitiateResult{}, fmt.Errorf("append transaction: %w", err)
	}

	s.sink.Notify(w.ChatID, fmt.Sprintf(
		"Withdrawal of ₹%s has been requested. It will be credited to your UPI %s soon. (Txn id: withdrawal %s)",
		money.Format(w.Amount), w.VPA, w.ID))

	s.sink.NotifyWithActions(s.operatorChatID, fmt.Sprintf(
		"🛑 <b>New Withdrawal Request</b>\n\nUser: <code>%s</code>\nAmount: ₹%s\nVPA: %s\nWithdraw ID: <code>%s</code>",
		w.ChatID, money.Format(w.Amount), w.VPA, w.ID),
		[]notification.Action{
			{Label: "✅ Approve", URL: s.resolveLink(w.ID, StatusCompleted, "transaction_id", fmt.Sprintf("UPI_TXN_%d", time.Now().UnixMilli()))},
			{Label: "❌ Reject", URL: s.resolveLink(w.ID, StatusRejected, "failure_reason", suggestedReason)},
		})

	return InitiateResult{
		ID:            w.ID,
		Amount:        w.Amount,
		Fee:           w.Fee,
		NetAmount:     w.NetAmount,
		Status:        w.Status,
		EstimatedTime: estimatedWindow,
	}, nil
}

// ResolveInput carries the operator decision for one withdrawal.
type ResolveInput struct {
	ID            string
	Status        string
	TransactionID string
	FailureReason string
}

// Resolve applies a terminal outcome. The repository's conditional update is
// the idempotency guard: a second resolution finds no pending row and fails
// with ErrInvalidState without touching wallet or transaction state.
func (s *Service) Resolve(ctx context.Context, input ResolveInput) (Withdrawal, error) {
	if input.ID == "" {
		return Withdrawal{}, fmt.Errorf("withdrawal id is required")
	}

	switch input.Status {
	case StatusCompleted:
		return s.complete(ctx, input)
	case StatusRejected:
		return s.reject(ctx, input)
	default:
		return Withdrawal{}, fmt.Errorf("unsupported resolution status %q", input.Status)
	}
}

func (s *Service) complete(ctx context.Context, input ResolveInput) (Withdrawal, error) {
	transactionID := input.TransactionID
	if transactionID == "" {
		transactionID = fmt.Sprintf("TXN_%d", time.Now().UnixMilli())
	}

	w, err := s.repo.Complete(ctx, input.ID, transactionID, time.Now().UTC())
	if err != nil {
		return Withdrawal{}, err
	}

	// The debit happened at initiation; the balance stays untouched here.
	if err := s.log.ResolveWithdrawal(ctx, w.ID, txlog.StatusSuccess); err != nil && err != txlog.ErrNotResolved {
		return Withdrawal{}, err
	}

	s.sink.Notify(w.ChatID, fmt.Sprintf(
		"Withdrawal of ₹%s has been completed.\nAmount credited to your UPI %s.\nTxn id: %s",
		money.Format(w.Amount), w.VPA, w.TransactionID))

	return w, nil
}

func (s *Service) reject(ctx context.Context, input ResolveInput) (Withdrawal, error) {
	reason := input.FailureReason
	if reason == "" {
		reason = defaultRejectReason
	}

	w, err := s.repo.Reject(ctx, input.ID, reason)
	if err != nil {
		return Withdrawal{}, err
	}

	// Refund the full debited amount, not the net: the fee is only ever
	// realized on success.
	if err := s.wallets.Credit(ctx, w.ChatID, w.Amount); err != nil {
		return Withdrawal{}, fmt.Errorf("refund wallet: %w", err)
	}

	if err := s.log.ResolveWithdrawal(ctx, w.ID, txlog.StatusFailed); err != nil && err != txlog.ErrNotResolved {
		return Withdrawal{}, err
	}

	s.sink.Notify(w.ChatID, fmt.Sprintf(
		"Withdrawal of ₹%s was rejected.\nReason: %s\nAmount has been refunded to your wallet.",
		money.Format(w.Amount), w.FailureReason))

	return w, nil
}

// History pages a user's withdrawals newest-first.
func (s *Service) History(ctx context.Context, chatID string, limit, offset int) ([]Withdrawal, int, error) {
	return s.repo.ListByChat(ctx, chatID, limit, offset)
}

func (s *Service) resolveLink(id, status, extraKey, extraValue string) string {
	q := url.Values{}
	q.Set("id", id)
	q.Set("status", status)
	q.Set(extraKey, extraValue)
	return s.resolveBase + "?" + q.Encode()
}
