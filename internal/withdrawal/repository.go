package withdrawal

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates the withdrawal id does not exist.
	ErrNotFound = errors.New("withdrawal not found")

	// ErrInvalidState indicates a transition was attempted on a withdrawal
	// that is not pending. Double resolution surfaces this and is a no-op.
	ErrInvalidState = errors.New("withdrawal already processed")

	// ErrInvalidAmount indicates the requested amount does not exceed the fee.
	ErrInvalidAmount = errors.New("amount must exceed the withdrawal fee")
)

// Repository persists withdrawals. Complete and Reject must apply the state
// transition as a conditional update on status='pending' so that concurrent
// or retried resolutions take effect at most once.
type Repository interface {
	Create(ctx context.Context, w Withdrawal) error
	Get(ctx context.Context, id string) (Withdrawal, error)
	// Complete transitions pending -> completed, stamping the completion
	// time and external transaction id.
	Complete(ctx context.Context, id, transactionID string, at time.Time) (Withdrawal, error)
	// Reject transitions pending -> rejected, recording the failure reason.
	Reject(ctx context.Context, id, reason string) (Withdrawal, error)
	// ListByChat pages a user's withdrawals newest-first by initiation time.
	ListByChat(ctx context.Context, chatID string, limit, offset int) ([]Withdrawal, int, error)
}
