// Package txlog is the append-only record of balance-affecting events.
// Entries are immutable once written, except for a single status transition
// on entries correlated with a withdrawal.
package txlog

import (
	"context"
	"errors"
	"time"
)

const (
	TypeCredit = "credit"
	TypeDebit  = "debit"

	StatusPending = "pending"
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Metadata keys used to correlate entries with the event that produced them.
const (
	MetaWithdrawalID = "withdrawal_id"
	MetaReferredUser = "referred_user"
)

// ErrNotResolved indicates no pending entry matched the correlation key.
var ErrNotResolved = errors.New("no pending transaction for correlation key")

// Transaction is one immutable audit fact.
type Transaction struct {
	ID          string
	ChatID      string
	Type        string
	Amount      int64 // paise, always positive
	Description string
	Status      string
	Timestamp   time.Time
	Metadata    map[string]string
}

// Log appends and queries transactions.
type Log interface {
	// Append writes an entry and returns its identifier.
	Append(ctx context.Context, tx Transaction) (string, error)
	// ResolveWithdrawal moves the pending entry correlated with withdrawalID
	// to the given terminal status. The status='pending' guard makes the
	// transition happen at most once.
	ResolveWithdrawal(ctx context.Context, withdrawalID, status string) error
	// List returns entries for a chat ordered newest-first along with the
	// total count for that chat.
	List(ctx context.Context, chatID string, limit, offset int) ([]Transaction, int, error)
}
