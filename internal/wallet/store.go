package wallet

import (
	"context"
	"errors"
)

var (
	// ErrInsufficientFunds occurs when a debit exceeds the wallet balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidAmount indicates a non-positive mutation amount.
	ErrInvalidAmount = errors.New("amount must be positive")
)

// Store persists wallets. Credit and Debit must be atomic per wallet: the
// balance change and its precondition are applied as a single conditional
// update, never as read-modify-write in the caller.
type Store interface {
	// Ensure returns the wallet for chatID, creating an empty one on first
	// reference. Concurrent first access must not create duplicates.
	Ensure(ctx context.Context, chatID string) (Wallet, error)
	// Credit atomically adds amount to the balance, creating the wallet if needed.
	Credit(ctx context.Context, chatID string, amount int64) error
	// Debit atomically subtracts amount, failing with ErrInsufficientFunds
	// when the balance cannot cover it.
	Debit(ctx context.Context, chatID string, amount int64) error
}
