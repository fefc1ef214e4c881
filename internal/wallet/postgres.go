package wallet

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore stores wallets in PostgreSQL. Balance mutations rely on
// conditional single-statement updates so concurrent requests on the same
// wallet cannot lose updates or drive the balance negative.
type PostgresStore struct {
	db       *pgxpool.Pool
	currency string
}

// NewPostgresStore builds a store backed by PostgreSQL.
func NewPostgresStore(db *pgxpool.Pool, currency string) *PostgresStore {
	return &PostgresStore{db: db, currency: currency}
}

// Ensure returns the wallet, lazily creating it with a zero balance. The
// insert races are resolved by the primary key on chat_id.
func (s *PostgresStore) Ensure(ctx context.Context, chatID string) (Wallet, error) {
	_, err := s.db.Exec(ctx, `INSERT INTO wallets (chat_id, balance, pending_balance, currency)
        VALUES ($1, 0, 0, $2) ON CONFLICT (chat_id) DO NOTHING`, chatID, s.currency)
	if err != nil {
		return Wallet{}, err
	}

	var w Wallet
	row := s.db.QueryRow(ctx, `SELECT chat_id, balance, pending_balance, currency
        FROM wallets WHERE chat_id = $1`, chatID)
	if err := row.Scan(&w.ChatID, &w.Balance, &w.PendingBalance, &w.Currency); err != nil {
		return Wallet{}, err
	}
	return w, nil
}

// Credit increments the balance, creating the wallet when it does not exist yet.
func (s *PostgresStore) Credit(ctx context.Context, chatID string, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	_, err := s.db.Exec(ctx, `INSERT INTO wallets (chat_id, balance, pending_balance, currency)
        VALUES ($1, $2, 0, $3)
        ON CONFLICT (chat_id) DO UPDATE SET balance = wallets.balance + EXCLUDED.balance`,
		chatID, amount, s.currency)
	return err
}

// Debit decrements the balance only when it covers the amount. Zero rows
// affected means either an unknown wallet or not enough funds; both map to
// ErrInsufficientFunds because an absent wallet has a zero balance.
func (s *PostgresStore) Debit(ctx context.Context, chatID string, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	cmd, err := s.db.Exec(ctx, `UPDATE wallets SET balance = balance - $2
        WHERE chat_id = $1 AND balance >= $2`, chatID, amount)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrInsufficientFunds
	}
	return nil
}
