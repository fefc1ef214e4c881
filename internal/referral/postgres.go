package referral

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresLedger stores referral records in PostgreSQL. The unique index on
// (inviter_chat_id, user_id) closes the check-then-insert race for duplicate
// join events.
type PostgresLedger struct {
	db *pgxpool.Pool
}

// NewPostgresLedger constructs a Postgres-backed referral ledger.
func NewPostgresLedger(db *pgxpool.Pool) *PostgresLedger {
	return &PostgresLedger{db: db}
}

// Ensure creates the inviter's record when absent.
func (l *PostgresLedger) Ensure(ctx context.Context, chatID, referralCode string) error {
	_, err := l.db.Exec(ctx, `INSERT INTO referrals (chat_id, referral_code, total_earned, pending_earned)
        VALUES ($1, $2, 0, 0) ON CONFLICT (chat_id) DO NOTHING`, chatID, referralCode)
	return err
}

// AddReferred inserts the pair entry and bumps total_earned in one
// transaction. ON CONFLICT DO NOTHING makes retried joins a no-op.
func (l *PostgresLedger) AddReferred(ctx context.Context, inviterChatID string, entry ReferredUser) (bool, error) {
	tx, err := l.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	cmd, err := tx.Exec(ctx, `INSERT INTO referred_users (inviter_chat_id, user_id, username, joined_at, earned_amount, is_active)
        VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (inviter_chat_id, user_id) DO NOTHING`,
		inviterChatID, entry.UserID, entry.Username, entry.JoinedAt.UTC(), entry.EarnedAmount, entry.IsActive)
	if err != nil {
		return false, err
	}
	if cmd.RowsAffected() == 0 {
		return false, nil
	}

	if entry.IsActive {
		if _, err := tx.Exec(ctx, `UPDATE referrals SET total_earned = total_earned + $2
            WHERE chat_id = $1`, inviterChatID, entry.EarnedAmount); err != nil {
			return false, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// Summary aggregates counts and earnings for the inviter.
func (l *PostgresLedger) Summary(ctx context.Context, chatID string) (Summary, error) {
	var s Summary
	row := l.db.QueryRow(ctx, `SELECT COALESCE(total_earned, 0), COALESCE(pending_earned, 0)
        FROM referrals WHERE chat_id = $1`, chatID)
	if err := row.Scan(&s.TotalEarned, &s.PendingEarned); err != nil && err != pgx.ErrNoRows {
		return Summary{}, err
	}

	row = l.db.QueryRow(ctx, `SELECT COUNT(*), COUNT(*) FILTER (WHERE is_active)
        FROM referred_users WHERE inviter_chat_id = $1`, chatID)
	if err := row.Scan(&s.TotalReferrals, &s.SuccessfulReferrals); err != nil {
		return Summary{}, err
	}
	return s, nil
}

// List pages through referred users newest-first.
func (l *PostgresLedger) List(ctx context.Context, chatID string, limit, offset int) ([]ReferredUser, int, error) {
	var total int
	if err := l.db.QueryRow(ctx, `SELECT COUNT(*) FROM referred_users WHERE inviter_chat_id = $1`, chatID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := l.db.Query(ctx, `SELECT user_id, username, joined_at, earned_amount, is_active
        FROM referred_users WHERE inviter_chat_id = $1 ORDER BY joined_at DESC LIMIT $2 OFFSET $3`,
		chatID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []ReferredUser
	for rows.Next() {
		var entry ReferredUser
		var joined time.Time
		if err := rows.Scan(&entry.UserID, &entry.Username, &joined, &entry.EarnedAmount, &entry.IsActive); err != nil {
			return nil, 0, err
		}
		entry.JoinedAt = joined.UTC()
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
