package txlog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresLog stores transactions in PostgreSQL with metadata as jsonb.
type PostgresLog struct {
	db *pgxpool.Pool
}

// NewPostgresLog constructs a Postgres-backed transaction log.
func NewPostgresLog(db *pgxpool.Pool) *PostgresLog {
	return &PostgresLog{db: db}
}

// Append inserts an immutable entry and returns its id.
func (l *PostgresLog) Append(ctx context.Context, tx Transaction) (string, error) {
	id := uuid.New()
	ts := tx.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	_, err := l.db.Exec(ctx, `INSERT INTO transactions (id, chat_id, type, amount, description, status, ts, metadata)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id, tx.ChatID, tx.Type, tx.Amount, tx.Description, tx.Status, ts, tx.Metadata)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// ResolveWithdrawal flips the correlated pending entry to a terminal status.
func (l *PostgresLog) ResolveWithdrawal(ctx context.Context, withdrawalID, status string) error {
	cmd, err := l.db.Exec(ctx, `UPDATE transactions SET status = $2
        WHERE metadata->>'withdrawal_id' = $1 AND status = 'pending'`, withdrawalID, status)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotResolved
	}
	return nil
}

// List pages through a chat's entries newest-first.
func (l *PostgresLog) List(ctx context.Context, chatID string, limit, offset int) ([]Transaction, int, error) {
	var total int
	if err := l.db.QueryRow(ctx, `SELECT COUNT(*) FROM transactions WHERE chat_id = $1`, chatID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := l.db.Query(ctx, `SELECT id, chat_id, type, amount, description, status, ts, metadata
        FROM transactions WHERE chat_id = $1 ORDER BY ts DESC LIMIT $2 OFFSET $3`, chatID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []Transaction
	for rows.Next() {
		var tx Transaction
		var id uuid.UUID
		var ts time.Time
		if err := rows.Scan(&id, &tx.ChatID, &tx.Type, &tx.Amount, &tx.Description, &tx.Status, &ts, &tx.Metadata); err != nil {
			return nil, 0, err
		}
		tx.ID = id.String()
		tx.Timestamp = ts.UTC()
		entries = append(entries, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
