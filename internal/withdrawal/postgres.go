package withdrawal

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository stores withdrawals in PostgreSQL. State transitions are
// single conditional updates guarded on status='pending'.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed withdrawal repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const withdrawalColumns = `id, chat_id, amount, fee, net_amount, vpa, status,
    initiated_at, completed_at, transaction_id, failure_reason`

// Create inserts a new pending withdrawal.
func (r *PostgresRepository) Create(ctx context.Context, w Withdrawal) error {
	id, err := uuid.Parse(w.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO withdrawals (id, chat_id, amount, fee, net_amount, vpa, status, initiated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id, w.ChatID, w.Amount, w.Fee, w.NetAmount, w.VPA, w.Status, w.InitiatedAt.UTC())
	return err
}

// Get fetches a withdrawal by id.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Withdrawal, error) {
	wid, err := uuid.Parse(id)
	if err != nil {
		return Withdrawal{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT `+withdrawalColumns+` FROM withdrawals WHERE id = $1`, wid)
	return scanWithdrawal(row)
}

// Complete flips a pending withdrawal to completed. Zero rows affected means
// the withdrawal is missing or already terminal.
func (r *PostgresRepository) Complete(ctx context.Context, id, transactionID string, at time.Time) (Withdrawal, error) {
	wid, err := uuid.Parse(id)
	if err != nil {
		return Withdrawal{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `UPDATE withdrawals
        SET status = $2, completed_at = $3, transaction_id = $4
        WHERE id = $1 AND status = $5
        RETURNING `+withdrawalColumns, wid, StatusCompleted, at.UTC(), transactionID, StatusPending)
	w, err := scanWithdrawal(row)
	if errors.Is(err, ErrNotFound) {
		return Withdrawal{}, r.transitionFailure(ctx, wid)
	}
	return w, err
}

// Reject flips a pending withdrawal to rejected.
func (r *PostgresRepository) Reject(ctx context.Context, id, reason string) (Withdrawal, error) {
	wid, err := uuid.Parse(id)
	if err != nil {
		return Withdrawal{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `UPDATE withdrawals
        SET status = $2, failure_reason = $3
        WHERE id = $1 AND status = $4
        RETURNING `+withdrawalColumns, wid, StatusRejected, reason, StatusPending)
	w, err := scanWithdrawal(row)
	if errors.Is(err, ErrNotFound) {
		return Withdrawal{}, r.transitionFailure(ctx, wid)
	}
	return w, err
}

// ListByChat pages withdrawals newest-first by initiation time.
func (r *PostgresRepository) ListByChat(ctx context.Context, chatID string, limit, offset int) ([]Withdrawal, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM withdrawals WHERE chat_id = $1`, chatID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, `SELECT `+withdrawalColumns+` FROM withdrawals
        WHERE chat_id = $1 ORDER BY initiated_at DESC LIMIT $2 OFFSET $3`, chatID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var withdrawals []Withdrawal
	for rows.Next() {
		w, err := scanWithdrawal(rows)
		if err != nil {
			return nil, 0, err
		}
		withdrawals = append(withdrawals, w)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return withdrawals, total, nil
}

// transitionFailure distinguishes a missing withdrawal from one that is
// already terminal.
func (r *PostgresRepository) transitionFailure(ctx context.Context, id uuid.UUID) error {
	var status string
	err := r.db.QueryRow(ctx, `SELECT status FROM withdrawals WHERE id = $1`, id).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return ErrInvalidState
}

func scanWithdrawal(row pgx.Row) (Withdrawal, error) {
	var (
		w             Withdrawal
		id            uuid.UUID
		initiatedAt   time.Time
		completedAt   *time.Time
		transactionID *string
		failureReason *string
	)
	err := row.Scan(&id, &w.ChatID, &w.Amount, &w.Fee, &w.NetAmount, &w.VPA, &w.Status,
		&initiatedAt, &completedAt, &transactionID, &failureReason)
	if errors.Is(err, pgx.ErrNoRows) {
		return Withdrawal{}, ErrNotFound
	}
	if err != nil {
		return Withdrawal{}, err
	}
	w.ID = id.String()
	w.InitiatedAt = initiatedAt.UTC()
	if completedAt != nil {
		t := completedAt.UTC()
		w.CompletedAt = &t
	}
	if transactionID != nil {
		w.TransactionID = *transactionID
	}
	if failureReason != nil {
		w.FailureReason = *failureReason
	}
	return w, nil
}
