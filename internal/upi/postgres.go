package upi

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository stores UPI bindings in PostgreSQL keyed by chat id.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed binding repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Get fetches the binding for a chat id.
func (r *PostgresRepository) Get(ctx context.Context, chatID string) (Binding, error) {
	var (
		b        Binding
		vpa      *string
		bankName *string
		linkedAt *time.Time
	)
	err := r.db.QueryRow(ctx, `SELECT chat_id, vpa, bank_name, is_verified, linked_at
        FROM upi_bindings WHERE chat_id = $1`, chatID).
		Scan(&b.ChatID, &vpa, &bankName, &b.IsVerified, &linkedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Binding{}, ErrNotFound
	}
	if err != nil {
		return Binding{}, err
	}
	if vpa != nil {
		b.VPA = *vpa
	}
	if bankName != nil {
		b.BankName = *bankName
	}
	if linkedAt != nil {
		t := linkedAt.UTC()
		b.LinkedAt = &t
	}
	return b, nil
}

// Upsert writes the binding, replacing any previous one for the chat id.
func (r *PostgresRepository) Upsert(ctx context.Context, b Binding) error {
	_, err := r.db.Exec(ctx, `INSERT INTO upi_bindings (chat_id, vpa, bank_name, is_verified, linked_at)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (chat_id) DO UPDATE SET
            vpa = EXCLUDED.vpa,
            bank_name = EXCLUDED.bank_name,
            is_verified = EXCLUDED.is_verified,
            linked_at = EXCLUDED.linked_at`,
		b.ChatID, nullable(b.VPA), nullable(b.BankName), b.IsVerified, b.LinkedAt)
	return err
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
