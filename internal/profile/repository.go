package profile

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound indicates no user matches the lookup key.
	ErrNotFound = errors.New("user not found")

	// ErrExists indicates a user with the chat id is already registered.
	ErrExists = errors.New("user exists")
)

// Repository persists users.
type Repository interface {
	Create(ctx context.Context, user User) error
	FindByChatID(ctx context.Context, chatID string) (User, error)
	FindByReferralCode(ctx context.Context, code string) (User, error)
	UpdateProfile(ctx context.Context, chatID, username, avatar string) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed profile repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new user. The primary key on chat_id turns concurrent
// first registrations into ErrExists instead of duplicates.
func (r *PostgresRepository) Create(ctx context.Context, user User) error {
	_, err := r.db.Exec(ctx, `INSERT INTO users (chat_id, username, avatar, status, referral_code, referred_by, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ChatID, user.Username, user.Avatar, user.Status, user.ReferralCode, user.ReferredBy, user.CreatedAt.UTC())
	if isUniqueViolation(err) {
		return ErrExists
	}
	return err
}

// FindByChatID fetches a user by chat id.
func (r *PostgresRepository) FindByChatID(ctx context.Context, chatID string) (User, error) {
	return r.findOne(ctx, `SELECT chat_id, username, avatar, status, referral_code, referred_by, created_at
        FROM users WHERE chat_id = $1`, chatID)
}

// FindByReferralCode fetches the owner of a referral code.
func (r *PostgresRepository) FindByReferralCode(ctx context.Context, code string) (User, error) {
	return r.findOne(ctx, `SELECT chat_id, username, avatar, status, referral_code, referred_by, created_at
        FROM users WHERE referral_code = $1`, code)
}

// UpdateProfile refreshes display fields, keeping existing values when the
// incoming ones are empty.
func (r *PostgresRepository) UpdateProfile(ctx context.Context, chatID, username, avatar string) error {
	cmd, err := r.db.Exec(ctx, `UPDATE users SET
        username = COALESCE(NULLIF($2, ''), username),
        avatar = COALESCE(NULLIF($3, ''), avatar)
        WHERE chat_id = $1`, chatID, username, avatar)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) findOne(ctx context.Context, query, arg string) (User, error) {
	row := r.db.QueryRow(ctx, query, arg)
	var (
		user      User
		createdAt time.Time
	)
	if err := row.Scan(&user.ChatID, &user.Username, &user.Avatar, &user.Status, &user.ReferralCode, &user.ReferredBy, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	user.CreatedAt = createdAt.UTC()
	return user, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
