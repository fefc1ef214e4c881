package upi

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no binding exists for a chat id.
var ErrNotFound = errors.New("upi binding not found")

// Repository persists UPI bindings, one per chat id.
type Repository interface {
	Get(ctx context.Context, chatID string) (Binding, error)
	Upsert(ctx context.Context, b Binding) error
}
