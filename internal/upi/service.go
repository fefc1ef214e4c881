package upi

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Service manages UPI bindings. The binding is created lazily on first access
// and verified as soon as the user supplies a VPA.
type Service struct {
	repo Repository
}

// NewService constructs a UPI binding service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// BindInput carries an optional VPA and bank name update. Empty fields leave
// the stored values alone.
type BindInput struct {
	ChatID   string
	VPA      string
	BankName string
}

// Bind returns the user's binding, creating it if missing and applying any
// updates carried in the input. Supplying a VPA marks the binding verified
// and stamps the link time.
func (s *Service) Bind(ctx context.Context, input BindInput) (Binding, error) {
	if input.ChatID == "" {
		return Binding{}, fmt.Errorf("chat id is required")
	}

	b, err := s.repo.Get(ctx, input.ChatID)
	switch {
	case errors.Is(err, ErrNotFound):
		b = Binding{ChatID: input.ChatID}
	case err != nil:
		return Binding{}, err
	}

	if input.VPA != "" {
		now := time.Now().UTC()
		b.VPA = input.VPA
		b.IsVerified = true
		b.LinkedAt = &now
	}
	if input.BankName != "" {
		b.BankName = input.BankName
	}

	if err := s.repo.Upsert(ctx, b); err != nil {
		return Binding{}, err
	}
	return b, nil
}
