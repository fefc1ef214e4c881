package wallet

import "context"

// Service exposes wallet reads for the API surface. Mutations run through
// the Store directly from the referral and withdrawal services.
type Service struct {
	store Store
}

// NewService builds a wallet service instance.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Balance returns the wallet for the chat, creating it on first reference.
func (s *Service) Balance(ctx context.Context, chatID string) (Wallet, error) {
	return s.store.Ensure(ctx, chatID)
}
