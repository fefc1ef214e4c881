package wallet

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu       sync.Mutex
	wallets  map[string]Wallet
	currency string
}

// NewMemoryStore constructs an in-memory store used in dev mode and tests.
func NewMemoryStore(currency string) Store {
	return &memoryStore{wallets: make(map[string]Wallet), currency: currency}
}

func (s *memoryStore) Ensure(_ context.Context, chatID string) (Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureLocked(chatID), nil
}

func (s *memoryStore) Credit(_ context.Context, chatID string, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.ensureLocked(chatID)
	w.Balance += amount
	s.wallets[chatID] = w
	return nil
}

func (s *memoryStore) Debit(_ context.Context, chatID string, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.ensureLocked(chatID)
	if w.Balance < amount {
		return ErrInsufficientFunds
	}
	w.Balance -= amount
	s.wallets[chatID] = w
	return nil
}

func (s *memoryStore) ensureLocked(chatID string) Wallet {
	w, ok := s.wallets[chatID]
	if !ok {
		w = Wallet{ChatID: chatID, Currency: s.currency}
		s.wallets[chatID] = w
	}
	return w
}
