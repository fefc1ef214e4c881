package upi

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu       sync.Mutex
	bindings map[string]Binding
}

// NewMemoryRepository constructs an in-memory repository for dev mode and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{bindings: make(map[string]Binding)}
}

func (r *memoryRepository) Get(_ context.Context, chatID string) (Binding, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bindings[chatID]
	if !ok {
		return Binding{}, ErrNotFound
	}
	return b, nil
}

func (r *memoryRepository) Upsert(_ context.Context, b Binding) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings[b.ChatID] = b
	return nil
}
