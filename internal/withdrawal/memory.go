package withdrawal

import (
	"context"
	"sort"
	"sync"
	"time"
)

type memoryRepository struct {
	mu          sync.Mutex
	withdrawals map[string]Withdrawal
}

// NewMemoryRepository constructs an in-memory repository for dev mode and tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{withdrawals: make(map[string]Withdrawal)}
}

func (r *memoryRepository) Create(_ context.Context, w Withdrawal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.withdrawals[w.ID] = w
	return nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (Withdrawal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.withdrawals[id]
	if !ok {
		return Withdrawal{}, ErrNotFound
	}
	return w, nil
}

func (r *memoryRepository) Complete(_ context.Context, id, transactionID string, at time.Time) (Withdrawal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.withdrawals[id]
	if !ok {
		return Withdrawal{}, ErrNotFound
	}
	if w.Status != StatusPending {
		return Withdrawal{}, ErrInvalidState
	}
	completedAt := at.UTC()
	w.Status = StatusCompleted
	w.CompletedAt = &completedAt
	w.TransactionID = transactionID
	r.withdrawals[id] = w
	return w, nil
}

func (r *memoryRepository) Reject(_ context.Context, id, reason string) (Withdrawal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.withdrawals[id]
	if !ok {
		return Withdrawal{}, ErrNotFound
	}
	if w.Status != StatusPending {
		return Withdrawal{}, ErrInvalidState
	}
	w.Status = StatusRejected
	w.FailureReason = reason
	r.withdrawals[id] = w
	return w, nil
}

func (r *memoryRepository) ListByChat(_ context.Context, chatID string, limit, offset int) ([]Withdrawal, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []Withdrawal
	for _, w := range r.withdrawals {
		if w.ChatID == chatID {
			matched = append(matched, w)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].InitiatedAt.After(matched[j].InitiatedAt)
	})

	total := len(matched)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > total {
		end = total
	}
	return matched[offset:end], total, nil
}
