package txlog

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryLog struct {
	mu      sync.RWMutex
	entries []Transaction
}

// NewMemoryLog constructs an in-memory log used in dev mode and tests.
func NewMemoryLog() Log {
	return &memoryLog{}
}

func (l *memoryLog) Append(_ context.Context, tx Transaction) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx.ID = uuid.NewString()
	if tx.Timestamp.IsZero() {
		tx.Timestamp = time.Now().UTC()
	}
	if tx.Metadata != nil {
		meta := make(map[string]string, len(tx.Metadata))
		for k, v := range tx.Metadata {
			meta[k] = v
		}
		tx.Metadata = meta
	}
	l.entries = append(l.entries, tx)
	return tx.ID, nil
}

func (l *memoryLog) ResolveWithdrawal(_ context.Context, withdrawalID, status string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	resolved := false
	for i := range l.entries {
		if l.entries[i].Status != StatusPending {
			continue
		}
		if l.entries[i].Metadata[MetaWithdrawalID] != withdrawalID {
			continue
		}
		l.entries[i].Status = status
		resolved = true
	}
	if !resolved {
		return ErrNotResolved
	}
	return nil
}

func (l *memoryLog) List(_ context.Context, chatID string, limit, offset int) ([]Transaction, int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var matched []Transaction
	for _, tx := range l.entries {
		if tx.ChatID == chatID {
			matched = append(matched, tx)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp.After(matched[j].Timestamp)
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
