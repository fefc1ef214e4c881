package referral

import (
	"context"
	"sort"
	"sync"
)

type memoryRecord struct {
	referralCode  string
	totalEarned   int64
	pendingEarned int64
	entries       []ReferredUser
	pairs         map[string]struct{}
}

type memoryLedger struct {
	mu      sync.Mutex
	records map[string]*memoryRecord
}

// NewMemoryLedger constructs an in-memory ledger for dev mode and tests.
func NewMemoryLedger() Ledger {
	return &memoryLedger{records: make(map[string]*memoryRecord)}
}

func (l *memoryLedger) Ensure(_ context.Context, chatID, referralCode string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ensureLocked(chatID, referralCode)
	return nil
}

func (l *memoryLedger) AddReferred(_ context.Context, inviterChatID string, entry ReferredUser) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec := l.ensureLocked(inviterChatID, "")
	if _, exists := rec.pairs[entry.UserID]; exists {
		return false, nil
	}
	rec.pairs[entry.UserID] = struct{}{}
	rec.entries = append(rec.entries, entry)
	if entry.IsActive {
		rec.totalEarned += entry.EarnedAmount
	}
	return true, nil
}

func (l *memoryLedger) Summary(_ context.Context, chatID string) (Summary, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.records[chatID]
	if !ok {
		return Summary{}, nil
	}
	s := Summary{
		TotalReferrals: len(rec.entries),
		TotalEarned:    rec.totalEarned,
		PendingEarned:  rec.pendingEarned,
	}
	for _, entry := range rec.entries {
		if entry.IsActive {
			s.SuccessfulReferrals++
		}
	}
	return s, nil
}

func (l *memoryLedger) List(_ context.Context, chatID string, limit, offset int) ([]ReferredUser, int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.records[chatID]
	if !ok {
		return nil, 0, nil
	}

	entries := make([]ReferredUser, len(rec.entries))
	copy(entries, rec.entries)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].JoinedAt.After(entries[j].JoinedAt)
	})

	total := len(entries)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > total {
		end = total
	}
	return entries[offset:end], total, nil
}

func (l *memoryLedger) ensureLocked(chatID, referralCode string) *memoryRecord {
	rec, ok := l.records[chatID]
	if !ok {
		rec = &memoryRecord{pairs: make(map[string]struct{})}
		l.records[chatID] = rec
	}
	if referralCode != "" && rec.referralCode == "" {
		rec.referralCode = referralCode
	}
	return rec
}
