// Package referral tracks per-inviter referral earnings and produces the
// credit events that reward inviters.
package referral

import (
	"context"
	"time"
)

// ReferredUser is one referred-user entry under an inviter.
type ReferredUser struct {
	UserID       string
	Username     string
	JoinedAt     time.Time
	EarnedAmount int64 // paise
	IsActive     bool
}

// Summary aggregates an inviter's referral earnings.
type Summary struct {
	TotalReferrals      int
	SuccessfulReferrals int
	TotalEarned         int64 // paise, sum of EarnedAmount over active entries
	PendingEarned       int64 // paise
}

// Ledger persists referral records. AddReferred must enforce uniqueness of
// the (inviter, referred user) pair at the storage layer so concurrent
// duplicate join events credit at most once.
type Ledger interface {
	// Ensure creates the inviter's record if it does not exist yet.
	Ensure(ctx context.Context, chatID, referralCode string) error
	// AddReferred appends an entry unless the pair already exists. It
	// reports whether the entry was inserted; on insert the inviter's
	// total_earned is increased by the entry's earned amount.
	AddReferred(ctx context.Context, inviterChatID string, entry ReferredUser) (bool, error)
	// Summary aggregates counts and earnings for the inviter.
	Summary(ctx context.Context, chatID string) (Summary, error)
	// List pages through referred users, newest-first, with total count.
	List(ctx context.Context, chatID string, limit, offset int) ([]ReferredUser, int, error)
}
