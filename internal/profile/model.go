package profile

import "time"

// User represents a wallet owner identified by an opaque chat id.
type User struct {
	ChatID       string
	Username     string
	Avatar       string
	Status       string
	ReferralCode string
	ReferredBy   string
	CreatedAt    time.Time
}
