package withdrawal

import "time"

// Lifecycle states. A withdrawal is created pending with the debit already
// applied; completed and rejected are terminal.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusRejected  = "rejected"
)

// Withdrawal is one payout request. Amount is the debited amount in paise;
// NetAmount is what reaches the destination after the fee, realized only on
// success.
type Withdrawal struct {
	ID            string
	ChatID        string
	Amount        int64
	Fee           int64
	NetAmount     int64
	VPA           string
	Status        string
	InitiatedAt   time.Time
	CompletedAt   *time.Time
	TransactionID string
	FailureReason string
}
