package upi

import "time"

// Binding links a user to their UPI handle. A binding exists as soon as the
// endpoint is first hit; it becomes verified once a VPA is supplied.
type Binding struct {
	ChatID     string     `json:"chatId"`
	VPA        string     `json:"vpa,omitempty"`
	BankName   string     `json:"bank_name,omitempty"`
	IsVerified bool       `json:"is_verified"`
	LinkedAt   *time.Time `json:"linked_at,omitempty"`
}
