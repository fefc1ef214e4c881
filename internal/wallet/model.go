package wallet

// Wallet holds the mutable balance for one user, keyed by chat id.
// Amounts are paise. PendingBalance is a reporting field only; it is not
// reserved against in-flight withdrawals.
type Wallet struct {
	ChatID         string
	Balance        int64
	PendingBalance int64
	Currency       string
}
