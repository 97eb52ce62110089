package entities

import "time"

// TransactionKind distinguishes deposits from withdrawals
type TransactionKind string

const (
	TransactionKindDeposit  TransactionKind = "deposit"
	TransactionKindWithdraw TransactionKind = "withdraw"
)

// String returns the string representation of the kind
func (k TransactionKind) String() string {
	return string(k)
}

// TransactionStatus is the lifecycle state of a wallet transaction.
// completed and failed are terminal: once reached the status never changes.
type TransactionStatus string

const (
	TransactionStatusPending    TransactionStatus = "pending"
	TransactionStatusProcessing TransactionStatus = "processing"
	TransactionStatusCompleted  TransactionStatus = "completed"
	TransactionStatusFailed     TransactionStatus = "failed"
)

// IsTerminal returns true once the status can no longer change
func (s TransactionStatus) IsTerminal() bool {
	return s == TransactionStatusCompleted || s == TransactionStatusFailed
}

// String returns the string representation of the status
func (s TransactionStatus) String() string {
	return string(s)
}

// Transaction is a deposit or withdrawal moving value between an account
// and the payment gateway.
type Transaction struct {
	TxID             string            `db:"txid"`
	AccountID        int64             `db:"account_id"`
	Kind             TransactionKind   `db:"kind"`
	Amount           int64             `db:"amount"`
	Status           TransactionStatus `db:"status"`
	PaymentReference string            `db:"payment_reference"`
	ExpiresAt        *time.Time        `db:"expires_at"`
	Metadata         map[string]any    `db:"metadata"`
	CreatedAt        time.Time         `db:"created_at"`
	UpdatedAt        time.Time         `db:"updated_at"`
}

// IsExpired reports whether the payment reference is past its expiry.
// Only deposits carry an expiry; an expired pending deposit never completes.
func (t *Transaction) IsExpired(now time.Time) bool {
	return t.ExpiresAt != nil && now.After(*t.ExpiresAt)
}
