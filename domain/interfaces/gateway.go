package interfaces

import (
	"context"
	"time"

	"betsim/domain/entities"
)

// DepositIntent is the gateway's response to a deposit creation: a payment
// reference (URL, QR payload or similar) the user pays against, valid until
// ExpiresAt.
type DepositIntent struct {
	TxID             string
	PaymentReference string
	ExpiresAt        time.Time
}

// WithdrawIntent is the gateway's acknowledgement of a withdrawal request
type WithdrawIntent struct {
	TxID          string
	Status        entities.TransactionStatus
	EstimatedTime string
}

// GatewayResult is the asynchronous outcome of a deposit confirmation or
// withdrawal processing step; Status is always completed or failed.
type GatewayResult struct {
	Status entities.TransactionStatus
}

// PaymentGateway is the external payment transport. Confirmation and
// processing results are delivered at-least-once, so callers must be
// idempotent.
type PaymentGateway interface {
	CreateDeposit(ctx context.Context, accountID, amount int64) (*DepositIntent, error)
	ConfirmDeposit(ctx context.Context, txid string) (*GatewayResult, error)
	CreateWithdraw(ctx context.Context, accountID, amount int64) (*WithdrawIntent, error)
	ProcessWithdraw(ctx context.Context, txid string) (*GatewayResult, error)
}

// WithdrawalQueue hands a withdrawal off for asynchronous gateway processing
type WithdrawalQueue interface {
	Enqueue(ctx context.Context, txid string) error
}
