package infrastructure

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"betsim/domain/entities"
	"betsim/domain/interfaces"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// SimulatedGateway is a stand-in payment provider for development and tests.
// It mints txids and payment references locally and resolves confirmations
// by coin flip at the configured success rates. A real provider integration
// replaces this wholesale behind the PaymentGateway interface.
type SimulatedGateway struct {
	depositSuccessRate  float64
	withdrawSuccessRate float64
	depositExpiry       time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulatedGateway creates a simulated gateway. Pass a seeded rand for
// deterministic behavior in tests.
func NewSimulatedGateway(depositSuccessRate, withdrawSuccessRate float64, depositExpiry time.Duration, rng *rand.Rand) *SimulatedGateway {
	return &SimulatedGateway{
		depositSuccessRate:  depositSuccessRate,
		withdrawSuccessRate: withdrawSuccessRate,
		depositExpiry:       depositExpiry,
		rng:                 rng,
	}
}

// CreateDeposit issues a new deposit intent with a payment reference
func (g *SimulatedGateway) CreateDeposit(ctx context.Context, accountID, amount int64) (*interfaces.DepositIntent, error) {
	txid := uuid.New().String()
	intent := &interfaces.DepositIntent{
		TxID:             txid,
		PaymentReference: fmt.Sprintf("PAY-%s", txid[:8]),
		ExpiresAt:        time.Now().Add(g.depositExpiry),
	}

	log.WithFields(log.Fields{
		"txid":      txid,
		"accountID": accountID,
		"amount":    amount,
	}).Debug("Simulated gateway created deposit intent")

	return intent, nil
}

// ConfirmDeposit resolves a deposit at the configured success rate
func (g *SimulatedGateway) ConfirmDeposit(ctx context.Context, txid string) (*interfaces.GatewayResult, error) {
	return g.roll(g.depositSuccessRate), nil
}

// CreateWithdraw acknowledges a withdrawal request for async processing
func (g *SimulatedGateway) CreateWithdraw(ctx context.Context, accountID, amount int64) (*interfaces.WithdrawIntent, error) {
	txid := uuid.New().String()

	log.WithFields(log.Fields{
		"txid":      txid,
		"accountID": accountID,
		"amount":    amount,
	}).Debug("Simulated gateway accepted withdrawal")

	return &interfaces.WithdrawIntent{
		TxID:          txid,
		Status:        entities.TransactionStatusPending,
		EstimatedTime: "1-2 business days",
	}, nil
}

// ProcessWithdraw resolves a withdrawal at the configured success rate
func (g *SimulatedGateway) ProcessWithdraw(ctx context.Context, txid string) (*interfaces.GatewayResult, error) {
	return g.roll(g.withdrawSuccessRate), nil
}

func (g *SimulatedGateway) roll(successRate float64) *interfaces.GatewayResult {
	g.mu.Lock()
	success := g.rng.Float64() < successRate
	g.mu.Unlock()

	status := entities.TransactionStatusCompleted
	if !success {
		status = entities.TransactionStatusFailed
	}
	return &interfaces.GatewayResult{Status: status}
}
