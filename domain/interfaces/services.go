package interfaces

import (
	"context"
	"time"

	"betsim/domain/entities"
	"betsim/domain/events"
)

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	Publish(event events.Event) error
}

// TransactionalEventPublisher buffers events until the surrounding database
// transaction commits, then flushes them; rollback discards them.
type TransactionalEventPublisher interface {
	EventPublisher

	// Flush publishes all pending events; called after commit
	Flush(ctx context.Context) error

	// Discard drops all pending events; called on rollback
	Discard()
}

// AccountService manages accounts and privileged balance operations
type AccountService interface {
	// Register creates a new account, optionally seeded with a starting balance
	Register(ctx context.Context, username string) (*entities.Account, error)

	// GetAccount retrieves an account by ID
	GetAccount(ctx context.Context, accountID int64) (*entities.Account, error)

	// CreditAccount credits an account looked up by username or numeric ID.
	// Requires elevated privilege, enforced at the API boundary.
	CreditAccount(ctx context.Context, usernameOrID string, amount int64) (int64, error)

	// GetLedger returns the account's balance audit trail, newest first
	GetLedger(ctx context.Context, accountID int64, limit int) ([]*entities.LedgerEntry, error)
}

// JournalService owns the deposit/withdraw transaction lifecycle
type JournalService interface {
	// CreateDeposit validates limits, obtains a payment reference from the
	// gateway and persists a pending transaction. No balance change.
	CreateDeposit(ctx context.Context, accountID, amount int64) (*entities.Transaction, error)

	// ConfirmDeposit resolves a pending deposit against the gateway outcome.
	// Idempotent: an already-terminal transaction is a no-op returning its
	// existing status.
	ConfirmDeposit(ctx context.Context, txid string) (entities.TransactionStatus, error)

	// CreateWithdraw validates limits, debits the account immediately as an
	// optimistic hold, persists a pending transaction and enqueues
	// asynchronous gateway processing.
	CreateWithdraw(ctx context.Context, accountID, amount int64) (*entities.Transaction, error)

	// CompleteWithdraw resolves a pending withdrawal against the gateway
	// outcome. On failure the held amount is refunded exactly once.
	// Idempotent under at-least-once delivery.
	CompleteWithdraw(ctx context.Context, txid string) (entities.TransactionStatus, error)

	// GetTransactions returns an account's transactions, newest first
	GetTransactions(ctx context.Context, accountID int64, limit int) ([]*entities.Transaction, error)
}

// BettingService validates and records bets against a match's fixed odds
type BettingService interface {
	// PlaceBet debits the stake and records the bet as one unit
	PlaceBet(ctx context.Context, accountID, matchID int64, outcome string, stake int64) (*entities.Bet, error)

	// GetBets returns an account's bets, newest first
	GetBets(ctx context.Context, accountID int64, limit int) ([]*entities.Bet, error)
}

// SettlementResult summarizes one match settlement
type SettlementResult struct {
	MatchID        int64
	WinningOutcome string
	BetsProcessed  int
	Winners        int
	Losers         int
	TotalPaidOut   int64
}

// SettlementService resolves finished matches
type SettlementService interface {
	// Settle flips the match's settled latch and resolves all open bets.
	// Re-invocation returns entities.ErrAlreadySettled without paying twice.
	Settle(ctx context.Context, matchID int64, winningOutcome string, scoreHome, scoreAway *int) (*SettlementResult, error)
}

// MatchService manages match fixtures
type MatchService interface {
	// CreateMatch creates a fixture with fixed outcome odds
	CreateMatch(ctx context.Context, homeTeam, awayTeam string, outcomes map[string]float64, matchDate time.Time) (*entities.Match, error)

	// GetMatch retrieves a match by ID
	GetMatch(ctx context.Context, matchID int64) (*entities.Match, error)

	// ListMatches returns matches, upcoming first
	ListMatches(ctx context.Context, includeSettled bool, limit int) ([]*entities.Match, error)
}

// RedemptionResult summarizes a promo code redemption
type RedemptionResult struct {
	BonusCredited int64
	NewBalance    int64
}

// PromoService handles promo code redemption
type PromoService interface {
	// Redeem credits the code's bonus at most once per (code, account)
	Redeem(ctx context.Context, accountID int64, code string) (*RedemptionResult, error)
}
