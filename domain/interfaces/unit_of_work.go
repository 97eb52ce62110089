package interfaces

import (
	"context"
)

// UnitOfWork defines the interface for transactional repository operations.
// All repositories returned from one unit of work share a single database
// transaction, so a multi-step sequence (debit + record, credit + status
// flip) commits or rolls back as one.
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction and flushes pending events
	Commit() error

	// Rollback rolls back the transaction and discards pending events
	Rollback() error

	// Repository getters
	Accounts() AccountRepository
	Ledger() LedgerRepository
	Transactions() TransactionRepository
	Matches() MatchRepository
	Bets() BetRepository
	PromoCodes() PromoCodeRepository
	CrashRounds() CrashRoundRepository

	// EventBus returns the transactional event publisher for this unit of work
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// Create returns a fresh UnitOfWork; callers must Begin it themselves
	Create() UnitOfWork
}
