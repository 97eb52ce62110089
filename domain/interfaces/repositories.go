package interfaces

import (
	"context"

	"betsim/domain/entities"
)

// AccountRepository defines the interface for account data access
type AccountRepository interface {
	// GetByID retrieves an account by its ID
	GetByID(ctx context.Context, id int64) (*entities.Account, error)

	// GetByUsername retrieves an account by username
	GetByUsername(ctx context.Context, username string) (*entities.Account, error)

	// Create creates a new account with the initial balance
	Create(ctx context.Context, username string, initialBalance int64) (*entities.Account, error)

	// ApplyBalanceChange atomically applies a signed delta to the account's
	// balance and returns the new balance. The update is keyed on the account
	// row and guarded so the balance can never go negative; a debit exceeding
	// the balance returns entities.ErrInsufficientFunds and changes nothing.
	ApplyBalanceChange(ctx context.Context, accountID int64, delta int64) (int64, error)
}

// LedgerRepository defines the interface for the balance audit trail
type LedgerRepository interface {
	// Record creates a new ledger entry
	Record(ctx context.Context, entry *entities.LedgerEntry) error

	// GetByAccount returns ledger entries for an account, newest first
	GetByAccount(ctx context.Context, accountID int64, limit int) ([]*entities.LedgerEntry, error)
}

// TransactionRepository defines the interface for wallet transaction access
type TransactionRepository interface {
	// Create persists a new transaction
	Create(ctx context.Context, tx *entities.Transaction) error

	// GetByTxID retrieves a transaction by its txid
	GetByTxID(ctx context.Context, txid string) (*entities.Transaction, error)

	// GetByTxIDForUpdate retrieves a transaction and locks its row for the
	// remainder of the surrounding database transaction. This is what makes
	// the confirm/complete idempotency guards race-free.
	GetByTxIDForUpdate(ctx context.Context, txid string) (*entities.Transaction, error)

	// TransitionStatus moves a transaction from one status to another.
	// Returns false when the transaction was not in the expected status,
	// in which case nothing was written.
	TransitionStatus(ctx context.Context, txid string, from, to entities.TransactionStatus) (bool, error)

	// GetByAccount returns transactions for an account, newest first
	GetByAccount(ctx context.Context, accountID int64, limit int) ([]*entities.Transaction, error)
}

// MatchRepository defines the interface for match data access
type MatchRepository interface {
	// Create persists a new match
	Create(ctx context.Context, match *entities.Match) error

	// GetByID retrieves a match by its ID
	GetByID(ctx context.Context, id int64) (*entities.Match, error)

	// List returns matches, upcoming first
	List(ctx context.Context, includeSettled bool, limit int) ([]*entities.Match, error)

	// MarkSettled flips the one-way settled latch and records the result.
	// Returns false when the match was already settled, in which case
	// nothing was written.
	MarkSettled(ctx context.Context, matchID int64, winningOutcome string, scoreHome, scoreAway *int) (bool, error)
}

// BetRepository defines the interface for bet data access
type BetRepository interface {
	// Create persists a new bet
	Create(ctx context.Context, bet *entities.Bet) error

	// GetByID retrieves a bet by its ID
	GetByID(ctx context.Context, id int64) (*entities.Bet, error)

	// GetOpenByMatch returns all open bets for a match
	GetOpenByMatch(ctx context.Context, matchID int64) ([]*entities.Bet, error)

	// MarkResolved transitions a bet from open to won or lost. Returns false
	// when the bet was no longer open, in which case nothing was written.
	MarkResolved(ctx context.Context, betID int64, status entities.BetStatus) (bool, error)

	// GetByAccount returns bets for an account, newest first
	GetByAccount(ctx context.Context, accountID int64, limit int) ([]*entities.Bet, error)
}

// PromoCodeRepository defines the interface for promo code access
type PromoCodeRepository interface {
	// Create persists a new promo code
	Create(ctx context.Context, code *entities.PromoCode) error

	// GetByCodeForUpdate retrieves a promo code by its code string and locks
	// its row so concurrent redemptions of the same code serialize
	GetByCodeForUpdate(ctx context.Context, code string) (*entities.PromoCode, error)

	// HasRedemption reports whether the account already redeemed the code
	HasRedemption(ctx context.Context, codeID, accountID int64) (bool, error)

	// RecordRedemption inserts the (code, account) redemption record
	RecordRedemption(ctx context.Context, codeID, accountID int64) error

	// IncrementUses bumps the code's use counter
	IncrementUses(ctx context.Context, codeID int64) error
}

// CrashRoundRepository defines the interface for crash round history
type CrashRoundRepository interface {
	// Create persists a new round
	Create(ctx context.Context, round *entities.CrashRound) error

	// Update persists phase transitions and totals for a round
	Update(ctx context.Context, round *entities.CrashRound) error

	// GetRecent returns recently finished rounds, newest first
	GetRecent(ctx context.Context, limit int) ([]*entities.CrashRound, error)
}
