package repository

import (
	"context"
	"fmt"

	"betsim/database"
	"betsim/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the interfaces.UnitOfWork interface
type unitOfWork struct {
	db                     *database.DB
	tx                     pgx.Tx
	ctx                    context.Context
	transactionalPublisher interfaces.TransactionalEventPublisher

	accountRepo     interfaces.AccountRepository
	ledgerRepo      interfaces.LedgerRepository
	transactionRepo interfaces.TransactionRepository
	matchRepo       interfaces.MatchRepository
	betRepo         interfaces.BetRepository
	promoCodeRepo   interfaces.PromoCodeRepository
	crashRoundRepo  interfaces.CrashRoundRepository
}

type unitOfWorkFactory struct {
	db        *database.DB
	publisher func() interfaces.TransactionalEventPublisher
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory. The publisher
// function is invoked once per unit of work so each one buffers its own
// events.
func NewUnitOfWorkFactory(db *database.DB, publisher func() interfaces.TransactionalEventPublisher) interfaces.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:        db,
		publisher: publisher,
	}
}

// Create returns a fresh unit of work
func (f *unitOfWorkFactory) Create() interfaces.UnitOfWork {
	return &unitOfWork{
		db:                     f.db,
		transactionalPublisher: f.publisher(),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	// Create repositories bound to the transaction
	u.accountRepo = newAccountRepository(tx)
	u.ledgerRepo = newLedgerRepository(tx)
	u.transactionRepo = newTransactionRepository(tx)
	u.matchRepo = newMatchRepository(tx)
	u.betRepo = newBetRepository(tx)
	u.promoCodeRepo = newPromoCodeRepository(tx)
	u.crashRoundRepo = newCrashRoundRepository(tx)

	return nil
}

// Commit commits the transaction
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(u.ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil

	// Flush pending events after successful commit
	if u.transactionalPublisher != nil {
		u.transactionalPublisher.Flush(u.ctx)
	}

	return nil
}

// Rollback rolls back the transaction
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil

	// Discard pending events on rollback
	if u.transactionalPublisher != nil {
		u.transactionalPublisher.Discard()
	}

	return nil
}

// Accounts returns the account repository for this unit of work
func (u *unitOfWork) Accounts() interfaces.AccountRepository {
	return u.accountRepo
}

// Ledger returns the ledger repository for this unit of work
func (u *unitOfWork) Ledger() interfaces.LedgerRepository {
	return u.ledgerRepo
}

// Transactions returns the wallet transaction repository for this unit of work
func (u *unitOfWork) Transactions() interfaces.TransactionRepository {
	return u.transactionRepo
}

// Matches returns the match repository for this unit of work
func (u *unitOfWork) Matches() interfaces.MatchRepository {
	return u.matchRepo
}

// Bets returns the bet repository for this unit of work
func (u *unitOfWork) Bets() interfaces.BetRepository {
	return u.betRepo
}

// PromoCodes returns the promo code repository for this unit of work
func (u *unitOfWork) PromoCodes() interfaces.PromoCodeRepository {
	return u.promoCodeRepo
}

// CrashRounds returns the crash round repository for this unit of work
func (u *unitOfWork) CrashRounds() interfaces.CrashRoundRepository {
	return u.crashRoundRepo
}

// EventBus returns the transactional event publisher for this unit of work
func (u *unitOfWork) EventBus() interfaces.EventPublisher {
	return u.transactionalPublisher
}
