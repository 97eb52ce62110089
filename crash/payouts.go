package crash

import (
	"context"
	"fmt"

	"betsim/domain/entities"
	"betsim/domain/events"
	"betsim/domain/interfaces"
)

// Payouts moves crash-game value through the ledger. Implementations must
// be safe for exactly-once semantics: the engine calls DebitStake once per
// accepted bet and CreditCashout once per resolved cashout.
type Payouts interface {
	DebitStake(ctx context.Context, accountID, stake int64, roundID string) error
	CreditCashout(ctx context.Context, accountID, payout int64, roundID string, multiplier float64) error
}

type ledgerPayouts struct {
	uowFactory interfaces.UnitOfWorkFactory
}

// NewLedgerPayouts creates a Payouts implementation backed by the ledger
func NewLedgerPayouts(uowFactory interfaces.UnitOfWorkFactory) Payouts {
	return &ledgerPayouts{uowFactory: uowFactory}
}

func (p *ledgerPayouts) DebitStake(ctx context.Context, accountID, stake int64, roundID string) error {
	return p.apply(ctx, accountID, -stake, entities.EntryTypeCrashStake, map[string]any{
		"round_id": roundID,
	})
}

func (p *ledgerPayouts) CreditCashout(ctx context.Context, accountID, payout int64, roundID string, multiplier float64) error {
	return p.apply(ctx, accountID, payout, entities.EntryTypeCrashCashout, map[string]any{
		"round_id":   roundID,
		"multiplier": multiplier,
	})
}

func (p *ledgerPayouts) apply(ctx context.Context, accountID, delta int64, entryType entities.EntryType, metadata map[string]any) error {
	uow := p.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	newBalance, err := uow.Accounts().ApplyBalanceChange(ctx, accountID, delta)
	if err != nil {
		return err
	}

	entry := &entities.LedgerEntry{
		AccountID:     accountID,
		BalanceBefore: newBalance - delta,
		BalanceAfter:  newBalance,
		ChangeAmount:  delta,
		EntryType:     entryType,
		Metadata:      metadata,
	}
	if err := uow.Ledger().Record(ctx, entry); err != nil {
		return fmt.Errorf("failed to record ledger entry: %w", err)
	}

	if err := uow.EventBus().Publish(events.BalanceChangeEvent{
		AccountID:    accountID,
		OldBalance:   entry.BalanceBefore,
		NewBalance:   entry.BalanceAfter,
		ChangeAmount: delta,
		EntryType:    entryType,
	}); err != nil {
		return fmt.Errorf("failed to publish balance change event: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
