package services

import (
	"context"
	"fmt"

	"betsim/domain/entities"
	"betsim/domain/events"
	"betsim/domain/interfaces"
)

// applyBalanceChange is the single funnel for balance mutation inside a unit
// of work: it applies the atomic delta, records the ledger entry and stages a
// balance change event on the unit's transactional publisher. The delta and
// the ledger entry commit or roll back together with the caller's other
// writes.
func applyBalanceChange(
	ctx context.Context,
	uow interfaces.UnitOfWork,
	accountID int64,
	delta int64,
	entryType entities.EntryType,
	metadata map[string]any,
) (*entities.LedgerEntry, error) {
	newBalance, err := uow.Accounts().ApplyBalanceChange(ctx, accountID, delta)
	if err != nil {
		return nil, err
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
		return nil, fmt.Errorf("failed to record ledger entry: %w", err)
	}

	if err := uow.EventBus().Publish(events.BalanceChangeEvent{
		AccountID:    accountID,
		OldBalance:   entry.BalanceBefore,
		NewBalance:   entry.BalanceAfter,
		ChangeAmount: delta,
		EntryType:    entryType,
	}); err != nil {
		return nil, fmt.Errorf("failed to publish balance change event: %w", err)
	}

	return entry, nil
}
