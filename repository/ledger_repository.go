package repository

import (
	"context"
	"fmt"

	"betsim/database"
	"betsim/domain/entities"
	"betsim/domain/interfaces"
)

type ledgerRepository struct {
	q Queryable
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(db *database.DB) interfaces.LedgerRepository {
	return &ledgerRepository{q: db.Pool}
}

// newLedgerRepository creates a new ledger repository with a transaction
func newLedgerRepository(tx Queryable) interfaces.LedgerRepository {
	return &ledgerRepository{q: tx}
}

func (r *ledgerRepository) Record(ctx context.Context, entry *entities.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (account_id, balance_before, balance_after, change_amount, entry_type, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		entry.AccountID,
		entry.BalanceBefore,
		entry.BalanceAfter,
		entry.ChangeAmount,
		entry.EntryType,
		entry.Metadata,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record ledger entry for account %d: %w", entry.AccountID, err)
	}

	return nil
}

func (r *ledgerRepository) GetByAccount(ctx context.Context, accountID int64, limit int) ([]*entities.LedgerEntry, error) {
	query := `
		SELECT id, account_id, balance_before, balance_after, change_amount, entry_type, metadata, created_at
		FROM ledger_entries
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger entries for account %d: %w", accountID, err)
	}
	defer rows.Close()

	var entries []*entities.LedgerEntry
	for rows.Next() {
		var entry entities.LedgerEntry
		err := rows.Scan(
			&entry.ID,
			&entry.AccountID,
			&entry.BalanceBefore,
			&entry.BalanceAfter,
			&entry.ChangeAmount,
			&entry.EntryType,
			&entry.Metadata,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
