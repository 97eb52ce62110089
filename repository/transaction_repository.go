package repository

import (
	"context"
	"fmt"

	"betsim/database"
	"betsim/domain/entities"
	"betsim/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

type transactionRepository struct {
	q Queryable
}

// NewTransactionRepository creates a new wallet transaction repository
func NewTransactionRepository(db *database.DB) interfaces.TransactionRepository {
	return &transactionRepository{q: db.Pool}
}

// newTransactionRepository creates a new wallet transaction repository with a transaction
func newTransactionRepository(tx Queryable) interfaces.TransactionRepository {
	return &transactionRepository{q: tx}
}

const transactionColumns = `txid, account_id, kind, amount, status, payment_reference, expires_at, metadata, created_at, updated_at`

func (r *transactionRepository) Create(ctx context.Context, tx *entities.Transaction) error {
	query := `
		INSERT INTO wallet_transactions (txid, account_id, kind, amount, status, payment_reference, expires_at, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		tx.TxID,
		tx.AccountID,
		tx.Kind,
		tx.Amount,
		tx.Status,
		tx.PaymentReference,
		tx.ExpiresAt,
		tx.Metadata,
	).Scan(&tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create transaction %s: %w", tx.TxID, err)
	}

	return nil
}

func (r *transactionRepository) GetByTxID(ctx context.Context, txid string) (*entities.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM wallet_transactions WHERE txid = $1`
	return r.scanOne(ctx, query, txid)
}

// GetByTxIDForUpdate locks the transaction row until the surrounding
// database transaction ends. Concurrent confirms of the same txid queue up
// here and the second one sees the terminal status the first one wrote.
func (r *transactionRepository) GetByTxIDForUpdate(ctx context.Context, txid string) (*entities.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM wallet_transactions WHERE txid = $1 FOR UPDATE`
	return r.scanOne(ctx, query, txid)
}

func (r *transactionRepository) scanOne(ctx context.Context, query, txid string) (*entities.Transaction, error) {
	var tx entities.Transaction
	err := r.q.QueryRow(ctx, query, txid).Scan(
		&tx.TxID,
		&tx.AccountID,
		&tx.Kind,
		&tx.Amount,
		&tx.Status,
		&tx.PaymentReference,
		&tx.ExpiresAt,
		&tx.Metadata,
		&tx.CreatedAt,
		&tx.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction %s: %w", txid, err)
	}
	return &tx, nil
}

func (r *transactionRepository) TransitionStatus(ctx context.Context, txid string, from, to entities.TransactionStatus) (bool, error) {
	query := `
		UPDATE wallet_transactions
		SET status = $3, updated_at = NOW()
		WHERE txid = $1 AND status = $2
	`

	tag, err := r.q.Exec(ctx, query, txid, from, to)
	if err != nil {
		return false, fmt.Errorf("failed to transition transaction %s from %s to %s: %w", txid, from, to, err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *transactionRepository) GetByAccount(ctx context.Context, accountID int64, limit int) ([]*entities.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM wallet_transactions
		WHERE account_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions for account %d: %w", accountID, err)
	}
	defer rows.Close()

	var txs []*entities.Transaction
	for rows.Next() {
		var tx entities.Transaction
		err := rows.Scan(
			&tx.TxID,
			&tx.AccountID,
			&tx.Kind,
			&tx.Amount,
			&tx.Status,
			&tx.PaymentReference,
			&tx.ExpiresAt,
			&tx.Metadata,
			&tx.CreatedAt,
			&tx.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, &tx)
	}

	return txs, rows.Err()
}
