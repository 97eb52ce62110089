package repository

import (
	"context"
	"fmt"

	"betsim/database"
	"betsim/domain/entities"
	"betsim/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

type accountRepository struct {
	q Queryable
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *database.DB) interfaces.AccountRepository {
	return &accountRepository{q: db.Pool}
}

// newAccountRepository creates a new account repository with a transaction
func newAccountRepository(tx Queryable) interfaces.AccountRepository {
	return &accountRepository{q: tx}
}

func (r *accountRepository) GetByID(ctx context.Context, id int64) (*entities.Account, error) {
	query := `
		SELECT id, username, balance, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`

	var account entities.Account
	err := r.q.QueryRow(ctx, query, id).Scan(
		&account.ID,
		&account.Username,
		&account.Balance,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account %d: %w", id, err)
	}

	return &account, nil
}

func (r *accountRepository) GetByUsername(ctx context.Context, username string) (*entities.Account, error) {
	query := `
		SELECT id, username, balance, created_at, updated_at
		FROM accounts
		WHERE username = $1
	`

	var account entities.Account
	err := r.q.QueryRow(ctx, query, username).Scan(
		&account.ID,
		&account.Username,
		&account.Balance,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account %q: %w", username, err)
	}

	return &account, nil
}

func (r *accountRepository) Create(ctx context.Context, username string, initialBalance int64) (*entities.Account, error) {
	query := `
		INSERT INTO accounts (username, balance)
		VALUES ($1, $2)
		RETURNING id, username, balance, created_at, updated_at
	`

	var account entities.Account
	err := r.q.QueryRow(ctx, query, username, initialBalance).Scan(
		&account.ID,
		&account.Username,
		&account.Balance,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create account %q: %w", username, err)
	}

	return &account, nil
}

// ApplyBalanceChange applies the delta in a single guarded UPDATE. The
// balance check lives in the WHERE clause, so two concurrent debits can
// never both pass a stale read: the row lock serializes them and the loser
// sees the already-reduced balance.
func (r *accountRepository) ApplyBalanceChange(ctx context.Context, accountID int64, delta int64) (int64, error) {
	query := `
		UPDATE accounts
		SET balance = balance + $2, updated_at = NOW()
		WHERE id = $1 AND balance + $2 >= 0
		RETURNING balance
	`

	var newBalance int64
	err := r.q.QueryRow(ctx, query, accountID, delta).Scan(&newBalance)
	if err == pgx.ErrNoRows {
		// Either the account is missing or the guard rejected the debit
		exists, existsErr := r.exists(ctx, accountID)
		if existsErr != nil {
			return 0, existsErr
		}
		if !exists {
			return 0, fmt.Errorf("account %d: %w", accountID, entities.ErrNotFound)
		}
		return 0, fmt.Errorf("account %d cannot cover %d: %w", accountID, -delta, entities.ErrInsufficientFunds)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to apply balance change to account %d: %w", accountID, err)
	}

	return newBalance, nil
}

func (r *accountRepository) exists(ctx context.Context, accountID int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1)`, accountID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check account %d: %w", accountID, err)
	}
	return exists, nil
}
