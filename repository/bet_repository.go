package repository

import (
	"context"
	"fmt"

	"betsim/database"
	"betsim/domain/entities"
	"betsim/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

type betRepository struct {
	q Queryable
}

// NewBetRepository creates a new bet repository
func NewBetRepository(db *database.DB) interfaces.BetRepository {
	return &betRepository{q: db.Pool}
}

// newBetRepository creates a new bet repository with a transaction
func newBetRepository(tx Queryable) interfaces.BetRepository {
	return &betRepository{q: tx}
}

const betColumns = `id, account_id, match_id, outcome, stake, odds, potential_win, status, ledger_entry_id, created_at, updated_at`

func (r *betRepository) Create(ctx context.Context, bet *entities.Bet) error {
	query := `
		INSERT INTO bets (account_id, match_id, outcome, stake, odds, potential_win, status, ledger_entry_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		bet.AccountID,
		bet.MatchID,
		bet.Outcome,
		bet.Stake,
		bet.Odds,
		bet.PotentialWin,
		bet.Status,
		bet.LedgerEntryID,
	).Scan(&bet.ID, &bet.CreatedAt, &bet.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create bet for account %d on match %d: %w", bet.AccountID, bet.MatchID, err)
	}

	return nil
}

func (r *betRepository) GetByID(ctx context.Context, id int64) (*entities.Bet, error) {
	query := `SELECT ` + betColumns + ` FROM bets WHERE id = $1`

	bet, err := scanBet(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bet %d: %w", id, err)
	}

	return bet, nil
}

func (r *betRepository) GetOpenByMatch(ctx context.Context, matchID int64) ([]*entities.Bet, error) {
	query := `
		SELECT ` + betColumns + `
		FROM bets
		WHERE match_id = $1 AND status = 'open'
		ORDER BY id ASC
	`

	rows, err := r.q.Query(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get open bets for match %d: %w", matchID, err)
	}
	defer rows.Close()

	var bets []*entities.Bet
	for rows.Next() {
		bet, err := scanBet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bet: %w", err)
		}
		bets = append(bets, bet)
	}

	return bets, rows.Err()
}

// MarkResolved only touches bets still open, so a bet resolves at most once
// no matter how many settlement workers see it.
func (r *betRepository) MarkResolved(ctx context.Context, betID int64, status entities.BetStatus) (bool, error) {
	query := `
		UPDATE bets
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'open'
	`

	tag, err := r.q.Exec(ctx, query, betID, status)
	if err != nil {
		return false, fmt.Errorf("failed to resolve bet %d as %s: %w", betID, status, err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *betRepository) GetByAccount(ctx context.Context, accountID int64, limit int) ([]*entities.Bet, error) {
	query := `
		SELECT ` + betColumns + `
		FROM bets
		WHERE account_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get bets for account %d: %w", accountID, err)
	}
	defer rows.Close()

	var bets []*entities.Bet
	for rows.Next() {
		bet, err := scanBet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bet: %w", err)
		}
		bets = append(bets, bet)
	}

	return bets, rows.Err()
}

func scanBet(row pgx.Row) (*entities.Bet, error) {
	var bet entities.Bet
	err := row.Scan(
		&bet.ID,
		&bet.AccountID,
		&bet.MatchID,
		&bet.Outcome,
		&bet.Stake,
		&bet.Odds,
		&bet.PotentialWin,
		&bet.Status,
		&bet.LedgerEntryID,
		&bet.CreatedAt,
		&bet.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &bet, nil
}
