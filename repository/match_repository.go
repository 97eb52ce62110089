package repository

import (
	"context"
	"fmt"

	"betsim/database"
	"betsim/domain/entities"
	"betsim/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

type matchRepository struct {
	q Queryable
}

// NewMatchRepository creates a new match repository
func NewMatchRepository(db *database.DB) interfaces.MatchRepository {
	return &matchRepository{q: db.Pool}
}

// newMatchRepository creates a new match repository with a transaction
func newMatchRepository(tx Queryable) interfaces.MatchRepository {
	return &matchRepository{q: tx}
}

const matchColumns = `id, home_team, away_team, outcomes, match_date, settled, winning_outcome, score_home, score_away, settled_at, created_at`

func (r *matchRepository) Create(ctx context.Context, match *entities.Match) error {
	query := `
		INSERT INTO matches (home_team, away_team, outcomes, match_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, settled, created_at
	`

	err := r.q.QueryRow(ctx, query,
		match.HomeTeam,
		match.AwayTeam,
		match.Outcomes,
		match.MatchDate,
	).Scan(&match.ID, &match.Settled, &match.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create match %s vs %s: %w", match.HomeTeam, match.AwayTeam, err)
	}

	return nil
}

func (r *matchRepository) GetByID(ctx context.Context, id int64) (*entities.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	match, err := scanMatch(r.q.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match %d: %w", id, err)
	}

	return match, nil
}

func (r *matchRepository) List(ctx context.Context, includeSettled bool, limit int) ([]*entities.Match, error) {
	query := `
		SELECT ` + matchColumns + `
		FROM matches
		WHERE settled = FALSE OR $1
		ORDER BY match_date ASC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, includeSettled, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	var matches []*entities.Match
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, match)
	}

	return matches, rows.Err()
}

// MarkSettled is the one-way settlement latch. The WHERE clause only hits
// unsettled rows, so of any number of concurrent settle calls exactly one
// gets a row back.
func (r *matchRepository) MarkSettled(ctx context.Context, matchID int64, winningOutcome string, scoreHome, scoreAway *int) (bool, error) {
	query := `
		UPDATE matches
		SET settled = TRUE, winning_outcome = $2, score_home = $3, score_away = $4, settled_at = NOW()
		WHERE id = $1 AND settled = FALSE
	`

	tag, err := r.q.Exec(ctx, query, matchID, winningOutcome, scoreHome, scoreAway)
	if err != nil {
		return false, fmt.Errorf("failed to settle match %d: %w", matchID, err)
	}

	return tag.RowsAffected() > 0, nil
}

func scanMatch(row pgx.Row) (*entities.Match, error) {
	var match entities.Match
	err := row.Scan(
		&match.ID,
		&match.HomeTeam,
		&match.AwayTeam,
		&match.Outcomes,
		&match.MatchDate,
		&match.Settled,
		&match.WinningOutcome,
		&match.ScoreHome,
		&match.ScoreAway,
		&match.SettledAt,
		&match.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &match, nil
}
