package repository

import (
	"context"
	"fmt"

	"betsim/database"
	"betsim/domain/entities"
	"betsim/domain/interfaces"
)

type crashRoundRepository struct {
	q Queryable
}

// NewCrashRoundRepository creates a new crash round repository
func NewCrashRoundRepository(db *database.DB) interfaces.CrashRoundRepository {
	return &crashRoundRepository{q: db.Pool}
}

// newCrashRoundRepository creates a new crash round repository with a transaction
func newCrashRoundRepository(tx Queryable) interfaces.CrashRoundRepository {
	return &crashRoundRepository{q: tx}
}

func (r *crashRoundRepository) Create(ctx context.Context, round *entities.CrashRound) error {
	query := `
		INSERT INTO crash_rounds (id, crash_point, phase, started_at, crashed_at, total_staked, total_paid_out)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	err := r.q.QueryRow(ctx, query,
		round.ID,
		round.CrashPoint,
		round.Phase,
		round.StartedAt,
		round.CrashedAt,
		round.TotalStaked,
		round.TotalPaidOut,
	).Scan(&round.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create crash round %s: %w", round.ID, err)
	}

	return nil
}

func (r *crashRoundRepository) Update(ctx context.Context, round *entities.CrashRound) error {
	query := `
		UPDATE crash_rounds
		SET phase = $2, started_at = $3, crashed_at = $4, total_staked = $5, total_paid_out = $6
		WHERE id = $1
	`

	tag, err := r.q.Exec(ctx, query,
		round.ID,
		round.Phase,
		round.StartedAt,
		round.CrashedAt,
		round.TotalStaked,
		round.TotalPaidOut,
	)
	if err != nil {
		return fmt.Errorf("failed to update crash round %s: %w", round.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("crash round %s: %w", round.ID, entities.ErrNotFound)
	}

	return nil
}

func (r *crashRoundRepository) GetRecent(ctx context.Context, limit int) ([]*entities.CrashRound, error) {
	query := `
		SELECT id, crash_point, phase, started_at, crashed_at, total_staked, total_paid_out, created_at
		FROM crash_rounds
		WHERE phase = 'crashed'
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent crash rounds: %w", err)
	}
	defer rows.Close()

	var rounds []*entities.CrashRound
	for rows.Next() {
		var round entities.CrashRound
		err := rows.Scan(
			&round.ID,
			&round.CrashPoint,
			&round.Phase,
			&round.StartedAt,
			&round.CrashedAt,
			&round.TotalStaked,
			&round.TotalPaidOut,
			&round.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan crash round: %w", err)
		}
		rounds = append(rounds, &round)
	}

	return rounds, rows.Err()
}
