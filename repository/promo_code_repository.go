package repository

import (
	"context"
	"fmt"

	"betsim/database"
	"betsim/domain/entities"
	"betsim/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

type promoCodeRepository struct {
	q Queryable
}

// NewPromoCodeRepository creates a new promo code repository
func NewPromoCodeRepository(db *database.DB) interfaces.PromoCodeRepository {
	return &promoCodeRepository{q: db.Pool}
}

// newPromoCodeRepository creates a new promo code repository with a transaction
func newPromoCodeRepository(tx Queryable) interfaces.PromoCodeRepository {
	return &promoCodeRepository{q: tx}
}

func (r *promoCodeRepository) Create(ctx context.Context, code *entities.PromoCode) error {
	query := `
		INSERT INTO promo_codes (code, bonus_amount, max_uses, expires_at, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, current_uses, created_at
	`

	err := r.q.QueryRow(ctx, query,
		code.Code,
		code.BonusAmount,
		code.MaxUses,
		code.ExpiresAt,
		code.IsActive,
	).Scan(&code.ID, &code.CurrentUses, &code.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create promo code %s: %w", code.Code, err)
	}

	return nil
}

// GetByCodeForUpdate locks the code row so concurrent redemptions serialize
// and the max-uses check cannot be raced past.
func (r *promoCodeRepository) GetByCodeForUpdate(ctx context.Context, code string) (*entities.PromoCode, error) {
	query := `
		SELECT id, code, bonus_amount, max_uses, current_uses, expires_at, is_active, created_at
		FROM promo_codes
		WHERE code = $1
		FOR UPDATE
	`

	var promo entities.PromoCode
	err := r.q.QueryRow(ctx, query, code).Scan(
		&promo.ID,
		&promo.Code,
		&promo.BonusAmount,
		&promo.MaxUses,
		&promo.CurrentUses,
		&promo.ExpiresAt,
		&promo.IsActive,
		&promo.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get promo code %s: %w", code, err)
	}

	return &promo, nil
}

func (r *promoCodeRepository) HasRedemption(ctx context.Context, codeID, accountID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM promo_code_redemptions WHERE code_id = $1 AND account_id = $2)`

	var exists bool
	if err := r.q.QueryRow(ctx, query, codeID, accountID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check redemption of code %d by account %d: %w", codeID, accountID, err)
	}

	return exists, nil
}

func (r *promoCodeRepository) RecordRedemption(ctx context.Context, codeID, accountID int64) error {
	query := `INSERT INTO promo_code_redemptions (code_id, account_id) VALUES ($1, $2)`

	if _, err := r.q.Exec(ctx, query, codeID, accountID); err != nil {
		return fmt.Errorf("failed to record redemption of code %d by account %d: %w", codeID, accountID, err)
	}

	return nil
}

func (r *promoCodeRepository) IncrementUses(ctx context.Context, codeID int64) error {
	query := `UPDATE promo_codes SET current_uses = current_uses + 1 WHERE id = $1`

	if _, err := r.q.Exec(ctx, query, codeID); err != nil {
		return fmt.Errorf("failed to increment uses of code %d: %w", codeID, err)
	}

	return nil
}
