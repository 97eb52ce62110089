package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"betsim/domain/entities"
	"betsim/domain/events"
	"betsim/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

type promoService struct {
	uowFactory interfaces.UnitOfWorkFactory
}

// NewPromoService creates a new promo code service
func NewPromoService(uowFactory interfaces.UnitOfWorkFactory) interfaces.PromoService {
	return &promoService{uowFactory: uowFactory}
}

// Redeem credits a promo code's bonus to an account at most once. The code
// row is locked for the duration, so concurrent redemptions of the same code
// serialize and the use counter stays accurate; the unique redemption record
// enforces at-most-once per account even across retries.
func (s *promoService) Redeem(ctx context.Context, accountID int64, code string) (*interfaces.RedemptionResult, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, fmt.Errorf("code cannot be empty: %w", entities.ErrValidation)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	promo, err := uow.PromoCodes().GetByCodeForUpdate(ctx, code)
	if err != nil {
		return nil, err
	}
	if promo == nil || !promo.IsActive {
		return nil, fmt.Errorf("code %q: %w", code, entities.ErrNotFound)
	}
	if promo.IsExpired(time.Now()) {
		return nil, fmt.Errorf("code %q: %w", code, entities.ErrExpired)
	}
	if promo.LimitReached() {
		return nil, fmt.Errorf("code %q: %w", code, entities.ErrLimitReached)
	}

	account, err := uow.Accounts().GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("account %d: %w", accountID, entities.ErrNotFound)
	}

	redeemed, err := uow.PromoCodes().HasRedemption(ctx, promo.ID, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to check redemption: %w", err)
	}
	if redeemed {
		return nil, fmt.Errorf("code %q: %w", code, entities.ErrAlreadyRedeemed)
	}

	entry, err := applyBalanceChange(ctx, uow, accountID, promo.BonusAmount, entities.EntryTypePromoBonus, map[string]any{
		"code": promo.Code,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to credit bonus: %w", err)
	}

	if err := uow.PromoCodes().RecordRedemption(ctx, promo.ID, accountID); err != nil {
		return nil, fmt.Errorf("failed to record redemption: %w", err)
	}
	if err := uow.PromoCodes().IncrementUses(ctx, promo.ID); err != nil {
		return nil, fmt.Errorf("failed to increment code uses: %w", err)
	}

	if err := uow.EventBus().Publish(events.PromoCodeRedeemedEvent{
		CodeID:        promo.ID,
		Code:          promo.Code,
		AccountID:     accountID,
		BonusCredited: promo.BonusAmount,
	}); err != nil {
		return nil, fmt.Errorf("failed to publish redemption event: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"accountID": accountID,
		"code":      promo.Code,
		"bonus":     promo.BonusAmount,
	}).Info("Promo code redeemed")

	return &interfaces.RedemptionResult{
		BonusCredited: promo.BonusAmount,
		NewBalance:    entry.BalanceAfter,
	}, nil
}
