package services

import (
	"context"
	"fmt"
	"time"

	"betsim/domain/entities"
	"betsim/domain/events"
	"betsim/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

type bettingService struct {
	uowFactory interfaces.UnitOfWorkFactory
}

// NewBettingService creates a new betting service
func NewBettingService(uowFactory interfaces.UnitOfWorkFactory) interfaces.BettingService {
	return &bettingService{uowFactory: uowFactory}
}

// PlaceBet validates the bet, debits the stake and records the bet as one
// unit: all writes share a single database transaction, so a failure at any
// point rolls the debit back with everything else.
func (s *bettingService) PlaceBet(ctx context.Context, accountID, matchID int64, outcome string, stake int64) (*entities.Bet, error) {
	if stake <= 0 {
		return nil, fmt.Errorf("stake must be positive: %w", entities.ErrValidation)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	match, err := uow.Matches().GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if match == nil {
		return nil, fmt.Errorf("match %d: %w", matchID, entities.ErrNotFound)
	}
	if !match.AcceptsBets(time.Now()) {
		return nil, fmt.Errorf("match %d: %w", matchID, entities.ErrMatchClosed)
	}

	odds, ok := match.OddsFor(outcome)
	if !ok {
		return nil, fmt.Errorf("match %d has no outcome %q: %w", matchID, outcome, entities.ErrInvalidOutcome)
	}

	account, err := uow.Accounts().GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("account %d: %w", accountID, entities.ErrNotFound)
	}

	entry, err := applyBalanceChange(ctx, uow, accountID, -stake, entities.EntryTypeBetStake, map[string]any{
		"match_id": matchID,
		"outcome":  outcome,
	})
	if err != nil {
		return nil, err
	}

	bet := &entities.Bet{
		AccountID:     accountID,
		MatchID:       matchID,
		Outcome:       outcome,
		Stake:         stake,
		Odds:          odds,
		PotentialWin:  entities.CalculatePotentialWin(stake, odds),
		Status:        entities.BetStatusOpen,
		LedgerEntryID: &entry.ID,
	}
	if err := uow.Bets().Create(ctx, bet); err != nil {
		return nil, fmt.Errorf("failed to persist bet: %w", err)
	}

	if err := uow.EventBus().Publish(events.BetPlacedEvent{
		BetID:        bet.ID,
		AccountID:    accountID,
		MatchID:      matchID,
		Outcome:      outcome,
		Stake:        stake,
		Odds:         odds,
		PotentialWin: bet.PotentialWin,
	}); err != nil {
		return nil, fmt.Errorf("failed to publish bet placed event: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"betID":        bet.ID,
		"accountID":    accountID,
		"matchID":      matchID,
		"outcome":      outcome,
		"stake":        stake,
		"odds":         odds,
		"potentialWin": bet.PotentialWin,
	}).Info("Bet placed")

	return bet, nil
}

// GetBets returns an account's bets, newest first
func (s *bettingService) GetBets(ctx context.Context, accountID int64, limit int) ([]*entities.Bet, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	bets, err := uow.Bets().GetByAccount(ctx, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get bets: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return bets, nil
}
