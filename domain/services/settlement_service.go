package services

import (
	"context"
	"fmt"
	"sync"

	"betsim/domain/entities"
	"betsim/domain/events"
	"betsim/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// settlementWorkers bounds how many bets are resolved concurrently. Bets of
// different accounts are independent; per-account serialization happens at
// the ledger row.
const settlementWorkers = 8

type settlementService struct {
	uowFactory interfaces.UnitOfWorkFactory
	publisher  interfaces.EventPublisher
}

// NewSettlementService creates a new match settlement service
func NewSettlementService(uowFactory interfaces.UnitOfWorkFactory, publisher interfaces.EventPublisher) interfaces.SettlementService {
	return &settlementService{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Settle resolves a finished match. The settled latch is flipped first, in
// its own committed transaction, so a concurrent duplicate call observes the
// guard before any bet is touched. Each bet is then resolved independently;
// one bad bet is logged and skipped, never aborting the batch.
func (s *settlementService) Settle(ctx context.Context, matchID int64, winningOutcome string, scoreHome, scoreAway *int) (*interfaces.SettlementResult, error) {
	bets, err := s.latchAndLoad(ctx, matchID, winningOutcome, scoreHome, scoreAway)
	if err != nil {
		return nil, err
	}

	// The latch is committed; from here the batch must run to completion. A
	// caller disconnect must not strand open bets of a settled match, since
	// MarkSettled's guard blocks any retry.
	ctx = context.WithoutCancel(ctx)

	result := &interfaces.SettlementResult{
		MatchID:        matchID,
		WinningOutcome: winningOutcome,
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, settlementWorkers)

	for _, bet := range bets {
		wg.Add(1)
		sem <- struct{}{}
		go func(bet *entities.Bet) {
			defer wg.Done()
			defer func() { <-sem }()

			won := bet.Outcome == winningOutcome
			paidOut, err := s.resolveBet(ctx, bet, won)
			if err != nil {
				log.WithFields(log.Fields{
					"betID":   bet.ID,
					"matchID": matchID,
					"error":   err,
				}).Error("Failed to resolve bet during settlement, skipping")
				return
			}

			mu.Lock()
			result.BetsProcessed++
			if won {
				result.Winners++
				result.TotalPaidOut += paidOut
			} else {
				result.Losers++
			}
			mu.Unlock()
		}(bet)
	}
	wg.Wait()

	if err := s.publisher.Publish(events.MatchSettledEvent{
		MatchID:        matchID,
		WinningOutcome: winningOutcome,
		BetsProcessed:  result.BetsProcessed,
		Winners:        result.Winners,
		Losers:         result.Losers,
		TotalPaidOut:   result.TotalPaidOut,
	}); err != nil {
		log.WithFields(log.Fields{"matchID": matchID, "error": err}).
			Error("Failed to publish match settled event")
	}

	log.WithFields(log.Fields{
		"matchID":        matchID,
		"winningOutcome": winningOutcome,
		"betsProcessed":  result.BetsProcessed,
		"winners":        result.Winners,
		"losers":         result.Losers,
		"totalPaidOut":   result.TotalPaidOut,
	}).Info("Match settled")

	return result, nil
}

// latchAndLoad flips the settled latch and returns the open bets to resolve
func (s *settlementService) latchAndLoad(ctx context.Context, matchID int64, winningOutcome string, scoreHome, scoreAway *int) ([]*entities.Bet, error) {
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
	if !match.HasOutcome(winningOutcome) {
		return nil, fmt.Errorf("match %d has no outcome %q: %w", matchID, winningOutcome, entities.ErrInvalidOutcome)
	}

	flipped, err := uow.Matches().MarkSettled(ctx, matchID, winningOutcome, scoreHome, scoreAway)
	if err != nil {
		return nil, fmt.Errorf("failed to mark match %d settled: %w", matchID, err)
	}
	if !flipped {
		return nil, fmt.Errorf("match %d: %w", matchID, entities.ErrAlreadySettled)
	}

	bets, err := uow.Bets().GetOpenByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load open bets for match %d: %w", matchID, err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return bets, nil
}

// resolveBet flips one bet's status and, for winners, credits the frozen
// potential win. Both writes share one database transaction so a
// half-applied state (credited but still open, or won but never credited)
// cannot be observed. Returns the amount paid out.
func (s *settlementService) resolveBet(ctx context.Context, bet *entities.Bet, won bool) (int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	status := entities.BetStatusLost
	if won {
		status = entities.BetStatusWon
	}

	flipped, err := uow.Bets().MarkResolved(ctx, bet.ID, status)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve bet %d: %w", bet.ID, err)
	}
	if !flipped {
		// Already resolved by an earlier attempt; nothing to pay
		if err := uow.Commit(); err != nil {
			return 0, fmt.Errorf("failed to commit transaction: %w", err)
		}
		return 0, nil
	}

	var paidOut int64
	if won {
		if _, err := applyBalanceChange(ctx, uow, bet.AccountID, bet.PotentialWin, entities.EntryTypeBetWin, map[string]any{
			"bet_id":   bet.ID,
			"match_id": bet.MatchID,
		}); err != nil {
			return 0, fmt.Errorf("failed to credit winnings for bet %d: %w", bet.ID, err)
		}
		paidOut = bet.PotentialWin
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return paidOut, nil
}
