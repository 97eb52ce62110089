package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"betsim/domain/entities"
	"betsim/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

type matchService struct {
	uowFactory interfaces.UnitOfWorkFactory
}

// NewMatchService creates a new match service
func NewMatchService(uowFactory interfaces.UnitOfWorkFactory) interfaces.MatchService {
	return &matchService{uowFactory: uowFactory}
}

// CreateMatch creates a fixture with fixed outcome odds. Odds are immutable
// from this point on; there is no update path.
func (s *matchService) CreateMatch(ctx context.Context, homeTeam, awayTeam string, outcomes map[string]float64, matchDate time.Time) (*entities.Match, error) {
	homeTeam = strings.TrimSpace(homeTeam)
	awayTeam = strings.TrimSpace(awayTeam)
	if homeTeam == "" || awayTeam == "" {
		return nil, fmt.Errorf("team names cannot be empty: %w", entities.ErrValidation)
	}
	if len(outcomes) < 2 {
		return nil, fmt.Errorf("a match needs at least 2 outcomes: %w", entities.ErrValidation)
	}
	for label, odds := range outcomes {
		if strings.TrimSpace(label) == "" {
			return nil, fmt.Errorf("outcome label cannot be empty: %w", entities.ErrValidation)
		}
		if odds <= 1.0 {
			return nil, fmt.Errorf("odds for %q must exceed 1.0: %w", label, entities.ErrValidation)
		}
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	match := &entities.Match{
		HomeTeam:  homeTeam,
		AwayTeam:  awayTeam,
		Outcomes:  outcomes,
		MatchDate: matchDate,
	}
	if err := uow.Matches().Create(ctx, match); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"matchID": match.ID,
		"home":    homeTeam,
		"away":    awayTeam,
	}).Info("Match created")

	return match, nil
}

// GetMatch retrieves a match by ID
func (s *matchService) GetMatch(ctx context.Context, matchID int64) (*entities.Match, error) {
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

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return match, nil
}

// ListMatches returns matches, upcoming first
func (s *matchService) ListMatches(ctx context.Context, includeSettled bool, limit int) ([]*entities.Match, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	matches, err := uow.Matches().List(ctx, includeSettled, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return matches, nil
}
