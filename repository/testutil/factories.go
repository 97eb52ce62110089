package testutil

import (
	"time"

	"betsim/domain/entities"

	"github.com/google/uuid"
)

// CreateTestMatch creates an unsettled match with default 1X2 odds
func CreateTestMatch(homeTeam, awayTeam string) *entities.Match {
	return &entities.Match{
		HomeTeam: homeTeam,
		AwayTeam: awayTeam,
		Outcomes: map[string]float64{
			"home": 2.5,
			"draw": 3.2,
			"away": 2.8,
		},
		MatchDate: time.Now().Add(24 * time.Hour),
	}
}

// CreateTestMatchWithOdds creates a match with the given outcomes
func CreateTestMatchWithOdds(homeTeam, awayTeam string, outcomes map[string]float64) *entities.Match {
	match := CreateTestMatch(homeTeam, awayTeam)
	match.Outcomes = outcomes
	return match
}

// CreateTestBet creates an open bet with the potential win derived from
// stake and odds
func CreateTestBet(accountID, matchID int64, outcome string, stake int64, odds float64) *entities.Bet {
	return &entities.Bet{
		AccountID:    accountID,
		MatchID:      matchID,
		Outcome:      outcome,
		Stake:        stake,
		Odds:         odds,
		PotentialWin: entities.CalculatePotentialWin(stake, odds),
		Status:       entities.BetStatusOpen,
	}
}

// CreateTestDeposit creates a pending deposit transaction
func CreateTestDeposit(accountID, amount int64) *entities.Transaction {
	expires := time.Now().Add(15 * time.Minute)
	return &entities.Transaction{
		TxID:             uuid.New().String(),
		AccountID:        accountID,
		Kind:             entities.TransactionKindDeposit,
		Amount:           amount,
		Status:           entities.TransactionStatusPending,
		PaymentReference: "PAY-" + uuid.New().String()[:8],
		ExpiresAt:        &expires,
	}
}

// CreateTestWithdraw creates a pending withdrawal transaction
func CreateTestWithdraw(accountID, amount int64) *entities.Transaction {
	return &entities.Transaction{
		TxID:      uuid.New().String(),
		AccountID: accountID,
		Kind:      entities.TransactionKindWithdraw,
		Amount:    amount,
		Status:    entities.TransactionStatusPending,
	}
}

// CreateTestPromoCode creates an active promo code
func CreateTestPromoCode(code string, bonusAmount int64) *entities.PromoCode {
	return &entities.PromoCode{
		Code:        code,
		BonusAmount: bonusAmount,
		IsActive:    true,
	}
}

// CreateTestCrashRound creates a finished crash round
func CreateTestCrashRound(crashPoint float64) *entities.CrashRound {
	started := time.Now().Add(-10 * time.Second)
	crashed := time.Now()
	return &entities.CrashRound{
		ID:         uuid.New().String(),
		CrashPoint: crashPoint,
		Phase:      entities.RoundPhaseCrashed,
		StartedAt:  &started,
		CrashedAt:  &crashed,
	}
}
