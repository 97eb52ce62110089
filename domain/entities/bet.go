package entities

import (
	"math"
	"time"
)

// BetStatus is the lifecycle state of a bet. A bet transitions open to won
// or open to lost exactly once, driven only by its match's settlement.
type BetStatus string

const (
	BetStatusOpen BetStatus = "open"
	BetStatusWon  BetStatus = "won"
	BetStatusLost BetStatus = "lost"
)

// IsResolved returns true once the bet has reached a terminal status
func (s BetStatus) IsResolved() bool {
	return s == BetStatusWon || s == BetStatusLost
}

// String returns the string representation of the status
func (s BetStatus) String() string {
	return string(s)
}

// Bet is a stake placed against one outcome of a match at fixed odds.
// Odds are copied from the match at placement time and never change.
type Bet struct {
	ID            int64     `db:"id"`
	AccountID     int64     `db:"account_id"`
	MatchID       int64     `db:"match_id"`
	Outcome       string    `db:"outcome"`
	Stake         int64     `db:"stake"`
	Odds          float64   `db:"odds"`
	PotentialWin  int64     `db:"potential_win"`
	Status        BetStatus `db:"status"`
	LedgerEntryID *int64    `db:"ledger_entry_id"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// CalculatePotentialWin computes the frozen payout for a stake at given odds
func CalculatePotentialWin(stake int64, odds float64) int64 {
	return int64(math.Round(float64(stake) * odds))
}

// NetProfit returns the profit or loss realized by this bet
func (b *Bet) NetProfit() int64 {
	switch b.Status {
	case BetStatusWon:
		return b.PotentialWin - b.Stake
	case BetStatusLost:
		return -b.Stake
	}
	return 0
}
