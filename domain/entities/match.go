package entities

import (
	"time"
)

// Match is a fixture users can bet on. Outcomes map outcome labels
// (e.g. "home", "draw", "away") to fixed odds assigned at creation; odds
// never change once a bet references them. The settled flag is a one-way
// latch flipped exactly once by settlement.
type Match struct {
	ID             int64              `db:"id"`
	HomeTeam       string             `db:"home_team"`
	AwayTeam       string             `db:"away_team"`
	Outcomes       map[string]float64 `db:"outcomes"`
	MatchDate      time.Time          `db:"match_date"`
	Settled        bool               `db:"settled"`
	WinningOutcome *string            `db:"winning_outcome"`
	ScoreHome      *int               `db:"score_home"`
	ScoreAway      *int               `db:"score_away"`
	SettledAt      *time.Time         `db:"settled_at"`
	CreatedAt      time.Time          `db:"created_at"`
}

// HasOutcome reports whether the label is one of the match's defined outcomes
func (m *Match) HasOutcome(outcome string) bool {
	_, ok := m.Outcomes[outcome]
	return ok
}

// OddsFor returns the fixed odds for an outcome label
func (m *Match) OddsFor(outcome string) (float64, bool) {
	odds, ok := m.Outcomes[outcome]
	return odds, ok
}

// AcceptsBets reports whether new bets may be placed. Betting closes at the
// match date, not only at settlement.
func (m *Match) AcceptsBets(now time.Time) bool {
	return !m.Settled && now.Before(m.MatchDate)
}
