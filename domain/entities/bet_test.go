package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculatePotentialWin(t *testing.T) {
	tests := []struct {
		name     string
		stake    int64
		odds     float64
		expected int64
	}{
		{"whole result", 2000, 2.5, 5000},
		{"rounds half up", 1000, 2.345, 2345},
		{"rounds fractional cent", 333, 1.5, 500}, // 499.5 rounds to 500
		{"odds near one", 10000, 1.01, 10100},
		{"large stake", 5000000, 3.75, 18750000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CalculatePotentialWin(tt.stake, tt.odds))
		})
	}
}

func TestBetNetProfit(t *testing.T) {
	won := &Bet{Stake: 2000, PotentialWin: 5000, Status: BetStatusWon}
	assert.Equal(t, int64(3000), won.NetProfit())

	lost := &Bet{Stake: 2000, PotentialWin: 5000, Status: BetStatusLost}
	assert.Equal(t, int64(-2000), lost.NetProfit())

	open := &Bet{Stake: 2000, PotentialWin: 5000, Status: BetStatusOpen}
	assert.Equal(t, int64(0), open.NetProfit())
}

func TestBetStatusIsResolved(t *testing.T) {
	assert.False(t, BetStatusOpen.IsResolved())
	assert.True(t, BetStatusWon.IsResolved())
	assert.True(t, BetStatusLost.IsResolved())
}
