package crash

import (
	"testing"
	"time"

	"betsim/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRound builds a round with a known crash point so tests can drive the
// clock deterministically.
func fixedRound(crashPoint float64) *round {
	return &round{
		id:         "test-round",
		crashPoint: crashPoint,
		duration:   entities.RoundDuration(crashPoint),
		phase:      entities.RoundPhaseWaiting,
		bets:       make(map[int64]*playerBet),
	}
}

func TestRound_AcceptBetPhases(t *testing.T) {
	r := fixedRound(2.0)

	require.NoError(t, r.acceptBet(1, 1000, 0))

	r.phase = entities.RoundPhaseCountdown
	require.NoError(t, r.acceptBet(2, 1000, 1.5))

	r.start(time.Now())
	err := r.acceptBet(3, 1000, 0)
	assert.ErrorIs(t, err, entities.ErrRoundNotRunning)

	assert.Equal(t, int64(2000), r.totalStaked)
}

func TestRound_AcceptBetValidation(t *testing.T) {
	r := fixedRound(2.0)

	assert.ErrorIs(t, r.acceptBet(1, 0, 0), entities.ErrValidation)
	assert.ErrorIs(t, r.acceptBet(1, -500, 0), entities.ErrValidation)
	assert.ErrorIs(t, r.acceptBet(1, 1000, 1.005), entities.ErrValidation)

	require.NoError(t, r.acceptBet(1, 1000, 0))
	// One bet per account per round
	assert.ErrorIs(t, r.acceptBet(1, 500, 0), entities.ErrValidation)
}

func TestRound_RemoveBetRestoresAccounting(t *testing.T) {
	r := fixedRound(2.0)
	require.NoError(t, r.acceptBet(1, 1000, 0))
	require.NoError(t, r.acceptBet(2, 500, 0))

	r.removeBet(1)

	assert.Equal(t, int64(500), r.totalStaked)
	assert.Len(t, r.bets, 1)

	// Removing an unknown bet is a no-op
	r.removeBet(99)
	assert.Equal(t, int64(500), r.totalStaked)
}

func TestRound_ManualCashoutPaysLiveMultiplier(t *testing.T) {
	r := fixedRound(3.0) // duration capped at 5s
	require.NoError(t, r.acceptBet(1, 1000, 0))

	start := time.Now()
	r.start(start)

	// Halfway through, the linear ramp sits at (1 + 3)/2 = 2.0
	halfway := start.Add(r.duration / 2)
	cashed, err := r.cashout(1, halfway)

	require.NoError(t, err)
	assert.InDelta(t, 2.0, cashed.multiplier, 0.001)
	assert.Equal(t, int64(2000), cashed.payout)
	assert.Equal(t, int64(2000), r.totalPaidOut)
}

func TestRound_CashoutPayoutRoundsHalfUp(t *testing.T) {
	r := fixedRound(3.0)
	require.NoError(t, r.acceptBet(1, 333, 0))

	start := time.Now()
	r.start(start)

	// A quarter in the ramp sits at 1.5; 333 * 1.5 = 499.5 rounds to 500
	cashed, err := r.cashout(1, start.Add(r.duration/4))

	require.NoError(t, err)
	assert.InDelta(t, 1.5, cashed.multiplier, 0.001)
	assert.Equal(t, int64(500), cashed.payout)
	assert.Equal(t, int64(500), r.totalPaidOut)
}

func TestRound_DoubleCashoutRejected(t *testing.T) {
	r := fixedRound(3.0)
	require.NoError(t, r.acceptBet(1, 1000, 0))

	start := time.Now()
	r.start(start)
	halfway := start.Add(r.duration / 2)

	_, err := r.cashout(1, halfway)
	require.NoError(t, err)

	_, err = r.cashout(1, halfway.Add(10*time.Millisecond))
	assert.ErrorIs(t, err, entities.ErrAlreadyCashedOut)
}

func TestRound_CashoutAtCrashPointRejected(t *testing.T) {
	r := fixedRound(2.0)
	require.NoError(t, r.acceptBet(1, 1000, 0))

	start := time.Now()
	r.start(start)

	// At or past the full duration the multiplier has reached the crash point
	_, err := r.cashout(1, start.Add(r.duration))
	assert.ErrorIs(t, err, entities.ErrRoundNotRunning)
	assert.Equal(t, int64(0), r.totalPaidOut)
}

func TestRound_CashoutWithoutBet(t *testing.T) {
	r := fixedRound(2.0)
	start := time.Now()
	r.start(start)

	_, err := r.cashout(42, start.Add(time.Millisecond))
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestRound_AdvanceAutoCashoutBeforeCrash(t *testing.T) {
	r := fixedRound(2.0)
	require.NoError(t, r.acceptBet(1, 1000, 1.5))
	require.NoError(t, r.acceptBet(2, 1000, 0))

	start := time.Now()
	r.start(start)

	// Multiplier 1.5 lands at half the ramp for a 2.0 crash point
	tick := start.Add(r.duration / 2)
	autos, crashed := r.advance(tick)

	assert.False(t, crashed)
	require.Len(t, autos, 1)
	assert.Equal(t, int64(1), autos[0].accountID)
	// Paid at the requested threshold, not the live overshoot
	assert.Equal(t, 1.5, autos[0].multiplier)
	assert.Equal(t, int64(1500), autos[0].payout)
}

func TestRound_AdvanceAutoCashoutOnCrashTickStillWins(t *testing.T) {
	r := fixedRound(2.0)
	require.NoError(t, r.acceptBet(1, 1000, 2.0))

	start := time.Now()
	r.start(start)

	// The crash tick processes thresholds before the crash test
	autos, crashed := r.advance(start.Add(r.duration))

	assert.True(t, crashed)
	require.Len(t, autos, 1)
	assert.Equal(t, int64(2000), autos[0].payout)
	assert.Equal(t, entities.RoundPhaseCrashed, r.phase)
}

func TestRound_AdvanceCrashForfeitsUncashedBets(t *testing.T) {
	r := fixedRound(2.0)
	require.NoError(t, r.acceptBet(1, 1000, 0))
	require.NoError(t, r.acceptBet(2, 1000, 5.0)) // threshold above crash point

	start := time.Now()
	r.start(start)

	autos, crashed := r.advance(start.Add(r.duration))

	assert.True(t, crashed)
	assert.Empty(t, autos)
	assert.Equal(t, int64(0), r.totalPaidOut)
}

func TestRound_AdvanceBeforeRunningIsNoOp(t *testing.T) {
	r := fixedRound(2.0)
	require.NoError(t, r.acceptBet(1, 1000, 1.5))

	autos, crashed := r.advance(time.Now())

	assert.Empty(t, autos)
	assert.False(t, crashed)
	assert.Equal(t, entities.RoundPhaseWaiting, r.phase)
}

func TestRound_Record(t *testing.T) {
	r := fixedRound(2.5)
	require.NoError(t, r.acceptBet(1, 1000, 0))

	rec := r.record()
	assert.Equal(t, "test-round", rec.ID)
	assert.Equal(t, 2.5, rec.CrashPoint)
	assert.Equal(t, entities.RoundPhaseWaiting, rec.Phase)
	assert.Equal(t, int64(1000), rec.TotalStaked)
	assert.Nil(t, rec.StartedAt)
	assert.Nil(t, rec.CrashedAt)

	start := time.Now()
	r.start(start)
	r.advance(start.Add(r.duration))

	rec = r.record()
	require.NotNil(t, rec.StartedAt)
	require.NotNil(t, rec.CrashedAt)
	assert.Equal(t, entities.RoundPhaseCrashed, rec.Phase)
}
