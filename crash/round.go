package crash

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"betsim/domain/entities"

	"github.com/google/uuid"
)

// playerBet is one account's stake in a round. All access happens on the
// round's owning goroutine, so no locking is needed here.
type playerBet struct {
	accountID         int64
	stake             int64
	autoCashout       float64 // 0 means no auto-cashout threshold
	cashedOut         bool
	cashoutMultiplier float64
}

// round holds the live state of one crash round. The crash point is sampled
// once at construction and never recomputed; nothing a player does can move
// it.
type round struct {
	id         string
	crashPoint float64
	duration   time.Duration
	phase      entities.RoundPhase
	startedAt  time.Time
	crashedAt  time.Time
	bets       map[int64]*playerBet

	totalStaked  int64
	totalPaidOut int64
}

func newRound(houseEdge float64, rng *rand.Rand) *round {
	crashPoint := GenerateCrashPoint(houseEdge, rng)
	return &round{
		id:         uuid.New().String(),
		crashPoint: crashPoint,
		duration:   entities.RoundDuration(crashPoint),
		phase:      entities.RoundPhaseWaiting,
		bets:       make(map[int64]*playerBet),
	}
}

// acceptBet registers a stake while the round has not started flying.
// One bet per account per round.
func (r *round) acceptBet(accountID, stake int64, autoCashout float64) error {
	if r.phase != entities.RoundPhaseWaiting && r.phase != entities.RoundPhaseCountdown {
		return fmt.Errorf("round %s: %w", r.id, entities.ErrRoundNotRunning)
	}
	if stake <= 0 {
		return fmt.Errorf("stake must be positive: %w", entities.ErrValidation)
	}
	if autoCashout != 0 && autoCashout < MinCrashPoint {
		return fmt.Errorf("auto-cashout below %.2f: %w", MinCrashPoint, entities.ErrValidation)
	}
	if _, exists := r.bets[accountID]; exists {
		return fmt.Errorf("account %d already bet this round: %w", accountID, entities.ErrValidation)
	}
	r.bets[accountID] = &playerBet{
		accountID:   accountID,
		stake:       stake,
		autoCashout: autoCashout,
	}
	r.totalStaked += stake
	return nil
}

// removeBet undoes an accepted bet whose stake could not be taken
func (r *round) removeBet(accountID int64) {
	bet, ok := r.bets[accountID]
	if !ok {
		return
	}
	r.totalStaked -= bet.stake
	delete(r.bets, accountID)
}

// start moves the round into the running phase
func (r *round) start(now time.Time) {
	r.phase = entities.RoundPhaseRunning
	r.startedAt = now
}

// multiplierAt returns the live multiplier at the given instant, capped at
// the crash point
func (r *round) multiplierAt(now time.Time) float64 {
	return entities.MultiplierAt(r.crashPoint, now.Sub(r.startedAt), r.duration)
}

// cashedOutBet is an auto-cashout resolved during a tick
type cashedOutBet struct {
	accountID  int64
	stake      int64
	multiplier float64
	payout     int64
}

// advance processes one clock tick: auto-cashout thresholds are honored
// first, then the crash test runs. A player whose threshold lands exactly on
// the crash boundary therefore still wins. Returns the resolved
// auto-cashouts and whether the round crashed on this tick.
func (r *round) advance(now time.Time) (autoCashouts []cashedOutBet, crashed bool) {
	if r.phase != entities.RoundPhaseRunning {
		return nil, false
	}

	multiplier := r.multiplierAt(now)

	for _, bet := range r.bets {
		if bet.cashedOut || bet.autoCashout == 0 {
			continue
		}
		if multiplier >= bet.autoCashout {
			// Pay at the requested threshold, not the overshoot
			autoCashouts = append(autoCashouts, r.settleCashout(bet, bet.autoCashout))
		}
	}

	if multiplier >= r.crashPoint {
		r.phase = entities.RoundPhaseCrashed
		r.crashedAt = now
		crashed = true
	}
	return autoCashouts, crashed
}

// cashout resolves a manual cashout request. It is honored iff the round is
// still running and the live multiplier is strictly below the crash point;
// a second cashout of the same bet is rejected.
func (r *round) cashout(accountID int64, now time.Time) (cashedOutBet, error) {
	if r.phase != entities.RoundPhaseRunning {
		return cashedOutBet{}, fmt.Errorf("round %s: %w", r.id, entities.ErrRoundNotRunning)
	}
	bet, ok := r.bets[accountID]
	if !ok {
		return cashedOutBet{}, fmt.Errorf("account %d has no bet this round: %w", accountID, entities.ErrNotFound)
	}
	if bet.cashedOut {
		return cashedOutBet{}, fmt.Errorf("account %d: %w", accountID, entities.ErrAlreadyCashedOut)
	}

	multiplier := r.multiplierAt(now)
	if multiplier >= r.crashPoint {
		return cashedOutBet{}, fmt.Errorf("round %s already at crash point: %w", r.id, entities.ErrRoundNotRunning)
	}

	return r.settleCashout(bet, multiplier), nil
}

// settleCashout marks the bet cashed out and computes its payout, rounded
// half up like fixed-odds winnings
func (r *round) settleCashout(bet *playerBet, multiplier float64) cashedOutBet {
	bet.cashedOut = true
	bet.cashoutMultiplier = multiplier
	payout := int64(math.Round(float64(bet.stake) * multiplier))
	r.totalPaidOut += payout
	return cashedOutBet{
		accountID:  bet.accountID,
		stake:      bet.stake,
		multiplier: multiplier,
		payout:     payout,
	}
}

// record converts the round into its persisted form
func (r *round) record() *entities.CrashRound {
	rec := &entities.CrashRound{
		ID:           r.id,
		CrashPoint:   r.crashPoint,
		Phase:        r.phase,
		TotalStaked:  r.totalStaked,
		TotalPaidOut: r.totalPaidOut,
	}
	if !r.startedAt.IsZero() {
		startedAt := r.startedAt
		rec.StartedAt = &startedAt
	}
	if !r.crashedAt.IsZero() {
		crashedAt := r.crashedAt
		rec.CrashedAt = &crashedAt
	}
	return rec
}
