package crash

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"betsim/domain/entities"
	"betsim/domain/events"
	"betsim/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

const (
	// waitingDuration is the betting window between rounds
	waitingDuration = 3 * time.Second

	// countdownDuration matches the pre-flight countdown players see
	countdownDuration = 5 * time.Second

	// tickInterval is the authoritative clock resolution while running
	tickInterval = 50 * time.Millisecond
)

// BetRequest asks the engine to register a stake in the upcoming round
type BetRequest struct {
	AccountID   int64
	Stake       int64
	AutoCashout float64
	Resp        chan BetResponse
}

// BetResponse is the engine's answer to a BetRequest
type BetResponse struct {
	RoundID string
	Err     error
}

// CashoutRequest asks the engine to cash out the caller's running bet
type CashoutRequest struct {
	AccountID int64
	Resp      chan CashoutResponse
}

// CashoutResponse is the engine's answer to a CashoutRequest
type CashoutResponse struct {
	RoundID    string
	Multiplier float64
	Payout     int64
	Err        error
}

// Snapshot is a point-in-time view of the current round for clients
type Snapshot struct {
	RoundID    string              `json:"round_id"`
	Phase      entities.RoundPhase `json:"phase"`
	Multiplier float64             `json:"multiplier"`
	Players    int                 `json:"players"`
}

// Engine runs crash rounds back to back. One goroutine per engine is the
// single authority over round timing and the pre-sampled crash point;
// players talk to it exclusively through channels, so client-observed timing
// can never influence an already-committed outcome.
type Engine struct {
	uowFactory interfaces.UnitOfWorkFactory
	payouts    Payouts
	publisher  interfaces.EventPublisher
	houseEdge  float64
	rng        *rand.Rand

	bets      chan BetRequest
	cashouts  chan CashoutRequest
	snapshots chan chan Snapshot
}

// NewEngine creates a crash engine. The rng is owned by the engine's
// goroutine and must not be shared.
func NewEngine(
	uowFactory interfaces.UnitOfWorkFactory,
	payouts Payouts,
	publisher interfaces.EventPublisher,
	houseEdge float64,
	rng *rand.Rand,
) *Engine {
	return &Engine{
		uowFactory: uowFactory,
		payouts:    payouts,
		publisher:  publisher,
		houseEdge:  houseEdge,
		rng:        rng,
		bets:       make(chan BetRequest),
		cashouts:   make(chan CashoutRequest),
		snapshots:  make(chan chan Snapshot),
	}
}

// PlaceBet registers a stake in the current betting window. The stake is
// debited before the request is acknowledged.
func (e *Engine) PlaceBet(ctx context.Context, accountID, stake int64, autoCashout float64) (string, error) {
	req := BetRequest{
		AccountID:   accountID,
		Stake:       stake,
		AutoCashout: autoCashout,
		Resp:        make(chan BetResponse, 1),
	}
	select {
	case e.bets <- req:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	select {
	case resp := <-req.Resp:
		return resp.RoundID, resp.Err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Cashout resolves the caller's bet against the round's live multiplier
func (e *Engine) Cashout(ctx context.Context, accountID int64) (*CashoutResponse, error) {
	req := CashoutRequest{
		AccountID: accountID,
		Resp:      make(chan CashoutResponse, 1),
	}
	select {
	case e.cashouts <- req:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case resp := <-req.Resp:
		if resp.Err != nil {
			return nil, resp.Err
		}
		return &resp, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Snapshot returns the current round's public state
func (e *Engine) Snapshot(ctx context.Context) (*Snapshot, error) {
	resp := make(chan Snapshot, 1)
	select {
	case e.snapshots <- resp:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case snap := <-resp:
		return &snap, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Run drives rounds until the context is cancelled
func (e *Engine) Run(ctx context.Context) {
	log.WithField("houseEdge", e.houseEdge).Info("Crash engine started")
	for {
		if err := e.runRound(ctx); err != nil {
			if ctx.Err() != nil {
				log.Info("Crash engine stopped")
				return
			}
			log.WithError(err).Error("Crash round aborted")
		}
	}
}

func (e *Engine) runRound(ctx context.Context) error {
	r := newRound(e.houseEdge, e.rng)
	if err := e.persistRound(ctx, r.record()); err != nil {
		return err
	}

	// Betting window: waiting, then countdown
	if err := e.bettingWindow(ctx, r, waitingDuration); err != nil {
		return err
	}
	r.phase = entities.RoundPhaseCountdown
	if err := e.bettingWindow(ctx, r, countdownDuration); err != nil {
		return err
	}

	r.start(time.Now())
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case now := <-ticker.C:
			autos, crashed := r.advance(now)
			for _, cashed := range autos {
				e.credit(ctx, r, cashed)
			}
			if crashed {
				return e.finishRound(ctx, r)
			}

		case req := <-e.cashouts:
			cashed, err := r.cashout(req.AccountID, time.Now())
			if err != nil {
				req.Resp <- CashoutResponse{RoundID: r.id, Err: err}
				continue
			}
			e.credit(ctx, r, cashed)
			req.Resp <- CashoutResponse{
				RoundID:    r.id,
				Multiplier: cashed.multiplier,
				Payout:     cashed.payout,
			}

		case req := <-e.bets:
			req.Resp <- BetResponse{RoundID: r.id, Err: fmt.Errorf("round %s already flying: %w", r.id, entities.ErrRoundNotRunning)}

		case resp := <-e.snapshots:
			resp <- e.snapshot(r, time.Now())
		}
	}
}

// bettingWindow accepts bets for the given duration while answering
// snapshots and rejecting premature cashouts
func (e *Engine) bettingWindow(ctx context.Context, r *round, d time.Duration) error {
	deadline := time.NewTimer(d)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-deadline.C:
			return nil

		case req := <-e.bets:
			req.Resp <- BetResponse{RoundID: r.id, Err: e.acceptBet(ctx, r, req)}

		case req := <-e.cashouts:
			req.Resp <- CashoutResponse{RoundID: r.id, Err: fmt.Errorf("round %s not flying yet: %w", r.id, entities.ErrRoundNotRunning)}

		case resp := <-e.snapshots:
			resp <- e.snapshot(r, time.Now())
		}
	}
}

// acceptBet registers the bet and takes the stake; a failed debit removes
// the registration again so the round and ledger stay consistent
func (e *Engine) acceptBet(ctx context.Context, r *round, req BetRequest) error {
	if err := r.acceptBet(req.AccountID, req.Stake, req.AutoCashout); err != nil {
		return err
	}
	if err := e.payouts.DebitStake(ctx, req.AccountID, req.Stake, r.id); err != nil {
		r.removeBet(req.AccountID)
		return err
	}
	return nil
}

// credit pays a resolved cashout; a payout failure is logged, never allowed
// to stall the authoritative clock
func (e *Engine) credit(ctx context.Context, r *round, cashed cashedOutBet) {
	if err := e.payouts.CreditCashout(ctx, cashed.accountID, cashed.payout, r.id, cashed.multiplier); err != nil {
		log.WithFields(log.Fields{
			"roundID":   r.id,
			"accountID": cashed.accountID,
			"payout":    cashed.payout,
			"error":     err,
		}).Error("Failed to credit crash cashout")
	}
}

func (e *Engine) finishRound(ctx context.Context, r *round) error {
	if err := e.persistRound(ctx, r.record()); err != nil {
		log.WithFields(log.Fields{"roundID": r.id, "error": err}).
			Error("Failed to persist crashed round")
	}

	if err := e.publisher.Publish(events.CrashRoundFinishedEvent{
		RoundID:      r.id,
		CrashPoint:   r.crashPoint,
		TotalStaked:  r.totalStaked,
		TotalPaidOut: r.totalPaidOut,
	}); err != nil {
		log.WithFields(log.Fields{"roundID": r.id, "error": err}).
			Error("Failed to publish crash round finished event")
	}

	log.WithFields(log.Fields{
		"roundID":      r.id,
		"crashPoint":   r.crashPoint,
		"totalStaked":  r.totalStaked,
		"totalPaidOut": r.totalPaidOut,
	}).Info("Crash round finished")
	return nil
}

func (e *Engine) persistRound(ctx context.Context, rec *entities.CrashRound) error {
	uow := e.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	var err error
	if rec.Phase == entities.RoundPhaseWaiting {
		err = uow.CrashRounds().Create(ctx, rec)
	} else {
		err = uow.CrashRounds().Update(ctx, rec)
	}
	if err != nil {
		return fmt.Errorf("failed to persist round %s: %w", rec.ID, err)
	}
	return uow.Commit()
}

func (e *Engine) snapshot(r *round, now time.Time) Snapshot {
	snap := Snapshot{
		RoundID:    r.id,
		Phase:      r.phase,
		Multiplier: 1.0,
		Players:    len(r.bets),
	}
	if r.phase == entities.RoundPhaseRunning {
		snap.Multiplier = r.multiplierAt(now)
	}
	return snap
}
