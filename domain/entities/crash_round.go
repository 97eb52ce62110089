package entities

import (
	"time"
)

// RoundPhase is the phase of a crash round's state machine:
// waiting -> countdown -> running -> crashed
type RoundPhase string

const (
	RoundPhaseWaiting   RoundPhase = "waiting"
	RoundPhaseCountdown RoundPhase = "countdown"
	RoundPhaseRunning   RoundPhase = "running"
	RoundPhaseCrashed   RoundPhase = "crashed"
)

// String returns the string representation of the phase
func (p RoundPhase) String() string {
	return string(p)
}

// CrashRound is the persisted record of one crash game round. The crash
// point is sampled once when the round is created and never recomputed.
type CrashRound struct {
	ID           string     `db:"id"`
	CrashPoint   float64    `db:"crash_point"`
	Phase        RoundPhase `db:"phase"`
	StartedAt    *time.Time `db:"started_at"`
	CrashedAt    *time.Time `db:"crashed_at"`
	TotalStaked  int64      `db:"total_staked"`
	TotalPaidOut int64      `db:"total_paid_out"`
	CreatedAt    time.Time  `db:"created_at"`
}

// MultiplierAt returns the multiplier at elapsed time t within a round of
// the given total duration. The curve ramps linearly from 1.0 to the crash
// point and is strictly increasing until it caps there.
func MultiplierAt(crashPoint float64, elapsed, duration time.Duration) float64 {
	if duration <= 0 {
		return crashPoint
	}
	progress := float64(elapsed) / float64(duration)
	if progress > 1 {
		progress = 1
	}
	if progress < 0 {
		progress = 0
	}
	return 1 + (crashPoint-1)*progress
}

// RoundDuration returns how long a round runs before reaching its crash
// point: two seconds per multiplier unit, capped at five seconds.
func RoundDuration(crashPoint float64) time.Duration {
	d := time.Duration(crashPoint * 2 * float64(time.Second))
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	return d
}
