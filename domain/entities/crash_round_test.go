package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMultiplierAt(t *testing.T) {
	duration := 4 * time.Second

	assert.Equal(t, 1.0, MultiplierAt(2.0, 0, duration))
	assert.InDelta(t, 1.5, MultiplierAt(2.0, 2*time.Second, duration), 0.0001)
	assert.Equal(t, 2.0, MultiplierAt(2.0, 4*time.Second, duration))

	// Capped at the crash point past the full duration
	assert.Equal(t, 2.0, MultiplierAt(2.0, 10*time.Second, duration))

	// Negative elapsed clamps to the starting multiplier
	assert.Equal(t, 1.0, MultiplierAt(2.0, -time.Second, duration))

	// Degenerate duration jumps straight to the crash point
	assert.Equal(t, 3.0, MultiplierAt(3.0, time.Second, 0))
}

func TestMultiplierAtStrictlyIncreasing(t *testing.T) {
	duration := RoundDuration(2.5)
	prev := 0.0
	for elapsed := time.Duration(0); elapsed <= duration; elapsed += 50 * time.Millisecond {
		m := MultiplierAt(2.5, elapsed, duration)
		assert.Greater(t, m, prev)
		prev = m
	}
}

func TestRoundDuration(t *testing.T) {
	assert.Equal(t, 2020*time.Millisecond, RoundDuration(1.01))
	assert.Equal(t, 4*time.Second, RoundDuration(2.0))

	// Capped at five seconds for high crash points
	assert.Equal(t, 5*time.Second, RoundDuration(2.5))
	assert.Equal(t, 5*time.Second, RoundDuration(100))
}
