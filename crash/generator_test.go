package crash

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCrashPoint_FloorEnforced(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10000; i++ {
		point := GenerateCrashPoint(0.04, rng)
		assert.GreaterOrEqual(t, point, MinCrashPoint)
	}
}

func TestGenerateCrashPoint_Deterministic(t *testing.T) {
	a := rand.New(rand.NewSource(42))
	b := rand.New(rand.NewSource(42))

	for i := 0; i < 100; i++ {
		assert.Equal(t, GenerateCrashPoint(0.04, a), GenerateCrashPoint(0.04, b))
	}
}

func TestGenerateCrashPoint_HouseEdgeProperty(t *testing.T) {
	// With crash = 1/(1 - U*(1-houseEdge)), 1/crash is uniform on
	// (houseEdge, 1], so its mean is 1 - (1-houseEdge)/2 and the chance of
	// surviving to a target multiplier m is 1 - (1-1/m)/(1-houseEdge).
	const houseEdge = 0.04
	const samples = 200000

	rng := rand.New(rand.NewSource(7))
	var sum float64
	var reachedDouble int
	for i := 0; i < samples; i++ {
		point := GenerateCrashPoint(houseEdge, rng)
		sum += 1 / point
		if point >= 2 {
			reachedDouble++
		}
	}
	mean := sum / samples

	assert.InDelta(t, 1-(1-houseEdge)/2, mean, 0.005)
	assert.InDelta(t, 1-0.5/(1-houseEdge), float64(reachedDouble)/samples, 0.005)
}

func TestGenerateCrashPoint_ZeroEdgeStillBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 1000; i++ {
		point := GenerateCrashPoint(0, rng)
		assert.GreaterOrEqual(t, point, MinCrashPoint)
	}
}
