package crash

import (
	"math/rand"
)

// MinCrashPoint is the hard floor on sampled crash points, so every round
// has at least a minimal cashout window.
const MinCrashPoint = 1.01

// GenerateCrashPoint samples a round's crash multiplier by inverse-
// distribution sampling: U uniform in [0,1), crash = 1/(1 - U*(1-houseEdge)).
// 1/crash is therefore uniform on (houseEdge, 1], so the house edge caps the
// tail at 1/houseEdge and shifts mass toward low multipliers.
func GenerateCrashPoint(houseEdge float64, rng *rand.Rand) float64 {
	u := rng.Float64() * (1 - houseEdge)
	point := 1 / (1 - u)
	if point < MinCrashPoint {
		point = MinCrashPoint
	}
	return point
}
