package generator

import (
	"math"
	"math/rand/v2"
)

// Discrete parameter sets
var (
	txPowerChoices      = []int{2, 4, 6, 8}
	rxSensitivities     = []int{-27, -28, -29, -20}
	engineeringMargins  = []int{2, 3, 4, 5}
	fiberAttenuations   = []float64{0.2, 0.3, 0.4, 0.5}
	connectorCounts     = []int{2, 4, 6, 8}
	splitterLossChoices = []float64{0.5, 1.0, 1.5, 2.0}
)

// Continuous parameter ranges
const (
	minFiberLengthKm = 2.0
	maxFiberLengthKm = 40.0
	minSpliceLossDB  = 0.05
	maxSpliceLossDB  = 0.15
	minConnLossDB    = 0.2
	maxConnLossDB    = 0.5
	maxOtherLossDB   = 2.5

	kmPerSplice = 3.0
)

// sampler draws link parameters from a seeded source
type sampler struct {
	rng *rand.Rand
}

func newSampler(seed int64) *sampler {
	s := uint64(seed)
	return &sampler{rng: rand.New(rand.NewPCG(s, s))}
}

// uniform returns a value in [lo, hi] rounded to the given decimals
func (s *sampler) uniform(lo, hi float64, decimals int) float64 {
	v := round(lo+(hi-lo)*s.rng.Float64(), decimals)
	// rounding can push a value just past the upper bound
	return math.Min(v, hi)
}

func (s *sampler) fiberLength() float64 {
	return s.uniform(minFiberLengthKm, maxFiberLengthKm, 2)
}

func (s *sampler) txPower() int {
	return choice(s.rng, txPowerChoices)
}

func (s *sampler) rxSensitivity() int {
	return choice(s.rng, rxSensitivities)
}

func (s *sampler) engineeringMargin() int {
	return choice(s.rng, engineeringMargins)
}

func (s *sampler) fiberAttenuation() float64 {
	return choice(s.rng, fiberAttenuations)
}

func (s *sampler) spliceLoss() float64 {
	return s.uniform(minSpliceLossDB, maxSpliceLossDB, 3)
}

func (s *sampler) connectorCount() int {
	return choice(s.rng, connectorCounts)
}

func (s *sampler) connectorLoss() float64 {
	return s.uniform(minConnLossDB, maxConnLossDB, 3)
}

func (s *sampler) splitterLoss() float64 {
	return choice(s.rng, splitterLossChoices)
}

func (s *sampler) otherLoss() float64 {
	return s.uniform(0, maxOtherLossDB, 2)
}

// SpliceCount derives the number of splices from the fiber length:
// one per 3 km, at least one.
func SpliceCount(lengthKm float64) int {
	return max(1, int(math.Floor(lengthKm/kmPerSplice)))
}

func choice[T any](rng *rand.Rand, values []T) T {
	return values[rng.IntN(len(values))]
}

func round(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
