// Package population implements per-cycle population control (split and
// Russian roulette against a fixed target particle count) and source
// sampling (spawning new particles in owned cells each cycle).
package population

import (
	"math"

	"github.com/pthm-cable/transportproxy/particle"
	"github.com/pthm-cable/transportproxy/tally"
)

// SplitFactor computes this cycle's split/Russian-roulette factor: below 1
// means too many particles (roulette), above 1 means too few (split).
//
// When loadBalance is set, the global target is spread evenly across
// units and the factor is local; otherwise every unit shares one global
// factor derived from the total count across all units.
func SplitFactor(targetNParticles, nUnits, localCount, globalCount int, loadBalance bool) float64 {
	if loadBalance {
		targetPerUnit := math.Ceil(float64(targetNParticles) / float64(nUnits))
		if localCount == 0 {
			return 1
		}
		return targetPerUnit / float64(localCount)
	}
	if globalCount == 0 {
		return 1
	}
	return float64(targetNParticles) / float64(globalCount)
}

// Regulate applies splitRRFactor to container.Processing (killing or
// splitting to approach the per-cycle target), then runs a low-weight
// roulette pass regardless of which branch fired, folding every kill/split
// into balance.
func Regulate(container *particle.Container, splitRRFactor, relativeWeightCutoff, sourceParticleWeight float64, balance *tally.Balance) {
	switch {
	case splitRRFactor < 1:
		killed := container.RegulateOverPopulated(splitRRFactor)
		balance.RR.Add(uint64(killed))
	case splitRRFactor > 1:
		split := container.RegulateUnderPopulated(splitRRFactor)
		balance.Split.Add(uint64(split))
	}

	killed := container.RouletteLowWeight(relativeWeightCutoff, sourceParticleWeight)
	balance.RR.Add(uint64(killed))
}
