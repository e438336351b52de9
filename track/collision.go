package track

import (
	"math"

	"github.com/pthm-cable/transportproxy/nuclear"
	"github.com/pthm-cable/transportproxy/particle"
	"github.com/pthm-cable/transportproxy/vecmath"
)

// Collision samples an isotope+reaction by rejection sampling on the cell's
// macroscopic cross section, then applies the reaction to p. It returns
// whether p itself survives (false for absorption, or fission with zero
// progeny) and any additional progeny (fission with more than one output)
// to push into the unit's extra bucket.
func Collision(u *Unit, p *particle.Particle) (survived bool, extra []particle.Particle) {
	cellState := u.CellStates[p.Cell]
	mat := u.Materials.Materials[cellState.Material]

	acc := p.TotalCrossSection * p.Sample()
	isoIdx, reactIdx := -1, -1
outer:
	for i, iso := range mat.Isotopes {
		nucIso := u.Nuclear.Isotopes[iso.GID]
		for r := range nucIso.Reactions {
			acc -= macroscopicReactionXS(u.Nuclear, mat, i, r, cellState.CellNumberDensity, p.EnergyGroup)
			if acc < 0 {
				isoIdx, reactIdx = i, r
				break outer
			}
		}
	}
	if isoIdx < 0 {
		panic("track: collision rejection sampling selected no reaction")
	}

	reaction := u.Nuclear.Isotopes[mat.Isotopes[isoIdx].GID].Reactions[reactIdx]

	u.Balance.Collision.Add(1)
	switch reaction.Kind {
	case nuclear.Scatter:
		u.Balance.Scatter.Add(1)
		energy := p.KineticEnergy * (1 - p.Sample()/mat.Mass)
		angle := 2*p.Sample() - 1
		p.UpdateTrajectory(energy, angle)
		p.EnergyGroup = u.Nuclear.GroupOf(p.KineticEnergy)
		return true, nil

	case nuclear.Absorption:
		u.Balance.Absorb.Add(1)
		return false, nil

	case nuclear.Fission:
		u.Balance.Fission.Add(1)
		k := int(math.Floor(reaction.NuBar + p.Sample()))
		u.Balance.Produce.Add(uint64(k))
		if k == 0 {
			return false, nil
		}
		extra := fissionProgeny(p, k)
		p.EnergyGroup = u.Nuclear.GroupOf(p.KineticEnergy)
		for i := range extra {
			extra[i].EnergyGroup = u.Nuclear.GroupOf(extra[i].KineticEnergy)
		}
		return true, extra

	default:
		panic("track: reaction has undefined kind")
	}
}

// fissionOutput is a sampled (energy, angle) pair for one fission product.
type fissionOutput struct {
	energy, angle vecmath.Real
}

func sampleFissionOutput(p *particle.Particle) fissionOutput {
	r := (p.Sample() + 1) / 2
	return fissionOutput{energy: 20 * r * r, angle: 2*p.Sample() - 1}
}

// fissionProgeny draws (energy, angle) for the surviving particle and its
// k-1 extra outputs, applying update-trajectory to each. The first output
// overwrites p in place; the rest are clones of p's pre-collision state
// with freshly spawned seeds, returned for the caller to push into extra.
func fissionProgeny(p *particle.Particle, k int) []particle.Particle {
	first := sampleFissionOutput(p)

	preCollision := *p

	var extra []particle.Particle
	if k > 1 {
		outs := make([]fissionOutput, k-1)
		for i := range outs {
			outs[i] = sampleFissionOutput(p)
		}
		seeds := make([]uint64, k-1)
		for i := range seeds {
			seeds[i] = p.SpawnSeed()
		}
		extra = make([]particle.Particle, k-1)
		for i := range extra {
			child := preCollision
			child.RandomNumberSeed = seeds[i]
			child.Identifier = seeds[i]
			child.UpdateTrajectory(outs[i].energy, outs[i].angle)
			extra[i] = child
		}
	}

	p.UpdateTrajectory(first.energy, first.angle)
	return extra
}
