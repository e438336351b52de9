package population

import (
	"math"

	"github.com/pthm-cable/transportproxy/geometry"
	"github.com/pthm-cable/transportproxy/material"
	"github.com/pthm-cable/transportproxy/nuclear"
	"github.com/pthm-cable/transportproxy/particle"
	"github.com/pthm-cable/transportproxy/rng"
	"github.com/pthm-cable/transportproxy/tally"
	"github.com/pthm-cable/transportproxy/vecmath"
	"gonum.org/v1/gonum/floats"
)

// sourceFraction is the portion of the per-cycle particle target spawned as
// new source particles; the rest of the population carries over as census
// survivors.
const sourceFraction = 0.1

// SourceParticleWeight sums volume*source_rate(material)*dt over every cell
// this unit owns and divides by 10% of the global particle target. Every
// particle this unit sources this cycle is assigned this weight.
func SourceParticleWeight(cellStates []geometry.CellState, materials *material.Database, dt vecmath.Real, nParticles int) vecmath.Real {
	weights := make([]float64, len(cellStates))
	for i, cs := range cellStates {
		mat := materials.Materials[cs.Material]
		weights[i] = cs.Volume * mat.SourceRate * dt
	}
	total := floats.Sum(weights)
	return total / (sourceFraction * vecmath.Real(nParticles))
}

// Source spawns new particles in every cell of domain proportional to
// volume*source_rate*dt / sourceParticleWeight, appending them to
// container.Processing and tallying balance.source.
func Source(
	nuc *nuclear.Data,
	domain *geometry.MeshDomain,
	cellStates []geometry.CellState,
	materials *material.Database,
	dt, eMin, eMax, sourceParticleWeight vecmath.Real,
	domainIdx int,
	container *particle.Container,
	balance *tally.Balance,
) {
	for cellIdx := range cellStates {
		cs := &cellStates[cellIdx]
		mat := materials.Materials[cs.Material]
		cellWeight := cs.Volume * mat.SourceRate * dt
		nSpawn := int(math.Floor(float64(cellWeight / sourceParticleWeight)))

		cc := domain.CellConnectivity[cellIdx]
		center := cs.Center
		volume := cs.Volume

		for i := 0; i < nSpawn; i++ {
			seed := cs.SourceTally + uint64(cs.ID)
			cs.SourceTally++

			var p particle.Particle
			p.RandomNumberSeed = rng.Spawn(&seed)
			p.Identifier = seed

			p.Coordinate = sampleCellCoordinate(cc, domain.Node, center, volume, &p)
			p.SampleIsotropic()

			p.KineticEnergy = p.Sample()*(eMax-eMin) + eMin
			p.EnergyGroup = nuc.GroupOf(p.KineticEnergy)

			p.Domain = domainIdx
			p.Cell = cellIdx
			p.Weight = sourceParticleWeight

			p.SampleNumMFP()
			p.TimeToCensus = dt * p.Sample()

			container.Processing = append(container.Processing, p)
			balance.Source.Add(1)
		}
	}
}

// sampleCellCoordinate picks a uniformly random point inside the cell: a
// facet-tet is chosen by cumulative-volume inversion against a 6*volume
// scale draw, then a point is barycentrically sampled inside that tet
// (center, and the facet's 3 corner points) using the triangle-clamp trick
// to keep the barycentric weights non-negative and summing to 1.
func sampleCellCoordinate(cc geometry.CellConnectivity, nodes []vecmath.Vec3, center vecmath.Vec3, volume vecmath.Real, p *particle.Particle) vecmath.Vec3 {
	whichVolume := p.Sample() * 6 * volume

	var current vecmath.Real
	var point0, point1, point2 vecmath.Vec3
	for _, f := range cc.Facet {
		point0 = nodes[f.Point[0]]
		point1 = nodes[f.Point[1]]
		point2 = nodes[f.Point[2]]

		a := point0.Sub(center)
		b := point1.Sub(center)
		c := point2.Sub(center)
		current += math.Abs(a.Dot(b.Cross(c)))
		if current >= whichVolume {
			break
		}
	}

	r1, r2, r3 := p.Sample(), p.Sample(), p.Sample()
	if r1+r2 > 1 {
		r1, r2 = 1-r1, 1-r2
	}
	if r2+r3 > 1 {
		tmp := r3
		r3 = 1 - r1 - r2
		r2 = 1 - tmp
	} else if r1+r2+r3 > 1 {
		tmp := r3
		r3 = r1 + r2 + r3 - 1
		r1 = 1 - r2 - tmp
	}
	r4 := 1 - r1 - r2 - r3

	return point0.Scale(r1).Add(point1.Scale(r2)).Add(point2.Scale(r3)).Add(center.Scale(r4))
}
