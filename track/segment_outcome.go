package track

import (
	"math"

	"github.com/pthm-cable/transportproxy/geometry"
	"github.com/pthm-cable/transportproxy/material"
	"github.com/pthm-cable/transportproxy/nuclear"
	"github.com/pthm-cable/transportproxy/particle"
	"github.com/pthm-cable/transportproxy/tally"
	"github.com/pthm-cable/transportproxy/vecmath"
)

// Outcome is which event a segment ended in.
type Outcome int

const (
	OutcomeCollision Outcome = iota
	OutcomeFacetCrossing
	OutcomeCensus
)

// Unit bundles the read-only data and per-unit accumulators every tracking
// routine needs: nuclear/material libraries, this unit's mesh domain and
// cell states, and its cross-section cache, scalar flux and balance.
type Unit struct {
	Nuclear    *nuclear.Data
	Materials  *material.Database
	Domain     *geometry.MeshDomain
	CellStates []geometry.CellState
	XSCache    *tally.XSCache
	Flux       *tally.ScalarFlux
	Balance    *tally.Balance
}

type distances struct {
	collision, facetCrossing, census vecmath.Real
	minDist                          vecmath.Real
	outcome                          Outcome
}

func newDistances() distances {
	return distances{
		collision:     vecmath.HugeFloat,
		facetCrossing: vecmath.HugeFloat,
		census:        vecmath.HugeFloat,
		minDist:       vecmath.HugeFloat,
		outcome:       OutcomeCollision,
	}
}

func (d *distances) update(outcome Outcome, dist vecmath.Real) {
	switch outcome {
	case OutcomeCollision:
		d.collision = dist
	case OutcomeFacetCrossing:
		d.facetCrossing = dist
	case OutcomeCensus:
		d.census = dist
	}
	if dist < d.minDist {
		d.minDist = dist
		d.outcome = outcome
	}
}

func (d *distances) forceCollision() {
	d.collision = vecmath.SmallFloat
	d.facetCrossing = vecmath.HugeFloat
	d.census = vecmath.HugeFloat
	d.minDist = vecmath.SmallFloat
	d.outcome = OutcomeCollision
}

// SegmentOutcome advances p by one segment: it picks the nearer of
// collision, facet-crossing or census, moves p to the end of the segment,
// accumulates scalar flux, and leaves outcome-specific fields (Facet,
// FacetNormal, or a clamped TimeToCensus) set for the caller to dispatch on.
func SegmentOutcome(u *Unit, p *particle.Particle) Outcome {
	dist := newDistances()

	forceCollision := p.NumMeanFreePaths < 0
	if forceCollision {
		p.NumMeanFreePaths = vecmath.SmallFloat
	}

	totalXS := cachedTotalXS(u.Nuclear, u.Materials, u.CellStates, u.XSCache, p.Cell, p.EnergyGroup)
	p.TotalCrossSection = totalXS
	if totalXS == 0 {
		p.MeanFreePath = vecmath.HugeFloat
	} else {
		p.MeanFreePath = 1 / totalXS
	}

	if p.NumMeanFreePaths == 0 {
		p.SampleNumMFP()
	}

	dist.update(OutcomeCollision, p.NumMeanFreePaths*p.MeanFreePath)
	dist.update(OutcomeCensus, p.Speed()*p.TimeToCensus)

	planes := u.Domain.CellGeometry[p.Cell]
	nearest := particle.NearestFacet(p, planes)
	dist.update(OutcomeFacetCrossing, nearest.Distance)

	if forceCollision {
		dist.forceCollision()
	}

	if dist.minDist < 0 {
		panic("track: segment distance is negative")
	}

	p.SegmentPathLength = dist.minDist
	p.NumMeanFreePaths -= p.SegmentPathLength / p.MeanFreePath

	switch dist.outcome {
	case OutcomeCollision:
		p.NumMeanFreePaths = 0
		p.LastEvent = particle.Collision
	case OutcomeFacetCrossing:
		p.Facet = nearest.Facet
		plane := planes[nearest.Facet]
		p.FacetNormal = vecmath.Vec3{X: plane.A, Y: plane.B, Z: plane.C}
		p.LastEvent = particle.FacetCrossingTransitExit
	case OutcomeCensus:
		p.TimeToCensus = math.Min(0, p.TimeToCensus)
		p.LastEvent = particle.Census
	}

	if p.SegmentPathLength == 0 {
		return dist.outcome
	}

	p.MoveAlongSegment(p.SegmentPathLength)

	speed := p.Speed()
	segmentTime := p.SegmentPathLength / speed
	p.TimeToCensus -= segmentTime
	p.Age += segmentTime
	if p.TimeToCensus < 0 {
		p.TimeToCensus = 0
	}

	u.Flux.Add(p.Cell, p.EnergyGroup, p.SegmentPathLength*p.Weight)

	return dist.outcome
}
