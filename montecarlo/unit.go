// Package montecarlo wires geometry, material, nuclear data and the tally
// and tracking packages into one running simulation: partitioning the grid
// into units, sourcing and regulating each unit's population every cycle,
// and driving the tracking loop to census.
package montecarlo

import (
	"github.com/pthm-cable/transportproxy/geometry"
	"github.com/pthm-cable/transportproxy/material"
	"github.com/pthm-cable/transportproxy/nuclear"
	"github.com/pthm-cable/transportproxy/particle"
	"github.com/pthm-cable/transportproxy/population"
	"github.com/pthm-cable/transportproxy/tally"
	"github.com/pthm-cable/transportproxy/track"
	"github.com/pthm-cable/transportproxy/vecmath"
)

// Unit owns one partitioned subset of the global mesh plus everything it
// needs to source, regulate and track its own particles cycle over cycle:
// the shared-memory stand-in for what a distributed rank would own.
type Unit struct {
	DomainIdx int

	Domain     *geometry.MeshDomain
	CellStates []geometry.CellState
	Container  *particle.Container

	track        *track.Unit
	sourceWeight vecmath.Real
}

// NewUnit bundles a partitioned domain and its cell states into a trackable
// unit with an empty particle container.
func NewUnit(domainIdx int, domain *geometry.MeshDomain, cellStates []geometry.CellState, nuc *nuclear.Data, materials *material.Database, g int) *Unit {
	numCells := len(cellStates)
	return &Unit{
		DomainIdx:  domainIdx,
		Domain:     domain,
		CellStates: cellStates,
		Container:  particle.NewContainer(0, 0),
		track: &track.Unit{
			Nuclear:    nuc,
			Materials:  materials,
			Domain:     domain,
			CellStates: cellStates,
			XSCache:    tally.NewXSCache(numCells, g),
			Flux:       tally.NewScalarFlux(numCells, g),
			Balance:    &tally.Balance{},
		},
	}
}

// Balance exposes this unit's cycle-tally accumulators.
func (u *Unit) Balance() *tally.Balance { return u.track.Balance }

// Flux exposes this unit's scalar-flux tally.
func (u *Unit) Flux() *tally.ScalarFlux { return u.track.Flux }

// CycleSource and CycleRegulateAndTrack together implement one cycle; they
// are split in two because the split/Russian-roulette factor needs every
// unit's post-source particle count before any unit may regulate, which
// Simulation.RunCycle enforces with a barrier between the two calls.

// CycleSource resets this unit's per-cycle cross-section cache and balance,
// then sources new particles into processing. Returns the resulting local
// particle count.
func (u *Unit) CycleSource(nuc *nuclear.Data, materials *material.Database, dt, eMin, eMax vecmath.Real, targetNParticles int) int {
	carriedOver := len(u.Container.Processing)

	u.track.Balance.Reset()
	u.track.XSCache.Reset()
	u.track.Balance.Start.Store(uint64(carriedOver))

	u.sourceWeight = population.SourceParticleWeight(u.CellStates, materials, dt, targetNParticles)
	population.Source(nuc, u.Domain, u.CellStates, materials, dt, eMin, eMax, u.sourceWeight, u.DomainIdx, u.Container, u.track.Balance)

	return len(u.Container.Processing)
}

// CycleRegulateAndTrack regulates the population toward targetNParticles
// using globalCount (the cross-unit total CycleSource produced), tracks
// every particle to completion, then swaps processing/processed so this
// cycle's census survivors seed the next cycle.
func (u *Unit) CycleRegulateAndTrack(lowWeightCutoff vecmath.Real, targetNParticles, nUnits, globalCount int, loadBalance bool) {
	localCount := len(u.Container.Processing)
	splitRRFactor := population.SplitFactor(targetNParticles, nUnits, localCount, globalCount, loadBalance)
	population.Regulate(u.Container, splitRRFactor, float64(lowWeightCutoff), float64(u.sourceWeight), u.track.Balance)

	track.RunCycle(u.track, u.Container)

	u.Container.SwapProcessingProcessed()
}
