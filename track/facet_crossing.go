package track

import (
	"github.com/pthm-cable/transportproxy/geometry"
	"github.com/pthm-cable/transportproxy/particle"
)

// FacetResult is what happened to a particle after FacetCrossing dispatched
// on its adjacency event.
type FacetResult int

const (
	// FacetContinue means the particle is still local and should keep
	// tracking (transit-on-unit or reflection).
	FacetContinue FacetResult = iota
	// FacetTerminated means the particle left the simulation (escape).
	FacetTerminated
	// FacetOffUnit means the particle was appended to sendQueue and is
	// no longer this unit's responsibility this cycle.
	FacetOffUnit
)

// FacetCrossing dispatches on the adjacency of p's current facet, updating
// p's location or flagging its termination, and appends an off-unit clone
// to sendQueue when the facet leads to another domain.
func FacetCrossing(u *Unit, p *particle.Particle, sendQueue *[]particle.SendEntry) FacetResult {
	sub := u.Domain.CellConnectivity[p.Cell].Facet[p.Facet].Subfacet

	switch sub.Event {
	case geometry.TransitOnUnit:
		p.Domain = sub.Adjacent.Domain
		p.Cell = sub.Adjacent.Cell
		p.Facet = sub.Adjacent.Facet
		p.LastEvent = particle.FacetCrossingTransitExit
		return FacetContinue

	case geometry.BoundaryEscape:
		p.LastEvent = particle.FacetCrossingEscape
		u.Balance.Escape.Add(1)
		return FacetTerminated

	case geometry.BoundaryReflection:
		p.Reflect(p.FacetNormal)
		p.LastEvent = particle.FacetCrossingReflection
		return FacetContinue

	case geometry.TransitOffUnit:
		p.Domain = sub.Adjacent.Domain
		p.Cell = sub.Adjacent.Cell
		p.Facet = sub.Adjacent.Facet
		p.LastEvent = particle.FacetCrossingCommunication
		*sendQueue = append(*sendQueue, particle.SendEntry{NeighborIndex: sub.NeighborIndex, Particle: *p})
		return FacetOffUnit

	default:
		panic("track: facet has undefined adjacency event")
	}
}
