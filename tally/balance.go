package tally

import "sync/atomic"

// Balance is the set of cycle-scoped event counters, one per physical event
// kind, each independently incrementable from any worker goroutine.
type Balance struct {
	Start       atomic.Uint64
	Source      atomic.Uint64
	RR          atomic.Uint64
	Split       atomic.Uint64
	Absorb      atomic.Uint64
	Scatter     atomic.Uint64
	Fission     atomic.Uint64
	Produce     atomic.Uint64
	Collision   atomic.Uint64
	Census      atomic.Uint64
	Escape      atomic.Uint64
	NumSegments atomic.Uint64
}

// BalanceSnapshot is a point-in-time, non-atomic copy of a Balance, used for
// reporting and for folding counts between units.
type BalanceSnapshot struct {
	Start, Source, RR, Split, Absorb, Scatter, Fission, Produce, Collision, Census, Escape, NumSegments uint64
}

// Reset zeroes every counter, run at the start of each cycle.
func (b *Balance) Reset() {
	b.Start.Store(0)
	b.Source.Store(0)
	b.RR.Store(0)
	b.Split.Store(0)
	b.Absorb.Store(0)
	b.Scatter.Store(0)
	b.Fission.Store(0)
	b.Produce.Store(0)
	b.Collision.Store(0)
	b.Census.Store(0)
	b.Escape.Store(0)
	b.NumSegments.Store(0)
}

// Snapshot copies every counter out.
func (b *Balance) Snapshot() BalanceSnapshot {
	return BalanceSnapshot{
		Start:       b.Start.Load(),
		Source:      b.Source.Load(),
		RR:          b.RR.Load(),
		Split:       b.Split.Load(),
		Absorb:      b.Absorb.Load(),
		Scatter:     b.Scatter.Load(),
		Fission:     b.Fission.Load(),
		Produce:     b.Produce.Load(),
		Collision:   b.Collision.Load(),
		Census:      b.Census.Load(),
		Escape:      b.Escape.Load(),
		NumSegments: b.NumSegments.Load(),
	}
}

// End returns the number of particles alive at the end of the cycle:
// everything that started, was sourced, was produced, or was split, minus
// everything absorbed, escaped, or Russian-rouletted away, and minus one
// parent per fission event (a fission's outputs, including the one that
// overwrites the parent, are all counted in Produce).
func (s BalanceSnapshot) End() uint64 {
	return s.Start + s.Source + s.Produce + s.Split - s.Absorb - s.Escape - s.RR - s.Fission
}
