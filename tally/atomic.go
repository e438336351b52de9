// Package tally holds the lock-free accumulators shared by every particle
// worker during a cycle: the per-cell cross-section cache, the per-cell
// per-group scalar flux, and the cycle-level event balance.
package tally

import (
	"math"
	"sync/atomic"

	"github.com/pthm-cable/transportproxy/vecmath"
)

// AtomicReal is a float64 accumulator usable concurrently from many
// goroutines, built on atomic.Uint64 since the standard library has no
// atomic float64.
type AtomicReal struct {
	bits atomic.Uint64
}

// Load returns the current value.
func (a *AtomicReal) Load() vecmath.Real {
	return math.Float64frombits(a.bits.Load())
}

// Store sets the value.
func (a *AtomicReal) Store(v vecmath.Real) {
	a.bits.Store(math.Float64bits(v))
}

// Add atomically adds delta to the value via compare-and-swap, since
// floating-point addition has no native atomic instruction.
func (a *AtomicReal) Add(delta vecmath.Real) {
	for {
		old := a.bits.Load()
		next := math.Float64bits(math.Float64frombits(old) + delta)
		if a.bits.CompareAndSwap(old, next) {
			return
		}
	}
}
