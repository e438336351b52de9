package tally

import "github.com/pthm-cable/transportproxy/vecmath"

// ScalarFlux accumulates path-length-weighted flux per cell and energy
// group over the course of a cycle.
type ScalarFlux struct {
	Cells [][]AtomicReal // [cell][group]
}

// NewScalarFlux allocates a scalar flux table for numCells cells and g
// energy groups.
func NewScalarFlux(numCells, g int) *ScalarFlux {
	cells := make([][]AtomicReal, numCells)
	for i := range cells {
		cells[i] = make([]AtomicReal, g)
	}
	return &ScalarFlux{Cells: cells}
}

// Add records a segment's contribution (path length * particle weight) to
// the given cell and group.
func (s *ScalarFlux) Add(cell, group int, contribution vecmath.Real) {
	s.Cells[cell][group].Add(contribution)
}

// Get returns the accumulated flux for a cell and group.
func (s *ScalarFlux) Get(cell, group int) vecmath.Real {
	return s.Cells[cell][group].Load()
}

// Reset zeroes every accumulator.
func (s *ScalarFlux) Reset() {
	for _, c := range s.Cells {
		for i := range c {
			c[i].Store(0)
		}
	}
}

// Sum totals flux across every cell and group.
func (s *ScalarFlux) Sum() vecmath.Real {
	var total vecmath.Real
	for _, c := range s.Cells {
		for i := range c {
			total += c[i].Load()
		}
	}
	return total
}
