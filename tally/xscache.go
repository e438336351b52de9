package tally

import "github.com/pthm-cable/transportproxy/vecmath"

// XSCache memoizes the weighted macroscopic total cross-section per cell
// and energy group, since recomputing it from the nuclear data library on
// every segment would dominate the tracking loop's cost. A stored value of
// zero is treated as "not yet computed".
type XSCache struct {
	G     int
	Cells [][]AtomicReal // [cell][group]
}

// NewXSCache allocates a cache for numCells cells and g energy groups.
func NewXSCache(numCells, g int) *XSCache {
	cells := make([][]AtomicReal, numCells)
	for i := range cells {
		cells[i] = make([]AtomicReal, g)
	}
	return &XSCache{G: g, Cells: cells}
}

// Get returns the cached value, or zero if absent.
func (c *XSCache) Get(cell, group int) vecmath.Real {
	return c.Cells[cell][group].Load()
}

// Set stores a computed value.
func (c *XSCache) Set(cell, group int, v vecmath.Real) {
	c.Cells[cell][group].Store(v)
}

// Reset clears every entry, run at the start of each cycle since the
// material composition is static but cell number densities may change
// between cycles in a fuel-depletion extension.
func (c *XSCache) Reset() {
	for _, cell := range c.Cells {
		for i := range cell {
			cell[i].Store(0)
		}
	}
}
