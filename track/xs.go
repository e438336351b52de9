// Package track implements the per-segment particle state machine: outcome
// selection (collision / facet crossing / census), facet-crossing dispatch,
// collision sampling, and the drive loop that repeats either until a
// particle terminates, is handed off to another unit, or reaches census.
package track

import (
	"github.com/pthm-cable/transportproxy/geometry"
	"github.com/pthm-cable/transportproxy/material"
	"github.com/pthm-cable/transportproxy/nuclear"
	"github.com/pthm-cable/transportproxy/tally"
	"github.com/pthm-cable/transportproxy/vecmath"
)

// fallbackXS is substituted whenever an atom fraction or cell number density
// is zero, standing in for "negligible but nonzero" rather than a true zero
// that would make the mean free path infinite.
const fallbackXS vecmath.Real = 1e-20

// isotopeMicroXS returns the microscopic cross section of one isotope's
// reaction at group, weighted by its atom fraction and the cell's number
// density.
func isotopeMicroXS(data *nuclear.Data, iso material.Isotope, cellNumberDensity vecmath.Real, group int, xs func(isotopeGID, group int) vecmath.Real) vecmath.Real {
	if iso.AtomFraction == 0 || cellNumberDensity == 0 {
		return fallbackXS
	}
	return iso.AtomFraction * cellNumberDensity * xs(iso.GID, group)
}

// weightedMacroscopicTotalXS sums every isotope's macroscopic total cross
// section in mat at group, using cell's number density.
func weightedMacroscopicTotalXS(data *nuclear.Data, mat material.Material, cellNumberDensity vecmath.Real, group int) vecmath.Real {
	var sum vecmath.Real
	for _, iso := range mat.Isotopes {
		sum += isotopeMicroXS(data, iso, cellNumberDensity, group, data.TotalCrossSection)
	}
	return sum
}

// macroscopicReactionXS computes the number-density-weighted macroscopic
// cross section of one isotope's reaction within mat, at group.
func macroscopicReactionXS(data *nuclear.Data, mat material.Material, isotopeIdx, reactionIdx int, cellNumberDensity vecmath.Real, group int) vecmath.Real {
	iso := mat.Isotopes[isotopeIdx]
	if iso.AtomFraction == 0 || cellNumberDensity == 0 {
		return fallbackXS
	}
	return iso.AtomFraction * cellNumberDensity * data.ReactionCrossSection(iso.GID, reactionIdx, group)
}

// cachedTotalXS returns the cell's memoized total macroscopic cross
// section for group, computing and storing it on first use.
func cachedTotalXS(data *nuclear.Data, materials *material.Database, cellStates []geometry.CellState, xsCache *tally.XSCache, cell, group int) vecmath.Real {
	if v := xsCache.Get(cell, group); v > 0 {
		return v
	}
	mat := materials.Materials[cellStates[cell].Material]
	v := weightedMacroscopicTotalXS(data, mat, cellStates[cell].CellNumberDensity, group)
	xsCache.Set(cell, group, v)
	return v
}
