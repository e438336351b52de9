// Package nuclear builds and queries the synthetic multigroup cross-section
// library: a log-spaced energy grid, and per-isotope reactions whose
// cross-sections are generated from a log-log polynomial fit and normalized
// to a target total cross-section.
package nuclear

import (
	"math"

	"github.com/pthm-cable/transportproxy/vecmath"
	"gonum.org/v1/gonum/floats"
)

// ReactionKind is the physical effect of a reaction.
type ReactionKind int

const (
	Scatter ReactionKind = iota
	Absorption
	Fission
)

// Reaction is one reaction channel of an isotope: a per-group microscopic
// cross-section curve plus the average neutron yield (meaningful only for
// fission).
type Reaction struct {
	Kind         ReactionKind
	NuBar        vecmath.Real
	CrossSection []vecmath.Real // len() == Data.G
}

// Isotope is an ordered sequence of reactions.
type Isotope struct {
	Reactions []Reaction
}

// Data is the multigroup nuclear data library: a shared log-spaced energy
// grid and a flat table of isotopes.
type Data struct {
	G        int
	Energies []vecmath.Real // len() == G+1
	Isotopes []Isotope
}

// New builds the energy grid for g groups spanning [eMin, eMax], log-spaced
// except for the fixed endpoints.
func New(g int, eMin, eMax vecmath.Real) *Data {
	energies := make([]vecmath.Real, g+1)
	energies[0] = eMin
	energies[g] = eMax
	logLow := math.Log(eMin)
	logHigh := math.Log(eMax)
	delta := (logHigh - logLow) / vecmath.Real(g+1)
	for i := 1; i < g; i++ {
		energies[i] = math.Exp(logLow + delta*vecmath.Real(i))
	}
	return &Data{G: g, Energies: energies}
}

// IsotopeSpec describes the reaction mix to synthesize for one isotope.
type IsotopeSpec struct {
	NReactions        int
	TotalCrossSection vecmath.Real

	ScatterPoly    vecmath.Polynomial
	AbsorptionPoly vecmath.Polynomial
	FissionPoly    vecmath.Polynomial

	ScatterWeight    vecmath.Real
	AbsorptionWeight vecmath.Real
	FissionWeight    vecmath.Real

	NuBar vecmath.Real
}

// AddIsotope synthesizes spec.NReactions reactions from spec, appends
// the isotope, and returns its index in d.Isotopes.
//
// Reaction kinds are partitioned as evenly as possible across the three
// kinds (scatter, fission, absorption): a remainder of 1 adds an extra
// scatter reaction, a remainder of 2 adds an extra scatter and fission
// reaction. Each kind's target cross-section is its share of
// TotalCrossSection weighted by *Weight and the count of reactions of that
// kind.
func (d *Data) AddIsotope(spec IsotopeSpec) int {
	nScatter, nFission, nAbsorption := partitionReactionCounts(spec.NReactions)
	totalWeight := spec.ScatterWeight + spec.FissionWeight + spec.AbsorptionWeight

	xsFor := func(kind ReactionKind) vecmath.Real {
		var weight vecmath.Real
		var count int
		switch kind {
		case Scatter:
			weight, count = spec.ScatterWeight, nScatter
		case Fission:
			weight, count = spec.FissionWeight, nFission
		case Absorption:
			weight, count = spec.AbsorptionWeight, nAbsorption
		}
		if count == 0 || totalWeight == 0 {
			return 0
		}
		return spec.TotalCrossSection * weight / (vecmath.Real(count) * totalWeight)
	}

	scatterXS := xsFor(Scatter)
	fissionXS := xsFor(Fission)
	absorptionXS := xsFor(Absorption)

	reactions := make([]Reaction, 0, spec.NReactions)
	for i := 0; i < nScatter; i++ {
		reactions = append(reactions, d.newReaction(Scatter, 0, spec.ScatterPoly, scatterXS))
	}
	for i := 0; i < nFission; i++ {
		reactions = append(reactions, d.newReaction(Fission, spec.NuBar, spec.FissionPoly, fissionXS))
	}
	for i := 0; i < nAbsorption; i++ {
		reactions = append(reactions, d.newReaction(Absorption, 0, spec.AbsorptionPoly, absorptionXS))
	}

	idx := len(d.Isotopes)
	d.Isotopes = append(d.Isotopes, Isotope{Reactions: reactions})
	return idx
}

// partitionReactionCounts splits n reactions as evenly as possible across
// scatter, fission and absorption. A remainder of 1 adds to scatter; a
// remainder of 2 adds to scatter and fission.
func partitionReactionCounts(n int) (nScatter, nFission, nAbsorption int) {
	base := n / 3
	rem := n % 3
	nScatter, nFission, nAbsorption = base, base, base
	if rem >= 1 {
		nScatter++
	}
	if rem == 2 {
		nFission++
	}
	return
}

// newReaction samples poly across every group's midpoint energy (in log-log
// space) and rescales the resulting curve so the group whose upper energy
// bound is >= 1 equals targetXS.
func (d *Data) newReaction(kind ReactionKind, nuBar vecmath.Real, poly vecmath.Polynomial, targetXS vecmath.Real) Reaction {
	xs := make([]vecmath.Real, d.G)
	var normal vecmath.Real
	normalSet := false
	for i := 0; i < d.G; i++ {
		emid := (d.Energies[i] + d.Energies[i+1]) / 2
		xs[i] = math.Pow(10, poly.Eval(math.Log10(emid)))
		if !normalSet && d.Energies[i+1] >= 1 {
			normal = xs[i]
			normalSet = true
		}
	}
	if normalSet && normal != 0 {
		floats.Scale(float64(targetXS/normal), xs)
	}
	return Reaction{Kind: kind, NuBar: nuBar, CrossSection: xs}
}

// GroupOf returns the energy group containing e via bisection on the energy
// grid. Energies at or below the first boundary fall in group 0; energies
// above the last boundary fall in the sentinel group G.
func (d *Data) GroupOf(e vecmath.Real) int {
	n := len(d.Energies)
	if e <= d.Energies[0] {
		return 0
	}
	if e > d.Energies[n-1] {
		return n - 1
	}
	low, high := 0, n-1
	for high != low+1 {
		mid := (low + high) / 2
		if e < d.Energies[mid] {
			high = mid
		} else {
			low = mid
		}
	}
	return low
}

// TotalCrossSection sums every reaction's cross-section for the isotope and
// group.
func (d *Data) TotalCrossSection(isotopeGID, group int) vecmath.Real {
	var sum vecmath.Real
	for _, r := range d.Isotopes[isotopeGID].Reactions {
		sum += r.CrossSection[group]
	}
	return sum
}

// ReactionCrossSection returns the cross-section of one reaction of one
// isotope at the given group.
func (d *Data) ReactionCrossSection(isotopeGID, reactionIdx, group int) vecmath.Real {
	return d.Isotopes[isotopeGID].Reactions[reactionIdx].CrossSection[group]
}
