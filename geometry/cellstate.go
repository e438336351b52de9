package geometry

import (
	"math"

	"github.com/pthm-cable/transportproxy/material"
	"github.com/pthm-cable/transportproxy/vecmath"
)

// CellState is a cell's static, read-mostly attributes resolved once when a
// domain is built: its material, geometric volume and center, and a stable
// identifier derived from the grid cell it lands in.
//
// SourceTally is the only field that mutates during a run: it counts the
// particles this cell has spawned so far, feeding each new particle's seed.
type CellState struct {
	Material          int
	Volume            vecmath.Real
	Center            vecmath.Vec3
	CellNumberDensity vecmath.Real
	ID                int64
	SourceTally       uint64
}

// BuildCellStates resolves one CellState per cell in domain: material by
// point-in-region lookup against regions, volume and center from the cell's
// own connectivity.
func BuildCellStates(grid *FCCGrid, domain *MeshDomain, regions []material.GeometryRegion, materials *material.Database) []CellState {
	states := make([]CellState, len(domain.CellConnectivity))
	for i, cc := range domain.CellConnectivity {
		center := CellCenter(domain.Node, cc)
		volume := CellVolume(domain.Node, cc, center)
		name := material.AssignMaterial(regions, center)
		matIdx, _ := materials.Find(name)
		states[i] = CellState{
			Material:          matIdx,
			Volume:            volume,
			Center:            center,
			CellNumberDensity: 1,
			ID:                int64(grid.WhichCell(center)) * 0x100000000,
		}
	}
	return states
}

// CellCenter is the unweighted mean of a cell's 14 intersection points.
func CellCenter(nodes []vecmath.Vec3, cc CellConnectivity) vecmath.Vec3 {
	var sum vecmath.Vec3
	for _, idx := range cc.Point {
		sum = sum.Add(nodes[idx])
	}
	return sum.Scale(1.0 / 14.0)
}

// CellVolume sums |a.(b x c)| over the cell's 24 facets, with a, b, c the
// facet's 3 vertices offset from center, divided by 6.
func CellVolume(nodes []vecmath.Vec3, cc CellConnectivity, center vecmath.Vec3) vecmath.Real {
	var sum vecmath.Real
	for _, f := range cc.Facet {
		a := nodes[f.Point[0]].Sub(center)
		b := nodes[f.Point[1]].Sub(center)
		c := nodes[f.Point[2]].Sub(center)
		sum += math.Abs(a.Dot(b.Cross(c)))
	}
	return sum / 6
}
