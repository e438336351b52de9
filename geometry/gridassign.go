package geometry

import (
	"math"

	"github.com/pthm-cable/transportproxy/vecmath"
)

// gridAssignCell is one bucket of the spatial index backing
// GridAssignmentObject: the centers that fall inside it, plus flood-fill
// bookkeeping.
type gridAssignCell struct {
	burned     bool
	myCenters  []int
}

// GridAssignmentObject answers nearest-center queries against a fixed set
// of domain centers by indexing them into a coarse grid and flood-filling
// outward from the query point's cell until no closer cell could possibly
// hold a nearer center.
type GridAssignmentObject struct {
	nx, ny, nz int
	dx, dy, dz vecmath.Real
	corner     vecmath.Vec3

	centers []vecmath.Vec3
	grid    []gridAssignCell

	floodQueue []int
	wetList    []int
}

// NewGridAssignmentObject builds an index over centers, sized to average
// roughly 5 centers per grid cell.
func NewGridAssignmentObject(centers []vecmath.Vec3) *GridAssignmentObject {
	const centersPerCell = 5.0

	minC, maxC := centers[0], centers[0]
	for _, c := range centers {
		if c.X < minC.X {
			minC.X = c.X
		}
		if c.Y < minC.Y {
			minC.Y = c.Y
		}
		if c.Z < minC.Z {
			minC.Z = c.Z
		}
		if c.X > maxC.X {
			maxC.X = c.X
		}
		if c.Y > maxC.Y {
			maxC.Y = c.Y
		}
		if c.Z > maxC.Z {
			maxC.Z = c.Z
		}
	}

	lx := math.Max(1, maxC.X-minC.X)
	ly := math.Max(1, maxC.Y-minC.Y)
	lz := math.Max(1, maxC.Z-minC.Z)

	dim := math.Cbrt(float64(len(centers)) / (centersPerCell * lx * ly * lz))
	nx := int(math.Max(1, math.Floor(dim*lx)))
	ny := int(math.Max(1, math.Floor(dim*ly)))
	nz := int(math.Max(1, math.Floor(dim*lz)))

	g := &GridAssignmentObject{
		nx: nx, ny: ny, nz: nz,
		dx: lx / vecmath.Real(nx), dy: ly / vecmath.Real(ny), dz: lz / vecmath.Real(nz),
		corner:  minC,
		centers: append([]vecmath.Vec3(nil), centers...),
		grid:    make([]gridAssignCell, nx*ny*nz),
	}
	for i, c := range centers {
		idx := g.whichCell(c)
		g.grid[idx].myCenters = append(g.grid[idx].myCenters, i)
	}
	return g
}

// NearestCenter returns the index of the center closest to r. Ties are
// broken by the lower center index.
func (g *GridAssignmentObject) NearestCenter(r vecmath.Vec3) int {
	r2Min := vecmath.HugeFloat
	centerMin := -1

	x, y, z := g.whichCellTuple(r)
	g.addTupleToQueue(x, y, z)

	for len(g.floodQueue) > 0 {
		cellIdx := g.floodQueue[0]
		g.floodQueue = g.floodQueue[1:]

		if g.minDist2(r, cellIdx) > r2Min {
			continue
		}

		for _, centerIdx := range g.grid[cellIdx].myCenters {
			d := r.Sub(g.centers[centerIdx])
			r2 := d.Dot(d)
			switch {
			case r2 < r2Min:
				r2Min = r2
				centerMin = centerIdx
			case r2 == r2Min && centerIdx < centerMin:
				centerMin = centerIdx
			}
		}

		g.addNbrsToQueue(cellIdx)
	}

	for _, idx := range g.wetList {
		g.grid[idx].burned = false
	}
	g.wetList = g.wetList[:0]
	g.floodQueue = g.floodQueue[:0]

	if centerMin < 0 {
		panic("geometry: nearest_center found no candidate")
	}
	return centerMin
}

func (g *GridAssignmentObject) whichCellTuple(r vecmath.Vec3) (int, int, int) {
	ix := int(math.Floor(float64((r.X - g.corner.X) / g.dx)))
	iy := int(math.Floor(float64((r.Y - g.corner.Y) / g.dy)))
	iz := int(math.Floor(float64((r.Z - g.corner.Z) / g.dz)))
	return clampInt(ix, g.nx), clampInt(iy, g.ny), clampInt(iz, g.nz)
}

func (g *GridAssignmentObject) whichCell(r vecmath.Vec3) int {
	x, y, z := g.whichCellTuple(r)
	return g.tupleToIndex(x, y, z)
}

func (g *GridAssignmentObject) tupleToIndex(x, y, z int) int {
	return x + g.nx*(y+g.ny*z)
}

func (g *GridAssignmentObject) indexToTuple(idx int) (int, int, int) {
	x := idx % g.nx
	tmp := idx / g.nx
	y := tmp % g.ny
	z := tmp / g.ny
	return x, y, z
}

// minDist2 is the squared distance from r to the nearest point of cellIdx,
// used to prune flood-fill expansion once no center in a cell could beat
// the current best.
func (g *GridAssignmentObject) minDist2(r vecmath.Vec3, cellIdx int) vecmath.Real {
	rx, ry, rz := g.whichCellTuple(r)
	tx, ty, tz := g.indexToTuple(cellIdx)
	dx := g.dx * vecmath.Real(absDiffMinusOneFloor(tx, rx))
	dy := g.dy * vecmath.Real(absDiffMinusOneFloor(ty, ry))
	dz := g.dz * vecmath.Real(absDiffMinusOneFloor(tz, rz))
	return dx*dx + dy*dy + dz*dz
}

func absDiffMinusOneFloor(a, b int) int {
	d := a - b
	if d < 0 {
		d = -d
	}
	d--
	if d < 0 {
		d = 0
	}
	return d
}

func (g *GridAssignmentObject) addTupleToQueue(x, y, z int) {
	idx := g.tupleToIndex(x, y, z)
	if g.grid[idx].burned {
		return
	}
	g.grid[idx].burned = true
	g.floodQueue = append(g.floodQueue, idx)
	g.wetList = append(g.wetList, idx)
}

func (g *GridAssignmentObject) addNbrsToQueue(cellIdx int) {
	x, y, z := g.indexToTuple(cellIdx)
	if x+1 < g.nx {
		g.addTupleToQueue(x+1, y, z)
	}
	if x > 0 {
		g.addTupleToQueue(x-1, y, z)
	}
	if y+1 < g.ny {
		g.addTupleToQueue(x, y+1, z)
	}
	if y > 0 {
		g.addTupleToQueue(x, y-1, z)
	}
	if z+1 < g.nz {
		g.addTupleToQueue(x, y, z+1)
	}
	if z > 0 {
		g.addTupleToQueue(x, y, z-1)
	}
}
