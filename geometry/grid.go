// Package geometry implements the regular FCC grid, its tetrahedral cell
// decomposition, domain partitioning, and the facet-based cell connectivity
// the tracking loop walks.
package geometry

import "github.com/pthm-cable/transportproxy/vecmath"

// cornerOffset lists, for each of a cell's 14 FCC nodes, the (dx, dy, dz,
// basis) tuple identifying that node relative to the cell's own (x, y, z)
// lattice coordinate. Nodes 0-7 are the cell's corners (basis 0, standard
// box-corner bit pattern: corner i has x=i&1, y=(i>>1)&1, z=(i>>2)&1), so
// corners {1,3,5,7} are the +x face and {0,2,4,6} the -x face, and likewise
// for y and z. Nodes 8-13 are face centers, ordered +x,-x,+y,-y,+z,-z to
// match the facet groupings below; the +side of each pair is shared with
// (i.e. computed identically by) the neighbor one step in that direction.
var cornerOffset = [14][4]int{
	{0, 0, 0, 0}, {1, 0, 0, 0}, {0, 1, 0, 0}, {1, 1, 0, 0},
	{0, 0, 1, 0}, {1, 0, 1, 0}, {0, 1, 1, 0}, {1, 1, 1, 0},
	{1, 0, 0, 1}, {0, 0, 0, 1},
	{0, 1, 0, 2}, {0, 0, 0, 2},
	{0, 0, 1, 3}, {0, 0, 0, 3},
}

// faceOffset lists the (dx, dy, dz) cell-lattice step to each of a cell's 6
// face neighbors, in +x, -x, +y, -y, +z, -z order, matching the face_id
// grouping of the facet table below (facets 0-3 use node 8 and face +x,
// facets 4-7 use node 9 and face -x, and so on).
var faceOffset = [6][3]int{
	{1, 0, 0}, {-1, 0, 0},
	{0, 1, 0}, {0, -1, 0},
	{0, 0, 1}, {0, 0, -1},
}

// FCCGrid is the regular face-centered-cubic grid underlying the mesh: a
// brick of nx*ny*nz cells, each decomposable into 24 tetrahedra.
type FCCGrid struct {
	NX, NY, NZ int
	LX, LY, LZ vecmath.Real
	DX, DY, DZ vecmath.Real
}

// NewFCCGrid builds a grid of nx*ny*nz cells spanning [0,lx]x[0,ly]x[0,lz].
func NewFCCGrid(nx, ny, nz int, lx, ly, lz vecmath.Real) *FCCGrid {
	return &FCCGrid{
		NX: nx, NY: ny, NZ: nz,
		LX: lx, LY: ly, LZ: lz,
		DX: lx / vecmath.Real(nx),
		DY: ly / vecmath.Real(ny),
		DZ: lz / vecmath.Real(nz),
	}
}

// NumCells returns the total cell count.
func (g *FCCGrid) NumCells() int { return g.NX * g.NY * g.NZ }

// WhichCell returns the index of the cell containing r.
func (g *FCCGrid) WhichCell(r vecmath.Vec3) int {
	ix := int(r.X / g.DX)
	iy := int(r.Y / g.DY)
	iz := int(r.Z / g.DZ)
	ix, iy, iz = g.SnapTurtle(ix, iy, iz)
	return g.CellTupleToIdx(ix, iy, iz)
}

// CellTupleToIdx packs a cell lattice coordinate into a flat index.
func (g *FCCGrid) CellTupleToIdx(x, y, z int) int {
	return x + g.NX*(y+g.NY*z)
}

// CellIdxToTuple unpacks a flat cell index into its lattice coordinate.
func (g *FCCGrid) CellIdxToTuple(idx int) (x, y, z int) {
	x = idx % g.NX
	tmp := idx / g.NX
	y = tmp % g.NY
	z = tmp / g.NY
	return
}

// CellCenter returns the geometric center of cell idx.
func (g *FCCGrid) CellCenter(idx int) vecmath.Vec3 {
	x, y, z := g.CellIdxToTuple(idx)
	corner := g.NodeCoordFromTuple(x, y, z, 0)
	return corner.Add(vecmath.Vec3{X: g.DX / 2, Y: g.DY / 2, Z: g.DZ / 2})
}

// NodeTupleToIdx packs a node's (lattice x, y, z, basis) into a flat index.
func (g *FCCGrid) NodeTupleToIdx(x, y, z, b int) int {
	return x + (g.NX+1)*(y+(g.NY+1)*(z+(g.NZ+1)*b))
}

// NodeIdxToTuple unpacks a flat node index back into its (x, y, z, basis).
func (g *FCCGrid) NodeIdxToTuple(idx int) (x, y, z, b int) {
	x = idx % (g.NX + 1)
	qx := idx / (g.NX + 1)
	y = qx % (g.NY + 1)
	qy := qx / (g.NY + 1)
	z = qy % (g.NZ + 1)
	b = qy / (g.NZ + 1)
	return
}

// GetNodeGIDs returns the global IDs of cellGID's 14 FCC nodes.
func (g *FCCGrid) GetNodeGIDs(cellGID int) [14]int {
	x, y, z := g.CellIdxToTuple(cellGID)
	var out [14]int
	for i, c := range cornerOffset {
		out[i] = g.NodeTupleToIdx(x+c[0], y+c[1], z+c[2], c[3])
	}
	return out
}

// GetFaceNbrGIDs returns the global cell IDs of cellGID's 6 face neighbors,
// clamped to the grid boundary (a cell on the boundary is its own neighbor
// across that face).
func (g *FCCGrid) GetFaceNbrGIDs(cellGID int) [6]int {
	x, y, z := g.CellIdxToTuple(cellGID)
	var out [6]int
	for i, f := range faceOffset {
		sx, sy, sz := g.SnapTurtle(x+f[0], y+f[1], z+f[2])
		out[i] = g.CellTupleToIdx(sx, sy, sz)
	}
	return out
}

// NodeCoordFromIdx returns the coordinate of a node given its global ID.
func (g *FCCGrid) NodeCoordFromIdx(idx int) vecmath.Vec3 {
	x, y, z, b := g.NodeIdxToTuple(idx)
	return g.NodeCoordFromTuple(x, y, z, b)
}

// NodeCoordFromTuple returns the coordinate of a node given its lattice
// tuple and basis (0 = corner, 1-3 = the three face centers owned by the
// cell at that lattice coordinate).
func (g *FCCGrid) NodeCoordFromTuple(x, y, z, b int) vecmath.Vec3 {
	basis := [4]vecmath.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 0, Y: g.DY / 2, Z: g.DZ / 2},
		{X: g.DX / 2, Y: 0, Z: g.DZ / 2},
		{X: g.DX / 2, Y: g.DY / 2, Z: 0},
	}
	base := vecmath.Vec3{X: vecmath.Real(x) * g.DX, Y: vecmath.Real(y) * g.DY, Z: vecmath.Real(z) * g.DZ}
	return base.Add(basis[b])
}

// SnapTurtle clamps a candidate lattice coordinate back onto the grid.
func (g *FCCGrid) SnapTurtle(x, y, z int) (int, int, int) {
	return clampInt(x, g.NX), clampInt(y, g.NY), clampInt(z, g.NZ)
}

func clampInt(v, n int) int {
	if v < 0 {
		return 0
	}
	if v > n-1 {
		return n - 1
	}
	return v
}
