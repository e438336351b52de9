package geometry

import (
	"math"

	"github.com/pthm-cable/transportproxy/vecmath"
)

// nodeIndirect maps each of a cell's 24 facets (4 per face, 6 faces) to the
// 3 of its 14 nodes that form the facet's triangle.
var nodeIndirect = [24][3]int{
	{1, 3, 8}, {3, 7, 8}, {7, 5, 8}, {5, 1, 8},
	{0, 4, 9}, {4, 6, 9}, {6, 2, 9}, {2, 0, 9},
	{3, 2, 10}, {2, 6, 10}, {6, 7, 10}, {7, 3, 10},
	{0, 1, 11}, {1, 5, 11}, {5, 4, 11}, {4, 0, 11},
	{4, 5, 12}, {5, 7, 12}, {7, 6, 12}, {6, 4, 12},
	{0, 2, 13}, {2, 3, 13}, {3, 1, 13}, {1, 0, 13},
}

// opposingFacet maps each facet index to the index of the coinciding facet
// in the face-neighbor cell across the same face (e.g. +x facet 0 of a cell
// is -x facet 7 of its +x neighbor), used when building a transit
// adjacency. Boundary facets do not use it: their adjacency is the facet
// itself.
var opposingFacet = [24]int{
	7, 6, 5, 4, 3, 2, 1, 0, 12, 15, 14, 13, 8, 11, 10, 9, 20, 23, 22, 21, 16, 19, 18, 17,
}

// FacetAdjacencyEvent is what happens to a particle crossing a facet.
type FacetAdjacencyEvent int

const (
	AdjacencyUndefined FacetAdjacencyEvent = iota
	BoundaryEscape
	BoundaryReflection
	TransitOnUnit
	TransitOffUnit
)

// Location addresses a (domain, cell, facet) triple. -1 in any field means
// "not applicable" (e.g. Facet is -1 for a cell-level location).
type Location struct {
	Domain int
	Cell   int
	Facet  int
}

// SubfacetAdjacency is what a facet does, and where it leads.
type SubfacetAdjacency struct {
	Event                FacetAdjacencyEvent
	Current              Location
	Adjacent             Location
	NeighborIndex        int // index into the owning MeshDomain's neighbor list, -1 if none
	NeighborGlobalDomain int
}

// FacetAdjacency is one of a cell's 24 triangular facets.
type FacetAdjacency struct {
	Subfacet SubfacetAdjacency
	Point    [3]int // indices into the owning MeshDomain's Node slice
}

// CellConnectivity is one cell's full set of facets and the 14 node indices
// it references.
type CellConnectivity struct {
	Facet [24]FacetAdjacency
	Point [14]int
}

// Plane is the normalized plane ax+by+cz+d=0 through a facet's 3 points.
type Plane struct {
	A, B, C, D vecmath.Real
}

// NewPlane computes the plane through r0, r1, r2 normal to (r1-r0)x(r2-r0),
// normalized so (a,b,c) is a unit vector. Degenerate (near-zero-area)
// triangles fall back to the plane x=0, since a meaningful normal cannot be
// derived from three nearly-collinear points.
func NewPlane(r0, r1, r2 vecmath.Vec3) Plane {
	a := (r1.Y-r0.Y)*(r2.Z-r0.Z) - (r1.Z-r0.Z)*(r2.Y-r0.Y)
	b := (r1.Z-r0.Z)*(r2.X-r0.X) - (r1.X-r0.X)*(r2.Z-r0.Z)
	c := (r1.X-r0.X)*(r2.Y-r0.Y) - (r1.Y-r0.Y)*(r2.X-r0.X)
	d := -(a*r0.X + b*r0.Y + c*r0.Z)

	mag := math.Sqrt(a*a + b*b + c*c)
	if mag < vecmath.TinyFloat {
		return Plane{A: 1, B: 0, C: 0, D: 0}
	}
	return Plane{A: a / mag, B: b / mag, C: c / mag, D: d / mag}
}

// Planes computes the 24 facet planes of a cell given the owning mesh's
// node coordinates.
func (cc CellConnectivity) Planes(nodes []vecmath.Vec3) [24]Plane {
	var planes [24]Plane
	for i, f := range cc.Facet {
		planes[i] = NewPlane(nodes[f.Point[0]], nodes[f.Point[1]], nodes[f.Point[2]])
	}
	return planes
}
