package geometry

import (
	"fmt"

	"github.com/pthm-cable/transportproxy/vecmath"
)

// MeshDomain is one domain's local mesh: a deduplicated node table shared by
// every owned cell, plus per-cell connectivity (24 facets, 14 intersection
// points) and the precomputed facet planes for each cell.
//
// Invariant: len(CellConnectivity) == len(CellGeometry) == len(CellGIDs).
type MeshDomain struct {
	DomainGID          int
	NeighborDomainGIDs []int

	Node             []vecmath.Vec3
	CellConnectivity []CellConnectivity
	CellGeometry     [][24]Plane

	// CellGIDs[i] is the grid-global cell id backing CellConnectivity[i] and
	// CellGeometry[i], recovering the mapping from local cell index back to
	// the global FCC grid.
	CellGIDs []int
}

// BoundaryConditions expands a named boundary condition into its per-face
// event table, in face-index order (+x,-x,+y,-y,+z,-z).
func BoundaryConditions(kind string) ([6]FacetAdjacencyEvent, error) {
	switch kind {
	case "reflect":
		return [6]FacetAdjacencyEvent{
			BoundaryReflection, BoundaryReflection, BoundaryReflection,
			BoundaryReflection, BoundaryReflection, BoundaryReflection,
		}, nil
	case "escape":
		return [6]FacetAdjacencyEvent{
			BoundaryEscape, BoundaryEscape, BoundaryEscape,
			BoundaryEscape, BoundaryEscape, BoundaryEscape,
		}, nil
	case "octant":
		return [6]FacetAdjacencyEvent{
			BoundaryEscape, BoundaryReflection, BoundaryEscape,
			BoundaryReflection, BoundaryEscape, BoundaryReflection,
		}, nil
	default:
		return [6]FacetAdjacencyEvent{}, fmt.Errorf("geometry: unknown boundary condition %q", kind)
	}
}

// NewMeshDomain builds the node table and per-cell connectivity for the
// cells partition owns, classifying each face as a grid boundary (via
// boundary) or a transit to a neighbor cell (on-unit if the neighbor shares
// this domain's foreman, off-unit otherwise). partition's CellInfoMap must
// already have halo entries resolved via ResolveHaloCellInfo.
func NewMeshDomain(grid *FCCGrid, partition *MeshPartition, boundary [6]FacetAdjacencyEvent) *MeshDomain {
	ownedCellGIDs := ownedCellGIDsOf(partition)
	neighborDomainGIDs := sortedIntSet(partition.NeighborDomains)
	neighborIndex := make(map[int]int, len(neighborDomainGIDs))
	for i, gid := range neighborDomainGIDs {
		neighborIndex[gid] = i
	}

	cornerIdx, faceIdx := bootstrapNodeMap(grid, ownedCellGIDs)
	nodes := make([]vecmath.Vec3, len(cornerIdx)+len(faceIdx))
	for gid, idx := range cornerIdx {
		nodes[idx] = grid.NodeCoordFromIdx(gid)
	}
	for gid, idx := range faceIdx {
		nodes[idx] = grid.NodeCoordFromIdx(gid)
	}
	localIdx := func(nodeGID int) int {
		if idx, ok := cornerIdx[nodeGID]; ok {
			return idx
		}
		return faceIdx[nodeGID]
	}

	md := &MeshDomain{
		DomainGID:          partition.DomainGID,
		NeighborDomainGIDs: neighborDomainGIDs,
		Node:               nodes,
		CellGIDs:           ownedCellGIDs,
		CellConnectivity:   make([]CellConnectivity, len(ownedCellGIDs)),
		CellGeometry:       make([][24]Plane, len(ownedCellGIDs)),
	}

	for ci, cellGID := range ownedCellGIDs {
		cc := buildCell(grid, partition, neighborIndex, boundary, ci, cellGID, localIdx)
		md.CellConnectivity[ci] = cc
		md.CellGeometry[ci] = cc.Planes(nodes)
	}
	return md
}

func ownedCellGIDsOf(partition *MeshPartition) []int {
	var owned []int
	for _, cellGID := range sortedCellGIDs(partition.CellInfoMap) {
		if partition.CellInfoMap[cellGID].DomainGID == partition.DomainGID {
			owned = append(owned, cellGID)
		}
	}
	return owned
}

// bootstrapNodeMap dedups corners 0-7 of every owned cell into one table,
// then face centers 8-13 into a second table indexed after it, reproducing
// the reference mesh builder's "corners indexed before face centers" order.
func bootstrapNodeMap(grid *FCCGrid, ownedCellGIDs []int) (corner, face map[int]int) {
	corner = make(map[int]int)
	for _, cellGID := range ownedCellGIDs {
		nodeGIDs := grid.GetNodeGIDs(cellGID)
		for i := 0; i < 8; i++ {
			if _, ok := corner[nodeGIDs[i]]; !ok {
				corner[nodeGIDs[i]] = len(corner)
			}
		}
	}
	offset := len(corner)
	face = make(map[int]int)
	for _, cellGID := range ownedCellGIDs {
		nodeGIDs := grid.GetNodeGIDs(cellGID)
		for i := 8; i < 14; i++ {
			if _, ok := face[nodeGIDs[i]]; !ok {
				face[nodeGIDs[i]] = offset + len(face)
			}
		}
	}
	return corner, face
}

func buildCell(
	grid *FCCGrid,
	partition *MeshPartition,
	neighborIndex map[int]int,
	boundary [6]FacetAdjacencyEvent,
	cellIdx, cellGID int,
	localIdx func(int) int,
) CellConnectivity {
	nodeGIDs := grid.GetNodeGIDs(cellGID)
	faceNbrGIDs := grid.GetFaceNbrGIDs(cellGID)
	ownInfo := partition.CellInfoMap[cellGID]

	var cc CellConnectivity
	for i, gid := range nodeGIDs {
		cc.Point[i] = localIdx(gid)
	}

	for facetIdx := 0; facetIdx < 24; facetIdx++ {
		faceID := facetIdx / 4
		nbrGID := faceNbrGIDs[faceID]

		current := Location{Domain: partition.DomainGID, Cell: cellIdx, Facet: facetIdx}
		sub := SubfacetAdjacency{Current: current, NeighborIndex: -1, NeighborGlobalDomain: partition.DomainGID}

		switch {
		case nbrGID == cellGID:
			sub.Event = boundary[faceID]
		default:
			nbrInfo, ok := partition.CellInfoMap[nbrGID]
			if !ok {
				panic(fmt.Sprintf("geometry: cell %d has unresolved face neighbor %d", cellGID, nbrGID))
			}
			if nbrInfo.Foreman == ownInfo.Foreman {
				sub.Event = TransitOnUnit
			} else {
				sub.Event = TransitOffUnit
			}
		}

		switch sub.Event {
		case BoundaryEscape, BoundaryReflection:
			// Adjacent loops back onto the facet itself: there is nowhere to
			// transit to, and reflect/escape handling only needs the
			// current facet's own plane.
			sub.Adjacent = current
		case TransitOnUnit:
			nbrInfo := partition.CellInfoMap[nbrGID]
			sub.Adjacent = Location{Domain: nbrInfo.DomainGID, Cell: nbrInfo.CellIndex, Facet: opposingFacet[facetIdx]}
		case TransitOffUnit:
			nbrInfo := partition.CellInfoMap[nbrGID]
			sub.Adjacent = Location{Domain: nbrInfo.DomainGID, Cell: nbrInfo.CellIndex, Facet: opposingFacet[facetIdx]}
			sub.NeighborIndex = neighborIndex[nbrInfo.DomainGID]
			sub.NeighborGlobalDomain = nbrInfo.DomainGID
		default:
			panic("geometry: facet has undefined adjacency event")
		}

		var pts [3]int
		for k, ni := range nodeIndirect[facetIdx] {
			pts[k] = localIdx(nodeGIDs[ni])
		}
		cc.Facet[facetIdx] = FacetAdjacency{Subfacet: sub, Point: pts}
	}
	return cc
}
