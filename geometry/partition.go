package geometry

import (
	"sort"

	"github.com/pthm-cable/transportproxy/vecmath"
)

// CellInfo records which domain owns a cell, and that cell's local index
// within the domain once assignment is finalized. -1 in any field means
// "not yet resolved" / "not applicable".
type CellInfo struct {
	DomainGID   int
	Foreman     int
	DomainIndex int
	CellIndex   int
}

func unsetCellInfo() CellInfo {
	return CellInfo{DomainGID: -1, Foreman: -1, DomainIndex: -1, CellIndex: -1}
}

// nbrCoords26 lists the 26 neighbor offsets (full 3x3x3 neighborhood minus
// the center) used to flood-fill outward while discovering which cells
// belong to a domain.
var nbrCoords26 = buildNbrCoords26()

func buildNbrCoords26() [][3]int {
	var out [][3]int
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				out = append(out, [3]int{dx, dy, dz})
			}
		}
	}
	return out
}

// MeshPartition assigns cells to domains by flood-filling outward from a
// domain's own center, deciding ownership via nearest-center queries, and
// stopping once the flood reaches cells that belong to other domains.
type MeshPartition struct {
	DomainGID int
	Foreman   int

	// CellInfoMap records, for every cell the flood-fill has visited
	// (whether or not it belongs to this domain), which domain owns it.
	CellInfoMap map[int]CellInfo

	// NeighborDomains is the set of domain GIDs bordering this one.
	NeighborDomains map[int]bool
}

// NewMeshPartition starts an empty partition for the given domain.
func NewMeshPartition(domainGID, foreman int) *MeshPartition {
	return &MeshPartition{
		DomainGID:       domainGID,
		Foreman:         foreman,
		CellInfoMap:     make(map[int]CellInfo),
		NeighborDomains: make(map[int]bool),
	}
}

// sortedCellGIDs returns the keys of m in ascending order, giving every
// downstream builder step a deterministic iteration order independent of
// Go's randomized map iteration.
func sortedCellGIDs(m map[int]CellInfo) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func sortedIntSet(m map[int]bool) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Build assigns every cell reachable from this domain's center to a domain
// (stopping at the boundary with each neighbor), then resolves per-domain
// local cell indices in deterministic (ascending cell GID) order.
func (p *MeshPartition) Build(grid *FCCGrid, centers []vecmath.Vec3) {
	p.assignCellsToDomain(grid, centers)
	p.buildCellIdxMap()
}

func (p *MeshPartition) assignCellsToDomain(grid *FCCGrid, centers []vecmath.Vec3) {
	assigner := NewGridAssignmentObject(centers)

	root := grid.WhichCell(centers[p.DomainGID])
	wetCells := map[int]bool{root: true}
	floodQueue := []int{root}
	floodQueue = addNbrsToFlood(root, grid, floodQueue, wetCells)

	for len(floodQueue) > 0 {
		cellIdx := floodQueue[0]
		floodQueue = floodQueue[1:]

		rr := grid.CellCenter(cellIdx)
		domain := assigner.NearestCenter(rr)

		if _, ok := p.CellInfoMap[cellIdx]; !ok {
			info := unsetCellInfo()
			info.DomainGID = domain
			p.CellInfoMap[cellIdx] = info
		}

		if domain == p.DomainGID {
			floodQueue = addNbrsToFlood(cellIdx, grid, floodQueue, wetCells)
		} else {
			p.NeighborDomains[domain] = true
		}
	}
}

func addNbrsToFlood(cellIdx int, grid *FCCGrid, floodQueue []int, wetCells map[int]bool) []int {
	x, y, z := grid.CellIdxToTuple(cellIdx)
	for _, off := range nbrCoords26 {
		sx, sy, sz := grid.SnapTurtle(x+off[0], y+off[1], z+off[2])
		nbrIdx := grid.CellTupleToIdx(sx, sy, sz)
		if !wetCells[nbrIdx] {
			wetCells[nbrIdx] = true
			floodQueue = append(floodQueue, nbrIdx)
		}
	}
	return floodQueue
}

// ResolveHaloCellInfo propagates each cell's owning-domain CellInfo (with
// its resolved Foreman/CellIndex) into every other partition's map that
// references that cell as a remote neighbor, so a domain's halo cells carry
// the same CellInfo its owning domain assigned them.
func ResolveHaloCellInfo(partitions []*MeshPartition) {
	byDomainGID := make(map[int]*MeshPartition, len(partitions))
	for _, p := range partitions {
		byDomainGID[p.DomainGID] = p
	}
	for _, p := range partitions {
		for cellGID, info := range p.CellInfoMap {
			if info.DomainGID == p.DomainGID {
				continue
			}
			owner, ok := byDomainGID[info.DomainGID]
			if !ok {
				continue
			}
			ownerInfo, ok := owner.CellInfoMap[cellGID]
			if !ok || ownerInfo.CellIndex < 0 {
				continue
			}
			p.CellInfoMap[cellGID] = ownerInfo
		}
	}
}

// buildCellIdxMap resolves DomainIndex/CellIndex/Foreman for every cell
// this domain owns, visiting owned cells in ascending cell-GID order so the
// resulting local cell numbering is reproducible across runs.
func (p *MeshPartition) buildCellIdxMap() {
	nLocal := 0
	for _, cellGID := range sortedCellGIDs(p.CellInfoMap) {
		info := p.CellInfoMap[cellGID]
		if info.DomainGID != p.DomainGID {
			continue
		}
		info.CellIndex = nLocal
		info.DomainIndex = p.DomainGID
		info.Foreman = p.Foreman
		p.CellInfoMap[cellGID] = info
		nLocal++
	}
}
