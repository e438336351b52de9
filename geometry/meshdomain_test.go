package geometry

import (
	"testing"

	"github.com/pthm-cable/transportproxy/vecmath"
)

// buildTwoCellPartitions returns two single-cell domains covering a 2x1x1
// grid, one per cell, using foreman to control whether the shared face is
// classified on-unit or off-unit.
func buildTwoCellPartitions(t *testing.T, foremanA, foremanB int) (*FCCGrid, []*MeshPartition) {
	t.Helper()
	g := NewFCCGrid(2, 1, 1, 2, 1, 1)
	centers := []vecmath.Vec3{g.CellCenter(0), g.CellCenter(1)}

	pA := NewMeshPartition(0, foremanA)
	pA.Build(g, centers)
	pB := NewMeshPartition(1, foremanB)
	pB.Build(g, centers)

	partitions := []*MeshPartition{pA, pB}
	ResolveHaloCellInfo(partitions)
	return g, partitions
}

func TestMeshDomainOnUnitTransitBetweenFaces(t *testing.T) {
	g, partitions := buildTwoCellPartitions(t, 7, 7)
	reflect, err := BoundaryConditions("reflect")
	if err != nil {
		t.Fatal(err)
	}

	domA := NewMeshDomain(g, partitions[0], reflect)
	domB := NewMeshDomain(g, partitions[1], reflect)

	if len(domA.CellConnectivity) != 1 || len(domB.CellConnectivity) != 1 {
		t.Fatalf("expected one cell per domain, got %d and %d", len(domA.CellConnectivity), len(domB.CellConnectivity))
	}

	// Facets 0-3 (the +x face) of domain A's only cell must transit on-unit
	// into domain B, since both partitions share foreman 7.
	for facetIdx := 0; facetIdx < 4; facetIdx++ {
		sub := domA.CellConnectivity[0].Facet[facetIdx].Subfacet
		if sub.Event != TransitOnUnit {
			t.Fatalf("facet %d: expected TransitOnUnit, got %v", facetIdx, sub.Event)
		}
		if sub.Adjacent.Domain != 1 || sub.Adjacent.Cell != 0 {
			t.Fatalf("facet %d: expected adjacent (domain 1, cell 0), got %+v", facetIdx, sub.Adjacent)
		}
		if sub.Adjacent.Facet != opposingFacet[facetIdx] {
			t.Fatalf("facet %d: expected adjacent facet %d, got %d", facetIdx, opposingFacet[facetIdx], sub.Adjacent.Facet)
		}
	}

	// The -x face (facets 4-7) of domain A's cell is the grid boundary.
	for facetIdx := 4; facetIdx < 8; facetIdx++ {
		sub := domA.CellConnectivity[0].Facet[facetIdx].Subfacet
		if sub.Event != BoundaryReflection {
			t.Fatalf("facet %d: expected BoundaryReflection, got %v", facetIdx, sub.Event)
		}
		if sub.Adjacent != sub.Current {
			t.Fatalf("facet %d: expected boundary adjacency to loop back to itself, got %+v vs current %+v", facetIdx, sub.Adjacent, sub.Current)
		}
	}
}

func TestMeshDomainOffUnitTransitAcrossForemen(t *testing.T) {
	g, partitions := buildTwoCellPartitions(t, 1, 2)
	escape, err := BoundaryConditions("escape")
	if err != nil {
		t.Fatal(err)
	}

	domA := NewMeshDomain(g, partitions[0], escape)

	for facetIdx := 0; facetIdx < 4; facetIdx++ {
		sub := domA.CellConnectivity[0].Facet[facetIdx].Subfacet
		if sub.Event != TransitOffUnit {
			t.Fatalf("facet %d: expected TransitOffUnit, got %v", facetIdx, sub.Event)
		}
		if sub.NeighborGlobalDomain != 1 {
			t.Fatalf("facet %d: expected neighbor global domain 1, got %d", facetIdx, sub.NeighborGlobalDomain)
		}
		if sub.NeighborIndex != 0 {
			t.Fatalf("facet %d: expected neighbor index 0 (domain A's only neighbor), got %d", facetIdx, sub.NeighborIndex)
		}
	}
}

func TestBoundaryConditionsOctantAlternates(t *testing.T) {
	oct, err := BoundaryConditions("octant")
	if err != nil {
		t.Fatal(err)
	}
	want := [6]FacetAdjacencyEvent{BoundaryEscape, BoundaryReflection, BoundaryEscape, BoundaryReflection, BoundaryEscape, BoundaryReflection}
	if oct != want {
		t.Fatalf("octant boundary = %v, want %v", oct, want)
	}
}

func TestBoundaryConditionsRejectsUnknown(t *testing.T) {
	if _, err := BoundaryConditions("nonsense"); err == nil {
		t.Fatal("expected error for unknown boundary condition")
	}
}
