package geometry

import "testing"

func TestCellTupleIndexRoundTrip(t *testing.T) {
	g := NewFCCGrid(4, 3, 2, 8, 6, 4)
	for idx := 0; idx < g.NumCells(); idx++ {
		x, y, z := g.CellIdxToTuple(idx)
		if got := g.CellTupleToIdx(x, y, z); got != idx {
			t.Fatalf("cell %d -> tuple (%d,%d,%d) -> %d, want round trip", idx, x, y, z, got)
		}
	}
}

func TestNodeTupleIndexRoundTrip(t *testing.T) {
	g := NewFCCGrid(4, 3, 2, 8, 6, 4)
	for b := 0; b < 4; b++ {
		for z := 0; z <= g.NZ; z++ {
			for y := 0; y <= g.NY; y++ {
				for x := 0; x <= g.NX; x++ {
					idx := g.NodeTupleToIdx(x, y, z, b)
					gx, gy, gz, gb := g.NodeIdxToTuple(idx)
					if gx != x || gy != y || gz != z || gb != b {
						t.Fatalf("node (%d,%d,%d,%d) -> idx %d -> (%d,%d,%d,%d)", x, y, z, b, idx, gx, gy, gz, gb)
					}
				}
			}
		}
	}
}

func TestSnapTurtleIdempotent(t *testing.T) {
	g := NewFCCGrid(4, 3, 2, 8, 6, 4)
	cases := [][3]int{{-1, -1, -1}, {0, 0, 0}, {5, 10, 10}, {3, 2, 1}}
	for _, c := range cases {
		x, y, z := g.SnapTurtle(c[0], c[1], c[2])
		x2, y2, z2 := g.SnapTurtle(x, y, z)
		if x != x2 || y != y2 || z != z2 {
			t.Fatalf("snap(%v) = (%d,%d,%d) not idempotent, got (%d,%d,%d)", c, x, y, z, x2, y2, z2)
		}
		if x < 0 || x > g.NX-1 || y < 0 || y > g.NY-1 || z < 0 || z > g.NZ-1 {
			t.Fatalf("snap(%v) = (%d,%d,%d) out of bounds", c, x, y, z)
		}
	}
}

func TestGetFaceNbrGIDsBoundaryClampsToSelf(t *testing.T) {
	g := NewFCCGrid(2, 2, 2, 4, 4, 4)
	cellGID := g.CellTupleToIdx(0, 0, 0)
	nbrs := g.GetFaceNbrGIDs(cellGID)
	// -x, -y, -z faces of the (0,0,0) corner cell must clamp back to itself.
	if nbrs[1] != cellGID || nbrs[3] != cellGID || nbrs[5] != cellGID {
		t.Fatalf("expected boundary faces to clamp to self, got %v", nbrs)
	}
	// +x face should be a distinct neighbor.
	if nbrs[0] == cellGID {
		t.Fatalf("expected +x neighbor of corner cell to differ from self")
	}
}

func TestCellCenterMatchesWhichCell(t *testing.T) {
	g := NewFCCGrid(3, 3, 3, 6, 6, 6)
	for idx := 0; idx < g.NumCells(); idx++ {
		center := g.CellCenter(idx)
		if got := g.WhichCell(center); got != idx {
			t.Fatalf("cell %d center %v resolves back to cell %d", idx, center, got)
		}
	}
}
