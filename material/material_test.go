package material

import "testing"

import "github.com/pthm-cable/transportproxy/vecmath"

func TestGeometryRegionContainsBrick(t *testing.T) {
	g := GeometryRegion{Shape: ShapeBrick, XMin: 0, XMax: 10, YMin: 0, YMax: 10, ZMin: 0, ZMax: 10}
	if !g.Contains(vecmath.Vec3{X: 5, Y: 5, Z: 5}) {
		t.Fatal("expected point inside brick to be contained")
	}
	if g.Contains(vecmath.Vec3{X: 11, Y: 5, Z: 5}) {
		t.Fatal("expected point outside brick to be excluded")
	}
}

func TestGeometryRegionContainsSphere(t *testing.T) {
	g := GeometryRegion{Shape: ShapeSphere, XCenter: 0, YCenter: 0, ZCenter: 0, Radius: 2}
	if !g.Contains(vecmath.Vec3{X: 1, Y: 1, Z: 0}) {
		t.Fatal("expected point inside sphere to be contained")
	}
	if g.Contains(vecmath.Vec3{X: 2, Y: 2, Z: 2}) {
		t.Fatal("expected point outside sphere to be excluded")
	}
}

func TestAssignMaterialFirstDeclaredRegionWins(t *testing.T) {
	regions := []GeometryRegion{
		{Shape: ShapeBrick, MaterialName: "fuel", XMin: 0, XMax: 10, YMin: 0, YMax: 10, ZMin: 0, ZMax: 10},
		{Shape: ShapeBrick, MaterialName: "moderator", XMin: 2, XMax: 8, YMin: 2, YMax: 8, ZMin: 2, ZMax: 8},
	}
	// Point inside both regions: the earlier-declared "fuel" region must win.
	got := AssignMaterial(regions, vecmath.Vec3{X: 5, Y: 5, Z: 5})
	if got != "fuel" {
		t.Fatalf("expected fuel to win overlap, got %q", got)
	}
	// Point only inside the earlier "fuel" region.
	got = AssignMaterial(regions, vecmath.Vec3{X: 9, Y: 9, Z: 9})
	if got != "fuel" {
		t.Fatalf("expected fuel (only covering region), got %q", got)
	}
	got = AssignMaterial([]GeometryRegion{
		{Shape: ShapeBrick, MaterialName: "moderator", XMin: 2, XMax: 8, YMin: 2, YMax: 8, ZMin: 2, ZMax: 8},
	}, vecmath.Vec3{X: 5, Y: 5, Z: 5})
	if got != "moderator" {
		t.Fatalf("expected moderator, got %q", got)
	}
}

func TestDatabaseFind(t *testing.T) {
	db := NewDatabase()
	db.Add(Material{Name: "fuel", Mass: 235})
	idx, ok := db.Find("fuel")
	if !ok || idx != 0 {
		t.Fatalf("expected fuel at index 0, got %d %v", idx, ok)
	}
	if _, ok := db.Find("missing"); ok {
		t.Fatal("expected missing material to not be found")
	}
}
