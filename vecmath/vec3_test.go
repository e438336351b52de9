package vecmath

import "testing"

func TestVec3Additivity(t *testing.T) {
	a := Vec3{1.5, -2.25, 3.75}
	b := Vec3{0.5, 4.0, -1.0}
	got := a.Add(b).Sub(b)
	if !IsAlmostEqual(got.X, a.X) || !IsAlmostEqual(got.Y, a.Y) || !IsAlmostEqual(got.Z, a.Z) {
		t.Fatalf("(a+b)-b = %v, want %v", got, a)
	}
}

func TestVec3DotCross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	if x.Dot(y) != 0 {
		t.Fatalf("orthogonal dot should be 0")
	}
	z := x.Cross(y)
	if z != (Vec3{0, 0, 1}) {
		t.Fatalf("x cross y = %v, want (0,0,1)", z)
	}
}

func TestVec3Length(t *testing.T) {
	v := Vec3{3, 4, 0}
	if v.Length() != 5 {
		t.Fatalf("length = %v, want 5", v.Length())
	}
}

func TestVec3DivPanicsOnNearZero(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic dividing by near-zero scalar")
		}
	}()
	Vec3{1, 1, 1}.Div(0)
}

func TestPolynomialHorner(t *testing.T) {
	// p(x) = x^2 + 2x + 1 = (x+1)^2
	p := Polynomial{AA: 0, BB: 0, CC: 1, DD: 2, EE: 1}
	if got := p.Eval(3); got != 16 {
		t.Fatalf("p(3) = %v, want 16", got)
	}
}
