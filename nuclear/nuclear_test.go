package nuclear

import (
	"math"
	"testing"

	"github.com/pthm-cable/transportproxy/vecmath"
)

func TestGroupOf(t *testing.T) {
	d := &Data{G: 5, Energies: []vecmath.Real{1, 2, 4, 8, 16, 32}}

	cases := []struct {
		e    vecmath.Real
		want int
	}{
		{0.5, 0},
		{1, 0},
		{100, 5},
		{16.0001, 4},
		{2, 1},
	}
	for _, c := range cases {
		if got := d.GroupOf(c.e); got != c.want {
			t.Errorf("GroupOf(%v) = %d, want %d", c.e, got, c.want)
		}
	}
}

func TestNewGridEndpoints(t *testing.T) {
	d := New(10, 1e-9, 20)
	if d.Energies[0] != 1e-9 {
		t.Fatalf("expected low endpoint preserved, got %v", d.Energies[0])
	}
	if d.Energies[10] != 20 {
		t.Fatalf("expected high endpoint preserved, got %v", d.Energies[10])
	}
	for i := 1; i < len(d.Energies); i++ {
		if d.Energies[i] <= d.Energies[i-1] {
			t.Fatalf("expected strictly increasing grid, energies[%d]=%v <= energies[%d]=%v", i, d.Energies[i], i-1, d.Energies[i-1])
		}
	}
}

func TestAddIsotopeNormalizesToTarget(t *testing.T) {
	d := New(4, 1e-9, 20)
	idx := d.AddIsotope(IsotopeSpec{
		NReactions:        3,
		TotalCrossSection: 9,
		ScatterPoly:       vecmath.Polynomial{EE: 0},
		FissionPoly:       vecmath.Polynomial{EE: 0},
		AbsorptionPoly:    vecmath.Polynomial{EE: 0},
		ScatterWeight:     1,
		FissionWeight:     1,
		AbsorptionWeight:  1,
		NuBar:             2.4,
	})

	var total vecmath.Real
	// find the group whose upper bound is >= 1
	group := -1
	for i := 0; i < d.G; i++ {
		if d.Energies[i+1] >= 1 {
			group = i
			break
		}
	}
	if group < 0 {
		t.Fatal("no group found with upper bound >= 1")
	}
	for _, r := range d.Isotopes[idx].Reactions {
		total += r.CrossSection[group]
	}
	if math.Abs(float64(total-9)) > 1e-9 {
		t.Fatalf("expected normalized total cross-section 9 at the reference group, got %v", total)
	}
}
