package population

import "testing"

func TestSplitFactorGlobal(t *testing.T) {
	cases := []struct {
		name                                   string
		targetNParticles, nUnits, globalCount int
		want                                   float64
	}{
		{"too many particles roulettes down", 100, 1, 200, 0.5},
		{"too few particles splits up", 100, 1, 50, 2},
		{"exactly at target is a no-op factor", 100, 1, 100, 1},
		{"zero global count defaults to no-op", 100, 1, 0, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := SplitFactor(c.targetNParticles, c.nUnits, 0, c.globalCount, false)
			if got != c.want {
				t.Errorf("SplitFactor(...) = %v, want %v", got, c.want)
			}
		})
	}
}

func TestSplitFactorLoadBalancedIsPerUnit(t *testing.T) {
	// target=100 split across 4 units -> 25 per unit; a unit sitting at 50
	// local particles should roulette down by half regardless of what any
	// other unit is doing.
	got := SplitFactor(100, 4, 50, 999, true)
	if got != 0.5 {
		t.Errorf("SplitFactor(...) = %v, want 0.5", got)
	}
}

func TestSplitFactorLoadBalancedZeroLocalIsNoOp(t *testing.T) {
	got := SplitFactor(100, 4, 0, 999, true)
	if got != 1 {
		t.Errorf("SplitFactor(...) = %v, want 1", got)
	}
}
