package montecarlo

import (
	"testing"

	"github.com/pthm-cable/transportproxy/geometry"
	"github.com/pthm-cable/transportproxy/material"
	"github.com/pthm-cable/transportproxy/nuclear"
	"github.com/pthm-cable/transportproxy/vecmath"
)

func newScatterOnlySimulation(t *testing.T, nParticles int) *Simulation {
	t.Helper()

	nuc := nuclear.New(1, 1e-9, 20)
	gid := nuc.AddIsotope(nuclear.IsotopeSpec{
		NReactions:        1,
		TotalCrossSection: 1,
		ScatterWeight:     1,
	})

	materials := material.NewDatabase()
	materials.Add(material.Material{
		Name:       "mat",
		Mass:       1,
		SourceRate: 100,
		Isotopes:   []material.Isotope{{GID: gid, AtomFraction: 1}},
	})

	regions := []material.GeometryRegion{
		{Shape: material.ShapeBrick, MaterialName: "mat", XMax: 1, YMax: 1, ZMax: 1},
	}

	grid := geometry.NewFCCGrid(1, 1, 1, 1, 1, 1)
	seedCenters := SeedCentersByBand(grid, 1)

	sim, err := New(grid, nuc, materials, regions, seedCenters, Config{
		Dt:           1,
		EMin:         1e-9,
		EMax:         20,
		NParticles:   nParticles,
		BoundaryKind: "reflect",
	})
	if err != nil {
		t.Fatalf("building simulation: %v", err)
	}
	return sim
}

func TestRunCycleDrainsAllBuckets(t *testing.T) {
	sim := newScatterOnlySimulation(t, 1000)
	sim.RunCycle()

	u := sim.Units[0]
	if len(u.Container.Processing) != 0 {
		t.Errorf("expected processing empty after RunCycle, got %d", len(u.Container.Processing))
	}
	if len(u.Container.Extra) != 0 {
		t.Errorf("expected extra empty after RunCycle, got %d", len(u.Container.Extra))
	}
	if len(u.Container.SendQueue) != 0 {
		t.Errorf("expected send queue empty after RunCycle, got %d", len(u.Container.SendQueue))
	}
}

func TestRunCycleReflectScatterOnlyReachesCensus(t *testing.T) {
	sim := newScatterOnlySimulation(t, 1000)
	sim.RunCycle()

	snap := sim.Units[0].Balance().Snapshot()
	if snap.Source == 0 {
		t.Fatal("expected at least one sourced particle")
	}
	if snap.Absorb != 0 || snap.Escape != 0 || snap.Fission != 0 {
		t.Errorf("scatter-only reflecting unit should have no absorb/escape/fission, got absorb=%d escape=%d fission=%d", snap.Absorb, snap.Escape, snap.Fission)
	}
	if snap.Census == 0 {
		t.Error("expected surviving particles to reach census")
	}
}

func TestRunCycleConservesParticleCountAcrossCycles(t *testing.T) {
	sim := newScatterOnlySimulation(t, 1000)
	u := sim.Units[0]

	var prevCensus uint64
	for cycle := 0; cycle < 3; cycle++ {
		sim.RunCycle()
		snap := u.Balance().Snapshot()

		lhs := snap.Start + snap.Source + snap.Produce + snap.Split
		rhs := snap.Census + snap.Absorb + snap.Escape + snap.RR + snap.Fission
		if lhs != rhs {
			t.Errorf("cycle %d: start+source+produce+split = %d, want census+absorb+escape+rr+fission = %d (snap=%+v)", cycle, lhs, rhs, snap)
		}
		if snap.End() != snap.Census {
			t.Errorf("cycle %d: End() = %d, want Census = %d (no absorb/escape/fission in this scenario)", cycle, snap.End(), snap.Census)
		}

		if cycle > 0 && snap.Start != prevCensus {
			t.Errorf("cycle %d: Start = %d, want previous cycle's Census = %d", cycle, snap.Start, prevCensus)
		}
		prevCensus = snap.Census
	}
}

func TestSeedCentersByBandCoversEveryDomain(t *testing.T) {
	grid := geometry.NewFCCGrid(4, 1, 1, 4, 1, 1)
	centers := SeedCentersByBand(grid, 4)
	if len(centers) != 4 {
		t.Fatalf("expected 4 seed centers, got %d", len(centers))
	}
	seen := make(map[int]bool)
	for _, c := range centers {
		seen[grid.WhichCell(c)] = true
	}
	if len(seen) != 4 {
		t.Errorf("expected 4 distinct seed cells, got %d", len(seen))
	}
}

func TestSeedCentersByBandSingleUnit(t *testing.T) {
	grid := geometry.NewFCCGrid(3, 3, 3, 3, 3, 3)
	centers := SeedCentersByBand(grid, 1)
	if len(centers) != 1 {
		t.Fatalf("expected 1 seed center, got %d", len(centers))
	}
	if centers[0] == (vecmath.Vec3{}) {
		t.Error("expected a nonzero seed center")
	}
}
