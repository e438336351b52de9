package particle

import (
	"math"
	"testing"

	"github.com/pthm-cable/transportproxy/geometry"
	"github.com/pthm-cable/transportproxy/vecmath"
)

func TestSpeedAtZeroEnergyIsZero(t *testing.T) {
	p := &Particle{KineticEnergy: 0}
	if got := p.Speed(); math.Abs(got) > 1e-9 {
		t.Fatalf("expected zero speed at zero kinetic energy, got %v", got)
	}
}

func TestSpeedApproachesLightSpeedAtHighEnergy(t *testing.T) {
	p := &Particle{KineticEnergy: 1e6}
	got := p.Speed()
	if got <= 0 || got >= vecmath.LightSpeed {
		t.Fatalf("expected speed in (0, c), got %v", got)
	}
	if math.Abs(float64(got-vecmath.LightSpeed))/float64(vecmath.LightSpeed) > 1e-3 {
		t.Fatalf("expected ultra-relativistic speed near c, got %v", got)
	}
}

func TestSampleIsotropicProducesUnitVector(t *testing.T) {
	p := &Particle{RandomNumberSeed: 12345}
	for i := 0; i < 50; i++ {
		p.SampleIsotropic()
		l := p.Direction.Length()
		if math.Abs(float64(l-1)) > 1e-9 {
			t.Fatalf("direction %v not unit length, got %v", p.Direction, l)
		}
	}
}

func TestUpdateTrajectoryPreservesUnitDirection(t *testing.T) {
	p := &Particle{RandomNumberSeed: 999, Direction: vecmath.Vec3{X: 0, Y: 0, Z: 1}}
	p.UpdateTrajectory(2.0, 0.5)
	if math.Abs(float64(p.Direction.Length()-1)) > 1e-9 {
		t.Fatalf("expected unit direction after trajectory update, got length %v", p.Direction.Length())
	}
	if p.KineticEnergy != 2.0 {
		t.Fatalf("expected kinetic energy updated to 2.0, got %v", p.KineticEnergy)
	}
	if p.NumMeanFreePaths <= 0 {
		t.Fatalf("expected num_mean_free_paths resampled positive, got %v", p.NumMeanFreePaths)
	}
}

func TestReflectOnlyFlipsWhenHeadingIntoFacet(t *testing.T) {
	normal := vecmath.Vec3{X: 0, Y: 0, Z: -1} // outward normal of a z=0 facet

	into := &Particle{Direction: vecmath.Vec3{X: 0, Y: 0, Z: -1}}
	into.Reflect(normal)
	if math.Abs(float64(into.Direction.Z-1)) > 1e-12 {
		t.Fatalf("expected reflection to flip z from -1 to 1, got %v", into.Direction.Z)
	}

	away := &Particle{Direction: vecmath.Vec3{X: 0, Y: 0, Z: 1}}
	away.Reflect(normal)
	if math.Abs(float64(away.Direction.Z-1)) > 1e-12 {
		t.Fatalf("expected direction already heading away to be unchanged, got %v", away.Direction.Z)
	}
}

func TestUnderPopulatedSplitWholeNumber(t *testing.T) {
	p := &Particle{Weight: 1.0, RandomNumberSeed: 7}
	clones := p.UnderPopulatedSplit(3.0)
	if len(clones) != 2 {
		t.Fatalf("expected exactly 2 clones for factor 3.0, got %d", len(clones))
	}
	if math.Abs(float64(p.Weight-1.0/3.0)) > 1e-12 {
		t.Fatalf("expected survivor weight divided by factor, got %v", p.Weight)
	}
}

func TestOverPopulatedRRDividesWeightOnSurvival(t *testing.T) {
	p := &Particle{Weight: 4.0, RandomNumberSeed: 1}
	if p.OverPopulatedRR(2.0) {
		if math.Abs(float64(p.Weight-2.0)) > 1e-12 {
			t.Fatalf("expected weight halved on survival, got %v", p.Weight)
		}
	}
}

func TestNearestFacetPicksLowestIndexOnTie(t *testing.T) {
	// Identical planes at x=1 (outward normal +x) should tie; the lower facet
	// index wins.
	planes := [24]geometry.Plane{}
	for i := range planes {
		planes[i] = geometry.Plane{A: 1, B: 0, C: 0, D: -1}
	}
	p := &Particle{Coordinate: vecmath.Vec3{}, Direction: vecmath.Vec3{X: 1, Y: 0, Z: 0}}
	r := NearestFacet(p, planes)
	if r.Facet != 0 {
		t.Fatalf("expected facet 0 to win tie, got %d", r.Facet)
	}
	if math.Abs(float64(r.Distance-1)) > 1e-9 {
		t.Fatalf("expected distance 1, got %v", r.Distance)
	}
}

func TestNearestFacetIgnoresFacetsNotFacedOutward(t *testing.T) {
	planes := [24]geometry.Plane{}
	planes[0] = geometry.Plane{A: -1, B: 0, C: 0, D: 0} // normal -x, den = -dir.X = -1 < 0
	for i := 1; i < 24; i++ {
		planes[i] = geometry.Plane{A: 1, B: 0, C: 0, D: -1} // normal +x, faces the direction of travel
	}
	p := &Particle{Coordinate: vecmath.Vec3{}, Direction: vecmath.Vec3{X: 1, Y: 0, Z: 0}}
	r := NearestFacet(p, planes)
	if r.Facet == 0 {
		t.Fatalf("expected facet 0 (facing away from travel) to be excluded, got it selected")
	}
}
