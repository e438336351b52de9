// Package particle holds the per-particle state the tracking loop advances,
// and the three-bucket container a unit uses to stage work across a cycle.
package particle

import (
	"math"

	"github.com/pthm-cable/transportproxy/geometry"
	"github.com/pthm-cable/transportproxy/rng"
	"github.com/pthm-cable/transportproxy/vecmath"
)

// Species distinguishes a live particle from one that has been logically
// deleted (absorbed, escaped, or rouletted away) but not yet physically
// removed from its slice.
type Species int

const (
	Known Species = iota
	Unknown
)

// LastEvent is the most recent thing that happened to a particle, set at the
// end of every segment or facet crossing.
type LastEvent int

const (
	EventStart LastEvent = iota
	Collision
	FacetCrossingTransitExit
	FacetCrossingEscape
	FacetCrossingReflection
	FacetCrossingCommunication
	Census
)

// Particle is the full mutable state the tracking loop advances one segment
// at a time.
type Particle struct {
	Coordinate vecmath.Vec3
	Direction  vecmath.Vec3

	KineticEnergy vecmath.Real
	EnergyGroup   int
	Weight        vecmath.Real

	TimeToCensus       vecmath.Real
	Age                vecmath.Real
	TotalCrossSection  vecmath.Real
	MeanFreePath       vecmath.Real
	SegmentPathLength  vecmath.Real
	NumMeanFreePaths   vecmath.Real
	NumSegments        uint64

	RandomNumberSeed uint64
	Identifier       uint64

	LastEvent LastEvent
	Domain    int
	Cell      int
	Facet     int

	FacetNormal vecmath.Vec3
	Species     Species
}

// Sample draws the next uniform [0,1) value from the particle's own stream,
// advancing its seed.
func (p *Particle) Sample() vecmath.Real {
	return rng.Sample(&p.RandomNumberSeed)
}

// SpawnSeed derives and returns a child seed from the particle's stream,
// advancing it in the same step.
func (p *Particle) SpawnSeed() uint64 {
	return rng.Spawn(&p.RandomNumberSeed)
}

// SampleNumMFP resamples the number of mean free paths to the next
// collision, run at particle birth and after every real collision.
func (p *Particle) SampleNumMFP() {
	p.NumMeanFreePaths = -math.Log(p.Sample())
}

// SampleIsotropic gives the particle a uniformly random direction on the
// unit sphere.
func (p *Particle) SampleIsotropic() {
	z := 1 - 2*p.Sample()
	sineGamma := math.Sqrt(math.Max(0, 1-z*z))
	phi := math.Pi * (2*p.Sample() - 1)
	p.Direction = vecmath.Vec3{
		X: sineGamma * math.Cos(phi),
		Y: sineGamma * math.Sin(phi),
		Z: z,
	}
}

// Speed returns the particle's relativistic speed given its kinetic energy.
func (p *Particle) Speed() vecmath.Real {
	e := p.KineticEnergy
	m := vecmath.NeutronRestMassEnergy
	return vecmath.LightSpeed * math.Sqrt(e*(e+2*m)) / (e + m)
}

// MoveAlongSegment advances the particle's position by dist along its
// current direction.
func (p *Particle) MoveAlongSegment(dist vecmath.Real) {
	p.Coordinate = p.Coordinate.Add(p.Direction.Scale(dist))
}

// UpdateTrajectory sets a new kinetic energy and rotates the particle's
// direction by cosine angle cosTheta about a uniformly random azimuth,
// expressed in the particle's own local frame.
func (p *Particle) UpdateTrajectory(energy, cosTheta vecmath.Real) {
	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	phi := 2 * math.Pi * p.Sample()
	sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)

	gamma0 := p.Direction.Z
	sine0 := math.Sqrt(math.Max(0, 1-gamma0*gamma0))
	var cosPhi0, sinPhi0 vecmath.Real
	if sine0 < 1e-6 {
		cosPhi0, sinPhi0 = 1, 0
	} else {
		cosPhi0, sinPhi0 = p.Direction.X/sine0, p.Direction.Y/sine0
	}

	p.KineticEnergy = energy
	p.Direction = vecmath.Vec3{
		X: gamma0*cosPhi0*(sinTheta*cosPhi) - sinPhi0*(sinTheta*sinPhi) + sine0*cosPhi0*cosTheta,
		Y: gamma0*sinPhi0*(sinTheta*cosPhi) + cosPhi0*(sinTheta*sinPhi) + sine0*sinPhi0*cosTheta,
		Z: -sine0*(sinTheta*cosPhi) + gamma0*cosTheta,
	}
	p.SampleNumMFP()
}

// Reflect mirrors the particle's direction across normal if it is currently
// headed into the facet (2*(dir.normal) > 0).
func (p *Particle) Reflect(normal vecmath.Vec3) {
	d := 2 * p.Direction.Dot(normal)
	if d > 0 {
		p.Direction = p.Direction.Sub(normal.Scale(d))
	}
}

// Clone returns a copy of p with a freshly spawned seed and identifier, used
// to generate fission progeny and split-population clones.
func (p *Particle) Clone() Particle {
	child := *p
	child.RandomNumberSeed = p.SpawnSeed()
	child.Identifier = child.RandomNumberSeed
	return child
}

// UnderPopulatedSplit divides p's weight by factor and returns the clones to
// add alongside it: floor(factor)-1 guaranteed clones, plus one more with
// probability factor-floor(factor). p survives with the divided weight.
func (p *Particle) UnderPopulatedSplit(factor vecmath.Real) []Particle {
	whole := math.Floor(factor)
	nSplit := int(whole) - 1
	if p.Sample() < factor-whole {
		nSplit++
	}
	p.Weight /= factor
	if nSplit <= 0 {
		return nil
	}
	clones := make([]Particle, nSplit)
	for i := range clones {
		clones[i] = p.Clone()
	}
	return clones
}

// OverPopulatedRR kills p with probability 1-factor (U > factor), else
// divides its weight by factor. Returns whether p survives.
func (p *Particle) OverPopulatedRR(factor vecmath.Real) bool {
	if p.Sample() > factor {
		return false
	}
	p.Weight /= factor
	return true
}

// LowWeightRR gives low-weight particles a second chance to survive at
// reduced weight, or kills them. cutoff is relative_weight_cutoff *
// source_particle_weight.
func (p *Particle) LowWeightRR(cutoff, relativeWeightCutoff vecmath.Real) bool {
	if p.Weight > cutoff {
		return true
	}
	if p.Sample() > relativeWeightCutoff {
		return false
	}
	p.Weight /= relativeWeightCutoff
	return true
}

// NearestFacetResult is what NearestFacet finds: the closest facet the
// particle's ray exits the current cell through.
type NearestFacetResult struct {
	Facet    int
	Distance vecmath.Real
	CosAngle vecmath.Real
}

// NearestFacet scans all 24 facet planes of the particle's current cell and
// returns the nearest one the particle is moving toward.
func NearestFacet(p *Particle, planes [24]geometry.Plane) NearestFacetResult {
	best := NearestFacetResult{Facet: -1, Distance: vecmath.HugeFloat}
	for i, pl := range planes {
		den := pl.A*p.Direction.X + pl.B*p.Direction.Y + pl.C*p.Direction.Z
		if den <= vecmath.TinyFloat {
			continue
		}
		num := -(pl.A*p.Coordinate.X + pl.B*p.Coordinate.Y + pl.C*p.Coordinate.Z + pl.D)
		dist := num / den
		if dist < 0 {
			dist = 0
		}
		if dist < best.Distance {
			best = NearestFacetResult{Facet: i, Distance: dist, CosAngle: den}
		}
	}
	if best.Facet < 0 {
		return best
	}
	if best.Distance > vecmath.HugeFloat {
		panic("particle: nearest facet distance exceeds huge-float sentinel")
	}
	return best
}
