// Package vecmath provides the vector and polynomial primitives shared by
// the rest of the transport proxy.
package vecmath

// Real is the floating-point scalar used throughout the simulation core.
// The physics does not depend on the choice of width; this proxy is built
// against a single width rather than monomorphizing every numeric package,
// since the codebase it grew from has no generic-numeric layer to build on.
// There is no single-precision mode: config.Parameters.SinglePrecision is
// not read by any code and the CLI has no flag for it.
type Real = float64

// Sentinel magnitudes shared by the distance-to-event comparisons in the
// tracking loop, mirroring the reference proxy's physical_constants module.
const (
	// HugeFloat stands in for "no event found" / "infinite distance".
	HugeFloat Real = 1e75
	// SmallFloat is the distance assigned to a forced collision.
	SmallFloat Real = 1e-10

	// NeutronRestMassEnergy is the neutron rest mass energy in MeV.
	NeutronRestMassEnergy Real = 939.5656981095
	// LightSpeed is the speed of light in cm/s.
	LightSpeed Real = 2.99792458e10
)
