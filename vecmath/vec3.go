package vecmath

import "math"

// TinyFloat is the threshold below which a magnitude is treated as zero.
const TinyFloat Real = 1e-13

// Vec3 is an immutable 3-component vector.
type Vec3 struct {
	X, Y, Z Real
}

// Add returns a + b.
func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// Sub returns a - b.
func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// Scale returns a * s.
func (a Vec3) Scale(s Real) Vec3 {
	return Vec3{a.X * s, a.Y * s, a.Z * s}
}

// Div returns a / s. Panics if s is almost zero, matching the reference
// contract that division by zero is a programming error, not a recoverable
// numeric edge.
func (a Vec3) Div(s Real) Vec3 {
	if IsAlmostZero(s) {
		panic("vecmath: division by near-zero scalar")
	}
	return Vec3{a.X / s, a.Y / s, a.Z / s}
}

// Dot returns the dot product a . b.
func (a Vec3) Dot(b Vec3) Real {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns the cross product a x b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Length returns the Euclidean norm of a.
func (a Vec3) Length() Real {
	return math.Sqrt(a.Dot(a))
}

// Distance returns the Euclidean distance between a and b.
func (a Vec3) Distance(b Vec3) Real {
	return a.Sub(b).Length()
}

// IsAlmostZero reports whether v is within TinyFloat of zero.
func IsAlmostZero(v Real) bool {
	return math.Abs(v) < TinyFloat
}

// IsAlmostEqual reports whether a and b are within TinyFloat of each other.
func IsAlmostEqual(a, b Real) bool {
	return math.Abs(a-b) < TinyFloat
}
