package vecmath

// Polynomial is a degree-4 polynomial aa*x^4 + bb*x^3 + cc*x^2 + dd*x + ee,
// used as the log-log model of cross section against energy.
type Polynomial struct {
	AA, BB, CC, DD, EE Real
}

// Eval evaluates the polynomial at x by Horner's method.
func (p Polynomial) Eval(x Real) Real {
	return ((((p.AA*x)+p.BB)*x+p.CC)*x+p.DD)*x + p.EE
}
