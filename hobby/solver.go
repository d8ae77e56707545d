package hobby

import (
	"errors"
	"fmt"
	"math/cmplx"

	"github.com/npillmayer/epicycles"
	"github.com/npillmayer/schuko/tracing"
	"honnef.co/go/curve"
)

// tracer writes to trace with key 'epicycles'
func tracer() tracing.Trace {
	return tracing.Select("epicycles")
}

var (
	// ErrTooFewKnots indicates path knot count is insufficient for solving.
	ErrTooFewKnots = errors.New("path has too few knots")
	// ErrInvalidKnot indicates a knot coordinate contains NaN/Inf.
	ErrInvalidKnot = errors.New("path has invalid knot coordinate")
	// ErrDegenerateSegment indicates two consecutive knots collapse to one point.
	ErrDegenerateSegment = errors.New("path has degenerate segment")
	// ErrCycleHasDuplicateTerminalKnot indicates cyclic path redundantly repeats first knot as last knot.
	ErrCycleHasDuplicateTerminalKnot = errors.New("cycle path must not repeat first knot as terminal knot")
)

// Tension and curl of all joins and path ends.
const (
	tension = 1.0
	curl    = 1.0
)

// skeleton is a knot sequence without control points.
type skeleton struct {
	z     []epicycles.Pair
	cycle bool
}

// N returns the knot count.
func (sk skeleton) N() int {
	return len(sk.z)
}

// Z returns the knot at position (i mod N).
func (sk skeleton) Z(i int) epicycles.Pair {
	n := sk.N()
	return sk.z[(i%n+n)%n]
}

// joins is the number of Bézier segments.
func (sk skeleton) joins() int {
	if sk.cycle {
		return sk.N()
	}
	return sk.N() - 1
}

func (sk skeleton) delta(i int) epicycles.Pair {
	return sk.Z(i+1) - sk.Z(i)
}

func (sk skeleton) d(i int) float64 {
	return sk.delta(i).Abs()
}

// Turning angle at z.i.
func (sk skeleton) psi(i int) float64 {
	psi := 0.0
	if sk.cycle || (i > 0 && i < sk.N()-1) {
		psi = cmplx.Phase(sk.delta(i).C()) - cmplx.Phase(sk.delta(i-1).C())
	}
	return reduceAngle(psi)
}

func (sk skeleton) validate() error {
	n := sk.N()
	if sk.cycle {
		if n < 3 {
			return invalid(ErrTooFewKnots, "cycle needs at least 3 knots, got %d", n)
		}
	} else if n < 2 {
		return invalid(ErrTooFewKnots, "open path needs at least 2 knots, got %d", n)
	}
	for i, z := range sk.z {
		if !z.IsFinite() {
			return invalid(ErrInvalidKnot, "knot %d is %v", i, z)
		}
	}
	if sk.cycle && sk.z[0].Equal(sk.z[n-1]) {
		return invalid(ErrCycleHasDuplicateTerminalKnot, "knot %d equals knot 0", n-1)
	}
	for i := 0; i < sk.joins(); i++ {
		if epicycles.Is0(sk.d(i)) {
			return invalid(ErrDegenerateSegment, "between knots %d and %d", i, (i+1)%n)
		}
	}
	return nil
}

func invalid(err error, format string, args ...interface{}) error {
	return &epicycles.InvalidPathError{Reason: fmt.Sprintf(format, args...), Err: err}
}

// Cycle finds a closed smooth curve through knots, returning one cubic
// Bézier per pair of neighbouring knots, the last one leading back to
// knots[0]. The first knot must not be repeated at the end.
func Cycle(knots []epicycles.Pair) ([]curve.CubicBez, error) {
	return solve(skeleton{z: knots, cycle: true})
}

// Open finds an open smooth curve through knots, returning len(knots)-1
// cubic Béziers.
func Open(knots []epicycles.Pair) ([]curve.CubicBez, error) {
	return solve(skeleton{z: knots})
}

func solve(sk skeleton) ([]curve.CubicBez, error) {
	if err := sk.validate(); err != nil {
		return nil, err
	}
	n := sk.N()
	u := make([]float64, n+2)
	v := make([]float64, n+2)
	theta := make([]float64, n+2)
	if sk.cycle {
		w := make([]float64, n+2)
		u[0], v[0], w[0] = 0, 0, 1
		buildEqs(sk, n, u, v, w)
		endCycle(sk, theta, u, v, w)
	} else {
		startOpen(sk, u, v)
		buildEqs(sk, n-2, u, v, nil)
		endOpen(sk, theta, u, v)
	}
	beziers := setControls(sk, theta)
	tracer().Debugf("hobby spline = %s", AsString(beziers, sk.cycle))
	return beziers, nil
}

func startOpen(sk skeleton, u, v []float64) {
	a := recip(tension)
	b := recip(tension)
	c := square(a) * curl / square(b)
	u[0] = ((3-a)*c + b) / (a*c + 3 - b)
	v[0] = -u[0] * sk.psi(1)
}

func endOpen(sk skeleton, theta, u, v []float64) {
	last := sk.N() - 1
	a := recip(tension)
	b := recip(tension)
	c := square(b) * curl / square(a)
	u[last] = (b*c + 3 - a) / ((3-b)*c + a)
	if den := u[last-1] - u[last]; epicycles.Is0(den) {
		theta[last] = 0 // two knots joined by a straight line
	} else {
		theta[last] = v[last-1] / den
	}
	for i := last - 1; i >= 0; i-- {
		theta[i] = v[i] - u[i]*theta[i+1]
	}
}

func endCycle(sk skeleton, theta, u, v, w []float64) {
	n := sk.N()
	var a, b float64 = 0, 1
	for i := n; i > 0; i-- {
		a = v[i] - a*u[i]
		b = w[i] - b*u[i]
	}
	t0 := (v[n] - a*u[n]) / (1 - (w[n] - b*u[n]))
	v[0] = t0
	for i := 1; i <= n; i++ {
		v[i] += w[i] * t0
	}
	theta[0], theta[n] = t0, t0
	for i := n - 1; i > 0; i-- {
		theta[i] = v[i] - u[i]*theta[i+1]
	}
}

// buildEqs runs the forward elimination of the tridiagonal system for the
// knot angles theta.1 … theta.m.
func buildEqs(sk skeleton, m int, u, v, w []float64) {
	a0, a1 := recip(tension), recip(tension)
	b1, b2 := recip(tension), recip(tension)
	for i := 1; i <= m; i++ {
		A := a0 / (square(b1) * sk.d(i-1))
		B := (3 - a0) / (square(b1) * sk.d(i-1))
		C := (3 - b2) / (square(a1) * sk.d(i))
		D := b2 / (square(a1) * sk.d(i))
		t := B - u[i-1]*A + C
		u[i] = D / t
		v[i] = (-B*sk.psi(i) - D*sk.psi(i+1) - A*v[i-1]) / t
		if w != nil {
			w[i] = -A * w[i-1] / t
		}
	}
}

func setControls(sk skeleton, theta []float64) []curve.CubicBez {
	beziers := make([]curve.CubicBez, sk.joins())
	a, b := recip(tension), recip(tension)
	for i := range beziers {
		phi := -sk.psi(i+1) - theta[i+1]
		p2, p3 := controlPoints(phi, theta[i], a, b, sk.delta(i))
		beziers[i] = curve.CubicBez{
			P0: pt(sk.Z(i)),
			P1: pt(sk.Z(i) + p2),
			P2: pt(sk.Z(i+1) - p3),
			P3: pt(sk.Z(i + 1)),
		}
	}
	return beziers
}
