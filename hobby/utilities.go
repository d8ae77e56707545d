package hobby

import (
	"fmt"
	"math"
	"strings"

	"github.com/npillmayer/epicycles"
	"github.com/tdewolff/parse/v2/strconv"
	"honnef.co/go/curve"
)

func hobbyParamsAlphaBeta(theta, phi float64) (float64, float64) {
	constA := math.Sqrt2             // empiric constants, as explained by J.Hobby
	constB := 0.0625                 // 1/16
	constC := (3 - math.Sqrt(5)) / 2 // 0.38196601125
	constCC := 1 - constC            // 0.61803398875
	st, ct := math.Sincos(theta)     // in-angle
	sf, cf := math.Sincos(phi)       // out-angle
	alpha := constA * (st - constB*sf) * (sf - constB*st) * (ct - cf)
	beta := 1 + constCC*ct + constC*cf
	return alpha, beta
}

func hobbyParamsRhoSigma(alpha, beta float64) (float64, float64) {
	rho := (2 + alpha) / beta
	sigma := (2 - alpha) / beta
	return rho, sigma
}

// Calculate control point offsets between z.i and z.[i+1]: the post control
// of z.i is z.i+p2, the pre control of z.[i+1] is z.[i+1]-p3.
func controlPoints(phi, theta, a, b float64, dvec epicycles.Pair) (p2, p3 epicycles.Pair) {
	alpha, beta := hobbyParamsAlphaBeta(theta, phi)
	rho, sigma := hobbyParamsRhoSigma(alpha, beta)
	st, ct := math.Sincos(theta)
	sf, cf := math.Sincos(phi)
	dx, dy := dvec.X(), dvec.Y()
	uv1 := epicycles.P(dx*ct-dy*st, dx*st+dy*ct)
	uv2 := epicycles.P(dx*cf+dy*sf, -dx*sf+dy*cf)
	p2 = epicycles.Pair(complex(a/3*rho, 0)) * uv1
	p3 = epicycles.Pair(complex(b/3*sigma, 0)) * uv2
	return
}

// Reduce an angle to fit into -pi .. pi.
func reduceAngle(a float64) float64 {
	if math.Abs(a) > math.Pi {
		if a > 0 {
			a -= 2 * math.Pi
		} else {
			a += 2 * math.Pi
		}
	}
	return a
}

// Return 1/a for a.
func recip(a float64) float64 {
	if math.IsNaN(a) {
		return 1.0
	}
	return 1.0 / a
}

// Return a^2 for a.
func square(a float64) float64 {
	return a * a
}

func pt(p epicycles.Pair) curve.Point {
	return curve.Pt(p.X(), p.Y())
}

func ptstring(p curve.Point, iscontrol bool) string {
	if iscontrol {
		return fmt.Sprintf("(%.4f,%.4f)", round(p.X), round(p.Y))
	}
	return fmt.Sprintf("(%.4g,%.4g)", round(p.X), round(p.Y))
}

func round(x float64) float64 {
	r := math.Round(x*10000) / 10000
	if r == 0 {
		return 0 // no "-0.0000"
	}
	return r
}

// AsString returns a spline in MetaFont notation, for debugging.
// The string contains a line per Bézier segment.
func AsString(beziers []curve.CubicBez, cycle bool) string {
	var b strings.Builder
	for i, c := range beziers {
		if i > 0 {
			b.WriteString("\n  .. ")
		}
		fmt.Fprintf(&b, "%s .. controls %s and %s", ptstring(c.P0, false),
			ptstring(c.P1, true), ptstring(c.P2, true))
	}
	if len(beziers) > 0 {
		if cycle {
			b.WriteString("\n  .. cycle")
		} else {
			b.WriteString("\n  .. " + ptstring(beziers[len(beziers)-1].P3, false))
		}
	}
	return b.String()
}

// Path returns the Bézier segments as a path, closed if cycle is set.
func Path(beziers []curve.CubicBez, cycle bool) curve.BezPath {
	var p curve.BezPath
	if len(beziers) == 0 {
		return p
	}
	p.MoveTo(beziers[0].P0)
	for _, c := range beziers {
		p.CubicTo(c.P1, c.P2, c.P3)
	}
	if cycle {
		p.ClosePath()
	}
	return p
}

// ParseKnots reads a list of knots, given as coordinate pairs separated by
// whitespace, e.g. "1,1 2,2 3,1".
func ParseKnots(s string) ([]epicycles.Pair, error) {
	var knots []epicycles.Pair
	for _, field := range strings.Fields(s) {
		x, y, ok := strings.Cut(field, ",")
		if !ok {
			return nil, epicycles.InvalidPath("knot %q is not a coordinate pair", field)
		}
		xf, err := parseNumber(x)
		if err != nil {
			return nil, err
		}
		yf, err := parseNumber(y)
		if err != nil {
			return nil, err
		}
		knots = append(knots, epicycles.P(xf, yf))
	}
	return knots, nil
}

func parseNumber(s string) (float64, error) {
	f, n := strconv.ParseFloat([]byte(s))
	if n == 0 || n != len(s) {
		return 0, &epicycles.InvalidPathError{
			Reason: fmt.Sprintf("cannot read coordinate %q", s),
			Err:    ErrInvalidKnot,
		}
	}
	return f, nil
}
