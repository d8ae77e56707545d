package sampler

import (
	"iter"

	"github.com/npillmayer/epicycles"
	"honnef.co/go/curve"
)

// DefaultAccuracy is the arc length accuracy used for curve segments when
// clients do not specify one.
const DefaultAccuracy = 1e-7

// Segment is a piece of a path, parameterized over t ∈ [0,1].
// Length is the arc length of the segment. Implementations are not
// required to have an arc length parameterization.
type Segment interface {
	Eval(t float64) epicycles.Pair
	Length() float64
}

// ArclenSolver is implemented by segments which are able to invert their
// arc length function. ParamAt(s) returns the parameter t at which the
// arc length measured from the segment start equals s.
//
// Segments without an ArclenSolver are sampled with the linear
// approximation t = s / Length().
type ArclenSolver interface {
	ParamAt(s float64) float64
}

// curveSegment adapts a curve.PathSegment (line, quadratic or cubic
// Bézier) to Segment and ArclenSolver.
type curveSegment struct {
	seg      curve.PathSegment
	length   float64
	accuracy float64
}

// FromCurve wraps a line or Bézier segment. Arc length is computed once,
// with the given accuracy; an accuracy ≤ 0 selects DefaultAccuracy.
func FromCurve(seg curve.PathSegment, accuracy float64) Segment {
	if accuracy <= 0 {
		accuracy = DefaultAccuracy
	}
	return &curveSegment{
		seg:      seg,
		length:   seg.Arclen(accuracy),
		accuracy: accuracy,
	}
}

// FromCurves wraps a sequence of path segments, e.g. the segments of a
// curve.BezPath.
func FromCurves(seq iter.Seq[curve.PathSegment], accuracy float64) []Segment {
	var segs []Segment
	for seg := range seq {
		segs = append(segs, FromCurve(seg, accuracy))
	}
	return segs
}

// Line creates a straight segment from p0 to p1.
func Line(p0, p1 epicycles.Pair) Segment {
	return FromCurve(curve.Line{P0: pt(p0), P1: pt(p1)}.Seg(), DefaultAccuracy)
}

func (cs *curveSegment) Eval(t float64) epicycles.Pair {
	return pair(cs.seg.Eval(t))
}

func (cs *curveSegment) Length() float64 {
	return cs.length
}

func (cs *curveSegment) ParamAt(s float64) float64 {
	if s <= 0 {
		return 0
	}
	if s >= cs.length {
		return 1
	}
	return cs.seg.SolveForArclen(s, cs.accuracy)
}

func pt(p epicycles.Pair) curve.Point {
	return curve.Pt(p.X(), p.Y())
}

func pair(p curve.Point) epicycles.Pair {
	return epicycles.P(p.X, p.Y)
}
