package svgpath

import (
	"math"
	"slices"

	"github.com/npillmayer/epicycles"
	"github.com/npillmayer/epicycles/sampler"
	"honnef.co/go/curve"
)

// Contour is a connected run of segments, i.e. one subpath.
type Contour []curve.PathSegment

// Start is the first point of the contour.
func (c Contour) Start() curve.Point {
	return c[0].Start()
}

// End is the last point of the contour.
func (c Contour) End() curve.Point {
	return c[len(c)-1].End()
}

// Reverse returns the contour traversed backwards.
func (c Contour) Reverse() Contour {
	r := make(Contour, len(c))
	for i, seg := range c {
		r[len(c)-1-i] = seg.Reverse()
	}
	return r
}

// Contours splits paths into their subpaths. Subpaths without any
// segment (a lone moveto) are skipped.
func Contours(paths ...curve.BezPath) []Contour {
	var contours []Contour
	for _, p := range paths {
		var sub curve.BezPath
		flush := func() {
			if len(sub) > 0 && sub[0].Kind != curve.ClosePathKind {
				if c := Contour(slices.Collect(sub.Segments())); len(c) > 0 {
					contours = append(contours, c)
				}
			}
			sub = nil
		}
		for _, el := range p {
			if el.Kind == curve.MoveToKind {
				flush()
			}
			sub.Push(el)
		}
		flush()
	}
	return contours
}

// Chain orders contours greedily: beginning at the start of the first
// contour, it repeatedly picks the remaining contour whose start or end
// point is nearest to the current position, reversing it if its end point
// is nearer.
func Chain(contours []Contour) []Contour {
	if len(contours) < 2 {
		return contours
	}
	remaining := slices.Clone(contours)
	ordered := make([]Contour, 0, len(contours))
	pos := contours[0].Start()
	for len(remaining) > 0 {
		best, bestDist, reverse := -1, math.Inf(1), false
		for i, c := range remaining {
			if d := pos.Distance(c.Start()); d < bestDist {
				best, bestDist, reverse = i, d, false
			}
			if d := pos.Distance(c.End()); d < bestDist {
				best, bestDist, reverse = i, d, true
			}
		}
		c := remaining[best]
		if reverse {
			c = c.Reverse()
		}
		ordered = append(ordered, c)
		pos = c.End()
		remaining = slices.Delete(remaining, best, best+1)
	}
	return ordered
}

// Segments joins the contours of paths into a single sequence of sampler
// segments. Contours are ordered by Chain and connected by straight
// bridging segments. accuracy is the arc length accuracy of the resulting
// segments (≤ 0 selects sampler.DefaultAccuracy).
//
// An InvalidPathError is returned if paths contain no segments.
func Segments(paths []curve.BezPath, accuracy float64) ([]sampler.Segment, error) {
	contours := Contours(paths...)
	if len(contours) == 0 {
		return nil, epicycles.InvalidPath("no drawable contours")
	}
	ordered := Chain(contours)
	var segs []sampler.Segment
	for i, c := range ordered {
		if i > 0 {
			from := ordered[i-1].End()
			if from != c.Start() {
				segs = append(segs, sampler.FromCurve(curve.Line{P0: from, P1: c.Start()}.Seg(), accuracy))
			}
		}
		for _, seg := range c {
			segs = append(segs, sampler.FromCurve(seg, accuracy))
		}
	}
	tracer().Debugf("joined %d contours into %d segments", len(ordered), len(segs))
	return segs, nil
}
