/*
Package sampler turns a path made of segments into a fixed number of
points, spaced at equal arc length.

The sampled points are corrected for the downward y-axis of path markup,
optionally centered at their centroid and normalized in extent, and finally
scaled. The result is the complex signal fed into the Fourier transform.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package sampler

import (
	"fmt"
	"math"
	"sort"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/npillmayer/epicycles"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'epicycles'
func tracer() tracing.Trace {
	return tracing.Select("epicycles")
}

// closeTolerance is the gap between end point and start point, relative
// to the total path length, below which a path counts as closed.
const closeTolerance = 1e-6

// degenerateTolerance is the relative length below which a segment is
// dropped, measured against the path length, and below which a path counts
// as a single point, measured against the size of its coordinates.
const degenerateTolerance = 1e-12

func magnitude(p epicycles.Pair) float64 {
	return math.Max(math.Abs(p.X()), math.Abs(p.Y()))
}

// SampledPath is a sequence of points at equal arc length. The closing
// point is not repeated: the sequence is a single period of a periodic
// signal.
type SampledPath []epicycles.Pair

// Contour returns the sampled path as a polygon contour.
func (sp SampledPath) Contour() polyclip.Contour {
	c := make(polyclip.Contour, len(sp))
	for i, p := range sp {
		c[i] = polyclip.Point{X: p.X(), Y: p.Y()}
	}
	return c
}

// Extent is the largest absolute coordinate of any sample.
func (sp SampledPath) Extent() float64 {
	if len(sp) == 0 {
		return 0
	}
	box := sp.Contour().BoundingBox()
	return math.Max(
		math.Max(math.Abs(box.Min.X), math.Abs(box.Max.X)),
		math.Max(math.Abs(box.Min.Y), math.Abs(box.Max.Y)),
	)
}

// Centroid is the arithmetic mean of all samples.
func (sp SampledPath) Centroid() epicycles.Pair {
	if len(sp) == 0 {
		return epicycles.Origin
	}
	var sx, sy float64
	for _, p := range sp {
		sx += p.X()
		sy += p.Y()
	}
	n := float64(len(sp))
	return epicycles.P(sx/n, sy/n)
}

// Sampler locates points on a path by arc length. Segment lookup is a
// binary search over cumulative segment lengths.
type Sampler struct {
	segs   []Segment
	breaks []float64 // breaks[i] = arc length at the end of segment i
	length float64
}

// New creates a sampler for a sequence of segments. Zero-length segments
// are dropped. Open paths are handled according to policy.
//
// An InvalidPathError is returned for empty paths, paths of (almost) zero
// length and segments with non-finite geometry.
func New(segs []Segment, policy epicycles.OpenPathPolicy) (*Sampler, error) {
	var total, size float64
	for i, seg := range segs {
		if seg == nil {
			return nil, epicycles.InvalidPath("segment %d is nil", i)
		}
		l := seg.Length()
		if !epicycles.IsFinite(l) || l < 0 {
			return nil, epicycles.InvalidPath("segment %d has length %g", i, l)
		}
		p0, p1 := seg.Eval(0), seg.Eval(1)
		if !p0.IsFinite() || !p1.IsFinite() {
			return nil, epicycles.InvalidPath("segment %d has non-finite coordinates", i)
		}
		total += l
		size = math.Max(size, math.Max(magnitude(p0), magnitude(p1)))
	}
	if total <= degenerateTolerance*size {
		return nil, epicycles.InvalidPath("path has length %g at coordinates of size %g", total, size)
	}
	s := &Sampler{}
	for i, seg := range segs {
		if seg.Length() <= degenerateTolerance*total {
			tracer().Debugf("dropping zero-length segment %d", i)
			continue
		}
		s.append(seg)
	}
	start, end := s.segs[0].Eval(0), s.segs[len(s.segs)-1].Eval(1)
	if gap := (end - start).Abs(); gap > closeTolerance*s.length {
		switch policy {
		case epicycles.OpenReject:
			return nil, epicycles.InvalidPath("path is open, end point %v is %g away from start %v",
				end, gap, start)
		case epicycles.OpenClose:
			tracer().Infof("closing open path with a line from %v to %v", end, start)
			s.append(Line(end, start))
		default:
			tracer().Infof("path is open (gap %g), sampled as periodic signal", gap)
		}
	}
	tracer().Debugf("sampler: %d segments, length %g", len(s.segs), s.length)
	return s, nil
}

func (s *Sampler) append(seg Segment) {
	s.length += seg.Length()
	s.segs = append(s.segs, seg)
	s.breaks = append(s.breaks, s.length)
}

// Length is the total arc length of the path.
func (s *Sampler) Length() float64 {
	return s.length
}

// Segments is the number of segments of positive length.
func (s *Sampler) Segments() int {
	return len(s.segs)
}

// At returns the point at arc length arclen, measured from the start of
// the path. arclen is clamped to [0, Length()].
func (s *Sampler) At(arclen float64) epicycles.Pair {
	if arclen <= 0 {
		return s.segs[0].Eval(0)
	}
	i := sort.SearchFloat64s(s.breaks, arclen)
	if i >= len(s.segs) {
		return s.segs[len(s.segs)-1].Eval(1)
	}
	var segStart float64
	if i > 0 {
		segStart = s.breaks[i-1]
	}
	seg := s.segs[i]
	local := arclen - segStart
	var t float64
	if solver, ok := seg.(ArclenSolver); ok {
		t = solver.ParamAt(local)
	} else {
		t = local / seg.Length()
	}
	return seg.Eval(math.Max(0, math.Min(1, t)))
}

// Sample returns n points at arc lengths i·L/n, i = 0…n-1, in path
// coordinates, without any correction applied.
func (s *Sampler) Sample(n int) SampledPath {
	samples := make(SampledPath, n)
	step := s.length / float64(n)
	for i := range samples {
		samples[i] = s.At(float64(i) * step)
	}
	return samples
}

// Sample samples a path with the parameters of cfg: cfg.NumSamples points
// at equal arc length, flipped to an upward y-axis, then (if cfg.Normalize
// is set) centered and normalized to an extent of cfg.ScaleFactor, or else
// just scaled by cfg.ScaleFactor.
func Sample(segs []Segment, cfg epicycles.Config) (SampledPath, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s, err := New(segs, cfg.OpenPaths)
	if err != nil {
		return nil, err
	}
	samples := s.Sample(cfg.NumSamples)
	if err := Correct(samples, cfg); err != nil {
		return nil, err
	}
	return samples, nil
}

// Correct applies the geometric correction of Sample to a sequence of
// points in place.
func Correct(samples SampledPath, cfg epicycles.Config) error {
	for i, p := range samples {
		if !p.IsFinite() {
			return &epicycles.InvalidPathError{
				Reason: fmt.Sprintf("sample %d is not finite", i),
			}
		}
	}
	size := samples.Extent()
	m := epicycles.Reflection()
	if !cfg.Normalize {
		m.Combine(epicycles.Scaling(cfg.ScaleFactor, cfg.ScaleFactor)).TransformAll(samples)
		return nil
	}
	c := m.Transform(samples.Centroid())
	m.Combine(epicycles.Translation(-c)).TransformAll(samples)
	extent := samples.Extent()
	if extent <= degenerateTolerance*size {
		return epicycles.InvalidPath("all samples coincide at %v", c)
	}
	scale := cfg.ScaleFactor / extent
	tracer().Debugf("centroid %v, extent %g, scale %g", c, extent, scale)
	epicycles.Scaling(scale, scale).TransformAll(samples)
	return nil
}
