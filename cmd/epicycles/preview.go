package main

import (
	"fmt"
	"io"
	"math"

	"github.com/npillmayer/epicycles"
	"github.com/npillmayer/epicycles/epicycle"
	"honnef.co/go/curve"
)

// circles smaller than this are not drawn
const minPreviewRadius = 1e-3

var svgOpts = curve.SVGOptions{MaxPrecision: 4}

// writePreview writes an SVG document showing the pen trace over one period
// and the circle chain at time t. Coordinates are flipped back to the
// y-down orientation of the input.
func writePreview(w io.Writer, ev *epicycle.Evaluator, steps int, t float64) error {
	trace, err := ev.Trace(steps)
	if err != nil {
		return err
	}
	links := ev.Links(t)
	extent := 0.0
	for _, p := range trace {
		extent = math.Max(extent, math.Max(math.Abs(p.X()), math.Abs(p.Y())))
	}
	for _, l := range links {
		extent = math.Max(extent, l.Center.Abs()+l.Radius)
	}
	extent = math.Ceil(extent * 1.05)
	if extent == 0 {
		extent = 1
	}
	width := extent / 500

	fmt.Fprintf(w, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%g %g %g %g">`+"\n",
		-extent, -extent, 2*extent, 2*extent)
	fmt.Fprintf(w, `<g transform="scale(1,-1)" fill="none" stroke-width="%g">`+"\n", width)
	for _, l := range links {
		if l.Radius < minPreviewRadius*extent {
			continue
		}
		c := curve.Circle{Center: pt(l.Center), Radius: l.Radius}
		fmt.Fprintf(w, `<path stroke="#bbb" d="%s"/>`+"\n", curve.SVG(c.PathElements(width/10), svgOpts))
	}
	fmt.Fprintf(w, `<path stroke="#48c" d="%s"/>`+"\n", polyline(chainPoints(links), false).SVG(svgOpts))
	fmt.Fprintf(w, `<path stroke="#000" stroke-width="%g" d="%s"/>`+"\n", 2*width,
		polyline(trace, true).SVG(svgOpts))
	_, err = fmt.Fprintln(w, "</g>\n</svg>")
	return err
}

func chainPoints(links []epicycle.Link) []epicycles.Pair {
	pts := make([]epicycles.Pair, 0, len(links)+1)
	pts = append(pts, epicycles.Origin)
	for _, l := range links {
		pts = append(pts, l.Tip)
	}
	return pts
}

func polyline(pts []epicycles.Pair, closed bool) curve.BezPath {
	var p curve.BezPath
	for i, z := range pts {
		if i == 0 {
			p.MoveTo(pt(z))
		} else {
			p.LineTo(pt(z))
		}
	}
	if closed && len(pts) > 0 {
		p.ClosePath()
	}
	return p
}

func pt(p epicycles.Pair) curve.Point {
	return curve.Pt(p.X(), p.Y())
}
