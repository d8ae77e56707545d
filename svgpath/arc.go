package svgpath

import (
	"math"

	"github.com/npillmayer/epicycles"
	"honnef.co/go/curve"
)

// arcTo appends an elliptical arc from p0 to p1 to p, as cubic Béziers.
// rx, ry, phi, large and sweep are the endpoint parameters of the SVG arc
// command, phi in radians. Radii too small to reach p1 are scaled up;
// a zero radius degenerates to a straight line.
func arcTo(p *curve.BezPath, p0 curve.Point, rx, ry, phi float64, large, sweep bool, p1 curve.Point) {
	if p0 == p1 {
		return
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if epicycles.Is0(rx) || epicycles.Is0(ry) {
		p.LineTo(p1)
		return
	}
	center, theta0, theta1, rx, ry := ellipseToCenter(p0, rx, ry, phi, large, sweep, p1)
	arc := curve.Arc{
		Center:     center,
		Radii:      curve.Vec(rx, ry),
		StartAngle: theta0,
		SweepAngle: theta1 - theta0,
		XRotation:  phi,
	}
	var cubics []curve.PathElement
	for el := range arc.PathElements(ArcTolerance) {
		if el.Kind == curve.CubicToKind {
			cubics = append(cubics, el)
		}
	}
	if len(cubics) == 0 {
		p.LineTo(p1)
		return
	}
	cubics[len(cubics)-1].P2 = p1 // snap to the exact end point
	for _, el := range cubics {
		p.Push(el)
	}
}

// ellipseToCenter converts the endpoint parameterization of an elliptical
// arc to its center parameterization: center, start angle and end angle,
// and the radii after out-of-range correction.
// See https://www.w3.org/TR/SVG/implnote.html#ArcImplementationNotes
func ellipseToCenter(p0 curve.Point, rx, ry, phi float64, large, sweep bool,
	p1 curve.Point) (center curve.Point, theta0, theta1, rxc, ryc float64) {
	sinphi, cosphi := math.Sincos(phi)
	x1p := cosphi*(p0.X-p1.X)/2 + sinphi*(p0.Y-p1.Y)/2
	y1p := -sinphi*(p0.X-p1.X)/2 + cosphi*(p0.Y-p1.Y)/2

	// radii must be large enough to reach the end point
	if check := x1p*x1p/(rx*rx) + y1p*y1p/(ry*ry); check > 1 {
		scale := math.Sqrt(check)
		rx *= scale
		ry *= scale
	}

	sq := (rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p) / (rx*rx*y1p*y1p + ry*ry*x1p*x1p)
	if sq <= epicycles.Epsilon {
		sq = 0 // end points opposite on the ellipse
	}
	coef := math.Sqrt(sq)
	if large == sweep {
		coef = -coef
	}
	cxp := coef * rx * y1p / ry
	cyp := coef * -ry * x1p / rx
	center = curve.Pt(
		cosphi*cxp-sinphi*cyp+(p0.X+p1.X)/2,
		sinphi*cxp+cosphi*cyp+(p0.Y+p1.Y)/2,
	)

	ux, uy := (x1p-cxp)/rx, (y1p-cyp)/ry
	vx, vy := -(x1p+cxp)/rx, -(y1p+cyp)/ry
	theta := math.Atan2(uy, ux)
	cos := (ux*vx + uy*vy) / math.Sqrt((ux*ux+uy*uy)*(vx*vx+vy*vy))
	delta := math.Acos(math.Min(1, math.Max(-1, cos)))
	if ux*vy-uy*vx < 0 {
		delta = -delta
	}
	if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	} else if sweep && delta < 0 {
		delta += 2 * math.Pi
	}
	return center, theta, theta + delta, rx, ry
}
