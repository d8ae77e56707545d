/*
Package svgpath reads vector graphics path markup and turns it into path
segments for package sampler.

Path data ("d" attributes) is parsed into curve.BezPath values: lines,
quadratic and cubic Béziers, elliptical arcs converted to cubic Béziers.
Paths with several subpaths, or documents with several path elements, are
joined into a single chain of segments by visiting the contours in greedy
nearest-endpoint order.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package svgpath

import (
	"errors"
	"fmt"
	"math"

	"github.com/npillmayer/epicycles"
	"github.com/npillmayer/schuko/tracing"
	"github.com/tdewolff/parse/v2/strconv"
	"honnef.co/go/curve"
)

// tracer writes to trace with key 'epicycles'
func tracer() tracing.Trace {
	return tracing.Select("epicycles")
}

// ArcTolerance is the maximum deviation of the cubic Bézier approximation
// of elliptical arcs.
var ArcTolerance = 1e-6

// ErrBadPathData is wrapped by all syntax errors of path data.
var ErrBadPathData = errors.New("bad path data")

// numbers expected per command
var cmdLens = map[byte]int{
	'M': 2, 'Z': 0, 'L': 2, 'H': 1, 'V': 1,
	'C': 6, 'S': 4, 'Q': 4, 'T': 2, 'A': 7,
}

func badPath(format string, args ...interface{}) error {
	return &epicycles.InvalidPathError{
		Reason: fmt.Sprintf(format, args...),
		Err:    ErrBadPathData,
	}
}

func skipCommaWhitespace(path []byte) int {
	i := 0
	for i < len(path) && (path[i] == ' ' || path[i] == ',' || path[i] == '\n' || path[i] == '\r' || path[i] == '\t') {
		i++
	}
	return i
}

func isNumberStart(c byte) bool {
	return c >= '0' && c <= '9' || c == '.' || c == '-' || c == '+'
}

// ParsePathData parses SVG path data. All commands of the SVG path syntax
// are supported, absolute and relative. Syntax errors are reported as
// InvalidPathError, wrapping ErrBadPathData.
func ParsePathData(d string) (curve.BezPath, error) {
	path := []byte(d)
	i := skipCommaWhitespace(path)
	if i == len(path) {
		return nil, nil
	}
	if c := path[i]; c != 'M' && c != 'm' {
		return nil, badPath("path data must start with a moveto command, found '%c'", c)
	}
	var p curve.BezPath
	f := [7]float64{}
	var start, p0, p1 curve.Point // subpath start, current point, next point
	var ctrl curve.Point          // last control point, for reflection
	prevCmd := byte('z')
	for {
		i += skipCommaWhitespace(path[i:])
		if i >= len(path) {
			break
		}
		cmd := prevCmd
		repeat := true
		if cmd == 'z' || cmd == 'Z' || !isNumberStart(path[i]) {
			cmd = path[i]
			repeat = false
			i++
			i += skipCommaWhitespace(path[i:])
		}
		CMD := cmd
		if 'a' <= cmd && cmd <= 'z' {
			CMD -= 'a' - 'A'
		}
		n, ok := cmdLens[CMD]
		if !ok {
			return nil, badPath("unknown command '%c' at position %d", cmd, i)
		}
		for j := 0; j < n; j++ {
			if CMD == 'A' && (j == 3 || j == 4) {
				if i < len(path) && (path[i] == '0' || path[i] == '1') {
					f[j] = float64(path[i] - '0')
					i++
				} else {
					return nil, badPath("arc flags must be 0 or 1 in command '%c' at position %d", cmd, i+1)
				}
			} else {
				num, k := strconv.ParseFloat(path[i:])
				if k == 0 {
					if repeat && j == 0 && i < len(path) {
						return nil, badPath("unknown command '%c' at position %d", path[i], i+1)
					}
					return nil, badPath("command '%c' needs %d numbers, missing at position %d", cmd, n, i+1)
				}
				f[j] = num
				i += k
			}
			i += skipCommaWhitespace(path[i:])
		}
		rel := cmd >= 'a'
		abs := func(x, y float64) curve.Point {
			if rel {
				return curve.Pt(p0.X+x, p0.Y+y)
			}
			return curve.Pt(x, y)
		}
		switch CMD {
		case 'M':
			p1 = abs(f[0], f[1])
			start = p1
			p.MoveTo(p1)
			if rel { // subsequent pairs are implicit linetos
				cmd = 'l'
			} else {
				cmd = 'L'
			}
		case 'Z':
			p1 = start
			p.ClosePath()
		case 'L':
			p1 = abs(f[0], f[1])
			p.LineTo(p1)
		case 'H':
			p1 = curve.Pt(f[0], p0.Y)
			if rel {
				p1.X += p0.X
			}
			p.LineTo(p1)
		case 'V':
			p1 = curve.Pt(p0.X, f[0])
			if rel {
				p1.Y += p0.Y
			}
			p.LineTo(p1)
		case 'C':
			c1, c2 := abs(f[0], f[1]), abs(f[2], f[3])
			p1 = abs(f[4], f[5])
			p.CubicTo(c1, c2, p1)
			ctrl = c2
		case 'S':
			c1 := p0
			if prevCmd == 'C' || prevCmd == 'c' || prevCmd == 'S' || prevCmd == 's' {
				c1 = reflect(ctrl, p0)
			}
			c2 := abs(f[0], f[1])
			p1 = abs(f[2], f[3])
			p.CubicTo(c1, c2, p1)
			ctrl = c2
		case 'Q':
			c := abs(f[0], f[1])
			p1 = abs(f[2], f[3])
			p.QuadTo(c, p1)
			ctrl = c
		case 'T':
			c := p0
			if prevCmd == 'Q' || prevCmd == 'q' || prevCmd == 'T' || prevCmd == 't' {
				c = reflect(ctrl, p0)
			}
			p1 = abs(f[0], f[1])
			p.QuadTo(c, p1)
			ctrl = c
		case 'A':
			p1 = abs(f[5], f[6])
			arcTo(&p, p0, f[0], f[1], f[2]*math.Pi/180, f[3] == 1, f[4] == 1, p1)
		}
		prevCmd = cmd
		p0 = p1
	}
	if p.IsNaN() || p.IsInf() {
		return nil, epicycles.InvalidPath("path data contains non-finite coordinates")
	}
	return p, nil
}

// MustParsePathData parses SVG path data and panics if it fails.
func MustParsePathData(d string) curve.BezPath {
	p, err := ParsePathData(d)
	if err != nil {
		panic(err)
	}
	return p
}

// reflect returns the reflection of control point c at point p.
func reflect(c, p curve.Point) curve.Point {
	return curve.Pt(2*p.X-c.X, 2*p.Y-c.Y)
}
