/*
Package epicycle evaluates a chain of rotating vectors.

Given terms (f_k, c_k) and a period T, the chain at time t is the sequence
of partial sums

	p_0 = 0,  p_k = p_{k−1} + c_k · exp(2πi · f_k · t / T)

The last point p_n is the pen position. Every link k is drawn as a circle
of radius |c_k| around p_{k−1}, with the vector to p_k as its spoke.

All functions of this package are pure: the same terms and time always
give bit-identical results.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package epicycle

import (
	"math"

	"github.com/npillmayer/epicycles"
	"github.com/npillmayer/epicycles/spectrum"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'epicycles'
func tracer() tracing.Trace {
	return tracing.Select("epicycles")
}

// Link is a single epicycle at a moment in time.
type Link struct {
	Center    epicycles.Pair // tip of the previous link
	Tip       epicycles.Pair // Center + rotated coefficient
	Radius    float64
	Frequency int
}

// rotated returns c · exp(2πi·f·t/period).
func rotated(term spectrum.Term, t, period float64) complex128 {
	sin, cos := math.Sincos(2 * math.Pi * float64(term.Frequency) * t / period)
	return term.Coefficient * complex(cos, sin)
}

// Chain returns the origin followed by the tips of all links, in term
// order. The result has len(terms)+1 points.
func Chain(terms []spectrum.Term, t, period float64) []epicycles.Pair {
	chain := make([]epicycles.Pair, len(terms)+1)
	var p complex128
	for k, term := range terms {
		p += rotated(term, t, period)
		chain[k+1] = epicycles.Pair(p)
	}
	return chain
}

// Pen returns the last point of the chain, i.e. the reconstructed path
// position at time t.
func Pen(terms []spectrum.Term, t, period float64) epicycles.Pair {
	var p complex128
	for _, term := range terms {
		p += rotated(term, t, period)
	}
	return epicycles.Pair(p)
}

// Links returns one Link per term, for drawing circles and spokes.
func Links(terms []spectrum.Term, t, period float64) []Link {
	links := make([]Link, len(terms))
	var p complex128
	for k, term := range terms {
		center := p
		p += rotated(term, t, period)
		links[k] = Link{
			Center:    epicycles.Pair(center),
			Tip:       epicycles.Pair(p),
			Radius:    term.Radius(),
			Frequency: term.Frequency,
		}
	}
	return links
}
