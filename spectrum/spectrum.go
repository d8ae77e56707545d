/*
Package spectrum computes the discrete Fourier spectrum of a sampled path.

The sampled path is read as a complex periodic signal z_j, j = 0…N-1. Its
spectrum consists of N terms

	c_f = 1/N · Σ_j z_j · exp(−2πi·f·j/N)

with signed integer frequencies f. Index i of the transform carries
frequency i for i ≤ N/2 and i−N otherwise. Coefficients are normalized by
N, so summing c_f · exp(2πi·f·j/N) over all terms reproduces z_j.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package spectrum

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/npillmayer/epicycles"
	"github.com/npillmayer/schuko/tracing"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

// tracer writes to trace with key 'epicycles'
func tracer() tracing.Trace {
	return tracing.Select("epicycles")
}

// Term is a single rotating vector: a complex coefficient, turning
// Frequency times per period. |Coefficient| is the radius of the epicycle,
// its argument the initial angle.
type Term struct {
	Frequency   int
	Coefficient complex128
}

// Radius is |c|.
func (t Term) Radius() float64 {
	return cmplx.Abs(t.Coefficient)
}

// Phase is arg(c), in (−π,π].
func (t Term) Phase() float64 {
	return cmplx.Phase(t.Coefficient)
}

// Energy is |c|², the contribution of the term to the signal energy.
func (t Term) Energy() float64 {
	re, im := real(t.Coefficient), imag(t.Coefficient)
	return re*re + im*im
}

func (t Term) String() string {
	return fmt.Sprintf("f=%+d r=%.6g φ=%.4f", t.Frequency, t.Radius(), t.Phase())
}

// Spectrum holds one term per transform index, in index order.
type Spectrum []Term

// Frequency maps transform index i of an N-point transform to its signed
// frequency: i for i ≤ N/2, i−N otherwise.
func Frequency(i, n int) int {
	if i <= n/2 {
		return i
	}
	return i - n
}

// index is the inverse of Frequency.
func index(f, n int) int {
	return ((f % n) + n) % n
}

// Decompose computes the normalized spectrum of a sequence of samples.
// An empty or non-finite input results in an InvalidPathError.
func Decompose(samples []epicycles.Pair) (Spectrum, error) {
	n := len(samples)
	if n == 0 {
		return nil, epicycles.InvalidPath("no samples to transform")
	}
	seq := make([]complex128, n)
	for i, z := range samples {
		if !z.IsFinite() {
			return nil, epicycles.InvalidPath("sample %d is not finite: %v", i, z)
		}
		seq[i] = z.C()
	}
	fft := fourier.NewCmplxFFT(n)
	coeff := fft.Coefficients(nil, seq)
	sp := make(Spectrum, n)
	scale := complex(1/float64(n), 0)
	for i, c := range coeff {
		sp[i] = Term{Frequency: Frequency(i, n), Coefficient: c * scale}
	}
	tracer().Debugf("spectrum of %d samples, total energy %g", n, sp.TotalEnergy())
	return sp, nil
}

// Energies returns |c|² for every term, in spectrum order.
func (s Spectrum) Energies() []float64 {
	e := make([]float64, len(s))
	for i, t := range s {
		e[i] = t.Energy()
	}
	return e
}

// TotalEnergy is Σ|c|² over all terms. By Parseval's theorem this equals
// the mean squared magnitude of the samples.
func (s Spectrum) TotalEnergy() float64 {
	if len(s) == 0 {
		return 0
	}
	return floats.SumCompensated(s.Energies())
}

// Term returns the term with frequency f, if present.
func (s Spectrum) Term(f int) (Term, bool) {
	for _, t := range s {
		if t.Frequency == f {
			return t, true
		}
	}
	return Term{}, false
}

// Reconstruct evaluates a set of terms at the n sample times of an
// n-point signal: z_j = Σ c_f · exp(2πi·f·j/n). For a complete spectrum
// this inverts Decompose. Terms may be any subset, in any order; terms
// whose frequencies alias to the same index are summed.
func Reconstruct(terms []Term, n int) ([]epicycles.Pair, error) {
	if n <= 0 {
		return nil, epicycles.InvalidPath("cannot reconstruct %d samples", n)
	}
	coeff := make([]complex128, n)
	for _, t := range terms {
		if cmplx.IsNaN(t.Coefficient) || cmplx.IsInf(t.Coefficient) {
			return nil, epicycles.InvalidPath("term %v is not finite", t)
		}
		coeff[index(t.Frequency, n)] += t.Coefficient
	}
	seq := fourier.NewCmplxFFT(n).Sequence(nil, coeff)
	z := make([]epicycles.Pair, n)
	for j, c := range seq {
		z[j] = epicycles.Pair(c)
	}
	return z, nil
}

// MeanSquaredError is the mean of |a_j − b_j|² over two equally long
// sequences of points. It is +Inf for sequences of different length.
func MeanSquaredError(a, b []epicycles.Pair) float64 {
	if len(a) != len(b) {
		return math.Inf(1)
	}
	if len(a) == 0 {
		return 0
	}
	d := make([]float64, len(a))
	for j := range a {
		e := a[j] - b[j]
		d[j] = real(e)*real(e) + imag(e)*imag(e)
	}
	return floats.SumCompensated(d) / float64(len(d))
}
