/*
Package selector truncates a Fourier spectrum to the terms carrying most of
the signal energy.

Terms are ranked by energy |c|², ties broken by ascending |frequency| and
then by ascending frequency, which makes the ranking a total order. The
selection takes the shortest ranked prefix whose energy reaches a configured
fraction of the total energy, clamped to a configured minimum and maximum
number of terms. The selected terms are finally ordered for rendering.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package selector

import (
	"fmt"

	"github.com/emirpasic/gods/trees/binaryheap"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/epicycles"
	"github.com/npillmayer/epicycles/spectrum"
	"github.com/npillmayer/schuko/tracing"
	"gonum.org/v1/gonum/floats"
)

// tracer writes to trace with key 'epicycles'
func tracer() tracing.Trace {
	return tracing.Select("epicycles")
}

// Selection is the outcome of Select. It is not modified after creation
// and may be shared between goroutines.
type Selection struct {
	Terms       []spectrum.Term // selected terms, in rendering order
	Energy      float64         // energy of the selected terms
	TotalEnergy float64         // energy of the complete spectrum
	NumSamples  int             // length of the spectrum selected from
	// Degraded is set if the spectrum had fewer terms than the configured
	// minimum. All terms are selected in this case.
	Degraded bool
}

// Len is the number of selected terms.
func (sel *Selection) Len() int {
	return len(sel.Terms)
}

// Ratio is the fraction of the total energy retained by the selection.
// A signal without energy is retained completely.
func (sel *Selection) Ratio() float64 {
	if sel.TotalEnergy <= 0 {
		return 1
	}
	return sel.Energy / sel.TotalEnergy
}

func (sel *Selection) String() string {
	s := fmt.Sprintf("%d of %d terms, %.4f%% of energy", len(sel.Terms), sel.NumSamples, 100*sel.Ratio())
	if sel.Degraded {
		s += " (degraded)"
	}
	return s
}

// byRank orders terms by descending energy, then ascending |frequency|,
// then ascending frequency.
func byRank(a, b interface{}) int {
	s, t := a.(spectrum.Term), b.(spectrum.Term)
	es, et := s.Energy(), t.Energy()
	switch {
	case es > et:
		return -1
	case es < et:
		return 1
	}
	return byFrequency(b, a) // reversed: ascending |f|, negative first
}

// byFrequency orders terms by descending |frequency|, positive frequency
// first.
func byFrequency(a, b interface{}) int {
	s, t := a.(spectrum.Term).Frequency, b.(spectrum.Term).Frequency
	if d := utils.IntComparator(abs(t), abs(s)); d != 0 {
		return d
	}
	return utils.IntComparator(t, s)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Select chooses terms from sp according to cfg.EnergyThreshold,
// cfg.MinEpicycles and cfg.MaxEpicycles:
//
//  1. take ranked terms until their energy reaches EnergyThreshold of the
//     total energy, or MaxEpicycles terms are taken (at least one term);
//  2. continue taking ranked terms until MinEpicycles terms are taken;
//  3. order the result by cfg.Order.
//
// If sp has fewer than MinEpicycles terms, all terms are selected and the
// selection is flagged as degraded. Select returns a ConfigurationError for
// an invalid cfg and an InvalidPathError for an empty spectrum.
func Select(sp spectrum.Spectrum, cfg epicycles.Config) (*Selection, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(sp) == 0 {
		return nil, epicycles.InvalidPath("empty spectrum")
	}
	sel := &Selection{
		TotalEnergy: sp.TotalEnergy(),
		NumSamples:  len(sp),
	}
	ranking := binaryheap.NewWith(byRank)
	for _, t := range sp {
		ranking.Push(t)
	}
	goal := cfg.EnergyThreshold * sel.TotalEnergy
	var taken []spectrum.Term
	var cum float64
	next := func() bool {
		v, ok := ranking.Pop()
		if ok {
			t := v.(spectrum.Term)
			taken = append(taken, t)
			cum += t.Energy()
		}
		return ok
	}
	for len(taken) < cfg.MaxEpicycles && (len(taken) == 0 || cum < goal) {
		if !next() {
			break
		}
	}
	k := len(taken)
	for len(taken) < cfg.MinEpicycles {
		if !next() {
			break
		}
	}
	if len(sp) < cfg.MinEpicycles {
		sel.Degraded = true
		tracer().Errorf("spectrum has %d terms, less than the minimum of %d; selecting all terms",
			len(sp), cfg.MinEpicycles)
	}
	tracer().Debugf("energy threshold reached with %d terms, %d selected", k, len(taken))
	energies := make([]float64, len(taken))
	for i, t := range taken {
		energies[i] = t.Energy()
	}
	sel.Energy = floats.SumCompensated(energies)
	if cfg.Order == epicycles.ByFrequency {
		values := make([]interface{}, len(taken))
		for i, t := range taken {
			values[i] = t
		}
		utils.Sort(values, byFrequency)
		for i, v := range values {
			taken[i] = v.(spectrum.Term)
		}
	}
	sel.Terms = taken
	tracer().Infof("selected %s", sel)
	return sel, nil
}
