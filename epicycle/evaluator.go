package epicycle

import (
	"context"

	"github.com/npillmayer/epicycles"
	"github.com/npillmayer/epicycles/spectrum"
)

// Evaluator binds a fixed set of terms to a period. It holds no mutable
// state and may be used from several goroutines at once.
type Evaluator struct {
	terms  []spectrum.Term
	period float64
}

// New creates an evaluator for terms, in the given order. The terms are
// copied. period must be a positive finite number.
func New(terms []spectrum.Term, period float64) (*Evaluator, error) {
	if !epicycles.IsFinite(period) || period <= 0 {
		return nil, epicycles.Misconfigured("period", period, "must be a positive finite number")
	}
	ev := &Evaluator{
		terms:  make([]spectrum.Term, len(terms)),
		period: period,
	}
	copy(ev.terms, terms)
	return ev, nil
}

// Terms returns a copy of the evaluator's terms.
func (ev *Evaluator) Terms() []spectrum.Term {
	t := make([]spectrum.Term, len(ev.terms))
	copy(t, ev.terms)
	return t
}

// Period is the time for one full revolution of the fundamental.
func (ev *Evaluator) Period() float64 {
	return ev.period
}

// Chain is Chain(terms, t, period) for the evaluator's terms.
func (ev *Evaluator) Chain(t float64) []epicycles.Pair {
	return Chain(ev.terms, t, ev.period)
}

// Pen is Pen(terms, t, period) for the evaluator's terms.
func (ev *Evaluator) Pen(t float64) epicycles.Pair {
	return Pen(ev.terms, t, ev.period)
}

// Links is Links(terms, t, period) for the evaluator's terms.
func (ev *Evaluator) Links(t float64) []Link {
	return Links(ev.terms, t, ev.period)
}

// Time returns the time of frame i out of steps frames per period.
func (ev *Evaluator) Time(i, steps int) float64 {
	return float64(i) * ev.period / float64(steps)
}

// Trace returns the pen positions of steps frames, evenly spaced over one
// period, starting at t = 0.
func (ev *Evaluator) Trace(steps int) ([]epicycles.Pair, error) {
	if steps < 1 {
		return nil, epicycles.Misconfigured("steps", steps, "must be at least 1")
	}
	trace := make([]epicycles.Pair, steps)
	for i := range trace {
		trace[i] = ev.Pen(ev.Time(i, steps))
	}
	return trace, nil
}

// Frame is the state of the chain at one animation step.
type Frame struct {
	Index int
	Time  float64
	Links []Link
	Pen   epicycles.Pair
}

// Frames produces steps frames, evenly spaced over one period, and hands
// each to emit in order. It stops early, returning the respective error,
// if ctx is done or emit returns an error.
func (ev *Evaluator) Frames(ctx context.Context, steps int, emit func(Frame) error) error {
	if steps < 1 {
		return epicycles.Misconfigured("steps", steps, "must be at least 1")
	}
	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			tracer().Infof("frame production cancelled at frame %d of %d", i, steps)
			return err
		}
		t := ev.Time(i, steps)
		links := ev.Links(t)
		pen := epicycles.Origin
		if len(links) > 0 {
			pen = links[len(links)-1].Tip
		}
		if err := emit(Frame{Index: i, Time: t, Links: links, Pen: pen}); err != nil {
			return err
		}
	}
	return nil
}
