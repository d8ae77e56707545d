/*
Package pipeline runs the stages of an epicycle decomposition in order:
sampling, spectral decomposition and term selection.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package pipeline

import (
	"context"
	"math"

	"github.com/npillmayer/epicycles"
	"github.com/npillmayer/epicycles/epicycle"
	"github.com/npillmayer/epicycles/sampler"
	"github.com/npillmayer/epicycles/selector"
	"github.com/npillmayer/epicycles/spectrum"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'epicycles'
func tracer() tracing.Trace {
	return tracing.Select("epicycles")
}

// DefaultPeriod is the period of the animation clock if clients do not
// choose their own: one revolution of the fundamental per 2π time units.
const DefaultPeriod = 2 * math.Pi

// Result is the outcome of a pipeline run. Sampled points and the full
// spectrum are not retained.
type Result struct {
	*selector.Selection
	PathLength float64 // arc length of the input path, before correction
	Segments   int     // segments of positive length
	Config     epicycles.Config
}

// Evaluator returns an evaluator for the selected terms, with the given
// period. A period ≤ 0 selects DefaultPeriod.
func (r *Result) Evaluator(period float64) (*epicycle.Evaluator, error) {
	if period <= 0 {
		period = DefaultPeriod
	}
	return epicycle.New(r.Terms, period)
}

// Run decomposes a path into epicycles. The configuration is validated
// before anything else happens. ctx is checked between stages; on
// cancellation all intermediate state is dropped and ctx.Err() returned.
func Run(ctx context.Context, segs []sampler.Segment, cfg epicycles.Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s, err := sampler.New(segs, cfg.OpenPaths)
	if err != nil {
		return nil, err
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}
	samples := s.Sample(cfg.NumSamples)
	if err = sampler.Correct(samples, cfg); err != nil {
		return nil, err
	}
	tracer().Infof("sampled %d points from %d segments of total length %g",
		len(samples), s.Segments(), s.Length())
	if err = ctx.Err(); err != nil {
		return nil, err
	}
	sp, err := spectrum.Decompose(samples)
	if err != nil {
		return nil, err
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}
	sel, err := selector.Select(sp, cfg)
	if err != nil {
		return nil, err
	}
	return &Result{
		Selection:  sel,
		PathLength: s.Length(),
		Segments:   s.Segments(),
		Config:     cfg,
	}, nil
}
