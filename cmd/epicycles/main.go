/*
Command epicycles decomposes a closed drawing into a chain of rotating
circles and prints the circles needed to redraw it.

Input is one of: a vector graphics document with path elements (-in),
literal path data (-d), or a list of knots for a smooth curve (-knots).
Settings are read from the configuration file "epicycles.nt" at the usual
user configuration locations; flags given on the command line take
precedence. With -out an SVG preview of the reconstructed drawing and the
circle chain is written.

	epicycles -d "M 0 0 L 1 0 L 1 1 L 0 1 Z" -threshold 0.99
	epicycles -in heart.svg -max 200 -out preview.svg
	epicycles -knots "1,1 2,2 3,1 2,0" -trace Debug

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/npillmayer/epicycles"
	"github.com/npillmayer/epicycles/hobby"
	"github.com/npillmayer/epicycles/pipeline"
	"github.com/npillmayer/epicycles/sampler"
	"github.com/npillmayer/epicycles/svgpath"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/schukonf/koanfadapter"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"honnef.co/go/curve"
)

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

var (
	// Input
	source    = flag.String("in", "", "Source document with path elements ('-' for stdin)")
	pathData  = flag.String("d", "", "Path data")
	knots     = flag.String("knots", "", "Knots of a smooth curve, e.g. \"1,1 2,2 3,1\"")
	openCurve = flag.Bool("open-curve", false, "Knots form an open curve")
	// Pipeline settings, overriding the configuration
	samples   = flag.Int("samples", 0, "Number of samples")
	threshold = flag.Float64("threshold", 0, "Fraction of energy to retain")
	minTerms  = flag.Int("min", 0, "Minimum number of epicycles")
	maxTerms  = flag.Int("max", 0, "Maximum number of epicycles")
	scale     = flag.Float64("scale", 0, "Extent of the normalized drawing")
	normalize = flag.Bool("normalize", true, "Center and scale the drawing")
	order     = flag.String("order", "", "Rendering order: frequency|magnitude")
	open      = flag.String("open", "", "Open path policy: periodic|close|reject")
	// Output
	destination = flag.String("out", "", "SVG preview destination ('-' for stdout)")
	steps       = flag.Int("steps", 1000, "Number of pen positions in the preview")
	at          = flag.Float64("t", 0, "Time of the circle chain in the preview")
	verbose     = flag.Bool("v", false, "List all selected terms")
	traceLevel  = flag.String("trace", "", "Trace level: Error|Info|Debug")
)

// configKeys maps flag names to configuration keys.
var configKeys = map[string]string{
	"samples":   epicycles.KeyNumSamples,
	"threshold": epicycles.KeyEnergyThreshold,
	"min":       epicycles.KeyMinEpicycles,
	"max":       epicycles.KeyMaxEpicycles,
	"scale":     epicycles.KeyScaleFactor,
	"normalize": epicycles.KeyNormalize,
	"order":     epicycles.KeyOrder,
	"open":      epicycles.KeyOpenPaths,
	"trace":     "trace.epicycles",
}

func main() {
	log.SetFlags(0)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: epicycles [flags] (-in file | -d data | -knots list)\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	conf := koanfadapter.New(nil, "epicycles", []string{"nt"})
	conf.InitDefaults()
	flag.Visit(func(f *flag.Flag) {
		if key, ok := configKeys[f.Name]; ok {
			conf.Set(key, f.Value.String())
		}
	})
	if err := initTracing(conf); err != nil {
		log.Fatalf("cannot initialize tracing: %v", err)
	}
	cfg, err := epicycles.ConfigFrom(conf)
	if err != nil {
		log.Fatal(err)
	}
	segs, err := loadSegments()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	result, err := pipeline.Run(ctx, segs, cfg)
	if err != nil {
		log.Fatal(err)
	}
	printSummary(os.Stdout, result, *verbose)

	if *destination != "" {
		if err := writePreviewTo(*destination, result); err != nil {
			log.Fatal(err)
		}
	}
}

func initTracing(conf schuko.Configuration) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return nil
}

// loadSegments reads the input selected by the flags.
func loadSegments() ([]sampler.Segment, error) {
	given := 0
	for _, s := range []string{*source, *pathData, *knots} {
		if s != "" {
			given++
		}
	}
	if given != 1 {
		return nil, errors.New("exactly one of -in, -d or -knots is required")
	}
	switch {
	case *source != "":
		var r io.Reader = os.Stdin
		if *source != pipeName {
			f, err := os.Open(*source)
			if err != nil {
				return nil, err
			}
			defer f.Close()
			r = f
		}
		return readDocument(r)
	case *pathData != "":
		return parsePathData(*pathData)
	}
	return smoothCurve(*knots, !*openCurve)
}

func readDocument(r io.Reader) ([]sampler.Segment, error) {
	paths, err := svgpath.ReadDocument(r)
	if err != nil {
		return nil, err
	}
	return svgpath.Segments(paths, 0)
}

func parsePathData(d string) ([]sampler.Segment, error) {
	p, err := svgpath.ParsePathData(d)
	if err != nil {
		return nil, err
	}
	return svgpath.Segments([]curve.BezPath{p}, 0)
}

func smoothCurve(list string, cycle bool) ([]sampler.Segment, error) {
	z, err := hobby.ParseKnots(list)
	if err != nil {
		return nil, err
	}
	solve := hobby.Open
	if cycle {
		solve = hobby.Cycle
	}
	beziers, err := solve(z)
	if err != nil {
		return nil, err
	}
	return svgpath.Segments([]curve.BezPath{hobby.Path(beziers, cycle)}, 0)
}

func printSummary(w io.Writer, r *pipeline.Result, all bool) {
	fmt.Fprintf(w, "path length %.6g in %d segments\n", r.PathLength, r.Segments)
	fmt.Fprintf(w, "%s\n", r.Selection)
	if r.Degraded {
		fmt.Fprintf(w, "note: fewer terms than the configured minimum of %d\n", r.Config.MinEpicycles)
	}
	if !all {
		return
	}
	for i, term := range r.Terms {
		fmt.Fprintf(w, "%4d  %s\n", i, term)
	}
}

func writePreviewTo(dest string, r *pipeline.Result) error {
	ev, err := r.Evaluator(0)
	if err != nil {
		return err
	}
	if dest == pipeName {
		return writePreview(os.Stdout, ev, *steps, *at)
	}
	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	if err = writePreview(f, ev, *steps, *at); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
