package epicycle

import (
	"context"
	"errors"
	"math"
	"sort"
	"testing"

	"github.com/npillmayer/epicycles"
	"github.com/npillmayer/epicycles/spectrum"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// heart is a closed test curve.
func heart(n int) []epicycles.Pair {
	z := make([]epicycles.Pair, n)
	for j := range z {
		a := 2 * math.Pi * float64(j) / float64(n)
		x := 16 * math.Pow(math.Sin(a), 3)
		y := 13*math.Cos(a) - 5*math.Cos(2*a) - 2*math.Cos(3*a) - math.Cos(4*a)
		z[j] = epicycles.P(x/16, y/16)
	}
	return z
}

func decompose(t *testing.T, z []epicycles.Pair) spectrum.Spectrum {
	t.Helper()
	sp, err := spectrum.Decompose(z)
	require.NoError(t, err)
	return sp
}

func TestChainShape(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	terms := []spectrum.Term{
		{Frequency: 0, Coefficient: 1},
		{Frequency: 1, Coefficient: 0.5i},
		{Frequency: -2, Coefficient: 0.25},
	}
	chain := Chain(terms, 0, 1)
	require.Len(t, chain, 4)
	assert.Equal(t, epicycles.Origin, chain[0])
	assert.True(t, chain[1].Equal(epicycles.P(1, 0)))
	assert.True(t, chain[2].Equal(epicycles.P(1, 0.5)))
	assert.True(t, chain[3].Equal(epicycles.P(1.25, 0.5)))
	// a quarter period later the unit term has turned by 90°
	chain = Chain(terms, 0.25, 1)
	assert.True(t, chain[2].Equal(epicycles.P(0.5, 0)), "got %v", chain[2])
	assert.True(t, chain[3].Equal(epicycles.P(0.25, 0)), "got %v", chain[3])
}

func TestPenIsLastChainPoint(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sp := decompose(t, heart(50))
	for _, tm := range []float64{0, 0.1, 1.7, 3.14159} {
		chain := Chain(sp, tm, 2*math.Pi)
		assert.Equal(t, chain[len(chain)-1], Pen(sp, tm, 2*math.Pi))
		links := Links(sp, tm, 2*math.Pi)
		assert.Equal(t, chain[len(chain)-1], links[len(links)-1].Tip)
	}
}

func TestLinksAreChained(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sp := decompose(t, heart(16))
	links := Links(sp, 0.3, 1)
	require.Len(t, links, 16)
	assert.Equal(t, epicycles.Origin, links[0].Center)
	for k := 1; k < len(links); k++ {
		assert.Equal(t, links[k-1].Tip, links[k].Center)
		assert.InDelta(t, links[k].Radius, (links[k].Tip - links[k].Center).Abs(), 1e-12)
		assert.Equal(t, sp[k].Frequency, links[k].Frequency)
	}
}

func TestFullSpectrumReproducesSamples(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, n := range []int{31, 64} {
		z := heart(n)
		ev, err := New(decompose(t, z), 1)
		require.NoError(t, err)
		trace, err := ev.Trace(n)
		require.NoError(t, err)
		assert.Less(t, spectrum.MeanSquaredError(z, trace), 1e-20, "n = %d", n)
	}
}

func TestConvergence(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	n := 128
	z := heart(n)
	ranked := decompose(t, z)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Energy() > ranked[j].Energy()
	})
	last := math.Inf(1)
	for k := 1; k <= n; k++ {
		ev, err := New(ranked[:k], 1)
		require.NoError(t, err)
		trace, err := ev.Trace(n)
		require.NoError(t, err)
		mse := spectrum.MeanSquaredError(z, trace)
		if mse > last+1e-12 {
			t.Fatalf("error increased from %g to %g when adding term %d", last, mse, k)
		}
		last = mse
	}
	assert.Less(t, last, 1e-20)
}

func TestDeterminism(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sp := decompose(t, heart(200))
	assert.Equal(t, Chain(sp, 0.123, 1), Chain(sp, 0.123, 1))
	assert.Equal(t, Links(sp, 0.9, 1), Links(sp, 0.9, 1))
}

func TestEvaluatorCopiesTerms(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	terms := []spectrum.Term{{Frequency: 1, Coefficient: 1}}
	ev, err := New(terms, 2)
	require.NoError(t, err)
	terms[0].Coefficient = 5
	assert.True(t, ev.Pen(0).Equal(epicycles.P(1, 0)))
	ev.Terms()[0].Coefficient = 7
	assert.True(t, ev.Pen(1).Equal(epicycles.P(-1, 0)))
	assert.Equal(t, 2.0, ev.Period())
}

func TestEvaluatorRejectsBadPeriod(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, p := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := New(nil, p)
		assert.True(t, errors.Is(err, epicycles.ErrConfiguration), "period %g", p)
	}
	ev, err := New(nil, 1)
	require.NoError(t, err)
	_, err = ev.Trace(0)
	assert.True(t, errors.Is(err, epicycles.ErrConfiguration))
}

func TestFrames(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	ev, err := New(decompose(t, heart(32)), 1)
	require.NoError(t, err)
	trace, err := ev.Trace(10)
	require.NoError(t, err)
	var frames []Frame
	err = ev.Frames(context.Background(), 10, func(f Frame) error {
		frames = append(frames, f)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, frames, 10)
	for i, f := range frames {
		assert.Equal(t, i, f.Index)
		assert.Equal(t, ev.Time(i, 10), f.Time)
		assert.Equal(t, trace[i], f.Pen)
		assert.Len(t, f.Links, 32)
	}
}

func TestFramesStopOnCancel(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	ev, err := New(decompose(t, heart(8)), 1)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	count := 0
	err = ev.Frames(ctx, 100, func(f Frame) error {
		count++
		if f.Index == 3 {
			cancel()
		}
		return nil
	})
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 4, count)
}

func TestFramesStopOnEmitterError(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	ev, err := New(decompose(t, heart(8)), 1)
	require.NoError(t, err)
	stop := errors.New("stop")
	count := 0
	err = ev.Frames(context.Background(), 100, func(f Frame) error {
		count++
		if count == 2 {
			return stop
		}
		return nil
	})
	assert.Equal(t, stop, err)
	assert.Equal(t, 2, count)
}
