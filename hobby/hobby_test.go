package hobby

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/npillmayer/epicycles"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"honnef.co/go/curve"
)

func circleKnots() []epicycles.Pair {
	return []epicycles.Pair{
		epicycles.P(1, 1), epicycles.P(2, 2), epicycles.P(3, 1), epicycles.P(2, 0),
	}
}

func near(t *testing.T, x, y float64, p curve.Point) {
	t.Helper()
	if math.Abs(p.X-x) > 0.0002 || math.Abs(p.Y-y) > 0.0002 {
		t.Fatalf("unexpected control point %v, want (%.4f,%.4f)", p, x, y)
	}
}

func TestSkeleton(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sk := skeleton{z: circleKnots()[:3]}
	assert.Equal(t, 3, sk.N())
	assert.Equal(t, 2, sk.joins())
	assert.Equal(t, epicycles.Pair(1-1i), sk.delta(1))
	assert.InDelta(t, math.Sqrt2, sk.d(1), 1e-12)
	assert.InDelta(t, -90.0, sk.psi(1)*180/math.Pi, 0.01)
	assert.Equal(t, 0.0, sk.psi(0))
	sk.cycle = true
	assert.Equal(t, 3, sk.joins())
	assert.Equal(t, sk.Z(1), sk.Z(sk.N()+1))
	assert.Equal(t, sk.Z(2), sk.Z(-1))
	assert.InDelta(t, -135.0, sk.psi(2)*180/math.Pi, 0.01)
}

func TestCycleControls(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	beziers, err := Cycle(circleKnots())
	require.NoError(t, err)
	require.Len(t, beziers, 4)
	near(t, 1.0000, 1.5523, beziers[0].P1)
	near(t, 1.4477, 2.0000, beziers[0].P2)
	near(t, 3.0000, 0.4477, beziers[2].P1)
	assert.Equal(t, curve.Pt(1, 1), beziers[3].P3)
	for i := 1; i < len(beziers); i++ {
		assert.Equal(t, beziers[i-1].P3, beziers[i].P0)
	}
}

func TestOpenControls(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	beziers, err := Open(circleKnots()[:3])
	require.NoError(t, err)
	require.Len(t, beziers, 2)
	near(t, 1.0000, 1.5523, beziers[0].P1)
	near(t, 3.0000, 1.5523, beziers[1].P2)
	assert.Equal(t, curve.Pt(3, 1), beziers[1].P3)
	// two knots are joined by a straight line
	beziers, err = Open([]epicycles.Pair{epicycles.P(0, 0), epicycles.P(3, 0)})
	require.NoError(t, err)
	require.Len(t, beziers, 1)
	near(t, 1, 0, beziers[0].P1)
	near(t, 2, 0, beziers[0].P2)
}

func TestSolverRejectsBadKnots(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	o, nan := epicycles.P(0, 0), epicycles.P(math.NaN(), 0)
	for _, c := range []struct {
		knots []epicycles.Pair
		cycle bool
		err   error
	}{
		{[]epicycles.Pair{o}, false, ErrTooFewKnots},
		{[]epicycles.Pair{o, epicycles.P(1, 0)}, true, ErrTooFewKnots},
		{[]epicycles.Pair{o, o}, false, ErrDegenerateSegment},
		{[]epicycles.Pair{o, nan}, false, ErrInvalidKnot},
		{[]epicycles.Pair{o, epicycles.P(1, 0), o}, true, ErrCycleHasDuplicateTerminalKnot},
	} {
		var err error
		if c.cycle {
			_, err = Cycle(c.knots)
		} else {
			_, err = Open(c.knots)
		}
		assert.True(t, errors.Is(err, c.err), "expected %v, got %v", c.err, err)
		assert.True(t, errors.Is(err, epicycles.ErrInvalidPath))
	}
}

func TestPath(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	beziers, err := Cycle(circleKnots())
	require.NoError(t, err)
	p := Path(beziers, true)
	require.Len(t, p, 6)
	assert.Equal(t, curve.MoveToKind, p[0].Kind)
	assert.Equal(t, curve.ClosePathKind, p[5].Kind)
	// close to a circle of radius 1
	length := curve.SegmentsPerimeter(p.Segments(), 1e-9)
	assert.InDelta(t, 2*math.Pi, length, 0.01)
	assert.Empty(t, Path(nil, true))
}

func TestParseKnots(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	knots, err := ParseKnots(" 1,1 2,2\n3,1  2,0 ")
	require.NoError(t, err)
	assert.Equal(t, circleKnots(), knots)
	knots, err = ParseKnots("-1.5,2e1")
	require.NoError(t, err)
	assert.Equal(t, []epicycles.Pair{epicycles.P(-1.5, 20)}, knots)
	for _, s := range []string{"1", "1,x", "1,2,3", ",2"} {
		_, err = ParseKnots(s)
		assert.True(t, errors.Is(err, epicycles.ErrInvalidPath), "%q", s)
	}
}

// Draw a circle with diameter 2 around (2,1).
func ExampleCycle() {
	knots := []epicycles.Pair{
		epicycles.P(1, 1), epicycles.P(2, 2), epicycles.P(3, 1), epicycles.P(2, 0),
	}
	beziers, err := Cycle(knots)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(AsString(beziers, true))
	// Output:
	// (1,1) .. controls (1.0000,1.5523) and (1.4477,2.0000)
	//   .. (2,2) .. controls (2.5523,2.0000) and (3.0000,1.5523)
	//   .. (3,1) .. controls (3.0000,0.4477) and (2.5523,0.0000)
	//   .. (2,0) .. controls (1.4477,0.0000) and (1.0000,0.4477)
	//   .. cycle
}
