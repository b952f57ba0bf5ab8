package basis

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"

	"github.com/gosplines/gspline/gserr"
)

func TestLagrangeGLLNodes(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	b, err := NewLagrangeGLL(6)
	assert.NoError(t, err)
	nodes := b.Nodes()
	assert.InDelta(t, -1.0, nodes[0], 1e-12)
	assert.InDelta(t, 1.0, nodes[len(nodes)-1], 1e-12)
	for i := 1; i < len(nodes); i++ {
		assert.Greater(t, nodes[i], nodes[i-1], "nodes should be strictly ascending")
	}
	// GLL nodes are symmetric about the origin.
	for i, x := range nodes {
		assert.InDelta(t, -x, nodes[len(nodes)-1-i], 1e-10)
	}
}

func TestLagrangeGLLWeightsSumToIntervalLength(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	b, err := NewLagrangeGLL(7)
	assert.NoError(t, err)
	var sum float64
	for _, w := range b.weights {
		assert.Greater(t, w, 0.0, "GLL quadrature weights must be positive")
		sum += w
	}
	assert.InDelta(t, 2.0, sum, 1e-10)
}

func TestLagrangeGLLCardinalProperty(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	b, err := NewLagrangeGLL(5)
	assert.NoError(t, err)
	out := make([]float64, 5)
	for j, x := range b.Nodes() {
		assert.NoError(t, b.EvalWindow(x, 1, out))
		for i, v := range out {
			want := 0.0
			if i == j {
				want = 1.0
			}
			assert.InDelta(t, want, v, 1e-9, "L_%d at node %d", i, j)
		}
	}
}

func TestLagrangeGLLDerivativeMatchesFiniteDifference(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	b, err := NewLagrangeGLL(6)
	assert.NoError(t, err)

	tau, s0, h := 0.7, -0.3, 1e-5
	ds := 2 * h / tau
	plus := make([]float64, 6)
	minus := make([]float64, 6)
	deriv := make([]float64, 6)
	assert.NoError(t, b.EvalWindow(s0+ds, tau, plus))
	assert.NoError(t, b.EvalWindow(s0-ds, tau, minus))
	assert.NoError(t, b.EvalWindowDeriv(s0, tau, 1, deriv))
	for i := range deriv {
		fd := (plus[i] - minus[i]) / (2 * h)
		assert.InDelta(t, fd, deriv[i], 1e-4, "component %d", i)
	}
}

func TestLagrangeGLLRejectsSmallDimension(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := NewLagrangeGLL(1)
	assert.True(t, gserr.Is(err, gserr.KindInvalidArgument))
}
