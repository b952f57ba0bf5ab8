package basis

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"

	"github.com/gosplines/gspline/gserr"
)

func TestLegendreRejectsSmallDimension(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := NewLegendre(1)
	assert.True(t, gserr.Is(err, gserr.KindInvalidArgument))
}

func TestLegendreEndpointValues(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	b, err := NewLegendre(5)
	assert.NoError(t, err)
	out := make([]float64, 5)

	assert.NoError(t, b.EvalWindow(1, 1, out))
	for i, v := range out {
		assert.InDelta(t, 1.0, v, 1e-12, "P_%d(1) should be 1", i)
	}

	assert.NoError(t, b.EvalWindow(-1, 1, out))
	for i, v := range out {
		want := 1.0
		if i%2 == 1 {
			want = -1.0
		}
		assert.InDelta(t, want, v, 1e-12, "P_%d(-1) should be %g", i, want)
	}
}

func TestLegendreDerivativeMatchesFiniteDifference(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	b, err := NewLegendre(6)
	assert.NoError(t, err)

	tau, s0, h := 1.3, 0.2, 1e-5
	ds := 2 * h / tau
	plus := make([]float64, 6)
	minus := make([]float64, 6)
	deriv := make([]float64, 6)
	assert.NoError(t, b.EvalWindow(s0+ds, tau, plus))
	assert.NoError(t, b.EvalWindow(s0-ds, tau, minus))
	assert.NoError(t, b.EvalWindowDeriv(s0, tau, 1, deriv))
	for i := range deriv {
		fd := (plus[i] - minus[i]) / (2 * h)
		assert.InDelta(t, fd, deriv[i], 1e-5, "component %d", i)
	}
}

func TestLegendreDerivWRTTauMatchesFiniteDifference(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	b, err := NewLegendre(6)
	assert.NoError(t, err)

	s0, tau, h := -0.4, 0.9, 1e-5
	plus := make([]float64, 6)
	minus := make([]float64, 6)
	deriv := make([]float64, 6)
	assert.NoError(t, b.EvalWindowDeriv(s0, tau+h, 2, plus))
	assert.NoError(t, b.EvalWindowDeriv(s0, tau-h, 2, minus))
	assert.NoError(t, b.EvalWindowDerivWRTTau(s0, tau, 2, deriv))
	for i := range deriv {
		fd := (plus[i] - minus[i]) / (2 * h)
		assert.InDelta(t, fd, deriv[i], 1e-3, "component %d", i)
	}
}

func TestLegendreBlockDerivativeIsSymmetricAndScales(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	b, err := NewLegendre(4)
	assert.NoError(t, err)

	m1 := make([]float64, 16)
	assert.NoError(t, b.AddBlockDerivative(1, 1, m1))
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			assert.InDelta(t, m1[i*4+j], m1[j*4+i], 1e-12, "block should be symmetric")
		}
	}

	m2 := make([]float64, 16)
	assert.NoError(t, b.AddBlockDerivative(2, 1, m2))
	// the k=1 block scales as (2/tau)^1, so halving tau from 2 to 1 should
	// double every entry.
	for i := range m1 {
		assert.InDelta(t, m1[i], 2*m2[i], 1e-9)
	}
}

func TestLegendreUnknownBasisDimension(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	b, err := NewLegendre(3)
	assert.NoError(t, err)
	out := make([]float64, 2)
	err = b.EvalWindow(0, 1, out)
	assert.True(t, gserr.Is(err, gserr.KindInvalidArgument))
}
