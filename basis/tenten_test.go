package basis

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"

	"github.com/gosplines/gspline/gserr"
)

func TestTenTenRejectsOutOfRangeAlpha(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := NewTenTen(0)
	assert.True(t, gserr.Is(err, gserr.KindInvalidArgument))
	_, err = NewTenTen(1)
	assert.True(t, gserr.Is(err, gserr.KindInvalidArgument))
	_, err = NewTenTen(-0.2)
	assert.True(t, gserr.Is(err, gserr.KindInvalidArgument))
}

func TestTenTenDimensionIsSix(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	b, err := NewTenTen(0.5)
	assert.NoError(t, err)
	assert.Equal(t, 6, b.Dim())
	assert.Equal(t, "1010", b.Name())
}

// TestTenTenPointEvaluationHasNoOrderCap checks that point evaluation of
// a t-derivative (the path interpolator continuity/boundary row assembly
// uses) works at order 4 and beyond, even though the closed-form
// coefficient-space and energy operators below are capped at order 3.
func TestTenTenPointEvaluationHasNoOrderCap(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	b, err := NewTenTen(0.5)
	assert.NoError(t, err)
	out := make([]float64, 6)
	assert.NoError(t, b.EvalWindowDeriv(0.1, 1, 4, out))
	assert.NoError(t, b.EvalWindowDeriv(0.1, 1, 10, out))
	assert.NoError(t, b.EvalWindowDerivWRTTau(0.1, 1, 4, out))
}

func TestTenTenOrderFourIsUnsupportedForClosedFormBlocks(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	b, err := NewTenTen(0.5)
	assert.NoError(t, err)
	_, err = b.tCoefficientDerivative(1, 4)
	assert.True(t, gserr.Is(err, gserr.KindUnsupported))
	m := make([]float64, 36)
	err = b.AddBlockDerivative(1, 4, m)
	assert.True(t, gserr.Is(err, gserr.KindUnsupported))
	err = b.AddBlockDerivativeWRTTau(1, 4, m)
	assert.True(t, gserr.Is(err, gserr.KindUnsupported))
}

func TestTenTenDerivativeMatchesFiniteDifference(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	b, err := NewTenTen(0.3)
	assert.NoError(t, err)

	for _, k := range []int{1, 2, 3} {
		tau, s0, h := 1.1, 0.15, 1e-6
		ds := 2 * h / tau
		plus := make([]float64, 6)
		minus := make([]float64, 6)
		deriv := make([]float64, 6)
		assert.NoError(t, b.EvalWindowDeriv(s0+ds, tau, k-1, plus))
		assert.NoError(t, b.EvalWindowDeriv(s0-ds, tau, k-1, minus))
		assert.NoError(t, b.EvalWindowDeriv(s0, tau, k, deriv))
		for i := range deriv {
			fd := (plus[i] - minus[i]) / (2 * h)
			assert.InDelta(t, fd, deriv[i], 5e-3, "order %d component %d", k, i)
		}
	}
}

func TestTenTenDerivWRTTauMatchesFiniteDifference(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	b, err := NewTenTen(0.6)
	assert.NoError(t, err)

	s0, tau, h := 0.25, 0.8, 1e-6
	plus := make([]float64, 6)
	minus := make([]float64, 6)
	deriv := make([]float64, 6)
	assert.NoError(t, b.EvalWindowDeriv(s0, tau+h, 1, plus))
	assert.NoError(t, b.EvalWindowDeriv(s0, tau-h, 1, minus))
	assert.NoError(t, b.EvalWindowDerivWRTTau(s0, tau, 1, deriv))
	for i := range deriv {
		fd := (plus[i] - minus[i]) / (2 * h)
		assert.InDelta(t, fd, deriv[i], 5e-3, "component %d", i)
	}
}

func TestTenTenBlockDerivativeMatchesNumericalIntegration(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	b, err := NewTenTen(0.4)
	assert.NoError(t, err)

	tau := 0.9
	m := make([]float64, 36)
	assert.NoError(t, b.AddBlockDerivative(tau, 0, m))

	// Numerically integrate <B, B> over t in [0, tau] with a fine
	// midpoint rule and compare against the closed form.
	const steps = 20000
	num := make([]float64, 36)
	dt := tau / float64(steps)
	val := make([]float64, 6)
	for n := 0; n < steps; n++ {
		t0 := (float64(n) + 0.5) * dt
		s := 2*t0/tau - 1
		assert.NoError(t, b.EvalWindow(s, tau, val))
		for i := 0; i < 6; i++ {
			for j := 0; j < 6; j++ {
				num[i*6+j] += val[i] * val[j] * dt
			}
		}
	}
	for i := range m {
		assert.InDelta(t, num[i], m[i], 1e-3, "entry %d", i)
	}
}
