package gspline

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"

	"github.com/gosplines/gspline/basis"
	"github.com/gosplines/gspline/gserr"
)

func affinePiecewise(t *testing.T, a, slope float64, t0 float64, tau []float64) *Gspline {
	t.Helper()
	b, err := basis.NewLegendre(2)
	assert.NoError(t, err)
	bp := t0
	y := make([]float64, 0, len(tau)*2)
	for _, dt := range tau {
		y0 := a + slope*bp + slope*dt/2
		y1 := slope * dt / 2
		y = append(y, y0, y1)
		bp += dt
	}
	g, err := New(b, 1, len(tau), t0, tau, y)
	assert.NoError(t, err)
	return g
}

func TestGsplineValueInterpolatesAffineFunction(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	g := affinePiecewise(t, 1, 2, 0, []float64{1.0, 1.5})
	out, err := g.Value([]float64{0, 1, 2.5})
	assert.NoError(t, err)
	assert.InDelta(t, 1.0, out[0][0], 1e-10)
	assert.InDelta(t, 3.0, out[1][0], 1e-10)
	assert.InDelta(t, 6.0, out[2][0], 1e-10)
}

func TestGsplineValueIsRightContinuousAtBreakpoint(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	// Build a genuinely discontinuous spline: interval 0 is constant 1,
	// interval 1 is constant 3. At the joint t=1 we must see the value
	// from the right piece.
	b, err := basis.NewLegendre(2)
	assert.NoError(t, err)
	g, err := New(b, 1, 2, 0, []float64{1, 1}, []float64{1, 0, 3, 0})
	assert.NoError(t, err)
	out, err := g.Value([]float64{1})
	assert.NoError(t, err)
	assert.InDelta(t, 3.0, out[0][0], 1e-12)
}

func TestGsplineOutOfDomain(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	g := affinePiecewise(t, 0, 1, 0, []float64{1, 1})
	_, err := g.Value([]float64{5})
	assert.True(t, gserr.Is(err, gserr.KindOutOfDomain))
}

func TestGsplineClampsWithinTolerance(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	g := affinePiecewise(t, 0, 1, 0, []float64{1, 1})
	out, err := g.Value([]float64{2 + 1e-12})
	assert.NoError(t, err)
	assert.InDelta(t, 2.0, out[0][0], 1e-9)
}

func TestGsplineDerivateOfAffineIsConstant(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	g := affinePiecewise(t, 1, 2, 0, []float64{1.0, 1.5})
	dg, err := g.Derivate(1)
	assert.NoError(t, err)
	coeffs := dg.Coefficients()
	assert.InDelta(t, 2.0, coeffs[0], 1e-10)
	assert.InDelta(t, 0.0, coeffs[1], 1e-10)
	assert.InDelta(t, 2.0, coeffs[2], 1e-10)
	assert.InDelta(t, 0.0, coeffs[3], 1e-10)
}

func TestGsplineAccessors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	g := affinePiecewise(t, 0, 1, 0.5, []float64{1, 2, 3})
	assert.Equal(t, 1, g.CodomDim())
	assert.Equal(t, 3, g.NumIntervals())
	assert.InDelta(t, 6.0, g.ExecTime(), 1e-12)
	assert.Equal(t, []float64{0.5, 1.5, 3.5, 6.5}, g.Breakpoints())
	assert.Equal(t, []float64{1, 2, 3}, g.IntervalLengths())
}

func TestGsplineRejectsMismatchedCoefficients(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	b, err := basis.NewLegendre(2)
	assert.NoError(t, err)
	_, err = New(b, 1, 2, 0, []float64{1, 1}, []float64{1, 0})
	assert.True(t, gserr.Is(err, gserr.KindInvalidArgument))
}

func TestGsplineRejectsZeroIntervalLength(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	b, err := basis.NewLegendre(2)
	assert.NoError(t, err)
	_, err = New(b, 1, 2, 0, []float64{1, 0}, []float64{1, 0, 1, 0})
	assert.True(t, gserr.Is(err, gserr.KindInvalidArgument))
}
