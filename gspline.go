// Package gspline implements generalized splines: piecewise vector-valued
// functions built from a shared function Basis, one set of coefficients
// per interval. A Gspline is produced by Interpolator.Interpolate or by calling
// Derivate on an existing Gspline; this package only evaluates and
// differentiates an already-solved spline.
package gspline

import (
	"sort"

	"github.com/npillmayer/schuko/tracing"

	"github.com/gosplines/gspline/basis"
	"github.com/gosplines/gspline/gserr"
	"github.com/gosplines/gspline/internal/numeric"
)

func tracer() tracing.Trace {
	return tracing.Select("gspline")
}

// Gspline is a piecewise function on [t0, tf] with codomain dimension c,
// built from N intervals sharing one Basis. Coefficients are strided
// interval-major, coordinate-next, basis-index-minor: y[(i*c+coord)*d+j].
type Gspline struct {
	basis       basis.Basis
	c           int
	n           int
	tau         []float64
	y           []float64
	breakpoints []float64
}

// New constructs a Gspline from its basis, codomain dimension, interval
// count, start time, interval lengths, and coefficient vector. It
// validates shapes and precomputes the breakpoints.
func New(b basis.Basis, c, n int, t0 float64, tau []float64, y []float64) (*Gspline, error) {
	if b == nil {
		return nil, gserr.New(gserr.KindInvalidArgument, "basis must not be nil")
	}
	if c <= 0 {
		return nil, gserr.New(gserr.KindInvalidArgument, "codomain dimension must be > 0, got %d", c)
	}
	if n <= 0 {
		return nil, gserr.New(gserr.KindInvalidArgument, "number of intervals must be > 0, got %d", n)
	}
	if len(tau) != n {
		return nil, gserr.New(gserr.KindInvalidArgument, "tau has length %d, want %d", len(tau), n)
	}
	d := b.Dim()
	if len(y) != n*c*d {
		return nil, gserr.New(gserr.KindInvalidArgument, "coefficient vector has length %d, want %d", len(y), n*c*d)
	}
	breakpoints := make([]float64, n+1)
	breakpoints[0] = t0
	for i, t := range tau {
		if t <= 0 {
			return nil, gserr.New(gserr.KindInvalidArgument, "interval length %d must be > 0, got %g", i, t)
		}
		breakpoints[i+1] = breakpoints[i] + t
	}
	return &Gspline{
		basis:       b,
		c:           c,
		n:           n,
		tau:         append([]float64(nil), tau...),
		y:           append([]float64(nil), y...),
		breakpoints: breakpoints,
	}, nil
}

// CodomDim returns c, the dimension of the function's codomain.
func (g *Gspline) CodomDim() int { return g.c }

// NumIntervals returns N, the number of pieces.
func (g *Gspline) NumIntervals() int { return g.n }

// ExecTime returns tf - t0.
func (g *Gspline) ExecTime() float64 {
	return g.breakpoints[g.n] - g.breakpoints[0]
}

// Coefficients returns a copy of the strided coefficient vector.
func (g *Gspline) Coefficients() []float64 {
	return append([]float64(nil), g.y...)
}

// IntervalLengths returns a copy of tau.
func (g *Gspline) IntervalLengths() []float64 {
	return append([]float64(nil), g.tau...)
}

// Breakpoints returns a copy of the N+1 breakpoints b_0 .. b_N.
func (g *Gspline) Breakpoints() []float64 {
	return append([]float64(nil), g.breakpoints...)
}

// locateInterval finds the interval index and canonical coordinate s for
// a query time t, clamping to the domain within tolerance and applying
// right-continuity at internal breakpoints: a query exactly at an
// internal breakpoint resolves to the interval starting there, not the
// one ending there.
func (g *Gspline) locateInterval(t float64) (int, float64, error) {
	t0, tf := g.breakpoints[0], g.breakpoints[g.n]
	eps := numeric.DomainTolerance(t0, tf)
	if t < t0 {
		if !numeric.IsZero(t0-t, eps) {
			return 0, 0, gserr.New(gserr.KindOutOfDomain, "t=%g outside [%g, %g] (tolerance %g)", t, t0, tf, eps)
		}
		t = t0
	}
	if t > tf {
		if !numeric.IsZero(t-tf, eps) {
			return 0, 0, gserr.New(gserr.KindOutOfDomain, "t=%g outside [%g, %g] (tolerance %g)", t, t0, tf, eps)
		}
		t = tf
	}
	i := sort.Search(g.n, func(i int) bool { return g.breakpoints[i+1] > t })
	if i == g.n {
		i = g.n - 1
	}
	s := 2*(t-g.breakpoints[i])/g.tau[i] - 1
	if s < -1 {
		s = -1
	}
	if s > 1 {
		s = 1
	}
	return i, s, nil
}

// Value evaluates the spline at every time in ts, returning a matrix of
// shape [len(ts)][c].
func (g *Gspline) Value(ts []float64) ([][]float64, error) {
	d := g.basis.Dim()
	buf := make([]float64, d)
	out := make([][]float64, len(ts))
	for q, t := range ts {
		i, s, err := g.locateInterval(t)
		if err != nil {
			return nil, err
		}
		if err := g.basis.EvalWindow(s, g.tau[i], buf); err != nil {
			return nil, err
		}
		row := make([]float64, g.c)
		for co := 0; co < g.c; co++ {
			base := (i*g.c + co) * d
			var sum float64
			for k := 0; k < d; k++ {
				sum += g.y[base+k] * buf[k]
			}
			row[co] = sum
		}
		out[q] = row
	}
	return out, nil
}

// Derivate returns a new Gspline of the same shape whose coefficients
// are D^blk_k(tau) * y, the k-th t-derivative in coefficient space.
func (g *Gspline) Derivate(k int) (*Gspline, error) {
	op, err := basis.BlockDiagonalDerivative(g.basis, g.n, g.c, k, g.tau)
	if err != nil {
		return nil, err
	}
	dy, err := op.MulVec(g.y)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("gspline: derivate order %d over %d interval(s), basis %q", k, g.n, g.basis.Name())
	return &Gspline{
		basis:       g.basis,
		c:           g.c,
		n:           g.n,
		tau:         append([]float64(nil), g.tau...),
		y:           dy,
		breakpoints: append([]float64(nil), g.breakpoints...),
	}, nil
}
