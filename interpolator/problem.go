// Package interpolator assembles and solves the sparse linear system
// that pins a piecewise function's coefficients to a sequence of
// waypoints: value matching at every interval endpoint, derivative
// continuity at internal joints, and derivative boundary conditions at
// the two outer endpoints.
package interpolator

import (
	"github.com/npillmayer/schuko/tracing"

	"github.com/gosplines/gspline/basis"
	"github.com/gosplines/gspline/gserr"
	"github.com/gosplines/gspline/internal/linalg"
)

func tracer() tracing.Trace {
	return tracing.Select("interpolator")
}

// BoundaryValues carries non-zero derivative values to impose at the two
// outer endpoints of a waypoint sequence, in place of the natural/zero
// default. Left[r-1][co] and Right[r-1][co] give the value of the r-th
// t-derivative (r starting at 1) of codomain coordinate co at t0 and tf
// respectively; both slices must have length boundOrders = d/2 - 1, and
// each inner slice length CodomDim.
type BoundaryValues struct {
	Left, Right [][]float64
}

// Problem describes one interpolation system: a shared basis, a
// codomain dimension, a number of intervals, and optional non-zero
// boundary derivatives. The basis dimension must be even — this is what
// makes the row-count identity below square.
type Problem struct {
	Basis          basis.Basis
	CodomDim       int
	NumIntervals   int
	BoundaryValues *BoundaryValues
}

// Interpolator owns the sparsity pattern, the reusable factorization,
// and the result of the most recent Solve, for one (basis, c, n) shape.
// A fresh Interpolator must be built per shape; τ and waypoints vary
// freely across Solve calls.
type Interpolator struct {
	basis    basis.Basis
	c, n, d  int
	contOrd  int // continuity orders enforced per internal joint: 1..contOrd
	boundOrd int // boundary orders enforced per outer endpoint: 1..boundOrd
	boundary *BoundaryValues

	rows, cols int
	fact       *linalg.Factorization
	lastTau    []float64
	lastY      []float64
}

// New validates a Problem and builds an Interpolator for it.
//
// The basis dimension d must be even. The unknowns are the N*c*d
// coefficients; the constraint rows are partitioned into 2Nc
// interpolation rows (value matching at both ends of every interval),
// (N-1)*c*(d-2) continuity rows (derivative orders 1..d-2 at every
// internal joint — order 0 is already pinned by interpolation, so it is
// not repeated here), and 2c(d/2-1) boundary rows (derivative orders
// 1..d/2-1 at the two outer endpoints). These three counts sum to
// N*c*d for every even d and every N >= 1:
//
//	2Nc + (N-1)c(d-2) + 2c(d/2-1) = Nc*d
//
// which is the classical "C^(d-2) spline" continuity count for
// piecewise degree-(d-1) polynomials, not the literal 1..d/2-1 orders
// — see DESIGN.md for why the latter leaves the system underdetermined
// for every named preset with N>1.
func New(p Problem) (*Interpolator, error) {
	if p.Basis == nil {
		return nil, gserr.New(gserr.KindInvalidArgument, "basis must not be nil")
	}
	if p.CodomDim <= 0 {
		return nil, gserr.New(gserr.KindInvalidArgument, "codomain dimension must be > 0, got %d", p.CodomDim)
	}
	if p.NumIntervals <= 0 {
		return nil, gserr.New(gserr.KindInvalidArgument, "number of intervals must be > 0, got %d", p.NumIntervals)
	}
	d := p.Basis.Dim()
	if d%2 != 0 || d < 2 {
		return nil, gserr.New(gserr.KindInvalidArgument, "interpolation requires an even basis dimension >= 2, got %d", d)
	}
	contOrd := d - 2
	boundOrd := d/2 - 1

	if p.BoundaryValues != nil {
		if err := validateBoundary(p.BoundaryValues, boundOrd, p.CodomDim); err != nil {
			return nil, err
		}
	}

	n, c := p.NumIntervals, p.CodomDim
	rows := 2*n*c + (n-1)*c*contOrd + 2*c*boundOrd
	cols := n * c * d
	if rows != cols {
		gserr.MustInvariant("interpolation system is %d x %d, not square for n=%d c=%d d=%d", rows, cols, n, c, d)
	}

	return &Interpolator{
		basis:    p.Basis,
		c:        c,
		n:        n,
		d:        d,
		contOrd:  contOrd,
		boundOrd: boundOrd,
		boundary: p.BoundaryValues,
		rows:     rows,
		cols:     cols,
		fact:     linalg.NewFactorization(rows),
	}, nil
}

func validateBoundary(bv *BoundaryValues, boundOrd, c int) error {
	if boundOrd == 0 {
		if len(bv.Left) != 0 || len(bv.Right) != 0 {
			return gserr.New(gserr.KindInvalidArgument, "basis dimension leaves no boundary order to constrain, but BoundaryValues is non-empty")
		}
		return nil
	}
	if len(bv.Left) != boundOrd || len(bv.Right) != boundOrd {
		return gserr.New(gserr.KindInvalidArgument, "BoundaryValues must have %d rows per side, got %d left, %d right", boundOrd, len(bv.Left), len(bv.Right))
	}
	for r, row := range bv.Left {
		if len(row) != c {
			return gserr.New(gserr.KindInvalidArgument, "BoundaryValues.Left[%d] has length %d, want %d", r, len(row), c)
		}
	}
	for r, row := range bv.Right {
		if len(row) != c {
			return gserr.New(gserr.KindInvalidArgument, "BoundaryValues.Right[%d] has length %d, want %d", r, len(row), c)
		}
	}
	return nil
}

// CodomDim, NumIntervals, and Rows expose the shape an Interpolator was
// built for, so callers (e.g. sobolev.Norm) can validate without
// re-deriving the row-count arithmetic.
func (ip *Interpolator) CodomDim() int     { return ip.c }
func (ip *Interpolator) NumIntervals() int { return ip.n }
func (ip *Interpolator) Rows() int         { return ip.rows }

// row block offsets, computed once per call site rather than stored,
// since they only depend on the immutable shape fields.
func (ip *Interpolator) interpLeftRow(i, co int) int {
	return i*ip.c + co
}

func (ip *Interpolator) interpRightRow(i, co int) int {
	return ip.n*ip.c + i*ip.c + co
}

func (ip *Interpolator) continuityBase() int {
	return 2 * ip.n * ip.c
}

func (ip *Interpolator) continuityRow(j, co, r int) int {
	return ip.continuityBase() + (j*ip.c+co)*ip.contOrd + (r - 1)
}

func (ip *Interpolator) boundaryLeftBase() int {
	return ip.continuityBase() + (ip.n-1)*ip.c*ip.contOrd
}

func (ip *Interpolator) boundaryLeftRow(co, r int) int {
	return ip.boundaryLeftBase() + co*ip.boundOrd + (r - 1)
}

func (ip *Interpolator) boundaryRightBase() int {
	return ip.boundaryLeftBase() + ip.c*ip.boundOrd
}

func (ip *Interpolator) boundaryRightRow(co, r int) int {
	return ip.boundaryRightBase() + co*ip.boundOrd + (r - 1)
}
