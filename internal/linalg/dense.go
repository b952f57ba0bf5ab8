package linalg

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/gosplines/gspline/gserr"
)

// singularCond is the condition-number threshold above which a
// factorization is reported as gserr.KindSingular. gonum's mat.LU does
// not expose raw pivots, so Cond() (which returns +Inf for an exactly
// singular matrix and grows without bound as the matrix approaches
// singularity) stands in for a minimum-pivot threshold.
const singularCond = 1e14

// Factorization owns a reusable LU decomposition of a square matrix, so
// that callers such as interpolator.Interpolator can refactorize only
// when τ actually changes.
type Factorization struct {
	n       int
	lu      mat.LU
	factors int // counts how many times Factorize actually ran a decomposition
}

// NewFactorization builds an empty Factorization for an n x n system.
func NewFactorization(n int) *Factorization {
	return &Factorization{n: n}
}

// Factorize decomposes a, stored row-major, into this Factorization's LU
// form. Callers are responsible for only calling this when τ has
// actually changed; Factorize itself always (re)computes the
// decomposition — the idempotence guarantee lives one layer up, in
// interpolator.Interpolator, which tracks the last τ it factorized for.
func (f *Factorization) Factorize(a []float64) error {
	if len(a) != f.n*f.n {
		return gserr.New(gserr.KindInvalidArgument, "matrix has %d entries, want %d for an %dx%d system", len(a), f.n*f.n, f.n, f.n)
	}
	dense := mat.NewDense(f.n, f.n, append([]float64(nil), a...))
	f.lu.Factorize(dense)
	f.factors++
	if cond := f.lu.Cond(); math.IsInf(cond, 1) || cond > singularCond {
		return gserr.New(gserr.KindSingular, "condition number %.3e exceeds singularity threshold", cond)
	}
	return nil
}

// FactorCount returns how many times Factorize has run a decomposition.
// Exposed so interpolator tests can observe factorization reuse via a
// counter rather than by timing.
func (f *Factorization) FactorCount() int {
	return f.factors
}

// Solve returns x such that A*x = rhs, using the cached LU factors.
func (f *Factorization) Solve(rhs []float64) ([]float64, error) {
	if len(rhs) != f.n {
		return nil, gserr.New(gserr.KindInvalidArgument, "right-hand side has length %d, want %d", len(rhs), f.n)
	}
	b := mat.NewVecDense(f.n, append([]float64(nil), rhs...))
	var x mat.VecDense
	if err := f.lu.SolveVecTo(&x, false, b); err != nil {
		return nil, gserr.New(gserr.KindSingular, "LU solve failed: %v", err)
	}
	out := make([]float64, f.n)
	for i := range out {
		out[i] = x.AtVec(i)
	}
	return out, nil
}
