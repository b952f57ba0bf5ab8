// Package basis implements the parameterized function bases gsplines are
// built from: Legendre, Lagrange-at-Gauss-Lobatto-Legendre, and the 1010
// basis. Each variant evaluates itself and its derivatives on the
// canonical window [-1, +1] and assembles the sparse block operators the
// interpolator and Sobolev-norm packages need.
package basis

import (
	"github.com/npillmayer/schuko/tracing"

	"github.com/gosplines/gspline/internal/linalg"
)

// tracer writes to trace with key 'basis'.
func tracer() tracing.Trace {
	return tracing.Select("basis")
}

// Basis is a finite-dimensional function space on the canonical window
// [-1, +1]. Implementations are shared read-only by Gspline,
// Interpolator, and SobolevNorm; caches are populated lazily on first
// use and are safe for concurrent readers once warmed (see cache.go).
type Basis interface {
	// Dim returns the basis dimension d.
	Dim() int

	// Name returns a short tag identifying the basis variant, used in
	// trace output and error messages.
	Name() string

	// EvalWindow writes the d basis values at canonical point s for a
	// piece of length tau into out. For Legendre and LagrangeGLL the
	// values depend only on s; for the 1010 basis they depend on tau
	// too.
	EvalWindow(s, tau float64, out []float64) error

	// EvalWindowDeriv writes the k-th derivative in t (i.e. including
	// the (2/tau)^k scaling) of the d basis functions at canonical
	// point s into out. Returns Unsupported if this basis has no
	// analytic expression for order k.
	EvalWindowDeriv(s, tau float64, k int, out []float64) error

	// EvalWindowDerivWRTTau writes d(EvalWindowDeriv)/dtau into out.
	// Required for Sobolev-norm gradients.
	EvalWindowDerivWRTTau(s, tau float64, k int, out []float64) error

	// AddBlockDerivative accumulates into the d x d matrix M (row-major,
	// length Dim()*Dim()) the block ∫[0,tau] <B^(k), B^(k)> dt.
	AddBlockDerivative(tau float64, k int, m []float64) error

	// AddBlockDerivativeWRTTau accumulates d(AddBlockDerivative)/dtau
	// into m.
	AddBlockDerivativeWRTTau(tau float64, k int, m []float64) error
}

// assembler is implemented by every concrete Basis and gives
// BlockDiagonalDerivative access to the coefficient-space mapping from
// a piece's coefficients to the coefficients of its k-th t-derivative,
// for a given tau. Row-filling in blocks.go (interpolation/continuity
// rows) only needs the public EvalWindow/EvalWindowDeriv and does not
// go through this interface, since those are well-defined for every
// variant including the tau-coupled 1010 basis.
//
// For Legendre and LagrangeGLL, tCoefficientDerivative(tau, k) is
// (2/tau)^k * D_k for a tau-independent, memoized D_k. For the 1010
// basis it is a closed-form, genuinely tau-independent matrix (the
// window parameter's rate of change with t happens to not depend on
// tau), computed once per k; see tenten.go.
type assembler interface {
	Basis
	tCoefficientDerivative(tau float64, k int) ([]float64, error)
}

// BlockDiagonalDerivative assembles the Ncd x Ncd sparse block-diagonal
// matrix mapping a piecewise-coefficient vector y (strided
// interval-major, coordinate-next, basis-index-minor) to the
// piecewise-coefficient vector of its k-th t-derivative, for N intervals
// of lengths tau and codomain dimension c.
func BlockDiagonalDerivative(b Basis, n, c, k int, tau []float64) (*linalg.Sparse, error) {
	return blockDiagonalDerivative(b, n, c, k, tau)
}

// ContinuityMatrix assembles the (N-1)*c*k_total x Ncd sparse matrix
// enforcing continuity of derivatives of order 0..k-1 across every
// internal breakpoint.
func ContinuityMatrix(b Basis, n, c, kTotal int, tau []float64) (*linalg.Sparse, error) {
	return continuityMatrix(b, n, c, kTotal, tau)
}
