package interpolator

import (
	"github.com/gosplines/gspline"
	"github.com/gosplines/gspline/gserr"
	"github.com/gosplines/gspline/internal/linalg"
)

func tauEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// assemble fills the sparsity pattern described in New's doc comment:
// interpolation rows first (left endpoints, then right endpoints),
// continuity rows next (one (N-1)*c*contOrd block), boundary rows last.
func (ip *Interpolator) assemble(tau []float64) (*linalg.Sparse, error) {
	d := ip.d
	nnzHint := ip.rows * 2 * d
	sp := linalg.NewSparse(ip.rows, ip.cols, nnzHint)
	buf := make([]float64, d)
	left := make([]float64, d)
	right := make([]float64, d)

	for i := 0; i < ip.n; i++ {
		if err := ip.basis.EvalWindow(-1, tau[i], buf); err != nil {
			return nil, err
		}
		for co := 0; co < ip.c; co++ {
			sp.AddBlock(ip.interpLeftRow(i, co), (i*ip.c+co)*d, buf, 1)
		}
	}
	for i := 0; i < ip.n; i++ {
		if err := ip.basis.EvalWindow(1, tau[i], buf); err != nil {
			return nil, err
		}
		for co := 0; co < ip.c; co++ {
			sp.AddBlock(ip.interpRightRow(i, co), (i*ip.c+co)*d, buf, 1)
		}
	}

	for j := 0; j < ip.n-1; j++ {
		for r := 1; r <= ip.contOrd; r++ {
			if err := ip.basis.EvalWindowDeriv(1, tau[j], r, left); err != nil {
				return nil, err
			}
			if err := ip.basis.EvalWindowDeriv(-1, tau[j+1], r, right); err != nil {
				return nil, err
			}
			for co := 0; co < ip.c; co++ {
				row := ip.continuityRow(j, co, r)
				sp.AddBlock(row, (j*ip.c+co)*d, left, 1)
				sp.AddBlock(row, ((j+1)*ip.c+co)*d, right, -1)
			}
		}
	}

	for r := 1; r <= ip.boundOrd; r++ {
		if err := ip.basis.EvalWindowDeriv(-1, tau[0], r, buf); err != nil {
			return nil, err
		}
		for co := 0; co < ip.c; co++ {
			sp.AddBlock(ip.boundaryLeftRow(co, r), co*d, buf, 1)
		}
	}
	for r := 1; r <= ip.boundOrd; r++ {
		if err := ip.basis.EvalWindowDeriv(1, tau[ip.n-1], r, buf); err != nil {
			return nil, err
		}
		for co := 0; co < ip.c; co++ {
			sp.AddBlock(ip.boundaryRightRow(co, r), ((ip.n-1)*ip.c+co)*d, buf, 1)
		}
	}

	return sp, nil
}

// rhs builds the right-hand side in the same row order as assemble:
// waypoint values on the interpolation rows, zero on the continuity
// rows, and the configured (or natural/zero) boundary derivatives on
// the boundary rows.
func (ip *Interpolator) rhs(waypoints [][]float64) []float64 {
	r := make([]float64, ip.rows)
	for i := 0; i < ip.n; i++ {
		for co := 0; co < ip.c; co++ {
			r[ip.interpLeftRow(i, co)] = waypoints[i][co]
			r[ip.interpRightRow(i, co)] = waypoints[i+1][co]
		}
	}
	if ip.boundary != nil {
		for ord := 1; ord <= ip.boundOrd; ord++ {
			for co := 0; co < ip.c; co++ {
				r[ip.boundaryLeftRow(co, ord)] = ip.boundary.Left[ord-1][co]
				r[ip.boundaryRightRow(co, ord)] = ip.boundary.Right[ord-1][co]
			}
		}
	}
	return r
}

func (ip *Interpolator) validateShapes(tau []float64, waypoints [][]float64) error {
	if len(tau) != ip.n {
		return gserr.New(gserr.KindInvalidArgument, "tau has length %d, want %d", len(tau), ip.n)
	}
	for i, t := range tau {
		if t <= 0 {
			return gserr.New(gserr.KindInvalidArgument, "interval length %d must be > 0, got %g", i, t)
		}
	}
	if len(waypoints) != ip.n+1 {
		return gserr.New(gserr.KindInvalidArgument, "waypoints has %d rows, want %d", len(waypoints), ip.n+1)
	}
	for i, w := range waypoints {
		if len(w) != ip.c {
			return gserr.New(gserr.KindInvalidArgument, "waypoint %d has length %d, want %d", i, len(w), ip.c)
		}
	}
	return nil
}

// Solve assembles A(τ) from scratch and refactorizes it when τ differs
// from the last Solve, reuses the cached LU factors when τ is unchanged
// (the idempotence the contract requires), and returns y = A(τ)^-1 * rhs(W). The result is retained so
// a later SolveDerivativeWRTTau call can reuse both y and the
// factorization.
func (ip *Interpolator) Solve(tau []float64, waypoints [][]float64) ([]float64, error) {
	if err := ip.validateShapes(tau, waypoints); err != nil {
		return nil, err
	}
	if !tauEqual(ip.lastTau, tau) {
		sp, err := ip.assemble(tau)
		if err != nil {
			return nil, err
		}
		dense, err := sp.Dense()
		if err != nil {
			return nil, err
		}
		if err := ip.fact.Factorize(dense); err != nil {
			return nil, err
		}
		ip.lastTau = append([]float64(nil), tau...)
		tracer().Debugf("interpolator: refactorized for n=%d c=%d d=%d (factor count %d)", ip.n, ip.c, ip.d, ip.fact.FactorCount())
	}
	y, err := ip.fact.Solve(ip.rhs(waypoints))
	if err != nil {
		return nil, err
	}
	ip.lastY = y
	return y, nil
}

// Interpolate is Solve followed by wrapping the resulting coefficients
// into a Gspline anchored at t0, mirroring the original library's
// interpolate() entry point (tests/interpolator.py), which hands back a
// ready-to-evaluate piecewise function rather than a bare coefficient
// vector.
func (ip *Interpolator) Interpolate(tau []float64, waypoints [][]float64, t0 float64) (*gspline.Gspline, error) {
	y, err := ip.Solve(tau, waypoints)
	if err != nil {
		return nil, err
	}
	return gspline.New(ip.basis, ip.c, ip.n, t0, tau, y)
}

// dTauDerivative assembles ∂A/∂τ_p: only the rows that evaluate the
// basis on interval p can depend on τ_p, namely interval p's own
// interpolation rows, the continuity rows at the joints bordering
// interval p, and the boundary rows if p is the first or last interval.
func (ip *Interpolator) dTauDerivative(p int, tau []float64) (*linalg.Sparse, error) {
	d := ip.d
	sp := linalg.NewSparse(ip.rows, ip.cols, 4*d*ip.c)
	buf := make([]float64, d)

	if err := ip.basis.EvalWindowDerivWRTTau(-1, tau[p], 0, buf); err != nil {
		return nil, err
	}
	for co := 0; co < ip.c; co++ {
		sp.AddBlock(ip.interpLeftRow(p, co), (p*ip.c+co)*d, buf, 1)
	}
	if err := ip.basis.EvalWindowDerivWRTTau(1, tau[p], 0, buf); err != nil {
		return nil, err
	}
	for co := 0; co < ip.c; co++ {
		sp.AddBlock(ip.interpRightRow(p, co), (p*ip.c+co)*d, buf, 1)
	}

	if p > 0 {
		j := p - 1
		for r := 1; r <= ip.contOrd; r++ {
			if err := ip.basis.EvalWindowDerivWRTTau(-1, tau[p], r, buf); err != nil {
				return nil, err
			}
			for co := 0; co < ip.c; co++ {
				sp.AddBlock(ip.continuityRow(j, co, r), (p*ip.c+co)*d, buf, -1)
			}
		}
	}
	if p < ip.n-1 {
		j := p
		for r := 1; r <= ip.contOrd; r++ {
			if err := ip.basis.EvalWindowDerivWRTTau(1, tau[p], r, buf); err != nil {
				return nil, err
			}
			for co := 0; co < ip.c; co++ {
				sp.AddBlock(ip.continuityRow(j, co, r), (p*ip.c+co)*d, buf, 1)
			}
		}
	}

	if p == 0 {
		for r := 1; r <= ip.boundOrd; r++ {
			if err := ip.basis.EvalWindowDerivWRTTau(-1, tau[0], r, buf); err != nil {
				return nil, err
			}
			for co := 0; co < ip.c; co++ {
				sp.AddBlock(ip.boundaryLeftRow(co, r), co*d, buf, 1)
			}
		}
	}
	if p == ip.n-1 {
		for r := 1; r <= ip.boundOrd; r++ {
			if err := ip.basis.EvalWindowDerivWRTTau(1, tau[ip.n-1], r, buf); err != nil {
				return nil, err
			}
			for co := 0; co < ip.c; co++ {
				sp.AddBlock(ip.boundaryRightRow(co, r), ((ip.n-1)*ip.c+co)*d, buf, 1)
			}
		}
	}

	return sp, nil
}

// SolveDerivativeWRTTau returns ∂y/∂τ_p for the most recently solved
// system: from A(τ)y = rhs(W) and rhs not depending on τ,
// A(τ)·∂y/∂τ_p = -(∂A/∂τ_p)·y, back-solved with the already-factorized
// A. Requires a prior Solve call for this interval count; p must index
// an existing interval.
func (ip *Interpolator) SolveDerivativeWRTTau(p int) ([]float64, error) {
	if ip.lastY == nil {
		return nil, gserr.New(gserr.KindInvalidArgument, "SolveDerivativeWRTTau requires a prior Solve")
	}
	if p < 0 || p >= ip.n {
		return nil, gserr.New(gserr.KindInvalidArgument, "interval index %d out of range [0, %d)", p, ip.n)
	}
	dA, err := ip.dTauDerivative(p, ip.lastTau)
	if err != nil {
		return nil, err
	}
	dAy, err := dA.MulVec(ip.lastY)
	if err != nil {
		return nil, err
	}
	negRHS := make([]float64, len(dAy))
	for i, v := range dAy {
		negRHS[i] = -v
	}
	return ip.fact.Solve(negRHS)
}
