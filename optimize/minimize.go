package optimize

import (
	gonumoptimize "gonum.org/v1/gonum/optimize"

	"github.com/gosplines/gspline/gserr"
)

// Result is the τ the driver converged to, plus the cost there and how
// many cost/gradient evaluations it took — just enough for a caller to
// sanity-check convergence without depending on gonum/optimize's own
// result type.
type Result struct {
	Tau         []float64
	Cost        float64
	Evaluations int
}

// Minimize drives Problem with gonum/optimize's LBFGS over the z ∈
// ℝ^N reparametrization in reparam.go, which turns the bounded,
// equality-constrained τ problem into an unconstrained one. It is one
// possible driver over Problem's cost/gradient/constraint contract; any
// other driver that respects that contract is equally valid.
func Minimize(p *Problem) (*Result, error) {
	tauMin := p.tauMin()
	duration := p.duration()
	n := p.NumIntervals
	if n < 1 {
		return nil, gserr.New(gserr.KindInvalidArgument, "NumIntervals must be >= 1, got %d", n)
	}
	if duration <= float64(n)*tauMin {
		return nil, gserr.New(gserr.KindInvalidArgument, "duration %g too small for %d intervals at tauMin %g", duration, n, tauMin)
	}

	var lastErr error
	evaluations := 0

	gp := gonumoptimize.Problem{
		Func: func(z []float64) float64 {
			evaluations++
			tau := tauFromZ(z, tauMin, duration)
			cost, err := p.Cost(tau)
			if err != nil {
				lastErr = err
				return 0
			}
			return cost
		},
		Grad: func(grad, z []float64) {
			tau := tauFromZ(z, tauMin, duration)
			gradTau, err := p.Gradient(tau)
			if err != nil {
				lastErr = err
				for i := range grad {
					grad[i] = 0
				}
				return
			}
			copy(grad, gradZFromTau(gradTau, z, tauMin, duration))
		},
	}

	z0 := make([]float64, n) // z=0 maps to the uniform initial tau via softmax symmetry
	result, err := gonumoptimize.Minimize(gp, z0, nil, &gonumoptimize.LBFGS{})
	if err != nil {
		return nil, gserr.New(gserr.KindInvalidArgument, "optimization failed: %v", err)
	}
	if lastErr != nil {
		return nil, lastErr
	}

	tau := tauFromZ(result.X, tauMin, duration)
	tracer().Infof("optimize: converged to cost %g after %d evaluations", result.F, evaluations)
	return &Result{Tau: tau, Cost: result.F, Evaluations: evaluations}, nil
}
