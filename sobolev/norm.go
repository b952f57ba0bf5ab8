package sobolev

import (
	"gonum.org/v1/gonum/floats"

	"github.com/gosplines/gspline/basis"
	"github.com/gosplines/gspline/interpolator"
	"github.com/gosplines/gspline/internal/linalg"
)

// Norm is a weighted sum of Sobolev-type seminorms of the Gspline that
// interpolates a fixed set of waypoints, evaluated as a function of the
// interval lengths τ. It owns its Interpolator exclusively: no other
// component solves against it.
type Norm struct {
	ip        *interpolator.Interpolator
	basis     basis.Basis
	c, n      int
	waypoints [][]float64
	weights   []Weight
}

// New validates a Problem and builds the Norm's private Interpolator.
func New(p Problem) (*Norm, error) {
	if err := validateWeights(p.Weights); err != nil {
		return nil, err
	}
	ip, err := interpolator.New(interpolator.Problem{
		Basis:          p.Basis,
		CodomDim:       p.CodomDim,
		NumIntervals:   p.NumIntervals,
		BoundaryValues: p.BoundaryValues,
	})
	if err != nil {
		return nil, err
	}
	return &Norm{
		ip:        ip,
		basis:     p.Basis,
		c:         p.CodomDim,
		n:         p.NumIntervals,
		waypoints: p.Waypoints,
		weights:   append([]Weight(nil), p.Weights...),
	}, nil
}

// Value returns J(τ) = Σⱼ wⱼ·yᵀ·Qⱼ(τ)·y, where y solves the
// interpolation system for this τ.
func (nm *Norm) Value(tau []float64) (float64, error) {
	y, err := nm.ip.Solve(tau, nm.waypoints)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, w := range nm.weights {
		q, err := blockGram(nm.basis, nm.n, nm.c, w.Order, tau)
		if err != nil {
			return 0, err
		}
		qy, err := q.MulVec(y)
		if err != nil {
			return 0, err
		}
		total += w.Weight * floats.Dot(y, qy)
	}
	tracer().Debugf("sobolev: value = %g over %d weight term(s)", total, len(nm.weights))
	return total, nil
}

// Gradient returns ∇_τ J ∈ ℝ^N, component p equal to
// Σⱼ wⱼ·[2·yᵀ·Qⱼ(τ)·∂y/∂τ_p + yᵀ·(∂Qⱼ/∂τ_p)·y].
func (nm *Norm) Gradient(tau []float64) ([]float64, error) {
	y, err := nm.ip.Solve(tau, nm.waypoints)
	if err != nil {
		return nil, err
	}

	qs := make([]*linalg.Sparse, len(nm.weights))
	for j, w := range nm.weights {
		q, err := blockGram(nm.basis, nm.n, nm.c, w.Order, tau)
		if err != nil {
			return nil, err
		}
		qs[j] = q
	}

	grad := make([]float64, nm.n)
	for p := 0; p < nm.n; p++ {
		dy, err := nm.ip.SolveDerivativeWRTTau(p)
		if err != nil {
			return nil, err
		}
		var gp float64
		for j, w := range nm.weights {
			qdy, err := qs[j].MulVec(dy)
			if err != nil {
				return nil, err
			}
			term1 := 2 * floats.Dot(y, qdy)

			dq, err := blockGramDerivAtInterval(nm.basis, nm.n, nm.c, w.Order, p, tau)
			if err != nil {
				return nil, err
			}
			dqy, err := dq.MulVec(y)
			if err != nil {
				return nil, err
			}
			term2 := floats.Dot(y, dqy)

			gp += w.Weight * (term1 + term2)
		}
		grad[p] = gp
	}
	return grad, nil
}
