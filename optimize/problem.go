// Package optimize exposes the gspline trajectory-timing problem to an
// NLP driver: positive interval lengths τ summing to a fixed duration,
// minimizing a Sobolev seminorm. It also wires a default driver,
// gonum/optimize's LBFGS over a reparametrization that removes the
// positivity bound and the equality constraint, but the cost/gradient
// contract itself is the only thing an external driver actually needs.
package optimize

import (
	"github.com/npillmayer/schuko/tracing"

	"github.com/gosplines/gspline/basis"
	"github.com/gosplines/gspline/gserr"
	"github.com/gosplines/gspline/sobolev"
)

func tracer() tracing.Trace {
	return tracing.Select("optimize")
}

// Preset names a canonical (basis, dimension, weight) choice, matching
// the named cost families the distillation calls out.
type Preset int

const (
	BrokenLines Preset = iota
	MinimumAcceleration
	MinimumJerk
	MinimumSnap
	MinimumCrackle
)

func (p Preset) String() string {
	switch p {
	case BrokenLines:
		return "broken-lines"
	case MinimumAcceleration:
		return "minimum-acceleration"
	case MinimumJerk:
		return "minimum-jerk"
	case MinimumSnap:
		return "minimum-snap"
	case MinimumCrackle:
		return "minimum-crackle"
	default:
		return "unknown-preset"
	}
}

// basisDim and weightOrder give each Preset's Legendre dimension and
// single weighted derivative order.
func (p Preset) basisDim() int {
	switch p {
	case BrokenLines:
		return 2
	case MinimumAcceleration:
		return 4
	case MinimumJerk:
		return 6
	case MinimumSnap:
		return 8
	case MinimumCrackle:
		return 10
	default:
		return 0
	}
}

func (p Preset) weightOrder() int {
	switch p {
	case BrokenLines:
		return 1
	case MinimumAcceleration:
		return 2
	case MinimumJerk:
		return 3
	case MinimumSnap:
		return 4
	case MinimumCrackle:
		return 5
	default:
		return 0
	}
}

// Problem is the variable set and cost an external NLP driver optimizes
// over: τ ∈ ℝ^N with τ_i ≥ TauMin, Σ τ_i = T1 - T0, cost SobolevNorm.
type Problem struct {
	T0, T1    float64
	Waypoints [][]float64
	Norm      *sobolev.Norm
	NumIntervals int
	TauMin    float64 // 0 means "use the 1e-6*(T1-T0) default"
}

// FromPreset builds a Problem from one of the named presets: a Legendre
// basis of the preset's dimension, a single weighted derivative order,
// and a fresh sobolev.Norm over the given waypoints.
func FromPreset(preset Preset, t0, t1 float64, waypoints [][]float64, codomDim int) (*Problem, error) {
	d := preset.basisDim()
	if d == 0 {
		return nil, gserr.New(gserr.KindInvalidArgument, "unknown preset %v", preset)
	}
	if t1 <= t0 {
		return nil, gserr.New(gserr.KindInvalidArgument, "t1 must be > t0, got t0=%g t1=%g", t0, t1)
	}
	n := len(waypoints) - 1
	if n <= 0 {
		return nil, gserr.New(gserr.KindInvalidArgument, "need at least 2 waypoints, got %d", len(waypoints))
	}

	b, err := basis.NewLegendre(d)
	if err != nil {
		return nil, err
	}
	nm, err := sobolev.New(sobolev.Problem{
		Basis:        b,
		CodomDim:     codomDim,
		NumIntervals: n,
		Waypoints:    waypoints,
		Weights:      []sobolev.Weight{{Order: preset.weightOrder(), Weight: 1}},
	})
	if err != nil {
		return nil, err
	}
	return &Problem{T0: t0, T1: t1, Waypoints: waypoints, Norm: nm, NumIntervals: n}, nil
}

func (p *Problem) duration() float64 { return p.T1 - p.T0 }

func (p *Problem) tauMin() float64 {
	if p.TauMin > 0 {
		return p.TauMin
	}
	return 1e-6 * p.duration()
}

// InitialTau returns the uniform starting point (T1-T0)/N, the default
// initial guess for an optimizer that has no prior reason to favor one
// interval split over another.
func (p *Problem) InitialTau() []float64 {
	tau := make([]float64, p.NumIntervals)
	uniform := p.duration() / float64(p.NumIntervals)
	for i := range tau {
		tau[i] = uniform
	}
	return tau
}

// Cost evaluates the Sobolev seminorm at τ.
func (p *Problem) Cost(tau []float64) (float64, error) {
	return p.Norm.Value(tau)
}

// Gradient evaluates the Sobolev seminorm's gradient at τ.
func (p *Problem) Gradient(tau []float64) ([]float64, error) {
	return p.Norm.Gradient(tau)
}

// ConstraintResidual is Σ τ_i - (T1-T0), zero exactly when τ is
// feasible.
func (p *Problem) ConstraintResidual(tau []float64) float64 {
	var sum float64
	for _, t := range tau {
		sum += t
	}
	return sum - p.duration()
}

// ConstraintJacobian is the all-ones row vector ∂(Σ τ_i)/∂τ.
func (p *Problem) ConstraintJacobian() []float64 {
	j := make([]float64, p.NumIntervals)
	for i := range j {
		j[i] = 1
	}
	return j
}
