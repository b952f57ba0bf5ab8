package basis

import (
	"math"

	"github.com/gosplines/gspline/gserr"
)

// LagrangeGLL is the Lagrange-cardinal basis of degree d-1 at the
// Gauss-Lobatto-Legendre nodes ξ_0=-1 < .. < ξ_{d-1}=1. Coefficients are
// nodal values; evaluation uses the second-form barycentric formula for
// numerical stability, and differentiation uses the analytic Lagrange
// derivative matrix.
type LagrangeGLL struct {
	d       int
	nodes   []float64
	weights []float64 // GLL quadrature weights, also the lumped canonical mass
	bary    []float64 // barycentric weights for evaluation
	deriv   *derivCache
	gram    *gramCache
}

// NewLagrangeGLL constructs a Lagrange-at-GLL basis of dimension d
// (degree d-1). d must be at least 2.
func NewLagrangeGLL(d int) (*LagrangeGLL, error) {
	if d < 2 {
		return nil, gserr.New(gserr.KindInvalidArgument, "LagrangeGLL basis dimension must be >= 2, got %d", d)
	}
	nodes, weights := gllNodesWeights(d)
	return &LagrangeGLL{
		d:       d,
		nodes:   nodes,
		weights: weights,
		bary:    barycentricWeights(nodes),
		deriv:   newDerivCache(d),
		gram:    newGramCache(d),
	}, nil
}

func (b *LagrangeGLL) Dim() int     { return b.d }
func (b *LagrangeGLL) Name() string { return "lagrange-gll" }

// Nodes returns the GLL node locations on [-1, +1], ordered ascending.
func (b *LagrangeGLL) Nodes() []float64 {
	return append([]float64(nil), b.nodes...)
}

func (b *LagrangeGLL) derivativeOperator(k int) ([]float64, error) {
	if k < 0 {
		return nil, gserr.New(gserr.KindInvalidArgument, "derivative order must be >= 0, got %d", k)
	}
	if m, ok := b.deriv.get(k); ok {
		return m, nil
	}
	d1 := lagrangeDiffMatrix(b.nodes)
	dk := matPow(d1, k, b.d)
	b.deriv.fill(k, dk)
	return dk, nil
}

func (b *LagrangeGLL) evalRaw(s float64, out []float64) {
	evalLagrangeCardinals(b.nodes, b.bary, s, out)
}

func (b *LagrangeGLL) EvalWindow(s, tau float64, out []float64) error {
	if len(out) != b.d {
		return gserr.New(gserr.KindInvalidArgument, "output buffer has length %d, want %d", len(out), b.d)
	}
	b.evalRaw(s, out)
	return nil
}

func (b *LagrangeGLL) EvalWindowDeriv(s, tau float64, k int, out []float64) error {
	if len(out) != b.d {
		return gserr.New(gserr.KindInvalidArgument, "output buffer has length %d, want %d", len(out), b.d)
	}
	if tau <= 0 {
		return gserr.New(gserr.KindInvalidArgument, "tau must be positive, got %g", tau)
	}
	dk, err := b.derivativeOperator(k)
	if err != nil {
		return err
	}
	l := make([]float64, b.d)
	b.evalRaw(s, l)
	dkt := applyTranspose(dk, l, b.d)
	scale := math.Pow(2/tau, float64(k))
	for i, v := range dkt {
		out[i] = scale * v
	}
	return nil
}

func (b *LagrangeGLL) EvalWindowDerivWRTTau(s, tau float64, k int, out []float64) error {
	if k == 0 {
		for i := range out {
			out[i] = 0
		}
		return nil
	}
	if err := b.EvalWindowDeriv(s, tau, k, out); err != nil {
		return err
	}
	scale := -float64(k) / tau
	for i := range out {
		out[i] *= scale
	}
	return nil
}

// tCoefficientDerivative returns (2/tau)^k * D_k, the coefficient-space
// map from a piece's coefficients to the coefficients of its k-th
// t-derivative.
func (b *LagrangeGLL) tCoefficientDerivative(tau float64, k int) ([]float64, error) {
	if tau <= 0 {
		return nil, gserr.New(gserr.KindInvalidArgument, "tau must be positive, got %g", tau)
	}
	dk, err := b.derivativeOperator(k)
	if err != nil {
		return nil, err
	}
	return scaleMat(dk, math.Pow(2/tau, float64(k))), nil
}

// canonicalGram returns G_k = D_k^T * diag(weights) * D_k. For k=0 this
// is the standard spectral-element lumped mass matrix: GLL quadrature
// with d nodes is exact only to degree 2d-3, one short of the degree
// 2d-2 needed for an exact mass matrix, so this is the conventional
// lumped approximation rather than the true mass matrix; for k >= 1 the
// degree drops enough that the quadrature is exact.
func (b *LagrangeGLL) canonicalGram(k int) ([]float64, error) {
	if g, ok := b.gram.get(k); ok {
		return g, nil
	}
	dk, err := b.derivativeOperator(k)
	if err != nil {
		return nil, err
	}
	g := sandwichDiag(dk, b.weights, b.d)
	b.gram.fill(k, g)
	return g, nil
}

func (b *LagrangeGLL) AddBlockDerivative(tau float64, k int, m []float64) error {
	if len(m) != b.d*b.d {
		return gserr.New(gserr.KindInvalidArgument, "block buffer has length %d, want %d", len(m), b.d*b.d)
	}
	if tau <= 0 {
		return gserr.New(gserr.KindInvalidArgument, "tau must be positive, got %g", tau)
	}
	g, err := b.canonicalGram(k)
	if err != nil {
		return err
	}
	coeff := math.Pow(2/tau, float64(2*k-1))
	addInto(m, g, coeff)
	return nil
}

func (b *LagrangeGLL) AddBlockDerivativeWRTTau(tau float64, k int, m []float64) error {
	if len(m) != b.d*b.d {
		return gserr.New(gserr.KindInvalidArgument, "block buffer has length %d, want %d", len(m), b.d*b.d)
	}
	if tau <= 0 {
		return gserr.New(gserr.KindInvalidArgument, "tau must be positive, got %g", tau)
	}
	g, err := b.canonicalGram(k)
	if err != nil {
		return err
	}
	p := float64(2*k - 1)
	deriv := p * math.Pow(2/tau, p-1) * (-2 / (tau * tau))
	addInto(m, g, deriv)
	return nil
}
