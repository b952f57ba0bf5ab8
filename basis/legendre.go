package basis

import (
	"math"

	"github.com/gosplines/gspline/gserr"
)

// Legendre is the shifted-Legendre-polynomial basis of dimension d on
// the canonical window [-1, +1]: P_0 .. P_{d-1}, numerically the most
// stable of the three variants. Its coefficient-space derivative
// operator D1 has a closed form (the classical Legendre
// differentiation-in-coefficient-space recurrence), and its canonical
// Gram matrix G0 is diagonal by orthogonality, so AddBlockDerivative
// needs no numerical integration.
type Legendre struct {
	d     int
	deriv *derivCache
	gram  *gramCache
}

// NewLegendre constructs a Legendre basis of dimension d. d must be at
// least 2; interpolation requires d even, but a Legendre basis may also
// be used standalone (e.g. for plain evaluation) with an odd d.
func NewLegendre(d int) (*Legendre, error) {
	if d < 2 {
		return nil, gserr.New(gserr.KindInvalidArgument, "Legendre basis dimension must be >= 2, got %d", d)
	}
	return &Legendre{d: d, deriv: newDerivCache(d), gram: newGramCache(d)}, nil
}

func (b *Legendre) Dim() int     { return b.d }
func (b *Legendre) Name() string { return "legendre" }

// legendreD1 builds the d x d coefficient-space derivative operator: if
// c(s) = sum_k y_k P_k(s), then c'(s) = sum_k (D1 y)_k P_k(s), with
// D1[n][p] = (2n+1) for p > n, (p-n) odd, else 0 — the standard
// closed-form Legendre differentiation matrix in coefficient space.
func legendreD1(d int) []float64 {
	m := make([]float64, d*d)
	for n := 0; n < d; n++ {
		for p := n + 1; p < d; p++ {
			if (p-n)%2 == 1 {
				m[n*d+p] = float64(2*n + 1)
			}
		}
	}
	return m
}

func (b *Legendre) derivativeOperator(k int) ([]float64, error) {
	if k < 0 {
		return nil, gserr.New(gserr.KindInvalidArgument, "derivative order must be >= 0, got %d", k)
	}
	if m, ok := b.deriv.get(k); ok {
		return m, nil
	}
	d1 := legendreD1(b.d)
	dk := matPow(d1, k, b.d)
	b.deriv.fill(k, dk)
	return dk, nil
}

// evalRaw writes the plain Legendre polynomial values P_0(s)..P_{d-1}(s)
// via Bonnet's recursion: P_0=1, P_1=s, (n+1)P_{n+1} = (2n+1)s P_n - n P_{n-1}.
func (b *Legendre) evalRaw(s float64, out []float64) {
	out[0] = 1
	if b.d == 1 {
		return
	}
	out[1] = s
	for n := 1; n < b.d-1; n++ {
		out[n+1] = (float64(2*n+1)*s*out[n] - float64(n)*out[n-1]) / float64(n+1)
	}
}

func (b *Legendre) EvalWindow(s, tau float64, out []float64) error {
	if len(out) != b.d {
		return gserr.New(gserr.KindInvalidArgument, "output buffer has length %d, want %d", len(out), b.d)
	}
	b.evalRaw(s, out)
	return nil
}

func (b *Legendre) EvalWindowDeriv(s, tau float64, k int, out []float64) error {
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
	p := make([]float64, b.d)
	b.evalRaw(s, p)
	dkt := applyTranspose(dk, p, b.d)
	scale := math.Pow(2/tau, float64(k))
	for i, v := range dkt {
		out[i] = scale * v
	}
	return nil
}

func (b *Legendre) EvalWindowDerivWRTTau(s, tau float64, k int, out []float64) error {
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
func (b *Legendre) tCoefficientDerivative(tau float64, k int) ([]float64, error) {
	if tau <= 0 {
		return nil, gserr.New(gserr.KindInvalidArgument, "tau must be positive, got %g", tau)
	}
	dk, err := b.derivativeOperator(k)
	if err != nil {
		return nil, err
	}
	return scaleMat(dk, math.Pow(2/tau, float64(k))), nil
}

// canonicalGram returns G_k = D_k^T * diag(2/(2i+1)) * D_k, the
// tau-independent Gram matrix of the k-th s-derivative of the basis
// functions, memoized per k.
func (b *Legendre) canonicalGram(k int) ([]float64, error) {
	if g, ok := b.gram.get(k); ok {
		return g, nil
	}
	dk, err := b.derivativeOperator(k)
	if err != nil {
		return nil, err
	}
	g0 := make([]float64, b.d)
	for i := range g0 {
		g0[i] = 2 / float64(2*i+1)
	}
	g := sandwichDiag(dk, g0, b.d)
	b.gram.fill(k, g)
	return g, nil
}

// AddBlockDerivative accumulates (2/tau)^(2k-1) * G_k into m, the
// closed-form reduction of integral_0^tau <B^(k), B^(k)> dt for a basis
// whose window functions don't depend on tau.
func (b *Legendre) AddBlockDerivative(tau float64, k int, m []float64) error {
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

func (b *Legendre) AddBlockDerivativeWRTTau(tau float64, k int, m []float64) error {
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
	// d/dtau (2/tau)^p = p*(2/tau)^(p-1) * (-2/tau^2)
	deriv := p * math.Pow(2/tau, p-1) * (-2 / (tau * tau))
	addInto(m, g, deriv)
	return nil
}
