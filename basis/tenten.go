package basis

import (
	"math"

	"github.com/gosplines/gspline/gserr"
)

// TenTen is the "1010" basis: dimension 6, spanning
// {e^p cos p, e^p sin p, e^-p cos p, e^-p sin p, p, 1} where
// p(s, tau) = tau * kappa(alpha) * s and
// kappa(alpha) = 2^(-3/2) * (alpha/(1-alpha))^(1/4). Unlike Legendre and
// LagrangeGLL its window functions depend on tau directly, not only
// through an outer (2/tau)^k scaling, because p is affine in s with a
// tau-dependent slope. Point evaluation of a t-derivative (EvalWindowDeriv,
// EvalWindowDerivWRTTau) is exact for any order, since it only needs
// powers of the tau-independent rate matrix mt. The coefficient-space and
// energy operators (tCoefficientDerivative, AddBlockDerivative,
// AddBlockDerivativeWRTTau) are closed-form only up to order 3 and return
// Unsupported above that, matching the block-by-block cases the original
// C++ gsplines wires up for this basis.
type TenTen struct {
	alpha float64
	kappa float64
	a     []float64 // d/dp relation: dB/dp(p) = a * B(p), tau-independent
	mt    []float64 // d/dt relation: dB/dt(p) = mt * B(p) = 2*kappa*a
	coef  *derivCache
}

const tenTenMaxOrder = 3

// NewTenTen constructs a 1010 basis for the given alpha, which must lie
// strictly between 0 and 1.
func NewTenTen(alpha float64) (*TenTen, error) {
	if !(alpha > 0 && alpha < 1) {
		return nil, gserr.New(gserr.KindInvalidArgument, "1010 basis alpha must be in (0, 1), got %g", alpha)
	}
	kappa := math.Pow(2, -1.5) * math.Pow(alpha/(1-alpha), 0.25)
	a := tenTenRateMatrix()
	return &TenTen{
		alpha: alpha,
		kappa: kappa,
		a:     a,
		mt:    scaleMat(a, 2*kappa),
		coef:  newDerivCache(6),
	}, nil
}

func (b *TenTen) Dim() int       { return 6 }
func (b *TenTen) Name() string   { return "1010" }
func (b *TenTen) Alpha() float64 { return b.alpha }

// tenTenRateMatrix returns the constant 6x6 matrix A such that, writing
// B(p) = [e^p cos p, e^p sin p, e^-p cos p, e^-p sin p, p, 1], dB/dp = A*B(p).
// Each basis function's p-derivative stays inside the span, so A is
// exact and alpha-independent.
func tenTenRateMatrix() []float64 {
	return []float64{
		1, -1, 0, 0, 0, 0,
		1, 1, 0, 0, 0, 0,
		0, 0, -1, -1, 0, 0,
		0, 0, 1, -1, 0, 0,
		0, 0, 0, 0, 0, 1,
		0, 0, 0, 0, 0, 0,
	}
}

func tenTenRawValues(p float64, out []float64) {
	c, s := math.Cos(p), math.Sin(p)
	ep, emp := math.Exp(p), math.Exp(-p)
	out[0] = ep * c
	out[1] = ep * s
	out[2] = emp * c
	out[3] = emp * s
	out[4] = p
	out[5] = 1
}

func (b *TenTen) windowParam(s, tau float64) float64 {
	return tau * b.kappa * s
}

func (b *TenTen) EvalWindow(s, tau float64, out []float64) error {
	if len(out) != 6 {
		return gserr.New(gserr.KindInvalidArgument, "output buffer has length %d, want 6", len(out))
	}
	if tau <= 0 {
		return gserr.New(gserr.KindInvalidArgument, "tau must be positive, got %g", tau)
	}
	tenTenRawValues(b.windowParam(s, tau), out)
	return nil
}

// tenTenRateOperator returns mt^k, uncapped: mt is exact and
// tau-independent to any power, so point evaluation of a t-derivative
// never needs to reject an order. This mirrors the original C++
// gsplines's Basis1010::eval_derivative_on_window, which iterates its
// fixed four-entry recurrence _deg times with no upper bound, in
// contrast to the closed-form block operators below which only have
// cases wired up to degree 3.
func (b *TenTen) tenTenRateOperator(k int) ([]float64, error) {
	if k < 0 {
		return nil, gserr.New(gserr.KindInvalidArgument, "derivative order must be >= 0, got %d", k)
	}
	return matPow(b.mt, k, 6), nil
}

// tenTenRateOperatorCapped is tenTenRateOperator restricted to the
// orders the closed-form block operators (tCoefficientDerivative,
// AddBlockDerivative, AddBlockDerivativeWRTTau) actually have cases
// for, matching the original C++ gsplines's derivative_matrix_impl and
// add_derivative_matrix, both of which switch on degree 0-3 and throw
// past that.
func (b *TenTen) tenTenRateOperatorCapped(k int) ([]float64, error) {
	if k > tenTenMaxOrder {
		return nil, gserr.New(gserr.KindUnsupported, "1010 basis has no closed-form derivative of order %d", k)
	}
	return b.tenTenRateOperator(k)
}

func (b *TenTen) EvalWindowDeriv(s, tau float64, k int, out []float64) error {
	if len(out) != 6 {
		return gserr.New(gserr.KindInvalidArgument, "output buffer has length %d, want 6", len(out))
	}
	if tau <= 0 {
		return gserr.New(gserr.KindInvalidArgument, "tau must be positive, got %g", tau)
	}
	mtk, err := b.tenTenRateOperator(k)
	if err != nil {
		return err
	}
	p := b.windowParam(s, tau)
	b0 := make([]float64, 6)
	tenTenRawValues(p, b0)
	copy(out, matVec(mtk, b0, 6))
	return nil
}

// EvalWindowDerivWRTTau uses d/dtau [mt^k * B(p)] = mt^k * A * B(p) * kappa * s,
// since p = tau*kappa*s and dB/dp = A*B(p); the formula holds for k=0
// too (mt^0 = I).
func (b *TenTen) EvalWindowDerivWRTTau(s, tau float64, k int, out []float64) error {
	if len(out) != 6 {
		return gserr.New(gserr.KindInvalidArgument, "output buffer has length %d, want 6", len(out))
	}
	if tau <= 0 {
		return gserr.New(gserr.KindInvalidArgument, "tau must be positive, got %g", tau)
	}
	mtk, err := b.tenTenRateOperator(k)
	if err != nil {
		return err
	}
	p := b.windowParam(s, tau)
	b0 := make([]float64, 6)
	tenTenRawValues(p, b0)
	ab0 := matVec(b.a, b0, 6) // point evaluation: uncapped, any order
	res := matVec(mtk, ab0, 6)
	scale := b.kappa * s
	for i, v := range res {
		out[i] = v * scale
	}
	return nil
}

// tCoefficientDerivative returns (mt^T)^k, the coefficient-space map
// from a piece's coefficients to the coefficients of its k-th
// t-derivative. Unlike Legendre and LagrangeGLL this is genuinely
// tau-independent: p's rate of change with t does not depend on tau.
func (b *TenTen) tCoefficientDerivative(tau float64, k int) ([]float64, error) {
	if tau <= 0 {
		return nil, gserr.New(gserr.KindInvalidArgument, "tau must be positive, got %g", tau)
	}
	if k > tenTenMaxOrder {
		return nil, gserr.New(gserr.KindUnsupported, "1010 basis has no closed-form derivative of order %d", k)
	}
	if m, ok := b.coef.get(k); ok {
		return m, nil
	}
	mtt := transposeSquare(b.mt, 6)
	m := matPow(mtt, k, 6) // coefficient space: capped, see tenTenRateOperatorCapped
	b.coef.fill(k, m)
	return m, nil
}

// tenTenPrimitivePair returns the antiderivative, evaluated at u, of the
// product of basis functions i and j (0-indexed into
// [e^p cos p, e^p sin p, e^-p cos p, e^-p sin p, p, 1]), closed-form via
// standard exponential/trig integral identities.
func tenTenPrimitivePair(i, j int, u float64) float64 {
	if i > j {
		i, j = j, i
	}
	c, s := math.Cos(u), math.Sin(u)
	c2, s2 := math.Cos(2*u), math.Sin(2*u)
	eu, emu := math.Exp(u), math.Exp(-u)
	e2u, em2u := eu*eu, emu*emu
	switch {
	case i == 0 && j == 0:
		return e2u/4 + e2u*(c2+s2)/8
	case i == 0 && j == 1:
		return e2u * (s2 - c2) / 8
	case i == 0 && j == 2:
		return u/2 + s2/4
	case i == 0 && j == 3:
		return -c2 / 4
	case i == 0 && j == 4:
		return (u*eu*(c+s) - eu*s) / 2
	case i == 0 && j == 5:
		return eu * (c + s) / 2
	case i == 1 && j == 1:
		return e2u/4 - e2u*(c2+s2)/8
	case i == 1 && j == 2:
		return -c2 / 4
	case i == 1 && j == 3:
		return u/2 - s2/4
	case i == 1 && j == 4:
		return (u*eu*(s-c) + eu*c) / 2
	case i == 1 && j == 5:
		return eu * (s - c) / 2
	case i == 2 && j == 2:
		return -em2u/4 - em2u*c2/8 + em2u*s2/8
	case i == 2 && j == 3:
		return -em2u * (s2 + c2) / 8
	case i == 2 && j == 4:
		return (u*emu*(s-c) + emu*s) / 2
	case i == 2 && j == 5:
		return emu * (s - c) / 2
	case i == 3 && j == 3:
		return -em2u/4 + em2u*c2/8 - em2u*s2/8
	case i == 3 && j == 4:
		return -(u*emu*(s+c) + emu*c) / 2
	case i == 3 && j == 5:
		return -emu * (s + c) / 2
	case i == 4 && j == 4:
		return u * u * u / 3
	case i == 4 && j == 5:
		return u * u / 2
	default: // i == 5 && j == 5
		return u
	}
}

// tenTenGramBlock returns the 6x6 matrix integral_{-L}^{L} B(p)B(p)^T dp.
func tenTenGramBlock(l float64) []float64 {
	g := make([]float64, 36)
	for i := 0; i < 6; i++ {
		for j := i; j < 6; j++ {
			v := tenTenPrimitivePair(i, j, l) - tenTenPrimitivePair(i, j, -l)
			g[i*6+j] = v
			g[j*6+i] = v
		}
	}
	return g
}

// tenTenGramBlockDeriv returns d/dL of tenTenGramBlock(L), which by the
// fundamental theorem of calculus reduces to the outer-product sum
// B(L)B(L)^T + B(-L)B(-L)^T, with no antiderivative bookkeeping.
func tenTenGramBlockDeriv(l float64) []float64 {
	bp := make([]float64, 6)
	bm := make([]float64, 6)
	tenTenRawValues(l, bp)
	tenTenRawValues(-l, bm)
	g := make([]float64, 36)
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			g[i*6+j] = bp[i]*bp[j] + bm[i]*bm[j]
		}
	}
	return g
}

func (b *TenTen) AddBlockDerivative(tau float64, k int, m []float64) error {
	if len(m) != 36 {
		return gserr.New(gserr.KindInvalidArgument, "block buffer has length %d, want 36", len(m))
	}
	if tau <= 0 {
		return gserr.New(gserr.KindInvalidArgument, "tau must be positive, got %g", tau)
	}
	mtk, err := b.tenTenRateOperatorCapped(k)
	if err != nil {
		return err
	}
	l := b.kappa * tau
	gp := tenTenGramBlock(l)
	mtkT := transposeSquare(mtk, 6)
	block := sandwichDense(mtkT, gp, 6) // mtk * gp * mtk^T
	addInto(m, block, 1/(2*b.kappa))
	return nil
}

func (b *TenTen) AddBlockDerivativeWRTTau(tau float64, k int, m []float64) error {
	if len(m) != 36 {
		return gserr.New(gserr.KindInvalidArgument, "block buffer has length %d, want 36", len(m))
	}
	if tau <= 0 {
		return gserr.New(gserr.KindInvalidArgument, "tau must be positive, got %g", tau)
	}
	mtk, err := b.tenTenRateOperatorCapped(k)
	if err != nil {
		return err
	}
	l := b.kappa * tau
	dgp := tenTenGramBlockDeriv(l)
	mtkT := transposeSquare(mtk, 6)
	block := sandwichDense(mtkT, dgp, 6)
	addInto(m, block, 0.5)
	return nil
}
