package basis

import "math"

// legendreValDeriv evaluates the plain Legendre polynomial of degree n
// and its first derivative at x, via Bonnet's recursion plus the
// companion recursion for the derivative.
func legendreValDeriv(n int, x float64) (p, dp float64) {
	if n == 0 {
		return 1, 0
	}
	p0, dp0 := 1.0, 0.0
	p1, dp1 := x, 1.0
	if n == 1 {
		return p1, dp1
	}
	for k := 1; k < n; k++ {
		pk1 := (float64(2*k+1)*x*p1 - float64(k)*p0) / float64(k+1)
		dpk1 := (float64(2*k+1)*(p1+x*dp1) - float64(k)*dp0) / float64(k+1)
		p0, dp0 = p1, dp1
		p1, dp1 = pk1, dpk1
	}
	return p1, dp1
}

// legendreSecondDeriv uses the Legendre ODE (1-x^2)P'' - 2xP' + n(n+1)P = 0
// to obtain P''_n(x) from P_n(x), P'_n(x) without a third recursion.
func legendreSecondDeriv(n int, x, p, dp float64) float64 {
	return (2*x*dp - float64(n*(n+1))*p) / (1 - x*x)
}

// gllNodesWeights computes the d Gauss-Lobatto-Legendre nodes (including
// both endpoints) and their quadrature weights, via Newton's method on
// the interior roots of P'_{d-1}, seeded from the Chebyshev-Gauss-
// Lobatto points — the standard construction used throughout spectral
// element codes (grounded on the Jacobi-polynomial node-finding pattern
// in _examples/other_examples/Notargets-gocfd__jacobi.go, specialized to
// alpha=beta=0).
func gllNodesWeights(d int) (nodes, weights []float64) {
	n := d - 1 // polynomial degree; d-2 interior roots of P'_n
	nodes = make([]float64, d)
	nodes[0] = -1
	nodes[d-1] = 1
	const maxIter = 100
	const tol = 1e-15
	for i := 1; i < d-1; i++ {
		x := -math.Cos(math.Pi * float64(i) / float64(n))
		for iter := 0; iter < maxIter; iter++ {
			p, dp := legendreValDeriv(n, x)
			ddp := legendreSecondDeriv(n, x, p, dp)
			step := dp / ddp
			x -= step
			if math.Abs(step) < tol {
				break
			}
		}
		nodes[i] = x
	}
	weights = make([]float64, d)
	for i, x := range nodes {
		pn, _ := legendreValDeriv(n, x)
		weights[i] = 2 / (float64(n*(n+1)) * pn * pn)
	}
	return nodes, weights
}

// lagrangeDiffMatrix builds the standard Lagrange differentiation matrix
// at the given nodes: D[i][j] = (w_j/w_i)/(x_i-x_j) for i != j, with
// D[i][i] = -sum_{j!=i} D[i][j], where w are barycentric weights (not
// the quadrature weights). See Berrut & Trefethen, "Barycentric Lagrange
// Interpolation", SIAM Review 2004.
func lagrangeDiffMatrix(nodes []float64) []float64 {
	d := len(nodes)
	bw := barycentricWeights(nodes)
	m := make([]float64, d*d)
	for i := 0; i < d; i++ {
		var rowSum float64
		for j := 0; j < d; j++ {
			if i == j {
				continue
			}
			v := (bw[j] / bw[i]) / (nodes[i] - nodes[j])
			m[i*d+j] = v
			rowSum += v
		}
		m[i*d+i] = -rowSum
	}
	return m
}

// barycentricWeights computes w_j = 1 / prod_{i != j} (x_j - x_i).
func barycentricWeights(nodes []float64) []float64 {
	d := len(nodes)
	w := make([]float64, d)
	for j := 0; j < d; j++ {
		prod := 1.0
		for i := 0; i < d; i++ {
			if i == j {
				continue
			}
			prod *= nodes[j] - nodes[i]
		}
		w[j] = 1 / prod
	}
	return w
}

// evalLagrangeCardinals writes the d cardinal values L_0(s)..L_{d-1}(s)
// using the numerically stable second-form barycentric formula.
func evalLagrangeCardinals(nodes, bw []float64, s float64, out []float64) {
	d := len(nodes)
	for j, x := range nodes {
		if s == x {
			for k := range out {
				out[k] = 0
			}
			out[j] = 1
			return
		}
	}
	var denom float64
	tmp := make([]float64, d)
	for j := range nodes {
		tmp[j] = bw[j] / (s - nodes[j])
		denom += tmp[j]
	}
	for j := range out {
		out[j] = tmp[j] / denom
	}
}
