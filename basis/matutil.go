package basis

// Small dense d x d helpers shared by the basis variants. Matrices are
// row-major flat []float64 of length d*d; there is no need to reach for
// gonum here since d is always the (small) basis dimension.

func matMulSquare(a, b []float64, d int) []float64 {
	out := make([]float64, d*d)
	for i := 0; i < d; i++ {
		for k := 0; k < d; k++ {
			aik := a[i*d+k]
			if aik == 0 {
				continue
			}
			for j := 0; j < d; j++ {
				out[i*d+j] += aik * b[k*d+j]
			}
		}
	}
	return out
}

func matIdentity(d int) []float64 {
	out := make([]float64, d*d)
	for i := 0; i < d; i++ {
		out[i*d+i] = 1
	}
	return out
}

// matPow computes a^k for a square d x d matrix by repeated
// multiplication; k is always small (a continuity or derivative order),
// so there is no need for exponentiation-by-squaring.
func matPow(a []float64, k, d int) []float64 {
	out := matIdentity(d)
	for i := 0; i < k; i++ {
		out = matMulSquare(out, a, d)
	}
	return out
}

// matVec computes M * v for a d x d row-major M.
func matVec(m []float64, v []float64, d int) []float64 {
	out := make([]float64, d)
	for i := 0; i < d; i++ {
		var sum float64
		for j := 0; j < d; j++ {
			sum += m[i*d+j] * v[j]
		}
		out[i] = sum
	}
	return out
}

// applyTranspose computes M^T * v for a d x d row-major M.
func applyTranspose(m []float64, v []float64, d int) []float64 {
	out := make([]float64, d)
	for n := 0; n < d; n++ {
		vn := v[n]
		if vn == 0 {
			continue
		}
		for p := 0; p < d; p++ {
			out[p] += m[n*d+p] * vn
		}
	}
	return out
}

// sandwichDiag computes M^T * diag(g) * M for a d x d row-major M and a
// length-d diagonal g, used by the Legendre and LagrangeGLL bases whose
// canonical Gram matrix G0 is diagonal (by orthogonality for Legendre,
// by GLL quadrature lumping for LagrangeGLL).
func sandwichDiag(m []float64, g []float64, d int) []float64 {
	out := make([]float64, d*d)
	// tmp = diag(g) * M, i.e. scale row n of M by g[n].
	tmp := make([]float64, d*d)
	for n := 0; n < d; n++ {
		gn := g[n]
		for p := 0; p < d; p++ {
			tmp[n*d+p] = gn * m[n*d+p]
		}
	}
	// out = M^T * tmp
	for n := 0; n < d; n++ {
		for p := 0; p < d; p++ {
			mnp := m[n*d+p]
			if mnp == 0 {
				continue
			}
			for q := 0; q < d; q++ {
				out[p*d+q] += mnp * tmp[n*d+q]
			}
		}
	}
	return out
}

// sandwichDense computes M^T * G * M for dense d x d row-major M and G.
func sandwichDense(m []float64, g []float64, d int) []float64 {
	tmp := matMulSquare(g, m, d)
	mt := transposeSquare(m, d)
	return matMulSquare(mt, tmp, d)
}

func transposeSquare(m []float64, d int) []float64 {
	out := make([]float64, d*d)
	for i := 0; i < d; i++ {
		for j := 0; j < d; j++ {
			out[j*d+i] = m[i*d+j]
		}
	}
	return out
}

// scaleMat multiplies every entry of m by c, writing a fresh slice.
func scaleMat(m []float64, c float64) []float64 {
	out := make([]float64, len(m))
	for i, v := range m {
		out[i] = v * c
	}
	return out
}

// addInto accumulates src (scaled by factor) into dst in place.
func addInto(dst, src []float64, factor float64) {
	for i, v := range src {
		dst[i] += v * factor
	}
}
