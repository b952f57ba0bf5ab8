package sobolev

import (
	"github.com/gosplines/gspline/basis"
	"github.com/gosplines/gspline/internal/linalg"
)

// blockGram assembles the N*c*d x N*c*d block-diagonal Gram matrix
// Q_k(τ): one d x d block per (interval, coordinate), each equal to
// Basis.AddBlockDerivative(τ_i, k, ·), the closed-form
// ∫[0,τ_i] <B^(k), B^(k)> dt block a Sobolev norm's value sums over.
// Mirrors basis.blockDiagonalDerivative's layout, but fills
// value-integral blocks rather than coefficient-derivative blocks, so
// it lives here rather than in the basis package.
func blockGram(b basis.Basis, n, c, k int, tau []float64) (*linalg.Sparse, error) {
	d := b.Dim()
	size := n * c * d
	sp := linalg.NewSparse(size, size, size*d)
	blk := make([]float64, d*d)
	for i := 0; i < n; i++ {
		for j := range blk {
			blk[j] = 0
		}
		if err := b.AddBlockDerivative(tau[i], k, blk); err != nil {
			return nil, err
		}
		for co := 0; co < c; co++ {
			base := (i*c + co) * d
			for r := 0; r < d; r++ {
				sp.AddBlock(base+r, base, blk[r*d:(r+1)*d], 1)
			}
		}
	}
	return sp, nil
}

// blockGramDerivAtInterval assembles ∂Q_k/∂τ_p. Only the block(s)
// belonging to interval p depend on τ_p, so every other entry of the
// N*c*d x N*c*d matrix is zero; the nonzero block comes from
// AddBlockDerivativeWRTTau.
func blockGramDerivAtInterval(b basis.Basis, n, c, k, p int, tau []float64) (*linalg.Sparse, error) {
	d := b.Dim()
	size := n * c * d
	sp := linalg.NewSparse(size, size, c*d*d)
	blk := make([]float64, d*d)
	if err := b.AddBlockDerivativeWRTTau(tau[p], k, blk); err != nil {
		return nil, err
	}
	for co := 0; co < c; co++ {
		base := (p*c + co) * d
		for r := 0; r < d; r++ {
			sp.AddBlock(base+r, base, blk[r*d:(r+1)*d], 1)
		}
	}
	return sp, nil
}
