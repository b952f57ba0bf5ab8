package basis

import (
	"github.com/gosplines/gspline/gserr"
	"github.com/gosplines/gspline/internal/linalg"
)

// Coefficient vectors for a whole gspline are strided interval-major,
// coordinate-next, basis-index-minor: index((i, coord, j)) =
// (i*c+coord)*d + j for interval i, codomain coordinate coord, and
// basis index j.

// blockShapeCache and continuityShapeCache hold the nnz-bookkeeping
// shared across every basis instance: the block-diagonal and continuity
// sparsity patterns depend only on (N, c, k, d), never on tau or on which
// concrete Basis is in use, so package-level caches avoid recomputing the
// same shape for every call with the same parameters. The two operators
// have different shapes for the same key, so each has its own cache.
var blockShapeCache = newBlockCache()
var continuityShapeCache = newBlockCache()

func blockDiagonalShape(n, c, k, d int) blockMeta {
	key := blockKey{n: n, c: c, k: k, d: d}
	if meta, ok := blockShapeCache.get(key); ok {
		return meta
	}
	meta := blockMeta{rows: n * c * d, cols: n * c * d, nnzPerRow: d}
	blockShapeCache.fill(key, meta)
	return meta
}

func continuityShape(n, c, kTotal, d int) blockMeta {
	key := blockKey{n: n, c: c, k: kTotal, d: d}
	if meta, ok := continuityShapeCache.get(key); ok {
		return meta
	}
	meta := blockMeta{rows: (n - 1) * c * kTotal, cols: n * c * d, nnzPerRow: 2 * d}
	continuityShapeCache.fill(key, meta)
	return meta
}

// blockDiagonalDerivative assembles the N*c*d x N*c*d block-diagonal
// operator mapping coefficients to coefficients of the k-th
// t-derivative: one d x d block per (interval, coordinate), repeated
// across coordinates within an interval since the basis doesn't depend
// on the codomain coordinate.
func blockDiagonalDerivative(b Basis, n, c, k int, tau []float64) (*linalg.Sparse, error) {
	if n <= 0 {
		return nil, gserr.New(gserr.KindInvalidArgument, "number of intervals must be > 0, got %d", n)
	}
	if c <= 0 {
		return nil, gserr.New(gserr.KindInvalidArgument, "codomain dimension must be > 0, got %d", c)
	}
	if len(tau) != n {
		return nil, gserr.New(gserr.KindInvalidArgument, "tau has length %d, want %d", len(tau), n)
	}
	asm, ok := b.(assembler)
	if !ok {
		return nil, gserr.New(gserr.KindUnsupported, "basis %q does not support coefficient-space derivatives", b.Name())
	}
	d := b.Dim()
	shape := blockDiagonalShape(n, c, k, d)
	sp := linalg.NewSparse(shape.rows, shape.cols, shape.rows*shape.nnzPerRow)
	for i := 0; i < n; i++ {
		blk, err := asm.tCoefficientDerivative(tau[i], k)
		if err != nil {
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

// continuityMatrix assembles the (N-1)*c*kTotal x N*c*d matrix enforcing
// continuity of the t-derivatives of order 0..kTotal-1 of every
// codomain coordinate across each internal breakpoint: at the joint
// between interval j and j+1, row (j, coord, r) holds the evaluation of
// the r-th derivative at the end of interval j (s=+1) in the columns of
// interval j, and minus the same derivative at the start of interval
// j+1 (s=-1) in the columns of interval j+1. A coefficient vector lies
// in the kernel of this matrix exactly when the piecewise function it
// represents is C^{kTotal-1} at every joint.
func continuityMatrix(b Basis, n, c, kTotal int, tau []float64) (*linalg.Sparse, error) {
	if n <= 0 {
		return nil, gserr.New(gserr.KindInvalidArgument, "number of intervals must be > 0, got %d", n)
	}
	if c <= 0 {
		return nil, gserr.New(gserr.KindInvalidArgument, "codomain dimension must be > 0, got %d", c)
	}
	if kTotal < 0 {
		return nil, gserr.New(gserr.KindInvalidArgument, "continuity order must be >= 0, got %d", kTotal)
	}
	if len(tau) != n {
		return nil, gserr.New(gserr.KindInvalidArgument, "tau has length %d, want %d", len(tau), n)
	}
	d := b.Dim()
	shape := continuityShape(n, c, kTotal, d)
	sp := linalg.NewSparse(shape.rows, shape.cols, shape.rows*shape.nnzPerRow)
	left := make([]float64, d)
	right := make([]float64, d)
	for j := 0; j < n-1; j++ {
		for co := 0; co < c; co++ {
			for r := 0; r < kTotal; r++ {
				if err := b.EvalWindowDeriv(1, tau[j], r, left); err != nil {
					return nil, err
				}
				if err := b.EvalWindowDeriv(-1, tau[j+1], r, right); err != nil {
					return nil, err
				}
				row := (j*c+co)*kTotal + r
				leftCol := (j*c + co) * d
				rightCol := ((j+1)*c + co) * d
				sp.AddBlock(row, leftCol, left, 1)
				sp.AddBlock(row, rightCol, right, -1)
			}
		}
	}
	return sp, nil
}
