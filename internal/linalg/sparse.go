// Package linalg holds the sparse-triplet assembly type and the dense LU
// factorization wrapper shared by the basis and interpolator packages.
//
// The gspline interpolation systems are small to moderate in size (at
// most a few thousand unknowns for any realistic number of intervals),
// so triplets are assembled with exact nnz bookkeeping, then
// materialized into a gonum/mat.Dense for factorization. See DESIGN.md
// for the justification.
package linalg

import "github.com/gosplines/gspline/gserr"

// Triplet is a row/col/value entry of a sparse matrix assembled in COO
// form. Basis.BlockDiagonalDerivative and Basis.ContinuityMatrix both
// build their result as a Sparse of Triplets before any caller converts
// it to a dense system.
type Triplet struct {
	Row, Col int
	Value    float64
}

// Sparse is a row-major sparse matrix in triplet (COO) form, with a
// fixed shape and a reserved capacity for nonzeros: callers precompute
// nnz per row exactly and reserve storage before filling.
type Sparse struct {
	Rows, Cols int
	Entries    []Triplet
}

// NewSparse allocates a Sparse with the given shape and a pre-reserved
// nonzero capacity. Passing the exact expected nnz avoids reallocation
// during assembly.
func NewSparse(rows, cols, nnzHint int) *Sparse {
	return &Sparse{
		Rows:    rows,
		Cols:    cols,
		Entries: make([]Triplet, 0, nnzHint),
	}
}

// Add appends a nonzero entry. Entries are not coalesced: if the same
// (row, col) pair is added twice, the dense materialization sums both
// contributions, which is exactly what the continuity-row assembly
// needs when two block fills touch the same column range.
func (s *Sparse) Add(row, col int, value float64) {
	s.Entries = append(s.Entries, Triplet{Row: row, Col: col, Value: value})
}

// AddBlock writes a dense d-length row fragment starting at column
// colOffset into row, scaled by factor. Used by the basis assembly
// routines to place a d-wide evaluation/derivative vector into one
// (row, block) slot of the global sparse matrix.
func (s *Sparse) AddBlock(row, colOffset int, block []float64, factor float64) {
	for k, v := range block {
		if v == 0 {
			continue
		}
		s.Add(row, colOffset+k, v*factor)
	}
}

// NNZ returns the number of stored (possibly duplicate) entries.
func (s *Sparse) NNZ() int {
	return len(s.Entries)
}

// Dense materializes the triplet list into a row-major flat slice
// suitable for gonum/mat.NewDense, summing duplicate entries.
func (s *Sparse) Dense() ([]float64, error) {
	if s.Rows <= 0 || s.Cols <= 0 {
		return nil, gserr.New(gserr.KindInvalidArgument, "sparse matrix has non-positive shape %dx%d", s.Rows, s.Cols)
	}
	out := make([]float64, s.Rows*s.Cols)
	for _, t := range s.Entries {
		if t.Row < 0 || t.Row >= s.Rows || t.Col < 0 || t.Col >= s.Cols {
			gserr.MustInvariant("triplet (%d,%d) out of bounds for %dx%d matrix", t.Row, t.Col, s.Rows, s.Cols)
		}
		out[t.Row*s.Cols+t.Col] += t.Value
	}
	return out, nil
}

// MulVec computes y = S*x directly from the triplet list, without
// materializing a dense matrix. Used by tests that check the continuity
// matrix's kernel and by block-diagonal-derivative evaluation, both of
// which are applied to a single vector rather than factorized.
func (s *Sparse) MulVec(x []float64) ([]float64, error) {
	if len(x) != s.Cols {
		return nil, gserr.New(gserr.KindInvalidArgument, "vector length %d does not match %d columns", len(x), s.Cols)
	}
	y := make([]float64, s.Rows)
	for _, t := range s.Entries {
		y[t.Row] += t.Value * x[t.Col]
	}
	return y, nil
}
