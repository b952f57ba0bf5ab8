// Package sobolev computes weighted Sobolev-type seminorms of a
// waypoint-interpolating Gspline and their gradient with respect to the
// interval lengths τ, the cost term the outer trajectory-optimization
// layer minimizes.
package sobolev

import (
	"github.com/npillmayer/schuko/tracing"

	"github.com/gosplines/gspline/basis"
	"github.com/gosplines/gspline/gserr"
	"github.com/gosplines/gspline/interpolator"
)

func tracer() tracing.Trace {
	return tracing.Select("sobolev")
}

// Weight pairs a derivative order with a positive weight; a Norm sums
// one such term per entry.
type Weight struct {
	Order  int
	Weight float64
}

// Problem describes one waypoint-interpolation Sobolev norm: the basis
// and shape it is built over, the waypoints it interpolates, the
// derivative orders and weights it penalizes, and optional non-zero
// boundary conditions. A Norm owns its own Interpolator exclusively.
type Problem struct {
	Basis          basis.Basis
	CodomDim       int
	NumIntervals   int
	Waypoints      [][]float64
	Weights        []Weight
	BoundaryValues *interpolator.BoundaryValues
}

func validateWeights(weights []Weight) error {
	if len(weights) == 0 {
		return gserr.New(gserr.KindInvalidWeights, "at least one (order, weight) pair is required")
	}
	for i, w := range weights {
		if w.Weight <= 0 {
			return gserr.New(gserr.KindInvalidWeights, "weight %d must be > 0, got %g", i, w.Weight)
		}
		if w.Order < 1 {
			return gserr.New(gserr.KindInvalidWeights, "derivative order %d must be >= 1, got %d", i, w.Order)
		}
	}
	return nil
}
