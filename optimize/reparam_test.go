package optimize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTauFromZStaysFeasible(t *testing.T) {
	z := []float64{0.3, -1.2, 2.0, 0.0}
	tauMin, duration := 0.01, 4.0
	tau := tauFromZ(z, tauMin, duration)
	var sum float64
	for _, ti := range tau {
		assert.GreaterOrEqual(t, ti, tauMin)
		sum += ti
	}
	assert.InDelta(t, duration, sum, 1e-10)
}

func TestGradZFromTauMatchesFiniteDifference(t *testing.T) {
	z := []float64{0.1, -0.4, 0.9}
	tauMin, duration := 0.01, 3.0
	gradTau := []float64{1.5, -0.3, 2.1}

	analytic := gradZFromTau(gradTau, z, tauMin, duration)

	h := 1e-6
	for k := range z {
		plus := append([]float64(nil), z...)
		plus[k] += h
		minus := append([]float64(nil), z...)
		minus[k] -= h

		fPlus := dotTau(gradTau, tauFromZ(plus, tauMin, duration))
		fMinus := dotTau(gradTau, tauFromZ(minus, tauMin, duration))
		fd := (fPlus - fMinus) / (2 * h)
		assert.InDelta(t, fd, analytic[k], 1e-4, "component %d", k)
	}
}

// dotTau treats gradTau as a fixed linear functional of tau, so that
// differentiating dotTau(gradTau, tauFromZ(z)) w.r.t. z reproduces
// gradZFromTau via the chain rule — the same linearization the
// analytic formula in reparam.go assumes.
func dotTau(gradTau, tau []float64) float64 {
	var sum float64
	for i, g := range gradTau {
		sum += g * tau[i]
	}
	return sum
}
