package optimize

import "math"

// softmax returns exp(z_i)/Σexp(z_j), computed with the usual
// max-subtraction for numerical stability.
func softmax(z []float64) []float64 {
	max := z[0]
	for _, v := range z[1:] {
		if v > max {
			max = v
		}
	}
	s := make([]float64, len(z))
	var sum float64
	for i, v := range z {
		e := math.Exp(v - max)
		s[i] = e
		sum += e
	}
	for i := range s {
		s[i] /= sum
	}
	return s
}

// tauFromZ maps an unconstrained z ∈ ℝ^N to a feasible τ: τ_i = tauMin +
// slack*softmax(z)_i, where slack = duration - N*tauMin. Every τ_i ≥
// tauMin and Σ τ_i = duration for any z, which is what lets Minimize
// hand gonum/optimize's LBFGS an unconstrained problem instead of a
// bounded, equality-constrained one.
func tauFromZ(z []float64, tauMin, duration float64) []float64 {
	s := softmax(z)
	slack := duration - float64(len(z))*tauMin
	tau := make([]float64, len(z))
	for i, si := range s {
		tau[i] = tauMin + slack*si
	}
	return tau
}

// gradZFromTau pulls a gradient in τ back to a gradient in z through
// the softmax Jacobian: dτ_i/dz_k = slack*s_i*(δ_ik - s_k), so
// dJ/dz_k = slack*s_k*(dJ/dτ_k - Σ_i dJ/dτ_i * s_i).
func gradZFromTau(gradTau, z []float64, tauMin, duration float64) []float64 {
	s := softmax(z)
	slack := duration - float64(len(z))*tauMin
	var dot float64
	for i, g := range gradTau {
		dot += g * s[i]
	}
	gradZ := make([]float64, len(z))
	for k := range gradZ {
		gradZ[k] = slack * s[k] * (gradTau[k] - dot)
	}
	return gradZ
}
