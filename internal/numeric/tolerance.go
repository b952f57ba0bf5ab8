// Package numeric collects small numeric-tolerance helpers. It plays the
// role the teacher's root-level arithm.go plays for its own package: a
// handful of ε-aware predicates kept in one place rather than re-derived.
// Its only importer is the root gspline package (domain clamping in
// locateInterval).
package numeric

import "math"

// DefaultEpsilon is the fallback tolerance used where a caller has not
// supplied a domain-specific one.
const DefaultEpsilon = 1e-9

// IsZero reports whether n is within eps of zero. Used to turn the
// two-sided domain-tolerance check in gspline.locateInterval into a
// single predicate rather than an open-coded comparison.
func IsZero(n, eps float64) bool {
	return math.Abs(n) <= eps
}

// DomainTolerance returns the absolute tolerance used when deciding
// whether a query time lies within [t0, tf], per the gspline evaluation
// semantics: ε = 1e-9 * (tf - t0).
func DomainTolerance(t0, tf float64) float64 {
	return DefaultEpsilon * (tf - t0)
}
