package optimize

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestFromPresetBuildsExpectedShape(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	waypoints := [][]float64{{0}, {1}, {0}}
	p, err := FromPreset(MinimumJerk, 0, 2, waypoints, 1)
	assert.NoError(t, err)
	assert.Equal(t, 2, p.NumIntervals)
	assert.Equal(t, []float64{1, 1}, p.InitialTau())
}

func TestConstraintResidualAndJacobian(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, err := FromPreset(MinimumAcceleration, 0, 4, [][]float64{{0}, {1}, {2}, {3}}, 1)
	assert.NoError(t, err)

	assert.InDelta(t, 0.0, p.ConstraintResidual([]float64{1, 1, 1}), 1e-12)
	assert.InDelta(t, 1.0, p.ConstraintResidual([]float64{1, 1, 2}), 1e-12)
	jac := p.ConstraintJacobian()
	assert.Equal(t, []float64{1, 1, 1}, jac)
}

func TestPresetStringNames(t *testing.T) {
	assert.Equal(t, "broken-lines", BrokenLines.String())
	assert.Equal(t, "minimum-acceleration", MinimumAcceleration.String())
	assert.Equal(t, "minimum-jerk", MinimumJerk.String())
	assert.Equal(t, "minimum-snap", MinimumSnap.String())
	assert.Equal(t, "minimum-crackle", MinimumCrackle.String())
}
