package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhaseBoundaries(t *testing.T) {
	assert.Equal(t, float64(10), PhaseBoundary(PhaseStart))
	assert.Equal(t, float64(85), PhaseBoundary(PhaseProfile))
	assert.Equal(t, float64(95), PhaseBoundary(PhaseCompleteApplication))
	assert.Equal(t, float64(100), PhaseBoundary(PhaseCompleted))

	assert.Equal(t, float64(0), PreviousPhaseBoundary(PhaseStart))
	assert.Equal(t, float64(10), PreviousPhaseBoundary(PhaseProfile))
	assert.Equal(t, float64(85), PreviousPhaseBoundary(PhaseCompleteApplication))
}

func TestComputeKnownPoints(t *testing.T) {
	p := Compute(StepBasics)
	assert.Equal(t, float64(10), p.PhasePercentage)
	assert.Equal(t, float64(100), p.StepInPhasePercentage)
	assert.Equal(t, float64(10), p.OverallPercentage)

	// Profile 共 14 步，第一步在阶段内占 1/14
	p = Compute(StepBackgroundOne)
	assert.Equal(t, float64(85), p.PhasePercentage)
	assert.InDelta(t, 100.0/14, p.StepInPhasePercentage, 1e-9)
	assert.InDelta(t, 10+75.0/14, p.OverallPercentage, 1e-9)

	p = Compute(StepEmotionalFive)
	assert.Equal(t, float64(85), p.OverallPercentage)

	p = Compute(StepCompleteApplication)
	assert.Equal(t, float64(95), p.OverallPercentage)
}

func TestComputeMonotonic(t *testing.T) {
	// 沿目录顺序总进度单调不减
	prev := -1.0
	for _, route := range Routes() {
		p := Compute(route)
		require.GreaterOrEqual(t, p.OverallPercentage, prev, "progress regressed at %s", route)
		require.LessOrEqual(t, p.OverallPercentage, float64(100))
		prev = p.OverallPercentage
	}
}

func TestComputeUnknownStep(t *testing.T) {
	assert.Equal(t, Progress{}, Compute("no-such-step"))
}
