package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogShape(t *testing.T) {
	assert.Len(t, Catalog, 16)
	assert.Equal(t, StepBasics, FirstStep())
	assert.Equal(t, StepCompleteApplication, Catalog[len(Catalog)-1].Route)

	// 阶段随目录顺序单调推进，不会回到更早的阶段
	lastPhase := -1
	for _, def := range Catalog {
		idx := PhaseIndex(def.Phase)
		require.GreaterOrEqual(t, idx, lastPhase, "phase order broken at %s", def.Route)
		lastPhase = idx
	}
}

func TestLookupAndIndex(t *testing.T) {
	def, ok := Lookup(StepBackgroundThree)
	require.True(t, ok)
	assert.Equal(t, PhaseProfile, def.Phase)
	assert.Equal(t, 3, Index(StepBackgroundThree))

	_, ok = Lookup("no-such-step")
	assert.False(t, ok)
	assert.Equal(t, -1, Index("no-such-step"))
}

func TestNextStepChain(t *testing.T) {
	// 从首步沿 NextStep 能走完整个目录
	current := FirstStep()
	visited := []Step{current}
	for {
		next, ok := NextStep(current)
		if !ok {
			break
		}
		visited = append(visited, next)
		current = next
	}

	assert.Equal(t, Routes(), visited)
	assert.Equal(t, StepCompleteApplication, current)

	_, ok := NextStep(StepCompleteApplication)
	assert.False(t, ok, "last step has no successor")
}

func TestPrerequisitesArePrefix(t *testing.T) {
	assert.Empty(t, Prerequisites(StepBasics))

	prereqs := Prerequisites(StepEmotionalOne)
	require.Len(t, prereqs, 10)
	assert.Equal(t, StepBasics, prereqs[0])
	assert.Equal(t, StepBackgroundNine, prereqs[len(prereqs)-1])

	// 不只是紧邻前一步，是全部更早步骤
	all := Prerequisites(StepCompleteApplication)
	assert.Len(t, all, len(Catalog)-1)

	assert.Nil(t, Prerequisites("no-such-step"))
}

func TestPhaseSteps(t *testing.T) {
	assert.Len(t, PhaseSteps(PhaseStart), 1)
	assert.Len(t, PhaseSteps(PhaseProfile), 14)
	assert.Len(t, PhaseSteps(PhaseCompleteApplication), 1)
	assert.Empty(t, PhaseSteps(PhaseCompleted))
}
