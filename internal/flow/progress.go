package flow

// Progress 三个进度指标，都在 [0,100]
type Progress struct {
	PhasePercentage       float64 `json:"phase_percentage"`
	StepInPhasePercentage float64 `json:"step_in_phase_percentage"`
	OverallPercentage     float64 `json:"overall_percentage"`
}

// PhaseBoundary 阶段的累计边界百分比
func PhaseBoundary(phase Phase) float64 {
	return phaseBoundaries[phase]
}

// PreviousPhaseBoundary 给定阶段的前一阶段边界，首阶段为 0
// 双色进度条用：已走完的阶段画浅色底，当前阶段画深色
func PreviousPhaseBoundary(phase Phase) float64 {
	idx := PhaseIndex(phase)
	if idx <= 0 {
		return 0
	}
	return phaseBoundaries[phaseOrder[idx-1]]
}

// Compute 由当前步骤推导三个进度指标
// 随目录顺序推进，三个指标都单调不减
func Compute(current Step) Progress {
	def, ok := Lookup(current)
	if !ok {
		return Progress{}
	}

	phaseSteps := PhaseSteps(def.Phase)
	ordinal := 0
	for i, s := range phaseSteps {
		if s.Route == current {
			ordinal = i + 1 // 1-based，进入某步即认为该步在进行中
			break
		}
	}

	stepInPhase := float64(ordinal) / float64(len(phaseSteps)) * 100

	prev := PreviousPhaseBoundary(def.Phase)
	width := phaseBoundaries[def.Phase] - prev
	overall := prev + stepInPhase/100*width

	return Progress{
		PhasePercentage:       phaseBoundaries[def.Phase],
		StepInPhasePercentage: stepInPhase,
		OverallPercentage:     overall,
	}
}
