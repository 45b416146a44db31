package flow

import "Evermatch/internal/model"

// 依赖检查对两份输入是纯函数，没有副作用，每次页面进入都可以安全调用

// StepSatisfied 某步骤是否已满足：completedSteps 里有标记，或答案集里已有该步数据
// 进度记录是主信号，字段存在性是兜底（草稿可能是恢复会话等旁路写入的）
func StepSatisfied(step Step, progress *model.ProgressRecord, answers model.AnswerSet) bool {
	if progress.Completed(string(step)) {
		return true
	}
	return HasStepData(step, answers)
}

// FirstUnsatisfiedPrerequisite 返回目标步骤的第一个未满足前置
// 按目录顺序从最早的前置开始检查，遇到第一个未满足的立即返回（短路），
// 不再检查后面的前置。全部满足时 ok 为 false，目标步骤可达。
// 首步没有前置，永远可达。
func FirstUnsatisfiedPrerequisite(target Step, progress *model.ProgressRecord, answers model.AnswerSet) (missing Step, ok bool) {
	for _, prereq := range Prerequisites(target) {
		if !StepSatisfied(prereq, progress, answers) {
			return prereq, true
		}
	}
	return "", false
}
