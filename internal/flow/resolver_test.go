package flow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Evermatch/internal/model"
)

func progressWith(steps ...Step) *model.ProgressRecord {
	p := &model.ProgressRecord{}
	now := time.Now()
	for _, s := range steps {
		p.Touch(string(s), now)
	}
	return p
}

func TestFirstStepAlwaysReachable(t *testing.T) {
	_, blocked := FirstUnsatisfiedPrerequisite(StepBasics, &model.ProgressRecord{}, nil)
	assert.False(t, blocked)
}

func TestFirstUnsatisfiedShortCircuits(t *testing.T) {
	// basics 和第二步已完成，第三步缺失；后面的步骤同样缺失但不该被报出来
	progress := progressWith(StepBasics, StepBackgroundOne, StepBackgroundTwo)

	missing, blocked := FirstUnsatisfiedPrerequisite(StepBackgroundSix, progress, nil)
	require.True(t, blocked)
	assert.Equal(t, StepBackgroundThree, missing)
}

func TestFieldPresenceCountsAsSatisfied(t *testing.T) {
	// 进度记录为空，但草稿里已有 basics 的全部字段（恢复会话等旁路写入）
	answers := model.AnswerSet{
		"display_name": "Ada",
		"full_name":    "Ada Lovelace",
		"age":          30,
		"photos":       []string{"a.jpg"},
	}

	assert.True(t, StepSatisfied(StepBasics, &model.ProgressRecord{}, answers))

	_, blocked := FirstUnsatisfiedPrerequisite(StepBackgroundOne, &model.ProgressRecord{}, answers)
	assert.False(t, blocked)
}

func TestPartialFieldsDoNotSatisfy(t *testing.T) {
	answers := model.AnswerSet{
		"display_name": "Ada",
		"age":          30, // full_name 和 photos 缺失
	}

	assert.False(t, StepSatisfied(StepBasics, &model.ProgressRecord{}, answers))

	missing, blocked := FirstUnsatisfiedPrerequisite(StepBackgroundOne, &model.ProgressRecord{}, answers)
	require.True(t, blocked)
	assert.Equal(t, StepBasics, missing)
}

func TestCompletedStepsIsPrimarySignal(t *testing.T) {
	// complete-application 没有字段规则，只能靠 completedSteps 判定
	assert.False(t, StepSatisfied(StepCompleteApplication, &model.ProgressRecord{}, model.AnswerSet{"email": "a@b.co"}))
	assert.True(t, StepSatisfied(StepCompleteApplication, progressWith(StepCompleteApplication), nil))
}

func TestResolverJSONRoundtripShapes(t *testing.T) {
	// Redis 读回来的草稿里数组是 []interface{}、数字是 float64，判定要一样成立
	answers := model.AnswerSet{
		"display_name": "Ada",
		"full_name":    "Ada Lovelace",
		"age":          float64(30),
		"photos":       []interface{}{"a.jpg"},
	}
	assert.True(t, HasStepData(StepBasics, answers))

	assert.True(t, HasStepData(StepBackgroundNine, model.AnswerSet{
		"partner_age": map[string]interface{}{"min": float64(25), "max": float64(35)},
	}))
}
