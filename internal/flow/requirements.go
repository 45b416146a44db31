package flow

import "Evermatch/internal/model"

// FieldKind 字段的"有数据"判定方式
type FieldKind int

const (
	// KindText 非空字符串
	KindText FieldKind = iota
	// KindNumber 数值已填（JSON 反序列化后是 float64，内存里可能是 int）
	KindNumber
	// KindBool 布尔值已定义即可，false 也算填过
	KindBool
	// KindArray 非空数组
	KindArray
	// KindDefined 字段存在即可，空数组也算（如 dealbreakers 允许勾零项）
	KindDefined
	// KindRange {min,max} 两端都已填
	KindRange
)

// FieldRule 单个字段的存在性规则
type FieldRule struct {
	Field string
	Kind  FieldKind
}

// stepRequirements 每一步"视为有数据"所需的字段
// complete-application 只收凭证、不进草稿，所以没有存在性规则，只认 completedSteps
var stepRequirements = map[Step][]FieldRule{
	StepBasics: {
		{Field: "display_name", Kind: KindText},
		{Field: "full_name", Kind: KindText},
		{Field: "age", Kind: KindNumber},
		{Field: "photos", Kind: KindArray},
	},
	StepBackgroundOne: {
		{Field: "gender", Kind: KindText},
	},
	StepBackgroundTwo: {
		{Field: "interested_in", Kind: KindArray},
	},
	StepBackgroundThree: {
		{Field: "city", Kind: KindText},
		{Field: "country", Kind: KindText},
	},
	StepBackgroundFour: {
		{Field: "ethnicity", Kind: KindText},
		{Field: "religion", Kind: KindText},
	},
	StepBackgroundFive: {
		{Field: "education", Kind: KindText},
		{Field: "occupation", Kind: KindText},
	},
	StepBackgroundSix: {
		{Field: "height_cm", Kind: KindNumber},
		{Field: "previously_married", Kind: KindBool},
	},
	StepBackgroundSeven: {
		{Field: "has_children", Kind: KindBool},
		{Field: "wants_children", Kind: KindText},
	},
	StepBackgroundEight: {
		{Field: "smoking", Kind: KindText},
		{Field: "drinking", Kind: KindText},
	},
	StepBackgroundNine: {
		{Field: "partner_age", Kind: KindRange},
	},
	StepEmotionalOne: {
		{Field: "love_languages", Kind: KindArray},
	},
	StepEmotionalTwo: {
		{Field: "core_values", Kind: KindArray},
	},
	StepEmotionalThree: {
		{Field: "conflict_style", Kind: KindText},
	},
	StepEmotionalFour: {
		{Field: "ideal_partner", Kind: KindText},
	},
	StepEmotionalFive: {
		{Field: "dealbreakers", Kind: KindDefined},
	},
	StepCompleteApplication: nil,
}

// Requirements 某步骤的字段规则
func Requirements(step Step) []FieldRule {
	return stepRequirements[step]
}

// HasStepData 按字段存在性规则判断某步骤在答案集里是否已有数据
// 答案集可能是内存构造的，也可能是 JSON 反序列化回来的，两种取值形态都要认
func HasStepData(step Step, answers model.AnswerSet) bool {
	rules := stepRequirements[step]
	if len(rules) == 0 {
		return false
	}
	if answers == nil {
		return false
	}

	for _, rule := range rules {
		if !fieldSatisfied(rule, answers) {
			return false
		}
	}
	return true
}

func fieldSatisfied(rule FieldRule, answers model.AnswerSet) bool {
	value, ok := answers[rule.Field]
	if !ok {
		return false
	}

	switch rule.Kind {
	case KindText:
		s, ok := value.(string)
		return ok && s != ""
	case KindNumber:
		switch value.(type) {
		case int, int32, int64, float32, float64:
			return true
		}
		return false
	case KindBool:
		_, ok := value.(bool)
		return ok // false 也算已填
	case KindArray:
		return arrayLen(value) > 0
	case KindDefined:
		// 存在即可，nil 值也认（表单提交过就会带键）
		return true
	case KindRange:
		min, max, ok := RangeValues(value)
		return ok && min > 0 && max > 0
	default:
		return false
	}
}

func arrayLen(value interface{}) int {
	switch v := value.(type) {
	case []interface{}:
		return len(v)
	case []string:
		return len(v)
	case []float64:
		return len(v)
	default:
		return 0
	}
}

// RangeValues 解出 {min,max} 区间的两端，兼容 JSON 反序列化后的 map 形态
func RangeValues(value interface{}) (min, max float64, ok bool) {
	m, isMap := value.(map[string]interface{})
	if !isMap {
		return 0, 0, false
	}

	min, okMin := numeric(m["min"])
	max, okMax := numeric(m["max"])
	return min, max, okMin && okMax
}

func numeric(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}
