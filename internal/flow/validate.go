package flow

import (
	"fmt"

	"Evermatch/internal/model"
)

// ValidateAndNormalize 单步提交前的本地校验
// 校验失败返回 field -> message 的明细，不发起任何网络调用；
// 通过时返回归一化后的 payload（枚举值转为规范形式），原 payload 不改动。
func ValidateAndNormalize(step Step, payload model.AnswerSet, minAge int) (model.AnswerSet, map[string]string) {
	problems := make(map[string]string)
	normalized := payload.Clone()
	if normalized == nil {
		normalized = model.AnswerSet{}
	}

	// 必填检查走和依赖判定同一套存在性规则，两边不会漂移
	for _, rule := range Requirements(step) {
		if !fieldSatisfied(rule, normalized) {
			problems[rule.Field] = "required"
		}
	}

	// 枚举字段归一化，未知选项直接报错而不是静默存入
	for field, value := range normalized {
		if !IsEnumField(field) {
			continue
		}
		switch v := value.(type) {
		case string:
			canonical, ok := ParseOption(field, v)
			if !ok {
				problems[field] = fmt.Sprintf("unknown option: %s", v)
				continue
			}
			normalized[field] = canonical
		case []interface{}:
			out := make([]interface{}, 0, len(v))
			for _, item := range v {
				s, isStr := item.(string)
				if !isStr {
					problems[field] = "options must be strings"
					break
				}
				canonical, ok := ParseOption(field, s)
				if !ok {
					problems[field] = fmt.Sprintf("unknown option: %s", s)
					break
				}
				out = append(out, canonical)
			}
			if _, bad := problems[field]; !bad {
				normalized[field] = out
			}
		case []string:
			out := make([]interface{}, 0, len(v))
			for _, s := range v {
				canonical, ok := ParseOption(field, s)
				if !ok {
					problems[field] = fmt.Sprintf("unknown option: %s", s)
					break
				}
				out = append(out, canonical)
			}
			if _, bad := problems[field]; !bad {
				normalized[field] = out
			}
		}
	}

	// 步骤专属的数值和跨字段规则
	switch step {
	case StepBasics:
		if age, ok := numeric(normalized["age"]); ok && age < float64(minAge) {
			problems["age"] = fmt.Sprintf("minimum age is %d", minAge)
		}
	case StepBackgroundSix:
		if h, ok := numeric(normalized["height_cm"]); ok && (h < 120 || h > 230) {
			problems["height_cm"] = "height out of range"
		}
	case StepBackgroundNine:
		if min, max, ok := RangeValues(normalized["partner_age"]); ok {
			if min < float64(minAge) {
				problems["partner_age"] = fmt.Sprintf("minimum preferred age is %d", minAge)
			} else if max < min {
				problems["partner_age"] = "max must be greater than or equal to min"
			}
		}
	}

	if len(problems) > 0 {
		return nil, problems
	}
	return normalized, nil
}
