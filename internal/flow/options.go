package flow

import "strings"

// 多选题全部收敛成封闭枚举，存储值只会是这里的规范形式
// 表单传什么都先走 ParseOption 归一化，避免大小写或文案漂移导致的静默不匹配

var enumOptions = map[string][]string{
	"gender":        {"female", "male", "non-binary"},
	"interested_in": {"female", "male", "non-binary"},

	"ethnicity": {"asian", "black", "hispanic", "middle-eastern", "white", "mixed", "other"},
	"religion":  {"buddhist", "christian", "hindu", "jewish", "muslim", "spiritual", "none", "other"},

	"education": {"high-school", "bachelors", "masters", "doctorate", "other"},

	"wants_children": {"yes", "no", "open"},

	"smoking":  {"never", "socially", "regularly"},
	"drinking": {"never", "socially", "regularly"},

	"love_languages": {"words-of-affirmation", "quality-time", "gifts", "acts-of-service", "physical-touch"},

	"core_values": {"family", "career", "faith", "adventure", "stability", "growth", "community", "health"},

	"conflict_style": {"talk-it-out", "need-space", "compromise", "avoid"},

	"dealbreakers": {"smoking", "drinking", "no-ambition", "different-faith", "long-distance", "has-children"},
}

// OptionsFor 返回某字段的合法选项，非枚举字段返回 false
func OptionsFor(field string) ([]string, bool) {
	opts, ok := enumOptions[field]
	return opts, ok
}

// IsEnumField 字段是否是封闭枚举
func IsEnumField(field string) bool {
	_, ok := enumOptions[field]
	return ok
}

// ParseOption 大小写不敏感地匹配选项，返回规范形式
func ParseOption(field, raw string) (string, bool) {
	opts, ok := enumOptions[field]
	if !ok {
		return "", false
	}

	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.ReplaceAll(normalized, " ", "-")

	for _, opt := range opts {
		if opt == normalized {
			return opt, true
		}
	}
	return "", false
}
