package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// AnswerSet 问卷答案集，所有步骤的答案都合并在这一份记录里。
// 值是 JSON 反序列化后的自由结构：字符串、数字、布尔、字符串数组、{min,max} 区间。
type AnswerSet map[string]interface{}

// Merge 将 partial 逐字段浅合并进当前答案集，只增不删。
// 对相同 payload 幂等，后写的字段值覆盖先写的。
func (a AnswerSet) Merge(partial AnswerSet) AnswerSet {
	if a == nil {
		a = AnswerSet{}
	}
	for k, v := range partial {
		a[k] = v
	}
	return a
}

// Clone 深拷贝顶层字段，嵌套结构共享引用（合并只在顶层做）。
func (a AnswerSet) Clone() AnswerSet {
	if a == nil {
		return nil
	}
	out := make(AnswerSet, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Has 字段是否已定义，false 和空数组也算定义。
func (a AnswerSet) Has(field string) bool {
	_, ok := a[field]
	return ok
}

// Value 实现 driver.Valuer，Application.Answers 以 JSONB 落库。
func (a AnswerSet) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan 实现 sql.Scanner。
func (a *AnswerSet) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return fmt.Errorf("cannot scan %T into AnswerSet", value)
	}
}

// ProgressRecord 问卷进度记录，和答案集分开持久化。
type ProgressRecord struct {
	CurrentStep    string    `json:"current_step"`
	CompletedSteps []string  `json:"completed_steps"` // 只追加，不收缩
	StartedAt      time.Time `json:"started_at"`
	LastUpdated    time.Time `json:"last_updated"`
}

// Completed 判断某步骤是否已标记完成。
func (p *ProgressRecord) Completed(step string) bool {
	if p == nil {
		return false
	}
	for _, s := range p.CompletedSteps {
		if s == step {
			return true
		}
	}
	return false
}

// Touch 更新当前步骤并把 step 追加进 completedSteps（集合语义，不重复）。
func (p *ProgressRecord) Touch(step string, now time.Time) {
	if p.StartedAt.IsZero() {
		p.StartedAt = now
	}
	p.CurrentStep = step
	if !p.Completed(step) {
		p.CompletedSteps = append(p.CompletedSteps, step)
	}
	p.LastUpdated = now
}
