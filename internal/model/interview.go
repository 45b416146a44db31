package model

import "time"

// InterviewStatus 面谈状态
type InterviewStatus string

const (
	InterviewStatusPending   InterviewStatus = "pending"   // 等待排期
	InterviewStatusScheduled InterviewStatus = "scheduled" // 已约定时间
	InterviewStatusCompleted InterviewStatus = "completed"
	InterviewStatusCancelled InterviewStatus = "cancelled"
)

// InterviewOutcome 面谈结论
type InterviewOutcome string

const (
	InterviewOutcomeApproved InterviewOutcome = "approved"
	InterviewOutcomeRejected InterviewOutcome = "rejected"
	InterviewOutcomeFollowUp InterviewOutcome = "follow_up" // 需要二次面谈
)

// Interview 入会面谈记录，worker 消费申请完成事件后创建 pending 记录
type Interview struct {
	BaseModel
	PublicID      int64            `gorm:"uniqueIndex;not null" json:"public_id"`
	ApplicationID int64            `gorm:"not null;index:idx_interviews_application" json:"application_id"`
	UserID        int64            `gorm:"not null;index:idx_interviews_user" json:"user_id"`
	AdminID       *int64           `gorm:"index" json:"admin_id,omitempty"` // 负责面谈的管理员，排期时指定
	ScheduledAt   *time.Time       `json:"scheduled_at,omitempty"`
	Status        InterviewStatus  `gorm:"type:varchar(16);not null;default:'pending';index:idx_interviews_status" json:"status"`
	Outcome       InterviewOutcome `gorm:"type:varchar(16);not null;default:''" json:"outcome,omitempty"`
	Notes         string           `gorm:"type:text;not null;default:''" json:"notes"`
	// 消费幂等用，同一条申请完成消息只建一条面谈
	SourceMessageID string `gorm:"uniqueIndex;type:varchar(64);not null" json:"-"`
}

// TableName 指定表名
func (Interview) TableName() string {
	return "interviews"
}
