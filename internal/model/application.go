package model

import "time"

// ApplicationStatus 入会申请状态
type ApplicationStatus string

const (
	ApplicationStatusSubmitted ApplicationStatus = "submitted" // 网关确认收到
	ApplicationStatusReviewing ApplicationStatus = "reviewing" // 面谈排期中
	ApplicationStatusApproved  ApplicationStatus = "approved"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
)

// Application 入会申请，最终提交时以全量答案快照落库
type Application struct {
	BaseModel
	PublicID    int64             `gorm:"uniqueIndex;not null" json:"public_id"`
	UserID      int64             `gorm:"not null;index:idx_applications_user" json:"user_id"`
	DeviceID    string            `gorm:"type:varchar(64);not null" json:"device_id"` // 提交前问卷草稿所在的设备会话
	Answers     AnswerSet         `gorm:"type:jsonb;default:'{}'" json:"answers"`
	Status      ApplicationStatus `gorm:"type:varchar(16);not null;default:'submitted';index:idx_applications_status" json:"status"`
	SubmittedAt time.Time         `gorm:"not null" json:"submitted_at"`
}

// TableName 指定表名
func (Application) TableName() string {
	return "applications"
}
