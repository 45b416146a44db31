package model

// UserStatus 用户状态枚举
type UserStatus string

const (
	UserStatusSubmitted UserStatus = "submitted" // 申请已提交，等待审核面谈
	UserStatusActive    UserStatus = "active"    // 审核通过，正式会员
	UserStatusRejected  UserStatus = "rejected"  // 审核未通过
	UserStatusSuspended UserStatus = "suspended" // 违规停用
)

// StatusToStringMap 状态到展示文案
var StatusToStringMap = map[UserStatus]string{
	UserStatusSubmitted: "submitted",
	UserStatusActive:    "active",
	UserStatusRejected:  "rejected",
	UserStatusSuspended: "suspended",
}

// User 会员模型，问卷最终提交后由服务端落库，管理后台和资料页读这里
type User struct {
	BaseModel
	PublicID    int64      `gorm:"uniqueIndex;not null" json:"public_id"`
	Email       string     `gorm:"uniqueIndex;type:varchar(255);not null" json:"email"`
	DisplayName string     `gorm:"type:varchar(64);not null;default:''" json:"display_name"`
	FullName    string     `gorm:"type:varchar(128);not null;default:''" json:"full_name"`
	Age         int        `gorm:"not null;default:0" json:"age"`
	Gender      string     `gorm:"type:varchar(16);not null;default:''" json:"gender"`
	City        string     `gorm:"type:varchar(64);not null;default:''" json:"city"`
	Country     string     `gorm:"type:varchar(64);not null;default:''" json:"country"`
	Status      UserStatus `gorm:"type:varchar(16);not null;default:'submitted';index:idx_users_status" json:"status"`

	// 问卷全量答案快照（JSONB），资料编辑在这份快照上修改
	Profile AnswerSet `gorm:"type:jsonb;default:'{}'" json:"profile"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
