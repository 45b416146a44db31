package model

// AdminRole 管理员角色枚举
type AdminRole string

const (
	AdminRoleSuper       AdminRole = "superadmin"  // 后台全部权限，含管理员管理
	AdminRoleMatchmaker  AdminRole = "matchmaker"  // 会员与申请管理
	AdminRoleInterviewer AdminRole = "interviewer" // 面谈排期与结果录入
)

// ValidAdminRole 校验角色合法性
func ValidAdminRole(role AdminRole) bool {
	switch role {
	case AdminRoleSuper, AdminRoleMatchmaker, AdminRoleInterviewer:
		return true
	}
	return false
}

// Admin 管理后台账号
type Admin struct {
	BaseModel
	Email        string    `gorm:"uniqueIndex;type:varchar(255);not null" json:"email"`
	Name         string    `gorm:"type:varchar(64);not null;default:''" json:"name"`
	Role         AdminRole `gorm:"type:varchar(16);not null;default:'matchmaker'" json:"role"`
	PasswordHash string    `gorm:"type:char(64);not null" json:"-"` // sha256(盐:明文)，不对外暴露
}

// TableName 指定表名
func (Admin) TableName() string {
	return "admins"
}
