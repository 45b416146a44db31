package dto

// ========== User 相关 DTO ==========

// ProfileData 资料页数据
type ProfileData struct {
	ID          string                 `json:"id"`
	Email       string                 `json:"email"`
	DisplayName string                 `json:"display_name"`
	FullName    string                 `json:"full_name"`
	Age         int                    `json:"age"`
	Gender      string                 `json:"gender"`
	City        string                 `json:"city"`
	Country     string                 `json:"country"`
	Status      string                 `json:"status"`
	Profile     map[string]interface{} `json:"profile"`
}

// UpdateProfileRequest 资料编辑请求，全部字段可选
type UpdateProfileRequest struct {
	DisplayName *string                `json:"display_name,omitempty"`
	City        *string                `json:"city,omitempty"`
	Country     *string                `json:"country,omitempty"`
	Profile     map[string]interface{} `json:"profile,omitempty"` // 合并进快照，不整体替换
}

// UserSummary 管理后台会员列表项
type UserSummary struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	FullName    string `json:"full_name"`
	Age         int    `json:"age"`
	City        string `json:"city"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

// UserListQuery 管理后台会员列表查询参数
type UserListQuery struct {
	Status string `query:"status"`
	Cursor string `query:"cursor"`
	Limit  int    `query:"limit"`
}
