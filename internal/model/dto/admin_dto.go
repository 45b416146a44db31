package dto

// ========== Admin 相关 DTO ==========

// AdminLoginRequest 管理员登录请求
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminLoginResponse 管理员登录响应
type AdminLoginResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int       `json:"expires_in"`
	Admin        AdminData `json:"admin"`
}

// AdminData 管理员信息
type AdminData struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// CreateAdminRequest 新建管理员请求
type CreateAdminRequest struct {
	Email    string `json:"email" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SearchUsersQuery 实时会员搜索查询参数
type SearchUsersQuery struct {
	Q     string `query:"q"`
	Limit int    `query:"limit"`
}

// SearchUserItem 搜索结果项
type SearchUserItem struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	City        string `json:"city"`
	Status      string `json:"status"`
}
