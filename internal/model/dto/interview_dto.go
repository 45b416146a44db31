package dto

import "time"

// ========== Interview 相关 DTO ==========

// InterviewData 面谈记录
type InterviewData struct {
	ID            string     `json:"id"`
	ApplicationID string     `json:"application_id"`
	UserID        string     `json:"user_id"`
	AdminID       string     `json:"admin_id,omitempty"`
	ScheduledAt   *time.Time `json:"scheduled_at,omitempty"`
	Status        string     `json:"status"`
	Outcome       string     `json:"outcome,omitempty"`
	Notes         string     `json:"notes"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ScheduleInterviewRequest 面谈排期请求
type ScheduleInterviewRequest struct {
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
	AdminID     string    `json:"admin_id,omitempty"` // 缺省为当前登录管理员
}

// UpdateInterviewRequest 面谈更新请求，录入结论或改期
type UpdateInterviewRequest struct {
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Outcome     *string    `json:"outcome,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
}

// InterviewListQuery 面谈列表查询参数
type InterviewListQuery struct {
	Status string `query:"status"`
	Cursor string `query:"cursor"`
	Limit  int    `query:"limit"`
}
