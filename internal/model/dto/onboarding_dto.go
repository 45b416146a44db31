package dto

// ========== Onboarding 相关 DTO ==========

// DeviceInfo 设备信息
type DeviceInfo struct {
	Platform   string `json:"platform"`
	Model      string `json:"model"`
	AppVersion string `json:"app_version"`
}

// SessionRequest 初始化问卷会话请求
// resume_token 可选，是上次会话响应里下发的签名令牌，带上则恢复该设备的草稿
type SessionRequest struct {
	Device      DeviceInfo `json:"device"`
	ResumeToken string     `json:"resume_token,omitempty"`
}

// SessionResponse 问卷会话响应
type SessionResponse struct {
	DeviceID     string `json:"device_id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	ResumeToken  string `json:"resume_token"` // 客户端保管，换设备或重装后凭它接回草稿
	ResumeStep   string `json:"resume_step"`  // 恢复会话时应进入的步骤
}

// RefreshTokenRequest 刷新 token 请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshTokenResponse 刷新 token 响应
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// ProgressData 进度条渲染数据
type ProgressData struct {
	CurrentStep           string   `json:"current_step"`
	CompletedSteps        []string `json:"completed_steps"`
	PhasePercentage       float64  `json:"phase_percentage"`
	StepInPhasePercentage float64  `json:"step_in_phase_percentage"`
	OverallPercentage     float64  `json:"overall_percentage"`
	PreviousPhaseBoundary float64  `json:"previous_phase_boundary"` // 双色进度条的浅色底
}

// StepViewData 步骤进入时的守卫结果和表单回填数据
type StepViewData struct {
	Step         string                 `json:"step"`
	Phase        string                 `json:"phase"`
	Label        string                 `json:"label"`
	Reachable    bool                   `json:"reachable"`
	RedirectTo   string                 `json:"redirect_to,omitempty"` // 不可达时跳转的第一个缺失步骤
	SavedAnswers map[string]interface{} `json:"saved_answers,omitempty"`
	Progress     *ProgressData          `json:"progress,omitempty"`
}

// StepSubmitRequest 单步提交请求
type StepSubmitRequest struct {
	Answers map[string]interface{} `json:"answers" binding:"required"`
}

// StepSubmitResponse 单步提交响应
type StepSubmitResponse struct {
	Step     string        `json:"step"`
	NextStep string        `json:"next_step,omitempty"`
	Progress *ProgressData `json:"progress,omitempty"`
}

// CompleteApplicationRequest 最终提交，凭证只转发网关，不进草稿
type CompleteApplicationRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CompleteApplicationResponse 最终提交响应
type CompleteApplicationResponse struct {
	UserID        string `json:"user_id"`
	ApplicationID string `json:"application_id"`
	Status        string `json:"status"`
}
