package model

// ApplicationCompletedMessage 最终提交成功后发布，worker 消费并安排面谈
type ApplicationCompletedMessage struct {
	MessageID     string `json:"message_id"` // 幂等键
	ApplicationID int64  `json:"application_id"`
	UserID        int64  `json:"user_id"`
	DeviceID      string `json:"device_id"`
	Email         string `json:"email"`
	SubmittedAt   string `json:"submitted_at"` // RFC3339
}
