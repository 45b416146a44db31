package errors

import "errors"

func (d Definition) Error() string {
	return d.Message
}

// Definition 表示业务错误码及默认信息。
type Definition struct {
	Code    string
	Message string
}

// 认证相关错误。
var (
	Unauthorized         = Definition{Code: "UNAUTHORIZED", Message: "Unauthorized"}
	InvalidUserID        = Definition{Code: "INVALID_USER_ID", Message: "Invalid user ID format"}
	InvalidCredentials   = Definition{Code: "INVALID_CREDENTIALS", Message: "Invalid credentials"}
	SessionInitFailed    = Definition{Code: "SESSION_INIT_FAILED", Message: "Failed to initialize onboarding session"}
	AdminNotFound        = Definition{Code: "ADMIN_NOT_FOUND", Message: "Admin not found"}
	AdminAlreadyExists   = Definition{Code: "ADMIN_ALREADY_EXISTS", Message: "Admin already exists"}
	AdminRoleInvalid     = Definition{Code: "ADMIN_ROLE_INVALID", Message: "Admin role invalid"}
	TooManyRequests      = Definition{Code: "TOO_MANY_REQUESTS", Message: "Too many requests, please slow down"}
)

// 引导问卷错误。
var (
	StepUnknown          = Definition{Code: "STEP_UNKNOWN", Message: "Unknown onboarding step"}
	StepValidationFailed = Definition{Code: "STEP_VALIDATION_FAILED", Message: "Step validation failed"}
	StepNotReachable     = Definition{Code: "STEP_NOT_REACHABLE", Message: "Earlier steps must be completed first"}
	StepNotSubmittable   = Definition{Code: "STEP_NOT_SUBMITTABLE", Message: "Final step must be submitted via application completion"}
	ApplicationNotReady  = Definition{Code: "APPLICATION_NOT_READY", Message: "Application is missing required steps"}
	DraftNotFound        = Definition{Code: "DRAFT_NOT_FOUND", Message: "Onboarding draft not found"}
)

// 网关错误，提交可重试。
var (
	GatewayUnavailable = Definition{Code: "GATEWAY_UNAVAILABLE", Message: "Matchmaking service unavailable, please retry"}
	GatewayRejected    = Definition{Code: "GATEWAY_REJECTED", Message: "Matchmaking service rejected the submission"}
)

// 用户资料错误。
var (
	ErrUserNotFound    = Definition{Code: "USER_NOT_FOUND", Message: "User not found"}
	ProfileNotEditable = Definition{Code: "PROFILE_NOT_EDITABLE", Message: "Profile is not editable before activation"}
)

// 面谈模块错误。
var (
	InterviewNotFound    = Definition{Code: "INTERVIEW_NOT_FOUND", Message: "Interview not found"}
	InterviewSlotPassed  = Definition{Code: "INTERVIEW_SLOT_PASSED", Message: "Interview slot is in the past"}
	InterviewNotPending  = Definition{Code: "INTERVIEW_NOT_PENDING", Message: "Interview is not pending"}
)

// 上传模块错误。
var (
	UploadTooLarge     = Definition{Code: "UPLOAD_TOO_LARGE", Message: "Upload exceeds size limit"}
	UploadTypeInvalid  = Definition{Code: "UPLOAD_TYPE_INVALID", Message: "Unsupported media type"}
	UploadUnavailable  = Definition{Code: "UPLOAD_UNAVAILABLE", Message: "Upload service unavailable"}
)

// SkipMessageError 消费侧明确跳过的消息（已处理过、内容过期等），
// ack 掉不重试。
type SkipMessageError struct {
	Reason string
}

func (e *SkipMessageError) Error() string {
	return "skip message: " + e.Reason
}

// IsSkipMessageError 判断错误链上是否有 SkipMessageError
func IsSkipMessageError(err error) bool {
	var skip *SkipMessageError
	return errors.As(err, &skip)
}

// token 内部错误，不直接对外暴露。
var (
	ErrTokenGeneratorNotInitialized = errors.New("token generator not initialized")
	ErrUnexpectedSigningMethod      = errors.New("unexpected signing method")
	ErrInvalidToken                 = errors.New("invalid token")
	ErrInvalidTokenClaims           = errors.New("invalid token claims")
	ErrInvalidTokenType             = errors.New("invalid token type")
	ErrUserIDNotFound               = errors.New("user id not found in claims")
)

// Lookup 提供错误码查询能力。
var Lookup = map[string]Definition{
	Unauthorized.Code:         Unauthorized,
	InvalidUserID.Code:        InvalidUserID,
	InvalidCredentials.Code:   InvalidCredentials,
	SessionInitFailed.Code:    SessionInitFailed,
	AdminNotFound.Code:        AdminNotFound,
	AdminAlreadyExists.Code:   AdminAlreadyExists,
	AdminRoleInvalid.Code:     AdminRoleInvalid,
	TooManyRequests.Code:      TooManyRequests,
	StepUnknown.Code:          StepUnknown,
	StepValidationFailed.Code: StepValidationFailed,
	StepNotReachable.Code:     StepNotReachable,
	StepNotSubmittable.Code:   StepNotSubmittable,
	ApplicationNotReady.Code:  ApplicationNotReady,
	DraftNotFound.Code:        DraftNotFound,
	GatewayUnavailable.Code:   GatewayUnavailable,
	GatewayRejected.Code:      GatewayRejected,
	ErrUserNotFound.Code:      ErrUserNotFound,
	ProfileNotEditable.Code:   ProfileNotEditable,
	InterviewNotFound.Code:    InterviewNotFound,
	InterviewSlotPassed.Code:  InterviewSlotPassed,
	InterviewNotPending.Code:  InterviewNotPending,
	UploadTooLarge.Code:       UploadTooLarge,
	UploadTypeInvalid.Code:    UploadTypeInvalid,
	UploadUnavailable.Code:    UploadUnavailable,
}

// Get 根据错误码返回 Definition，若不存在则返回空 Definition。
func Get(code string) Definition {
	if def, ok := Lookup[code]; ok {
		return def
	}
	return Definition{Code: code, Message: "Unexpected error"}
}
