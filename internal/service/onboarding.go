package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"Evermatch/config"
	"Evermatch/internal/flow"
	"Evermatch/internal/gateway"
	"Evermatch/internal/model"
	"Evermatch/internal/model/dto"
	"Evermatch/internal/queue"
	"Evermatch/internal/store"
	"Evermatch/pkg/errors"
	"Evermatch/pkg/logger"
	"Evermatch/pkg/snowflake"
	"Evermatch/storage/database"
	"Evermatch/utils"
)

var (
	onboardingService *OnboardingService
	onboardingOnce    sync.Once
)

// Onboarding 生产装配：Redis 草稿存储 + 已初始化的撮合网关
func Onboarding() *OnboardingService {
	onboardingOnce.Do(func() {
		onboardingService = NewOnboarding(store.NewRedisStore(), gateway.GetGateway())
	})
	return onboardingService
}

// OnboardingService 问卷流程服务，依赖通过构造注入，测试时换内存存储和 mock 网关
type OnboardingService struct {
	store store.Store
	gw    gateway.Gateway
}

func NewOnboarding(st store.Store, gw gateway.Gateway) *OnboardingService {
	return &OnboardingService{store: st, gw: gw}
}

// GetStep 页面进入时的守卫检查和表单回填
// 不可达不是错误：照常返回 200，带上应跳转的第一个缺失步骤
func (s *OnboardingService) GetStep(ctx context.Context, deviceID, route string) (*dto.StepViewData, error) {
	step := flow.Step(route)
	def, ok := flow.Lookup(step)
	if !ok {
		return nil, errors.StepUnknown
	}

	progress := s.store.ReadProgress(ctx, deviceID)
	answers := s.store.Read(ctx, deviceID)

	view := &dto.StepViewData{
		Step:  string(step),
		Phase: string(def.Phase),
		Label: def.Label,
	}

	if missing, blocked := flow.FirstUnsatisfiedPrerequisite(step, progress, answers); blocked {
		view.Reachable = false
		view.RedirectTo = string(missing)
		return view, nil
	}

	view.Reachable = true
	view.SavedAnswers = savedAnswersFor(step, answers)
	view.Progress = s.progressData(step, progress)
	return view, nil
}

// SubmitStep 单步提交流水线：守卫 -> 校验 -> 草稿落盘 -> 转发网关 -> 原子提交进度
// 校验失败时 problems 非空；网关失败时草稿已保留，重试不丢数据
func (s *OnboardingService) SubmitStep(ctx context.Context, deviceID, route string, payload model.AnswerSet) (*dto.StepSubmitResponse, map[string]string, error) {
	step := flow.Step(route)
	if _, ok := flow.Lookup(step); !ok {
		return nil, nil, errors.StepUnknown
	}
	// 最终步带凭证、建账号、清草稿，只能走 CompleteApplication，
	// 从通用管线提交会留下"已完成但没有账号"的进度记录
	if step == flow.StepCompleteApplication {
		return nil, nil, errors.StepNotSubmittable
	}

	progress := s.store.ReadProgress(ctx, deviceID)
	answers := s.store.Read(ctx, deviceID)

	if _, blocked := flow.FirstUnsatisfiedPrerequisite(step, progress, answers); blocked {
		return nil, nil, errors.StepNotReachable
	}

	normalized, problems := flow.ValidateAndNormalize(step, payload, config.Cfg.MinApplicantAge)
	if len(problems) > 0 {
		return nil, problems, errors.StepValidationFailed
	}

	// 先把草稿保住，网关失败时用户的输入还在
	s.store.Write(ctx, deviceID, normalized)

	if err := s.gw.SubmitStep(ctx, deviceID, string(step), normalized); err != nil {
		logger.Logger.Warn("Step forwarding failed, draft preserved",
			zap.String("device_id", deviceID),
			zap.String("step", string(step)),
			zap.Error(err),
		)
		return nil, nil, err
	}

	// 网关确认后才标记完成，答案和进度一起落
	s.store.CommitStep(ctx, deviceID, string(step), normalized)

	resp := &dto.StepSubmitResponse{
		Step:     string(step),
		Progress: s.progressData(step, s.store.ReadProgress(ctx, deviceID)),
	}
	if next, ok := flow.NextStep(step); ok {
		resp.NextStep = string(next)
	}
	return resp, nil, nil
}

// GetProgress 进度条数据，从未提交过任何步骤时按首步计算
func (s *OnboardingService) GetProgress(ctx context.Context, deviceID string) *dto.ProgressData {
	progress := s.store.ReadProgress(ctx, deviceID)

	current := flow.FirstStep()
	if progress != nil && progress.CurrentStep != "" {
		current = flow.Step(progress.CurrentStep)
	}
	return s.progressData(current, progress)
}

// ResumeStep 恢复会话应进入的步骤：第一个未满足的步骤，全部满足则是最终提交页
func (s *OnboardingService) ResumeStep(ctx context.Context, deviceID string) string {
	progress := s.store.ReadProgress(ctx, deviceID)
	answers := s.store.Read(ctx, deviceID)

	for _, route := range flow.Routes() {
		if route == flow.StepCompleteApplication {
			break
		}
		if !flow.StepSatisfied(route, progress, answers) {
			return string(route)
		}
	}
	return string(flow.StepCompleteApplication)
}

// CompleteApplication 最终提交：校验所有前置步骤齐全，打包全量答案给网关，
// 成功后落库本地会员和申请记录、广播申请完成事件，最后清掉设备上的草稿
func (s *OnboardingService) CompleteApplication(ctx context.Context, deviceID string, req dto.CompleteApplicationRequest) (*dto.CompleteApplicationResponse, error) {
	if !utils.ValidateEmail(req.Email) {
		return nil, errors.StepValidationFailed
	}

	progress := s.store.ReadProgress(ctx, deviceID)
	answers := s.store.Read(ctx, deviceID)

	if missing, blocked := flow.FirstUnsatisfiedPrerequisite(flow.StepCompleteApplication, progress, answers); blocked {
		logger.Logger.Info("Application submission blocked",
			zap.String("device_id", deviceID),
			zap.String("missing_step", string(missing)),
		)
		return nil, errors.ApplicationNotReady
	}

	result, err := s.gw.CompleteApplication(ctx, deviceID, req.Email, req.Password, answers)
	if err != nil {
		return nil, err
	}

	user, application, err := s.persistSubmission(ctx, deviceID, req.Email, answers)
	if err != nil {
		// 网关侧已受理，本地副本失败只记日志，不把用户打回去重交
		logger.Logger.Error("Failed to persist accepted application locally",
			zap.String("device_id", deviceID),
			zap.Error(err),
		)
	} else {
		s.publishCompleted(ctx, user, application, deviceID, req.Email)
	}

	s.store.TouchProgress(ctx, deviceID, string(flow.StepCompleteApplication))
	s.store.Clear(ctx, deviceID)

	logger.Logger.Info("Application completed",
		zap.String("device_id", deviceID),
		zap.String("gateway_application_id", result.ApplicationID),
	)

	return &dto.CompleteApplicationResponse{
		UserID:        result.UserID,
		ApplicationID: result.ApplicationID,
		Status:        result.Status,
	}, nil
}

func (s *OnboardingService) persistSubmission(ctx context.Context, deviceID, email string, answers model.AnswerSet) (*model.User, *model.Application, error) {
	userID, err := snowflake.NextID()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate user ID: %w", err)
	}
	applicationID, err := snowflake.NextID()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate application ID: %w", err)
	}

	age := 0
	if v, ok := answers["age"]; ok {
		if f, isNum := numericAnswer(v); isNum {
			age = int(f)
		}
	}

	user := &model.User{
		PublicID:    userID,
		Email:       email,
		DisplayName: stringAnswer(answers, "display_name"),
		FullName:    stringAnswer(answers, "full_name"),
		Age:         age,
		Gender:      stringAnswer(answers, "gender"),
		City:        stringAnswer(answers, "city"),
		Country:     stringAnswer(answers, "country"),
		Status:      model.UserStatusSubmitted,
		Profile:     answers.Clone(),
	}

	application := &model.Application{
		PublicID:    applicationID,
		UserID:      userID,
		DeviceID:    deviceID,
		Answers:     answers.Clone(),
		Status:      model.ApplicationStatusSubmitted,
		SubmittedAt: time.Now(),
	}

	db := database.DB().WithContext(ctx)
	if err := db.Create(user).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to create user: %w", err)
	}
	if err := db.Create(application).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to create application: %w", err)
	}

	return user, application, nil
}

func (s *OnboardingService) publishCompleted(ctx context.Context, user *model.User, application *model.Application, deviceID, email string) {
	msg := model.ApplicationCompletedMessage{
		MessageID:     fmt.Sprintf("app-completed-%d", application.PublicID),
		ApplicationID: application.PublicID,
		UserID:        user.PublicID,
		DeviceID:      deviceID,
		Email:         email,
		SubmittedAt:   application.SubmittedAt.Format(time.RFC3339),
	}
	if err := queue.PublishApplicationCompleted(ctx, msg); err != nil {
		logger.Logger.Warn("Failed to publish application completed event",
			zap.Int64("application_id", application.PublicID),
			zap.Error(err),
		)
	}
}

func (s *OnboardingService) progressData(current flow.Step, record *model.ProgressRecord) *dto.ProgressData {
	p := flow.Compute(current)

	data := &dto.ProgressData{
		CurrentStep:           string(current),
		CompletedSteps:        []string{},
		PhasePercentage:       p.PhasePercentage,
		StepInPhasePercentage: p.StepInPhasePercentage,
		OverallPercentage:     p.OverallPercentage,
	}

	if def, ok := flow.Lookup(current); ok {
		data.PreviousPhaseBoundary = flow.PreviousPhaseBoundary(def.Phase)
	}
	if record != nil && len(record.CompletedSteps) > 0 {
		data.CompletedSteps = append(data.CompletedSteps, record.CompletedSteps...)
	}
	return data
}

// savedAnswersFor 只回填当前步骤声明的字段，不把整份草稿吐给前端
func savedAnswersFor(step flow.Step, answers model.AnswerSet) map[string]interface{} {
	if answers == nil {
		return nil
	}

	out := make(map[string]interface{})
	for _, rule := range flow.Requirements(step) {
		if v, ok := answers[rule.Field]; ok {
			out[rule.Field] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func stringAnswer(answers model.AnswerSet, field string) string {
	if v, ok := answers[field].(string); ok {
		return v
	}
	return ""
}

func numericAnswer(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}
