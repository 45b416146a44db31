package service

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Evermatch/internal/flow"
	"Evermatch/internal/gateway"
	"Evermatch/internal/model"
	"Evermatch/internal/model/dto"
	"Evermatch/internal/store"
	"Evermatch/pkg/errors"
	"Evermatch/pkg/logger"
	"Evermatch/pkg/token"
	"Evermatch/storage/redis"
)

func TestMain(m *testing.M) {
	logger.Init()
	if err := token.Init(); err != nil {
		panic(err)
	}
	// Redis 不在也能跑：缓存层 best-effort，连接失败降级为告警
	_ = redis.Init()
	os.Exit(m.Run())
}

// stepPayloads 每一步的一份合法提交
var stepPayloads = map[flow.Step]model.AnswerSet{
	flow.StepBasics: {
		"display_name": "Ada",
		"full_name":    "Ada Lovelace",
		"age":          30,
		"photos":       []string{"a.jpg"},
	},
	flow.StepBackgroundOne:   {"gender": "female"},
	flow.StepBackgroundTwo:   {"interested_in": []string{"male"}},
	flow.StepBackgroundThree: {"city": "Berlin", "country": "Germany"},
	flow.StepBackgroundFour:  {"ethnicity": "asian", "religion": "none"},
	flow.StepBackgroundFive:  {"education": "masters", "occupation": "engineer"},
	flow.StepBackgroundSix:   {"height_cm": 170, "previously_married": false},
	flow.StepBackgroundSeven: {"has_children": false, "wants_children": "open"},
	flow.StepBackgroundEight: {"smoking": "never", "drinking": "socially"},
	flow.StepBackgroundNine:  {"partner_age": map[string]interface{}{"min": 28, "max": 40}},
	flow.StepEmotionalOne:    {"love_languages": []string{"quality-time"}},
	flow.StepEmotionalTwo:    {"core_values": []string{"family"}},
	flow.StepEmotionalThree:  {"conflict_style": "talk-it-out"},
	flow.StepEmotionalFour:   {"ideal_partner": "kind and curious"},
	flow.StepEmotionalFive:   {"dealbreakers": []string{"smoking"}},
}

func newTestOnboarding() (*OnboardingService, *gateway.MockGateway) {
	gw := gateway.NewMockGateway()
	return NewOnboarding(store.NewMemoryStore(), gw), gw
}

// fillSteps 按目录顺序提交前 n 个问卷步骤
func fillSteps(t *testing.T, s *OnboardingService, deviceID string, n int) {
	t.Helper()
	ctx := context.Background()
	for i, route := range flow.Routes() {
		if i >= n || route == flow.StepCompleteApplication {
			return
		}
		_, problems, err := s.SubmitStep(ctx, deviceID, string(route), stepPayloads[route])
		require.NoError(t, err, "step %s", route)
		require.Empty(t, problems, "step %s", route)
	}
}

func TestSubmitStepHappyPath(t *testing.T) {
	s, gw := newTestOnboarding()
	ctx := context.Background()

	resp, problems, err := s.SubmitStep(ctx, "dev-1", "basics", stepPayloads[flow.StepBasics])
	require.NoError(t, err)
	require.Empty(t, problems)

	assert.Equal(t, "basics", resp.Step)
	assert.Equal(t, "background-series-one", resp.NextStep)
	require.NotNil(t, resp.Progress)
	assert.Equal(t, []string{"basics"}, resp.Progress.CompletedSteps)
	assert.Equal(t, float64(10), resp.Progress.OverallPercentage)

	require.Len(t, gw.StepCalls, 1)
	assert.Equal(t, "basics", gw.StepCalls[0].Step)
}

func TestSubmitStepUnknownRoute(t *testing.T) {
	s, _ := newTestOnboarding()

	_, _, err := s.SubmitStep(context.Background(), "dev-1", "no-such-step", nil)
	assert.ErrorIs(t, err, errors.StepUnknown)
}

func TestSubmitStepGuardRejectsSkipping(t *testing.T) {
	s, gw := newTestOnboarding()

	_, _, err := s.SubmitStep(context.Background(), "dev-1", "background-series-three", stepPayloads[flow.StepBackgroundThree])
	assert.ErrorIs(t, err, errors.StepNotReachable)
	assert.Empty(t, gw.StepCalls, "guard must reject before forwarding")
}

func TestSubmitStepValidationProblems(t *testing.T) {
	s, gw := newTestOnboarding()

	_, problems, err := s.SubmitStep(context.Background(), "dev-1", "basics", model.AnswerSet{
		"display_name": "Ada",
		"full_name":    "Ada Lovelace",
		"age":          19,
		"photos":       []string{"a.jpg"},
	})
	assert.ErrorIs(t, err, errors.StepValidationFailed)
	assert.Contains(t, problems["age"], "minimum age")
	assert.Empty(t, gw.StepCalls, "invalid payload must not reach the gateway")
}

func TestSubmitStepGatewayFailurePreservesDraft(t *testing.T) {
	s, gw := newTestOnboarding()
	ctx := context.Background()
	fillSteps(t, s, "dev-1", 1)

	gw.FailNext = true
	_, problems, err := s.SubmitStep(ctx, "dev-1", "background-series-one", stepPayloads[flow.StepBackgroundOne])
	assert.ErrorIs(t, err, errors.GatewayUnavailable)
	assert.Empty(t, problems)

	// 草稿还在，但该步没有标记完成
	view, err := s.GetStep(ctx, "dev-1", "background-series-one")
	require.NoError(t, err)
	assert.True(t, view.Reachable)
	assert.Equal(t, "female", view.SavedAnswers["gender"])
	assert.NotContains(t, view.Progress.CompletedSteps, "background-series-one")

	// 重试成功后才标记
	resp, _, err := s.SubmitStep(ctx, "dev-1", "background-series-one", stepPayloads[flow.StepBackgroundOne])
	require.NoError(t, err)
	assert.Contains(t, resp.Progress.CompletedSteps, "background-series-one")
}

func TestSubmitStepRejectsFinalStep(t *testing.T) {
	s, gw := newTestOnboarding()
	ctx := context.Background()
	fillSteps(t, s, "dev-1", len(flow.Routes())-1)

	// 最终步只能走 CompleteApplication，通用管线不许把它标记完成
	_, problems, err := s.SubmitStep(ctx, "dev-1", "complete-application", nil)
	assert.ErrorIs(t, err, errors.StepNotSubmittable)
	assert.Empty(t, problems)
	assert.Empty(t, gw.Completed)

	p := s.GetProgress(ctx, "dev-1")
	assert.NotContains(t, p.CompletedSteps, "complete-application")
}

func TestGetStepRedirectsToFirstMissing(t *testing.T) {
	s, _ := newTestOnboarding()
	ctx := context.Background()
	fillSteps(t, s, "dev-1", 2)

	view, err := s.GetStep(ctx, "dev-1", "background-series-five")
	require.NoError(t, err)
	assert.False(t, view.Reachable)
	assert.Equal(t, "background-series-two", view.RedirectTo)
	assert.Nil(t, view.Progress, "unreachable view carries no progress")
}

func TestGetStepBackfillsOnlyOwnFields(t *testing.T) {
	s, _ := newTestOnboarding()
	ctx := context.Background()
	fillSteps(t, s, "dev-1", 3)

	view, err := s.GetStep(ctx, "dev-1", "background-series-two")
	require.NoError(t, err)
	assert.True(t, view.Reachable)
	assert.Contains(t, view.SavedAnswers, "interested_in")
	assert.NotContains(t, view.SavedAnswers, "gender", "other steps' answers must not leak")
}

func TestGetProgressDefaultsToFirstStep(t *testing.T) {
	s, _ := newTestOnboarding()

	p := s.GetProgress(context.Background(), "fresh-device")
	assert.Equal(t, "basics", p.CurrentStep)
	assert.Empty(t, p.CompletedSteps)
	assert.Equal(t, float64(0), p.PreviousPhaseBoundary)
}

func TestResumeStep(t *testing.T) {
	s, _ := newTestOnboarding()
	ctx := context.Background()

	assert.Equal(t, "basics", s.ResumeStep(ctx, "dev-1"))

	fillSteps(t, s, "dev-1", 4)
	assert.Equal(t, "background-series-four", s.ResumeStep(ctx, "dev-1"))

	fillSteps(t, s, "dev-1", len(flow.Routes())-1)
	assert.Equal(t, "complete-application", s.ResumeStep(ctx, "dev-1"))
}

func TestCompleteApplicationBlockedWhenMissingSteps(t *testing.T) {
	s, gw := newTestOnboarding()
	ctx := context.Background()
	fillSteps(t, s, "dev-1", 5)

	_, err := s.CompleteApplication(ctx, "dev-1", dto.CompleteApplicationRequest{
		Email:    "ada@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, errors.ApplicationNotReady)
	assert.Empty(t, gw.Completed)
}

func TestCompleteApplicationRejectsBadEmail(t *testing.T) {
	s, _ := newTestOnboarding()

	_, err := s.CompleteApplication(context.Background(), "dev-1", dto.CompleteApplicationRequest{
		Email:    "not-an-email",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, errors.StepValidationFailed)
}

func TestCompleteApplicationClearsDraft(t *testing.T) {
	s, gw := newTestOnboarding()
	ctx := context.Background()
	fillSteps(t, s, "dev-1", len(flow.Routes())-1)

	resp, err := s.CompleteApplication(ctx, "dev-1", dto.CompleteApplicationRequest{
		Email:    "ada@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "submitted", resp.Status)
	assert.NotEmpty(t, resp.ApplicationID)
	require.Len(t, gw.Completed, 1)
	// 凭证完整转发到网关，账号在平台侧建得出来
	assert.Equal(t, "ada@example.com", gw.Completed[0].Email)
	assert.Equal(t, "secret123", gw.Completed[0].Password)
	assert.Equal(t, "Ada", gw.Completed[0].Answers["display_name"])

	// 提交后设备上的草稿和进度都清掉
	view, err := s.GetStep(ctx, "dev-1", "background-series-one")
	require.NoError(t, err)
	assert.False(t, view.Reachable)
	assert.Equal(t, "basics", view.RedirectTo)
}

func TestCompleteApplicationGatewayFailureKeepsDraft(t *testing.T) {
	s, gw := newTestOnboarding()
	ctx := context.Background()
	fillSteps(t, s, "dev-1", len(flow.Routes())-1)

	gw.FailNext = true
	_, err := s.CompleteApplication(ctx, "dev-1", dto.CompleteApplicationRequest{
		Email:    "ada@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, errors.GatewayUnavailable)

	// 失败不清草稿，恢复会话仍停在最终提交页
	assert.Equal(t, "complete-application", s.ResumeStep(ctx, "dev-1"))
}

func TestDevicesAreIsolated(t *testing.T) {
	s, _ := newTestOnboarding()
	ctx := context.Background()
	fillSteps(t, s, "dev-1", 3)

	view, err := s.GetStep(ctx, "dev-2", "background-series-one")
	require.NoError(t, err)
	assert.False(t, view.Reachable)
	assert.Equal(t, "basics", view.RedirectTo)
}
