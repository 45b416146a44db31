package gateway

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"Evermatch/internal/model"
	"Evermatch/internal/model/dto"
	"Evermatch/pkg/errors"
)

type MockStepCall struct {
	DeviceID string
	Step     string
	Answers  model.AnswerSet
}

type MockCompletion struct {
	DeviceID string
	Email    string
	Password string
	Answers  model.AnswerSet
}

// MockGateway 可配置的网关 mock，实现 Gateway 接口
// 本地开发和测试用，不依赖真实平台
type MockGateway struct {
	mu        sync.Mutex
	Sessions  []string
	StepCalls []MockStepCall
	Completed []MockCompletion

	// FailNext 置为 true 时，下一次调用返回网关不可用并自动复位
	FailNext bool

	// Members 供 SearchUsers 做前缀匹配的固定数据
	Members []dto.SearchUserItem
}

func NewMockGateway() *MockGateway {
	return &MockGateway{
		Sessions:  make([]string, 0),
		StepCalls: make([]MockStepCall, 0),
		Completed: make([]MockCompletion, 0),
	}
}

func (m *MockGateway) failNextLocked() bool {
	if m.FailNext {
		m.FailNext = false
		return true
	}
	return false
}

func (m *MockGateway) InitSession(_ context.Context, deviceID string, _ dto.DeviceInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failNextLocked() {
		return errors.GatewayUnavailable
	}
	m.Sessions = append(m.Sessions, deviceID)
	return nil
}

func (m *MockGateway) SubmitStep(_ context.Context, deviceID, step string, answers model.AnswerSet) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failNextLocked() {
		return errors.GatewayUnavailable
	}
	m.StepCalls = append(m.StepCalls, MockStepCall{
		DeviceID: deviceID,
		Step:     step,
		Answers:  answers.Clone(),
	})
	return nil
}

func (m *MockGateway) CompleteApplication(_ context.Context, deviceID, email, password string, answers model.AnswerSet) (*CompleteResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failNextLocked() {
		return nil, errors.GatewayUnavailable
	}
	m.Completed = append(m.Completed, MockCompletion{
		DeviceID: deviceID,
		Email:    email,
		Password: password,
		Answers:  answers.Clone(),
	})
	return &CompleteResult{
		UserID:        "mock-user-" + uuid.NewString(),
		ApplicationID: "mock-app-" + uuid.NewString(),
		Status:        "submitted",
	}, nil
}

func (m *MockGateway) SearchUsers(_ context.Context, query string, limit int) ([]dto.SearchUserItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failNextLocked() {
		return nil, errors.GatewayUnavailable
	}

	q := strings.ToLower(query)
	out := make([]dto.SearchUserItem, 0)
	for _, member := range m.Members {
		if len(out) >= limit {
			break
		}
		if strings.HasPrefix(strings.ToLower(member.DisplayName), q) {
			out = append(out, member)
		}
	}
	return out, nil
}
