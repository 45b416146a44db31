package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Evermatch/internal/gateway"
	"Evermatch/internal/model/dto"
	"Evermatch/internal/store"
	"Evermatch/pkg/errors"
)

func newTestAuth() (*AuthService, *gateway.MockGateway) {
	gw := gateway.NewMockGateway()
	return NewAuth(gw, NewOnboarding(store.NewMemoryStore(), gw)), gw
}

func TestInitSessionRegistersWithGateway(t *testing.T) {
	a, gw := newTestAuth()

	resp, err := a.InitSession(context.Background(), dto.SessionRequest{
		Device: dto.DeviceInfo{Platform: "ios"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.DeviceID)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.ResumeToken)
	assert.Equal(t, "basics", resp.ResumeStep)

	// 会话在平台侧也登记过
	require.Len(t, gw.Sessions, 1)
	assert.Equal(t, resp.DeviceID, gw.Sessions[0])
}

func TestInitSessionGatewayFailureDoesNotBlock(t *testing.T) {
	a, gw := newTestAuth()

	gw.FailNext = true
	resp, err := a.InitSession(context.Background(), dto.SessionRequest{})
	require.NoError(t, err, "gateway registration is best-effort")
	assert.NotEmpty(t, resp.AccessToken)
	assert.Empty(t, gw.Sessions)
}

func TestInitSessionResumeRoundtrip(t *testing.T) {
	a, _ := newTestAuth()
	ctx := context.Background()

	first, err := a.InitSession(ctx, dto.SessionRequest{})
	require.NoError(t, err)

	second, err := a.InitSession(ctx, dto.SessionRequest{ResumeToken: first.ResumeToken})
	require.NoError(t, err)
	assert.Equal(t, first.DeviceID, second.DeviceID, "resume token must map back to the same device session")
}

func TestInitSessionRejectsRawDeviceID(t *testing.T) {
	a, gw := newTestAuth()
	ctx := context.Background()

	first, err := a.InitSession(ctx, dto.SessionRequest{})
	require.NoError(t, err)

	// 用裸设备 ID 冒充恢复令牌，拿到 ID 不等于拿到草稿
	_, err = a.InitSession(ctx, dto.SessionRequest{ResumeToken: first.DeviceID})
	assert.ErrorIs(t, err, errors.Unauthorized)

	_, err = a.InitSession(ctx, dto.SessionRequest{ResumeToken: uuid.NewString()})
	assert.ErrorIs(t, err, errors.Unauthorized)

	// refresh token 也不能当恢复令牌用
	_, err = a.InitSession(ctx, dto.SessionRequest{ResumeToken: first.RefreshToken})
	assert.ErrorIs(t, err, errors.Unauthorized)

	assert.Len(t, gw.Sessions, 1, "rejected resumes never reach the gateway")
}
