package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"Evermatch/internal/model/dto"
	"Evermatch/internal/service"
	"Evermatch/pkg/response"
)

// InitSession 初始化问卷会话，匿名接口
// POST /v1/onboarding/session
func InitSession(ctx context.Context, c *app.RequestContext) {
	var req dto.SessionRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Auth().InitSession(ctx, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// RefreshToken 刷新访问令牌
// POST /v1/onboarding/session/refresh
func RefreshToken(ctx context.Context, c *app.RequestContext) {
	var req dto.RefreshTokenRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Auth().RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}
