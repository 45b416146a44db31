package handler

import (
	"context"
	"fmt"

	"github.com/cloudwego/hertz/pkg/app"

	"Evermatch/internal/middleware"
	"Evermatch/internal/model/dto"
	"Evermatch/internal/service"
	"Evermatch/pkg/response"
)

// GetProfile 获取当前会员资料
// GET /v1/users/me/profile
func GetProfile(ctx context.Context, c *app.RequestContext) {
	deviceID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, fmt.Errorf("device ID not found in context"))
		return
	}

	result, err := service.User().GetProfileByDevice(ctx, deviceID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// UpdateProfile 编辑当前会员资料
// PATCH /v1/users/me/profile
func UpdateProfile(ctx context.Context, c *app.RequestContext) {
	deviceID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, fmt.Errorf("device ID not found in context"))
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.User().UpdateProfileByDevice(ctx, deviceID, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}
