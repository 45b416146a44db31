package handler

import (
	"context"
	"fmt"

	"github.com/cloudwego/hertz/pkg/app"

	"Evermatch/internal/middleware"
	"Evermatch/internal/model/dto"
	"Evermatch/internal/service"
	"Evermatch/pkg/errors"
	"Evermatch/pkg/response"
)

// GetStep 进入问卷页面，守卫检查加表单回填
// GET /v1/onboarding/steps/:route
func GetStep(ctx context.Context, c *app.RequestContext) {
	deviceID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, fmt.Errorf("device ID not found in context"))
		return
	}

	route := c.Param("route")

	onboardingService := service.Onboarding()
	result, err := onboardingService.GetStep(ctx, deviceID, route)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// SubmitStep 提交单步答案
// POST /v1/onboarding/steps/:route
func SubmitStep(ctx context.Context, c *app.RequestContext) {
	deviceID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, fmt.Errorf("device ID not found in context"))
		return
	}

	route := c.Param("route")

	var req dto.StepSubmitRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	onboardingService := service.Onboarding()
	result, problems, err := onboardingService.SubmitStep(ctx, deviceID, route, req.Answers)
	if err != nil {
		if len(problems) > 0 {
			details := make(map[string]interface{}, len(problems))
			for field, msg := range problems {
				details[field] = msg
			}
			response.ErrorWithDetails(ctx, c, errors.StepValidationFailed, details)
			return
		}
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// GetProgress 进度条数据
// GET /v1/onboarding/progress
func GetProgress(ctx context.Context, c *app.RequestContext) {
	deviceID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, fmt.Errorf("device ID not found in context"))
		return
	}

	onboardingService := service.Onboarding()
	response.Success(ctx, c, onboardingService.GetProgress(ctx, deviceID))
}

// CompleteApplication 最终提交
// POST /v1/onboarding/complete
func CompleteApplication(ctx context.Context, c *app.RequestContext) {
	deviceID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, fmt.Errorf("device ID not found in context"))
		return
	}

	var req dto.CompleteApplicationRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	onboardingService := service.Onboarding()
	result, err := onboardingService.CompleteApplication(ctx, deviceID, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}
