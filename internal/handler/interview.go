package handler

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"

	"Evermatch/internal/middleware"
	"Evermatch/internal/model/dto"
	"Evermatch/internal/service"
	"Evermatch/pkg/errors"
	"Evermatch/pkg/response"
)

// ListInterviews 面谈列表
// GET /v1/admin/interviews
func ListInterviews(ctx context.Context, c *app.RequestContext) {
	var query dto.InterviewListQuery
	if err := c.BindAndValidate(&query); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	interviews, nextCursor, err := service.Interview().List(ctx, query)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	meta := map[string]interface{}{}
	if nextCursor != "" {
		meta["next_cursor"] = nextCursor
	}
	response.SuccessWithMeta(ctx, c, interviews, meta)
}

// GetInterview 面谈详情
// GET /v1/admin/interviews/:id
func GetInterview(ctx context.Context, c *app.RequestContext) {
	interviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(ctx, c, errors.InterviewNotFound)
		return
	}

	result, err := service.Interview().Get(ctx, interviewID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// ScheduleInterview 面谈排期
// POST /v1/admin/interviews/:id/schedule
func ScheduleInterview(ctx context.Context, c *app.RequestContext) {
	adminIDStr, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, fmt.Errorf("admin ID not found in context"))
		return
	}
	adminID, err := strconv.ParseInt(adminIDStr, 10, 64)
	if err != nil {
		response.Error(ctx, c, errors.Unauthorized)
		return
	}

	interviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(ctx, c, errors.InterviewNotFound)
		return
	}

	var req dto.ScheduleInterviewRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Interview().Schedule(ctx, interviewID, adminID, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// UpdateInterview 改期或录入面谈结论
// PATCH /v1/admin/interviews/:id
func UpdateInterview(ctx context.Context, c *app.RequestContext) {
	interviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(ctx, c, errors.InterviewNotFound)
		return
	}

	var req dto.UpdateInterviewRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Interview().Update(ctx, interviewID, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}
