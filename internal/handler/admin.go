package handler

import (
	"context"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"

	"Evermatch/internal/model"
	"Evermatch/internal/model/dto"
	"Evermatch/internal/service"
	"Evermatch/pkg/errors"
	"Evermatch/pkg/response"
)

// AdminLogin 管理员登录
// POST /v1/admin/login
func AdminLogin(ctx context.Context, c *app.RequestContext) {
	var req dto.AdminLoginRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Admin().Login(ctx, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// CreateAdmin 新建后台账号
// POST /v1/admin/admins
func CreateAdmin(ctx context.Context, c *app.RequestContext) {
	var req dto.CreateAdminRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Admin().CreateAdmin(ctx, req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// ListAdmins 后台账号列表
// GET /v1/admin/admins
func ListAdmins(ctx context.Context, c *app.RequestContext) {
	result, err := service.Admin().ListAdmins(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// ListUsers 会员列表
// GET /v1/admin/users
func ListUsers(ctx context.Context, c *app.RequestContext) {
	var query dto.UserListQuery
	if err := c.BindAndValidate(&query); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	users, nextCursor, err := service.User().ListUsers(ctx, query)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	meta := map[string]interface{}{}
	if nextCursor != "" {
		meta["next_cursor"] = nextCursor
	}
	response.SuccessWithMeta(ctx, c, users, meta)
}

// GetUser 会员详情
// GET /v1/admin/users/:id
func GetUser(ctx context.Context, c *app.RequestContext) {
	publicID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(ctx, c, errors.InvalidUserID)
		return
	}

	result, err := service.User().GetUser(ctx, publicID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// UpdateUserStatus 改会员状态
// PATCH /v1/admin/users/:id/status
func UpdateUserStatus(ctx context.Context, c *app.RequestContext) {
	publicID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(ctx, c, errors.InvalidUserID)
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	if err := service.User().UpdateUserStatus(ctx, publicID, model.UserStatus(req.Status)); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.NoContent(ctx, c)
}

// SearchUsers 会员实时搜索
// GET /v1/admin/search/users
func SearchUsers(ctx context.Context, c *app.RequestContext) {
	var query dto.SearchUsersQuery
	if err := c.BindAndValidate(&query); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	items, stale, err := service.Search().SearchUsers(ctx, query)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	// 被更新的击键顶掉的请求让前端丢弃结果
	response.SuccessWithMeta(ctx, c, items, map[string]interface{}{
		"stale": stale,
	})
}
