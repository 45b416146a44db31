package handler

import (
	"context"
	"fmt"

	"github.com/cloudwego/hertz/pkg/app"

	"Evermatch/internal/middleware"
	"Evermatch/internal/service"
	"Evermatch/pkg/response"
)

// UploadPhoto 问卷照片上传，body 即文件内容
// POST /v1/onboarding/photos
func UploadPhoto(ctx context.Context, c *app.RequestContext) {
	deviceID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, fmt.Errorf("device ID not found in context"))
		return
	}

	contentType := string(c.ContentType())
	data := c.Request.Body()

	result, err := service.Upload().UploadPhoto(ctx, deviceID, contentType, data)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}
