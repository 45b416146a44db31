package service

import (
	"context"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"Evermatch/config"
	"Evermatch/internal/model/dto"
	"Evermatch/pkg/errors"
	"Evermatch/pkg/logger"
)

var (
	uploadService *UploadService
	uploadOnce    sync.Once
)

func Upload() *UploadService {
	uploadOnce.Do(func() {
		c, err := client.NewClient(
			client.WithDialTimeout(time.Duration(config.Cfg.UploadTimeoutSeconds) * time.Second),
		)
		if err != nil {
			logger.Logger.Fatal("Failed to create upload client", zap.Error(err))
		}
		uploadService = &UploadService{client: c}
	})
	return uploadService
}

// 允许的照片类型和扩展名
var allowedUploadTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// UploadService 照片上传代理，设备直传到对象存储网关，这里只做体检和转发
type UploadService struct {
	client *client.Client
}

// UploadPhoto 校验大小和类型后转发到上传服务，返回可回填进问卷的存储引用
func (s *UploadService) UploadPhoto(ctx context.Context, deviceID, contentType string, data []byte) (*dto.UploadResult, error) {
	if int64(len(data)) > config.Cfg.UploadMaxBytes {
		return nil, errors.UploadTooLarge
	}

	ext, ok := allowedUploadTypes[strings.ToLower(contentType)]
	if !ok {
		return nil, errors.UploadTypeInvalid
	}

	key := path.Join("onboarding", deviceID, uuid.NewString()+ext)

	req := &protocol.Request{}
	resp := &protocol.Response{}
	req.SetMethod(consts.MethodPut)
	req.SetRequestURI(fmt.Sprintf("%s/%s/%s", config.Cfg.UploadBaseURL, config.Cfg.UploadBucket, key))
	req.SetBody(data)
	req.Header.SetContentTypeBytes([]byte(contentType))

	if err := s.client.Do(ctx, req, resp); err != nil {
		logger.Logger.Warn("Upload request failed",
			zap.String("device_id", deviceID),
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, errors.UploadUnavailable
	}
	if resp.StatusCode() >= 400 {
		logger.Logger.Warn("Upload service returned error",
			zap.String("key", key),
			zap.Int("status", resp.StatusCode()),
		)
		return nil, errors.UploadUnavailable
	}

	logger.Logger.Info("Photo uploaded",
		zap.String("device_id", deviceID),
		zap.String("key", key),
		zap.Int("size", len(data)),
	)

	return &dto.UploadResult{
		URL:    fmt.Sprintf("%s/%s/%s", config.Cfg.UploadBaseURL, config.Cfg.UploadBucket, key),
		Key:    key,
		Bucket: config.Cfg.UploadBucket,
	}, nil
}
