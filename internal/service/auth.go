package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"Evermatch/internal/cache"
	"Evermatch/internal/gateway"
	"Evermatch/internal/model/dto"
	"Evermatch/pkg/errors"
	"Evermatch/pkg/logger"
	"Evermatch/pkg/token"
)

var (
	authService *AuthService
	authOnce    sync.Once
)

func Auth() *AuthService {
	authOnce.Do(func() {
		authService = NewAuth(gateway.GetGateway(), Onboarding())
	})
	return authService
}

type AuthService struct {
	gw         gateway.Gateway
	onboarding *OnboardingService
}

func NewAuth(gw gateway.Gateway, onboarding *OnboardingService) *AuthService {
	return &AuthService{gw: gw, onboarding: onboarding}
}

// InitSession 初始化问卷会话
// 匿名会话：还没有账号，身份就是设备会话 ID。
// 带签名的 resume_token 则接回该设备上次的草稿，裸设备 ID 不认。
func (s *AuthService) InitSession(ctx context.Context, req dto.SessionRequest) (*dto.SessionResponse, error) {
	var deviceID string
	isResume := req.ResumeToken != ""
	if isResume {
		id, err := token.ValidateResumeToken(req.ResumeToken)
		if err != nil {
			logger.Logger.Warn("Rejected invalid resume token",
				zap.Error(err),
			)
			return nil, errors.Unauthorized
		}
		deviceID = id
	} else {
		deviceID = uuid.NewString()
	}

	// 向撮合平台登记设备会话，失败不阻塞本地流程
	if err := s.gw.InitSession(ctx, deviceID, req.Device); err != nil {
		logger.Logger.Warn("Failed to register session with gateway",
			zap.String("device_id", deviceID),
			zap.Error(err),
		)
	}

	accessToken, refreshToken, expiresIn, err := token.GenerateTokenPair(deviceID, token.RoleApplicant)
	if err != nil {
		logger.Logger.Error("Failed to generate session tokens",
			zap.String("device_id", deviceID),
			zap.Error(err),
		)
		return nil, errors.SessionInitFailed
	}

	// refresh token 落 Redis，丢了也只影响续期，不影响当前会话
	if err := cache.SetRefreshToken(ctx, deviceID, refreshToken); err != nil {
		logger.Logger.Warn("Failed to store refresh token in Redis",
			zap.String("device_id", deviceID),
			zap.Error(err),
		)
	}

	// 恢复令牌给客户端保管，签发失败只丢恢复能力，会话照常可用
	resumeToken, err := token.GenerateResumeToken(deviceID)
	if err != nil {
		logger.Logger.Warn("Failed to generate resume token",
			zap.String("device_id", deviceID),
			zap.Error(err),
		)
	}

	resumeStep := s.onboarding.ResumeStep(ctx, deviceID)

	logger.Logger.Info("Onboarding session initialized",
		zap.String("device_id", deviceID),
		zap.Bool("resume", isResume),
		zap.String("platform", req.Device.Platform),
		zap.String("resume_step", resumeStep),
	)

	return &dto.SessionResponse{
		DeviceID:     deviceID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
		ResumeToken:  resumeToken,
		ResumeStep:   resumeStep,
	}, nil
}

func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.RefreshTokenResponse, error) {
	subject, role, err := token.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, errors.Unauthorized
	}

	// 检验是否存在且匹配
	if !cache.ValidateRefreshTokenExists(ctx, subject, refreshToken) {
		return nil, errors.Unauthorized
	}

	accessToken, newRefreshToken, expiresIn, err := token.GenerateTokenPair(subject, role)
	if err != nil {
		logger.Logger.Error("Failed to rotate tokens",
			zap.String("subject", subject),
			zap.Error(err),
		)
		return nil, errors.Unauthorized
	}

	if err := cache.SetRefreshToken(ctx, subject, newRefreshToken); err != nil {
		logger.Logger.Warn("Failed to update refresh token in Redis",
			zap.String("subject", subject),
			zap.Error(err),
		)
	}

	return &dto.RefreshTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		ExpiresIn:    expiresIn,
	}, nil
}
