package gateway

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"Evermatch/config"
	"Evermatch/internal/model"
	"Evermatch/internal/model/dto"
	"Evermatch/pkg/logger"
)

// CompleteResult 撮合平台受理完整申请后返回的标识
type CompleteResult struct {
	UserID        string `json:"user_id"`
	ApplicationID string `json:"application_id"`
	Status        string `json:"status"`
}

// Gateway 撮合平台网关客户端接口
// 问卷数据的权威副本在平台侧，这里只负责转发
type Gateway interface {
	// InitSession 向平台登记一个新的设备会话，失败不阻塞本地流程
	InitSession(ctx context.Context, deviceID string, device dto.DeviceInfo) error

	// SubmitStep 转发单个步骤的答案
	SubmitStep(ctx context.Context, deviceID, step string, answers model.AnswerSet) error

	// CompleteApplication 提交完整申请并创建账号
	// 凭证只在这一跳出现，本地草稿和日志都不碰它
	CompleteApplication(ctx context.Context, deviceID, email, password string, answers model.AnswerSet) (*CompleteResult, error)

	// SearchUsers 在平台会员目录里做前缀搜索
	SearchUsers(ctx context.Context, query string, limit int) ([]dto.SearchUserItem, error)
}

var (
	gatewayClient Gateway
	gatewayOnce   sync.Once
	gatewayErr    error
)

// Init 初始化网关客户端，GATEWAY_MOCK=true 时走内存 mock
func Init() error {
	gatewayOnce.Do(func() {
		cfg := config.Cfg

		if cfg.GatewayMock {
			gatewayClient = NewMockGateway()
			logger.Logger.Info("Matchmaking gateway initialized in mock mode")
			return
		}

		gatewayClient, gatewayErr = NewHTTPGateway(cfg.GatewayBaseURL)
		if gatewayErr != nil {
			logger.Logger.Error("Failed to initialize matchmaking gateway", zap.Error(gatewayErr))
			return
		}

		logger.Logger.Info("Matchmaking gateway initialized",
			zap.String("base_url", cfg.GatewayBaseURL),
		)
	})

	return gatewayErr
}

func GetGateway() Gateway {
	if gatewayClient == nil {
		panic("matchmaking gateway not initialized, call gateway.Init() first")
	}
	return gatewayClient
}
