package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"go.uber.org/zap"

	"Evermatch/config"
	"Evermatch/internal/model"
	"Evermatch/internal/model/dto"
	"Evermatch/pkg/errors"
	"Evermatch/pkg/logger"
)

// HTTPGateway 撮合平台的 HTTP 客户端实现
type HTTPGateway struct {
	baseURL string
	client  *client.Client
}

func NewHTTPGateway(baseURL string) (*HTTPGateway, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("gateway base URL is empty")
	}

	timeout := time.Duration(config.Cfg.GatewayTimeoutSeconds) * time.Second
	c, err := client.NewClient(
		client.WithDialTimeout(timeout),
		client.WithClientReadTimeout(timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway client: %w", err)
	}

	return &HTTPGateway{
		baseURL: baseURL,
		client:  c,
	}, nil
}

// doJSON 发送 JSON 请求并解析响应体，非 2xx 统一折算成网关错误
func (g *HTTPGateway) doJSON(ctx context.Context, method, path string, payload interface{}, out interface{}) error {
	req := &protocol.Request{}
	resp := &protocol.Response{}

	req.SetMethod(method)
	req.SetRequestURI(g.baseURL + path)

	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal gateway request: %w", err)
		}
		req.SetBody(body)
		req.Header.SetContentTypeBytes([]byte("application/json"))
	}

	if err := g.client.Do(ctx, req, resp); err != nil {
		logger.Logger.Warn("Gateway request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return errors.GatewayUnavailable
	}

	status := resp.StatusCode()
	if status >= 500 {
		logger.Logger.Warn("Gateway returned server error",
			zap.String("path", path),
			zap.Int("status", status),
		)
		return errors.GatewayUnavailable
	}
	if status >= 400 {
		logger.Logger.Warn("Gateway rejected request",
			zap.String("path", path),
			zap.Int("status", status),
			zap.ByteString("body", resp.Body()),
		)
		return errors.GatewayRejected
	}

	if out != nil {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return fmt.Errorf("failed to decode gateway response: %w", err)
		}
	}
	return nil
}

func (g *HTTPGateway) InitSession(ctx context.Context, deviceID string, device dto.DeviceInfo) error {
	payload := map[string]interface{}{
		"device_id": deviceID,
		"device":    device,
	}
	return g.doJSON(ctx, consts.MethodPost, "/v1/sessions", payload, nil)
}

func (g *HTTPGateway) SubmitStep(ctx context.Context, deviceID, step string, answers model.AnswerSet) error {
	payload := map[string]interface{}{
		"device_id": deviceID,
		"step":      step,
		"answers":   answers,
	}
	return g.doJSON(ctx, consts.MethodPost, "/v1/onboarding/steps/"+step, payload, nil)
}

func (g *HTTPGateway) CompleteApplication(ctx context.Context, deviceID, email, password string, answers model.AnswerSet) (*CompleteResult, error) {
	payload := map[string]interface{}{
		"device_id": deviceID,
		"credentials": map[string]string{
			"email":    email,
			"password": password,
		},
		"answers": answers,
	}

	var result CompleteResult
	if err := g.doJSON(ctx, consts.MethodPost, "/v1/applications", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (g *HTTPGateway) SearchUsers(ctx context.Context, query string, limit int) ([]dto.SearchUserItem, error) {
	path := "/v1/members/search?q=" + url.QueryEscape(query) + "&limit=" + strconv.Itoa(limit)

	var result struct {
		Items []dto.SearchUserItem `json:"items"`
	}
	if err := g.doJSON(ctx, consts.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return result.Items, nil
}
