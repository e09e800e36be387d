package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"stackview/internal/dto"
	"stackview/internal/pkg/config"
	pkgErrors "stackview/pkg/errors"
)

// ChatService 转发对话到外部AI分析服务
// AI推理本身不在本服务范围内, 这里只按约定的请求/响应形状代理
type ChatService interface {
	Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
}

type chatService struct {
	endpoint   string
	httpClient *http.Client
}

func NewChatService(cfg *config.ChatConfig) ChatService {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &chatService{
		endpoint: cfg.Endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (s *chatService) Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	if s.endpoint == "" {
		return nil, pkgErrors.ErrChatUnavailable
	}

	payload, err := json.Marshal(map[string]interface{}{
		"project_id": req.ProjectID,
		"message":    req.Message,
		"context":    req.Context,
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeHostError, "AI服务不可用", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, pkgErrors.Wrap(pkgErrors.CodeHostError,
			fmt.Sprintf("AI服务请求失败 (状态: %s)", resp.Status), nil)
	}

	var chatResp dto.ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeHostError, "解析AI服务响应失败", err)
	}

	return &chatResp, nil
}
