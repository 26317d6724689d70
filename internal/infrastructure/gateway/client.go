// Package gateway 实现远程网关（paynless 云 API）客户端
// 传输层与应用层失败统一映射为 error，由上层记录进对应的错误槽
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"log/slog"

	domainDialectic "github.com/paynless/daemon/internal/domain/dialectic"
	domainWallet "github.com/paynless/daemon/internal/domain/wallet"
	"github.com/paynless/daemon/internal/infrastructure/config"
	"github.com/paynless/daemon/internal/infrastructure/log"
)

// Client 远程网关客户端
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger

	// 访问令牌由 UI 登录流写入令牌文件，SessionWatcher 热更新
	mu    sync.RWMutex
	token string
}

// envelope 网关统一响应结构
// 应用层失败时 HTTP 状态码可能仍为 200，以 error 字段为准
type envelope struct {
	Data  json.RawMessage `json:"data,omitempty"`
	Error *apiError       `json:"error,omitempty"`
}

// apiError 网关应用层错误
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewClient 创建网关客户端
func NewClient(cfg *config.GatewayConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		logger: log.NewModuleLogger("gateway", "client"),
	}
}

// SetToken 更新访问令牌（由 SessionWatcher 调用）
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// currentToken 读取当前令牌
func (c *Client) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// ListProjects 拉取项目列表
func (c *Client) ListProjects(ctx context.Context) ([]domainDialectic.DialecticProject, error) {
	var projects []domainDialectic.DialecticProject
	if err := c.get(ctx, "/dialectic/projects", &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// CreateProject 创建项目
func (c *Client) CreateProject(ctx context.Context, payload domainDialectic.CreateProjectPayload) (*domainDialectic.DialecticProject, error) {
	var project domainDialectic.DialecticProject
	if err := c.post(ctx, "/dialectic/projects", payload, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// GetProjectDetails 拉取项目详情（含会话列表）
func (c *Client) GetProjectDetails(ctx context.Context, projectID string) (*domainDialectic.ProjectDetail, error) {
	var detail domainDialectic.ProjectDetail
	path := "/dialectic/projects/" + url.PathEscape(projectID)
	if err := c.get(ctx, path, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// GetSessionDetails 拉取会话详情（含贡献列表与当前阶段）
func (c *Client) GetSessionDetails(ctx context.Context, sessionID string) (*domainDialectic.SessionDetail, error) {
	var detail domainDialectic.SessionDetail
	path := "/dialectic/sessions/" + url.PathEscape(sessionID)
	if err := c.get(ctx, path, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// GetContributionContent 拉取贡献正文
func (c *Client) GetContributionContent(ctx context.Context, contributionID string) (*domainDialectic.ContributionContent, error) {
	var content domainDialectic.ContributionContent
	path := "/dialectic/contributions/" + url.PathEscape(contributionID) + "/content"
	if err := c.get(ctx, path, &content); err != nil {
		return nil, err
	}
	return &content, nil
}

// GetWalletInfo 按上下文拉取钱包信息
// 个人上下文不带参数，组织上下文带 org_id
func (c *Client) GetWalletInfo(ctx context.Context, chatCtx domainWallet.ChatContext) (*domainWallet.WalletRecord, error) {
	if err := chatCtx.Validate(); err != nil {
		return nil, err
	}

	path := "/wallet/info"
	if !chatCtx.IsPersonal() {
		path += "?org_id=" + url.QueryEscape(chatCtx.OrgID)
	}

	var record domainWallet.WalletRecord
	if err := c.get(ctx, path, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// get 发送 GET 请求并解析 data 字段
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// post 发送 POST 请求并解析 data 字段
func (c *Client) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, jsonData, out)
}

// do 执行请求，统一处理认证、响应信封与错误映射
func (c *Client) do(ctx context.Context, method, path string, body []byte, out interface{}) error {
	reqURL := c.baseURL + path

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug("Sending gateway request",
		"method", method,
		"path", path,
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read gateway response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("gateway returned status %d", resp.StatusCode)
		}
		return fmt.Errorf("failed to decode gateway response: %w", err)
	}

	// 应用层错误与传输层错误同等对待
	if env.Error != nil {
		return fmt.Errorf("%s", env.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	if out != nil {
		if env.Data == nil {
			return fmt.Errorf("gateway returned no data")
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode gateway data: %w", err)
		}
	}

	return nil
}
