// Package config 提供守护进程配置（默认值 + YAML 文件 + 环境变量覆盖）
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config 应用配置
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Gateway   GatewayConfig   `yaml:"gateway"`
	WebSocket WebSocketConfig `yaml:"websocket"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	// HTTPPort 固定端口，用于单例锁
	HTTPPort string `yaml:"http_port"`
}

// GatewayConfig 远程网关配置
type GatewayConfig struct {
	// BaseURL 网关基础地址
	BaseURL string `yaml:"base_url"`

	// TimeoutSeconds 单次请求超时（秒），传输层超时，本层不做取消
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// TokenFile 访问令牌文件路径（UI 登录流写入）
	// 留空表示使用 ~/.paynless/session.json
	TokenFile string `yaml:"token_file"`
}

// WebSocketConfig WebSocket 配置
type WebSocketConfig struct {
	ReadBufferSize  int `yaml:"read_buffer_size"`
	WriteBufferSize int `yaml:"write_buffer_size"`
}

// NewConfig 创建配置
// 加载顺序：默认值 -> ~/.paynless/daemon.yaml（存在时）-> 环境变量
func NewConfig() *Config {
	cfg := defaultConfig()

	if path := configFilePath(); path != "" {
		// 文件不存在或解析失败时保留默认值
		_ = cfg.loadFile(path)
	}

	cfg.applyEnv()
	return cfg
}

// defaultConfig 默认配置
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort: ":19970",
		},
		Gateway: GatewayConfig{
			BaseURL:        "https://api.paynless.app/v1",
			TimeoutSeconds: 30,
			TokenFile:      "",
		},
		WebSocket: WebSocketConfig{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// configFilePath 配置文件路径
func configFilePath() string {
	if p := os.Getenv("PAYNLESS_CONFIG"); p != "" {
		return p
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".paynless", "daemon.yaml")
}

// loadFile 从 YAML 文件加载
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

// applyEnv 应用环境变量覆盖
func (c *Config) applyEnv() {
	if v := os.Getenv("PAYNLESS_HTTP_PORT"); v != "" {
		c.Server.HTTPPort = v
	}
	if v := os.Getenv("PAYNLESS_GATEWAY_URL"); v != "" {
		c.Gateway.BaseURL = v
	}
	if v := os.Getenv("PAYNLESS_GATEWAY_TIMEOUT"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			c.Gateway.TimeoutSeconds = seconds
		}
	}
	if v := os.Getenv("PAYNLESS_TOKEN_FILE"); v != "" {
		c.Gateway.TokenFile = v
	}
}

// ResolveTokenFile 解析令牌文件路径（空值回退到默认位置）
func (g *GatewayConfig) ResolveTokenFile() string {
	if g.TokenFile != "" {
		return g.TokenFile
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".paynless", "session.json")
}

// NewServerConfig 创建服务器配置
func NewServerConfig(cfg *Config) *ServerConfig {
	return &cfg.Server
}

// NewGatewayConfig 创建网关配置
func NewGatewayConfig(cfg *Config) *GatewayConfig {
	return &cfg.Gateway
}

// NewWebSocketConfig 创建 WebSocket 配置
func NewWebSocketConfig(cfg *Config) *WebSocketConfig {
	return &cfg.WebSocket
}
