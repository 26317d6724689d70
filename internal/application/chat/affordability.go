package chat

import (
	"sync"

	"log/slog"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"

	domain "github.com/paynless/daemon/internal/domain/wallet"
	"github.com/paynless/daemon/internal/infrastructure/log"
)

// 在包初始化时设置离线加载器，避免运行时下载编码文件
func init() {
	tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
}

// WalletInfoProvider 钱包就绪判定来源（由钱包仓库实现）
type WalletInfoProvider interface {
	// ActiveWalletInfo 读取当前上下文的钱包就绪判定
	ActiveWalletInfo() domain.ActiveWalletInfo
}

// AffordabilityVerdict 发送前检查结果
type AffordabilityVerdict struct {
	CanSend         bool   `json:"can_send"`         // 是否允许发送
	EstimatedTokens int64  `json:"estimated_tokens"` // 估算的输入 Token 数
	Balance         string `json:"balance"`          // 当前余额（可用时）
	Reason          string `json:"reason,omitempty"` // 拒绝原因
}

// AffordabilityChecker 发送前余额检查器
// 钱包判定只回答"钱包是否就绪"，花费是否足够在发送时由本检查器判断
type AffordabilityChecker struct {
	provider WalletInfoProvider
	logger   *slog.Logger
}

// tiktoken 编码单例，避免重复加载 BPE 文件
var (
	encodingInstance *tiktoken.Tiktoken
	encodingOnce     sync.Once
	encodingErr      error
)

// getEncoding 获取 cl100k_base 编码单例
func getEncoding() (*tiktoken.Tiktoken, error) {
	encodingOnce.Do(func() {
		encodingInstance, encodingErr = tiktoken.GetEncoding("cl100k_base")
	})
	return encodingInstance, encodingErr
}

// NewAffordabilityChecker 创建发送前检查器
func NewAffordabilityChecker(provider WalletInfoProvider) *AffordabilityChecker {
	return &AffordabilityChecker{
		provider: provider,
		logger:   log.NewModuleLogger("chat", "affordability"),
	}
}

// EstimateTokens 估算消息的输入 Token 数
// 编码不可用时退化为按 4 字符 1 Token 的粗略估算
func (c *AffordabilityChecker) EstimateTokens(message string) int64 {
	if message == "" {
		return 0
	}

	enc, err := getEncoding()
	if err != nil {
		c.logger.Warn("Tiktoken encoding unavailable, falling back to character estimate",
			"error", err,
		)
		return int64(len(message)+3) / 4
	}
	return int64(len(enc.Encode(message, nil, nil)))
}

// CheckMessage 发送前检查
// 先看钱包就绪判定，再比较估算 Token 与余额
func (c *AffordabilityChecker) CheckMessage(message string) AffordabilityVerdict {
	estimated := c.EstimateTokens(message)
	info := c.provider.ActiveWalletInfo()

	verdict := AffordabilityVerdict{
		EstimatedTokens: estimated,
		Balance:         info.Balance,
	}

	if !info.CanSend() {
		verdict.Reason = info.Message
		if verdict.Reason == "" {
			verdict.Reason = "wallet is not ready"
		}
		return verdict
	}

	wallet := domain.TokenWallet{Balance: info.Balance}
	balance, err := wallet.BalanceValue()
	if err != nil {
		verdict.Reason = "wallet balance could not be read"
		return verdict
	}

	if estimated > balance {
		verdict.Reason = "insufficient token balance for this message"
		return verdict
	}

	verdict.CanSend = true
	return verdict
}
