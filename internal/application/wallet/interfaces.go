package wallet

import (
	"context"

	domain "github.com/paynless/daemon/internal/domain/wallet"
)

// Gateway 远程网关的钱包查询契约
type Gateway interface {
	// GetWalletInfo 按上下文拉取钱包信息
	GetWalletInfo(ctx context.Context, chatCtx domain.ChatContext) (*domain.WalletRecord, error)
}

// ContextProvider 当前聊天计费上下文来源（由聊天上下文仓库实现）
// 钱包仓库与上下文仓库互不耦合，判定引擎同时读取两者
type ContextProvider interface {
	// CurrentContext 读取当前聊天上下文
	CurrentContext() domain.ChatContext
}
