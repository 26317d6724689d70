//go:build wireinject
// +build wireinject

package wire

import (
	"github.com/google/wire"

	"github.com/paynless/daemon/internal/application"
	appChat "github.com/paynless/daemon/internal/application/chat"
	appDialectic "github.com/paynless/daemon/internal/application/dialectic"
	appWallet "github.com/paynless/daemon/internal/application/wallet"
	"github.com/paynless/daemon/internal/infrastructure"
	"github.com/paynless/daemon/internal/infrastructure/gateway"
	"github.com/paynless/daemon/internal/interfaces"
)

// InitializeAll 初始化所有服务
func InitializeAll() (*App, error) {
	wire.Build(
		// 按层组合 ProviderSet
		infrastructure.ProviderSet, // 基础设施层
		application.ProviderSet,    // 应用层
		interfaces.ProviderSet,     // 接口层
		// 接口绑定：应用层契约 -> 基础设施/应用实现
		wire.Bind(new(appDialectic.Gateway), new(*gateway.Client)),
		wire.Bind(new(appWallet.Gateway), new(*gateway.Client)),
		wire.Bind(new(appWallet.ContextProvider), new(*appChat.ContextStore)),
		wire.Bind(new(appChat.WalletInfoProvider), new(*appWallet.Service)),
		NewApp, // 组合所有服务的应用结构
	)
	return nil, nil
}
