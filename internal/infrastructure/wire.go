package infrastructure

import (
	"github.com/google/wire"

	"github.com/paynless/daemon/internal/infrastructure/config"
	"github.com/paynless/daemon/internal/infrastructure/gateway"
	"github.com/paynless/daemon/internal/infrastructure/watcher"
	"github.com/paynless/daemon/internal/infrastructure/websocket"
)

// ProviderSet Infrastructure 层总 ProviderSet
var ProviderSet = wire.NewSet(
	config.ProviderSet,
	gateway.ProviderSet,
	watcher.ProviderSet,
	websocket.ProviderSet,
)
