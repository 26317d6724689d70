package watcher

import "github.com/google/wire"

// ProviderSet 监听基础设施 ProviderSet
var ProviderSet = wire.NewSet(
	NewEventBus,
)
