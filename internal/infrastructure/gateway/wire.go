package gateway

import "github.com/google/wire"

// ProviderSet 网关客户端 ProviderSet
var ProviderSet = wire.NewSet(
	NewClient,
)
