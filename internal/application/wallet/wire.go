package wallet

import "github.com/google/wire"

// ProviderSet 钱包应用层 ProviderSet
var ProviderSet = wire.NewSet(
	NewService,
)
