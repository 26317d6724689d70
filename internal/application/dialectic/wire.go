package dialectic

import "github.com/google/wire"

// ProviderSet 辩证应用层 ProviderSet
var ProviderSet = wire.NewSet(
	NewContentCache,
	NewStore,
	NewDeepLinkActivator,
)
